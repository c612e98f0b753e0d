package controller

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"go-weather/internal/domain/model"
)

type stubHealthUseCase struct {
	response model.HealthResponse
}

func (s stubHealthUseCase) CheckHealth() model.HealthResponse {
	return s.response
}

func TestCheckHealth(t *testing.T) {
	tests := []struct {
		name   string
		status model.HealthStatus
		want   int
	}{
		{name: "up", status: model.StatusUp, want: http.StatusOK},
		{name: "unknown", status: model.StatusUnknown, want: http.StatusOK},
		{name: "down", status: model.StatusDown, want: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			useCase := stubHealthUseCase{response: model.HealthResponse{
				Status:   tt.status,
				Database: model.ComponentHealthStatus{Status: tt.status},
			}}
			NewHealthController(e.Group("/api"), useCase).InitHealthRoutes()

			rec := do(e, http.MethodGet, "/api/health")
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}

			var body model.HealthResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body.Status != tt.status {
				t.Errorf("body status = %s, want %s", body.Status, tt.status)
			}
		})
	}
}
