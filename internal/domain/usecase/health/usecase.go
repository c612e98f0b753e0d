package health

import "go-weather/internal/domain/model"

// UseCase aggregates the component probes into the application health
type UseCase interface {
	CheckHealth() model.HealthResponse
}
