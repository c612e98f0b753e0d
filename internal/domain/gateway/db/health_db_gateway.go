package db

import "go-weather/internal/domain/model"

type HealthDBGateway interface {
	Health() model.ComponentHealthStatus
}

func downStatus(err error) model.ComponentHealthStatus {
	return model.ComponentHealthStatus{
		Status: model.StatusDown,
		Details: map[string]string{
			"message": err.Error(),
		},
	}
}
