package queue

import (
	"go-weather/internal/domain/model"
	"go-weather/pkg/sqs"
)

// WorkerProbe reports the health of a queue consumer. *sqs.Worker satisfies it.
type WorkerProbe interface {
	HealthCheck() sqs.WorkerHealth
}

type HealthGateway interface {
	Health() model.ComponentHealthStatus
	RegisterWorker(name string, worker WorkerProbe)
	UnregisterWorker(name string)
}
