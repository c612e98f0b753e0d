package sqs

// HealthStatus represents the health status of a worker
type HealthStatus string

const (
	StatusUp   HealthStatus = "UP"
	StatusDown HealthStatus = "DOWN"
)

// WorkerHealth is the health snapshot of a Worker
type WorkerHealth struct {
	Status  HealthStatus      `json:"status"`
	Details map[string]string `json:"details"`
}
