package model

type HealthStatus string

const (
	StatusUp   HealthStatus = "UP"
	StatusDown HealthStatus = "DOWN"
	// StatusUnknown marks a disabled component. It never makes the application DOWN.
	StatusUnknown HealthStatus = "UNKNOWN"
)

// ComponentHealthStatus is the probe result of one dependency (database, cache, queue)
type ComponentHealthStatus struct {
	Status  HealthStatus      `json:"status"`
	Details map[string]string `json:"details"`
}

// HealthResponse is the payload of GET /health
type HealthResponse struct {
	Status   HealthStatus          `json:"status"`
	Database ComponentHealthStatus `json:"database"`
	Cache    ComponentHealthStatus `json:"cache"`
	Queue    ComponentHealthStatus `json:"queue"`
}

// NewHealthResponse derives the overall status from the component probes.
// The application is DOWN as soon as one component is DOWN.
func NewHealthResponse(database, cache, queue ComponentHealthStatus) HealthResponse {
	overall := StatusUp
	for _, component := range []ComponentHealthStatus{database, cache, queue} {
		if component.Status == StatusDown {
			overall = StatusDown
			break
		}
	}
	return HealthResponse{Status: overall, Database: database, Cache: cache, Queue: queue}
}
