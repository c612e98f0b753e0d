package queue

import (
	"sort"
	"strconv"
	"sync"

	"go-weather/internal/domain/model"
	"go-weather/pkg/sqs"
)

// QueueHealthGateway aggregates the health of the registered queue workers.
// With no workers registered the queue is reported as UNKNOWN.
type QueueHealthGateway struct {
	mutex   sync.RWMutex
	workers map[string]WorkerProbe
}

var _ HealthGateway = (*QueueHealthGateway)(nil)

func NewQueueHealthGateway() *QueueHealthGateway {
	return &QueueHealthGateway{workers: make(map[string]WorkerProbe)}
}

func (gateway *QueueHealthGateway) RegisterWorker(name string, worker WorkerProbe) {
	gateway.mutex.Lock()
	defer gateway.mutex.Unlock()
	gateway.workers[name] = worker
}

func (gateway *QueueHealthGateway) UnregisterWorker(name string) {
	gateway.mutex.Lock()
	defer gateway.mutex.Unlock()
	delete(gateway.workers, name)
}

func (gateway *QueueHealthGateway) Health() model.ComponentHealthStatus {
	gateway.mutex.RLock()
	defer gateway.mutex.RUnlock()

	if len(gateway.workers) == 0 {
		return model.ComponentHealthStatus{
			Status:  model.StatusUnknown,
			Details: map[string]string{"message": "No workers registered"},
		}
	}

	names := make([]string, 0, len(gateway.workers))
	for name := range gateway.workers {
		names = append(names, name)
	}
	sort.Strings(names)

	status := model.StatusUp
	details := map[string]string{"workers_total": strconv.Itoa(len(names))}
	down := 0

	for _, name := range names {
		health := gateway.workers[name].HealthCheck()
		details[name+"_status"] = string(health.Status)
		for key, value := range health.Details {
			details[name+"_"+key] = value
		}
		if health.Status != sqs.StatusUp {
			down++
			status = model.StatusDown
		}
	}
	details["workers_down"] = strconv.Itoa(down)

	return model.ComponentHealthStatus{Status: status, Details: details}
}
