package health

import (
	"sync"

	"go-weather/internal/domain/gateway/cache"
	"go-weather/internal/domain/gateway/db"
	"go-weather/internal/domain/gateway/queue"
	"go-weather/internal/domain/model"
)

type healthUseCase struct {
	dbGateway    db.HealthDBGateway
	cacheGateway cache.HealthGateway
	queueGateway queue.HealthGateway
}

func NewHealthUseCase(dbGateway db.HealthDBGateway, cacheGateway cache.HealthGateway, queueGateway queue.HealthGateway) UseCase {
	return &healthUseCase{
		dbGateway:    dbGateway,
		cacheGateway: cacheGateway,
		queueGateway: queueGateway,
	}
}

// CheckHealth probes every component in parallel
func (useCase *healthUseCase) CheckHealth() model.HealthResponse {
	var wg sync.WaitGroup
	var dbHealth, cacheHealth, queueHealth model.ComponentHealthStatus

	wg.Add(3)
	go func() {
		defer wg.Done()
		dbHealth = useCase.dbGateway.Health()
	}()
	go func() {
		defer wg.Done()
		cacheHealth = useCase.cacheGateway.Health()
	}()
	go func() {
		defer wg.Done()
		queueHealth = useCase.queueGateway.Health()
	}()
	wg.Wait()

	return model.NewHealthResponse(dbHealth, cacheHealth, queueHealth)
}
