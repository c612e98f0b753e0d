package cache

import (
	"go-weather/internal/domain/model"
	"go-weather/pkg/redis"
)

type HealthGateway interface {
	Health() model.ComponentHealthStatus
}

// RedisChecker is satisfied by *redis.HealthChecker
type RedisChecker interface {
	HealthCheck() redis.RedisHealthCheck
}

type RedisHealthGateway struct {
	checker RedisChecker
}

var _ HealthGateway = (*RedisHealthGateway)(nil)

// NewRedisHealthGateway reports UNKNOWN when checker is nil, i.e. the cache is disabled.
func NewRedisHealthGateway(checker RedisChecker) *RedisHealthGateway {
	return &RedisHealthGateway{checker: checker}
}

func (gateway *RedisHealthGateway) Health() model.ComponentHealthStatus {
	if gateway.checker == nil {
		return model.ComponentHealthStatus{
			Status:  model.StatusUnknown,
			Details: map[string]string{"message": "Cache disabled"},
		}
	}

	check := gateway.checker.HealthCheck()
	status := model.StatusUnknown
	switch check.Status {
	case redis.StatusUp:
		status = model.StatusUp
	case redis.StatusDown:
		status = model.StatusDown
	}

	return model.ComponentHealthStatus{Status: status, Details: check.Details}
}
