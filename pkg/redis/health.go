package redis

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// HealthStatus is the outcome of a ping
type HealthStatus string

const (
	StatusUp   HealthStatus = "UP"
	StatusDown HealthStatus = "DOWN"
)

// RedisHealthCheck represents the health check response for Redis
type RedisHealthCheck struct {
	Status  HealthStatus      `json:"status"`
	Details map[string]string `json:"details"`
}

// HealthChecker provides Redis health checking functionality
type HealthChecker struct {
	client    *Client
	timeout   time.Duration
	mu        sync.Mutex
	lastCheck time.Time
	lastError string
}

// NewHealthChecker creates a new Redis health checker
func NewHealthChecker(client *Client) *HealthChecker {
	return &HealthChecker{
		client:  client,
		timeout: 2 * time.Second,
	}
}

// HealthCheck pings Redis and reports pool statistics
func (h *HealthChecker) HealthCheck() RedisHealthCheck {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	status := StatusUp
	h.lastError = ""
	if err := h.client.Ping(ctx); err != nil {
		status = StatusDown
		h.lastError = fmt.Sprintf("ping failed: %v", err)
	}
	h.lastCheck = time.Now()

	config := h.client.GetConfig()
	stats := h.client.PoolStats()
	details := map[string]string{
		"addr":        config.Addr(),
		"database":    strconv.Itoa(config.Database),
		"total_conns": strconv.FormatUint(uint64(stats.TotalConns), 10),
		"idle_conns":  strconv.FormatUint(uint64(stats.IdleConns), 10),
		"last_check":  h.lastCheck.Format(time.RFC3339),
	}
	if h.lastError != "" {
		details["message"] = h.lastError
	}

	return RedisHealthCheck{
		Status:  status,
		Details: details,
	}
}
