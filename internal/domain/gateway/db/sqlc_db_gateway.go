package db

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"go-weather/internal/domain/model"
)

type SQLCHealthDBGateway struct {
	DB     *sql.DB
	driver string
}

var _ HealthDBGateway = (*SQLCHealthDBGateway)(nil)

func NewSQLCHealthDBGateway(db *sql.DB, driver string) *SQLCHealthDBGateway {
	return &SQLCHealthDBGateway{DB: db, driver: driver}
}

func (gateway *SQLCHealthDBGateway) Health() model.ComponentHealthStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := gateway.DB.PingContext(ctx); err != nil {
		return downStatus(err)
	}

	stats := gateway.DB.Stats()
	return model.ComponentHealthStatus{
		Status: model.StatusUp,
		Details: map[string]string{
			"driver":           gateway.driver,
			"open_connections": strconv.Itoa(stats.OpenConnections),
			"in_use":           strconv.Itoa(stats.InUse),
		},
	}
}
