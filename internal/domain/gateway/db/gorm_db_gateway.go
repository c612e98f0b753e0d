package db

import (
	"context"
	"strconv"
	"time"

	"gorm.io/gorm"

	"go-weather/internal/domain/model"
)

type GormHealthDBGateway struct {
	DB *gorm.DB
}

var _ HealthDBGateway = (*GormHealthDBGateway)(nil)

func NewGormHealthDBGateway(db *gorm.DB) *GormHealthDBGateway {
	return &GormHealthDBGateway{DB: db}
}

func (gateway *GormHealthDBGateway) Health() model.ComponentHealthStatus {
	sqlDB, err := gateway.DB.DB()
	if err != nil {
		return downStatus(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err = sqlDB.PingContext(ctx); err != nil {
		return downStatus(err)
	}

	return model.ComponentHealthStatus{
		Status: model.StatusUp,
		Details: map[string]string{
			"driver":           gateway.DB.Dialector.Name(),
			"open_connections": strconv.Itoa(sqlDB.Stats().OpenConnections),
		},
	}
}
