package city

import (
	"context"

	"go.uber.org/zap"

	"go-weather/internal/domain/gateway/db"
	"go-weather/pkg/log"
	"go-weather/pkg/msg"
)

type cityUseCase struct {
	dbGateway db.CityGateway
}

func NewCityUseCase(dbGateway db.CityGateway) UseCase {
	return &cityUseCase{dbGateway: dbGateway}
}

func (uc *cityUseCase) Initialize(ctx context.Context) error {
	return uc.dbGateway.Initialize(ctx)
}

func (uc *cityUseCase) AddCity(ctx context.Context, name string) bool {
	if err := uc.dbGateway.Add(ctx, name); err != nil {
		log.Error("failed to add city", zap.String("city", name), zap.Error(err))
		return false
	}
	log.Debug(msg.GetMessage("weather.city-saved", name))
	return true
}

func (uc *cityUseCase) ListCities(ctx context.Context) []string {
	cities, err := uc.dbGateway.FindAll(ctx)
	if err != nil {
		log.Error("failed to list cities", zap.Error(err))
		return []string{}
	}

	names := make([]string, 0, len(cities))
	for _, city := range cities {
		names = append(names, city.Name)
	}
	return names
}

func (uc *cityUseCase) RemoveCity(ctx context.Context, name string) bool {
	removed, err := uc.dbGateway.Remove(ctx, name)
	if err != nil {
		log.Error("failed to remove city", zap.String("city", name), zap.Error(err))
		return false
	}
	return removed
}
