package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-weather/internal/domain/entity"
)

type cityRecord struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"type:text;not null;uniqueIndex"`
	CreatedAt string `gorm:"type:text;not null"`
}

func (cityRecord) TableName() string {
	return "cities"
}

// GormCityGateway implements CityGateway with gorm on postgres
type GormCityGateway struct {
	DB *gorm.DB
}

var _ CityGateway = (*GormCityGateway)(nil)

func NewGormCityGateway(db *gorm.DB) *GormCityGateway {
	return &GormCityGateway{DB: db}
}

func (gateway *GormCityGateway) Initialize(ctx context.Context) error {
	if err := gateway.DB.WithContext(ctx).AutoMigrate(&cityRecord{}); err != nil {
		return fmt.Errorf("failed to migrate cities table: %w", err)
	}
	return nil
}

func (gateway *GormCityGateway) Add(ctx context.Context, name string) error {
	canonical := entity.CanonicalCityName(name)
	if canonical == "" {
		return ErrEmptyCityName
	}

	record := cityRecord{
		Name:      canonical,
		CreatedAt: time.Now().UTC().Format(cityTimeLayout),
	}
	err := gateway.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to insert city %s: %w", canonical, err)
	}
	return nil
}

func (gateway *GormCityGateway) FindAll(ctx context.Context) ([]entity.City, error) {
	var records []cityRecord
	if err := gateway.DB.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}

	cities := make([]entity.City, 0, len(records))
	for _, record := range records {
		cities = append(cities, entity.City{ID: record.ID, Name: record.Name, CreatedAt: record.CreatedAt})
	}
	return cities, nil
}

func (gateway *GormCityGateway) Remove(ctx context.Context, name string) (bool, error) {
	canonical := entity.CanonicalCityName(name)
	if canonical == "" {
		return false, ErrEmptyCityName
	}

	result := gateway.DB.WithContext(ctx).Where("name = ?", canonical).Delete(&cityRecord{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete city %s: %w", canonical, result.Error)
	}
	return result.RowsAffected > 0, nil
}
