package api

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"go-weather/internal/domain/entity"
	"go-weather/internal/domain/model/external"
	"go-weather/pkg/log"
	"go-weather/pkg/redis"
)

// ResponseCache stores decoded upstream responses. *redis.Cache satisfies it.
type ResponseCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
}

// CachedWeatherGateway serves successful upstream responses from a cache.
// Cache failures fall through to the wrapped gateway and upstream failures
// are never stored.
type CachedWeatherGateway struct {
	next  WeatherGateway
	cache ResponseCache
}

var _ WeatherGateway = (*CachedWeatherGateway)(nil)

func NewCachedWeatherGateway(next WeatherGateway, cache ResponseCache) *CachedWeatherGateway {
	return &CachedWeatherGateway{next: next, cache: cache}
}

func (g *CachedWeatherGateway) FetchCurrent(ctx context.Context, city string) (*external.CurrentWeatherResponse, error) {
	return cached(ctx, g.cache, "current:"+entity.CanonicalCityName(city), func() (*external.CurrentWeatherResponse, error) {
		return g.next.FetchCurrent(ctx, city)
	})
}

func (g *CachedWeatherGateway) FetchForecast(ctx context.Context, city string) (*external.ForecastResponse, error) {
	return cached(ctx, g.cache, "forecast:"+entity.CanonicalCityName(city), func() (*external.ForecastResponse, error) {
		return g.next.FetchForecast(ctx, city)
	})
}

func (g *CachedWeatherGateway) FetchAirPollution(ctx context.Context, lat, lon float64) (*external.AirPollutionResponse, error) {
	key := "air_pollution:" + strconv.FormatFloat(lat, 'f', 4, 64) + "," + strconv.FormatFloat(lon, 'f', 4, 64)
	return cached(ctx, g.cache, key, func() (*external.AirPollutionResponse, error) {
		return g.next.FetchAirPollution(ctx, lat, lon)
	})
}

type cacheRefreshKey struct{}

// WithCacheRefresh marks ctx so that CachedWeatherGateway skips the cache
// read, fetches upstream and overwrites the entry.
func WithCacheRefresh(ctx context.Context) context.Context {
	return context.WithValue(ctx, cacheRefreshKey{}, true)
}

func isCacheRefresh(ctx context.Context) bool {
	refresh, _ := ctx.Value(cacheRefreshKey{}).(bool)
	return refresh
}

func cached[T any](ctx context.Context, cache ResponseCache, key string, load func() (*T, error)) (*T, error) {
	if !isCacheRefresh(ctx) {
		var hit T
		err := cache.Get(ctx, key, &hit)
		if err == nil {
			log.Debug("weather cache hit", zap.String("key", key))
			return &hit, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			log.Warn("weather cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	response, err := load()
	if err != nil {
		return nil, err
	}

	if err := cache.Set(ctx, key, response); err != nil {
		log.Warn("weather cache write failed", zap.String("key", key), zap.Error(err))
	}
	return response, nil
}
