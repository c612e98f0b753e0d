package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"go-weather/configs"
	"go-weather/docs"
	"go-weather/internal/application/controller"
	"go-weather/internal/application/middleware"
	"go-weather/internal/application/processor"
	"go-weather/internal/application/schedule"
	"go-weather/internal/domain/gateway/api"
	"go-weather/internal/domain/gateway/cache"
	"go-weather/internal/domain/gateway/db"
	"go-weather/internal/domain/gateway/queue"
	"go-weather/internal/domain/usecase/city"
	"go-weather/internal/domain/usecase/forecast"
	"go-weather/internal/domain/usecase/health"
	"go-weather/internal/domain/usecase/weather"
	infraaws "go-weather/internal/infra/aws"
	infragorm "go-weather/internal/infra/database/gorm"
	"go-weather/internal/infra/database/sqlc"
	httpclient "go-weather/pkg/http"
	"go-weather/pkg/log"
	"go-weather/pkg/msg"
	"go-weather/pkg/redis"
	"go-weather/pkg/resource"
	"go-weather/pkg/sqs"
	"go-weather/pkg/validation"
)

// @title go-weather
// @version 1.0
// @description Current weather, air quality and forecast charts from OpenWeatherMap
// @BasePath /api
func main() {
	defer log.Sync()

	if err := msg.Init(msg.Path()); err != nil {
		log.Fatal("failed to load messages", zap.Error(err))
	}

	cfg, err := configs.Load(resource.Path())
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}
	log.Info(msg.GetMessage("app.start", cfg.AppName, cfg.Server.Port))

	if cfg.Weather.APIKey == "" {
		log.Warn("app.weather.api-key is empty, upstream calls will be rejected")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init DB
	cityGateway, healthDBGateway, closeDB := openStore(ctx, cfg.DB)
	defer closeDB()

	cityUseCase := city.NewCityUseCase(cityGateway)
	if err := cityUseCase.Initialize(ctx); err != nil {
		log.Fatal("failed to create the cities table", zap.Error(err))
	}

	// Init upstream gateway, optionally behind the redis cache
	var weatherGateway api.WeatherGateway = api.NewWeatherGateway(cfg.Weather.BaseURL, cfg.Weather.APIKey, httpclient.ClientOptions{})

	var redisChecker cache.RedisChecker
	if cfg.Cache.Enabled {
		redisConfig := redis.NewRedisConfig().
			WithHost(cfg.Cache.Host).
			WithPort(cfg.Cache.Port).
			WithPassword(cfg.Cache.Password).
			WithDatabase(cfg.Cache.Database).
			WithCacheTTL("weather", cfg.Cache.TTL)

		redisClient, err := redis.NewClient(redisConfig)
		if err != nil {
			log.Fatal("failed to create redis client", zap.Error(err))
		}
		defer redisClient.Close()

		responseCache := redis.NewCache(redisClient, redis.NewCacheOptions().WithCacheName("weather"))
		weatherGateway = api.NewCachedWeatherGateway(weatherGateway, responseCache)
		redisChecker = redis.NewHealthChecker(redisClient)
	}

	// Init queue
	queueHealthGateway := queue.NewQueueHealthGateway()
	weatherOptions := weather.Options{PoolSize: cfg.Refresh.PoolSize, QueueName: cfg.Queue.Name}

	var sqsClient sqs.SQSClient
	if cfg.Queue.Enabled {
		awsConfig, err := infraaws.LoadConfig(ctx, cfg.Queue)
		if err != nil {
			log.Fatal("failed to load aws configuration", zap.Error(err))
		}
		sqsClient = infraaws.NewSqsClient(awsConfig, cfg.Queue.AWSEndpoint)
		weatherOptions.QueueSender = infraaws.NewSQSSenderAdapter(sqsClient)
	}

	// Init UseCase
	forecastUseCase := forecast.NewForecastUseCase(weatherGateway)
	weatherUseCase := weather.NewWeatherUseCase(weatherGateway, cityUseCase, forecastUseCase, weatherOptions)
	healthUseCase := health.NewHealthUseCase(healthDBGateway, cache.NewRedisHealthGateway(redisChecker), queueHealthGateway)

	var background sync.WaitGroup
	if sqsClient != nil {
		worker, err := sqs.NewWorker(ctx, sqsClient, cfg.Queue.Name, processor.NewWeatherProcessor(weatherUseCase), &sqs.WorkerConfig{
			PoolSize: cfg.Refresh.PoolSize,
		})
		if err != nil {
			log.Fatal("failed to create queue worker", zap.Error(err))
		}
		queueHealthGateway.RegisterWorker(worker.QueueName(), worker)

		background.Add(1)
		go func() {
			defer background.Done()
			worker.Start(ctx)
		}()
	}

	// Init Schedule
	if cfg.Refresh.Enabled {
		weatherScheduler := schedule.NewWeatherScheduler(weatherUseCase, cfg.Refresh.Cron)
		if err := weatherScheduler.InitWeatherScheduleTasks(); err != nil {
			log.Fatal("failed to start refresh scheduler", zap.Error(err))
		}
		defer weatherScheduler.Stop()
	}

	// Init server
	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.NewEchoValidator()
	middleware.SetupRequestLogger(e, cfg.Server.ContextPath)

	docs.SwaggerInfo.BasePath = cfg.Server.ContextPath
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.File("/", "web/index.html")

	apiGroup := e.Group(cfg.Server.ContextPath)
	controller.NewHealthController(apiGroup, healthUseCase).InitHealthRoutes()
	controller.NewWeatherController(apiGroup, weatherUseCase, cityUseCase).InitWeatherRoutes()

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped unexpectedly", zap.Error(err))
		}
	}()
	log.Info(msg.GetMessage("app.started", cfg.AppName))

	<-ctx.Done()
	log.Info(msg.GetMessage("app.stop", cfg.AppName))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shut down the server", zap.Error(err))
	}
	background.Wait()
}

// openStore connects the configured city store and its health probe.
func openStore(ctx context.Context, cfg configs.DBConfig) (db.CityGateway, db.HealthDBGateway, func()) {
	if cfg.Gateway == "gorm" {
		gormDB, err := infragorm.Open(cfg.DSN)
		if err != nil {
			log.Fatal("failed to open database", zap.Error(err))
		}
		closeFn := func() {
			if sqlDB, err := gormDB.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return db.NewGormCityGateway(gormDB), db.NewGormHealthDBGateway(gormDB), closeFn
	}

	sqlDB, err := sqlc.Open(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	cityGateway, err := db.NewSQLCCityGateway(sqlDB, cfg.Driver)
	if err != nil {
		log.Fatal("failed to create city gateway", zap.Error(err))
	}
	return cityGateway, db.NewSQLCHealthDBGateway(sqlDB, cfg.Driver), func() { _ = sqlDB.Close() }
}
