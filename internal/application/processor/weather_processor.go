package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"go-weather/internal/domain/gateway/queue"
	"go-weather/internal/domain/usecase/weather"
	"go-weather/pkg/log"
)

// WeatherProcessor consumes refresh messages published by the saved-city refresh
type WeatherProcessor struct {
	weatherUseCase weather.UseCase
}

func NewWeatherProcessor(weatherUseCase weather.UseCase) *WeatherProcessor {
	return &WeatherProcessor{
		weatherUseCase: weatherUseCase,
	}
}

// HandleMessage implements the sqs.Handler interface. A returned error leaves
// the message on the queue for redelivery.
func (p *WeatherProcessor) HandleMessage(ctx context.Context, msg types.Message) error {
	if msg.Body == nil {
		return errors.New("received message without body")
	}

	var refresh queue.RefreshMessage
	if err := json.Unmarshal([]byte(*msg.Body), &refresh); err != nil {
		return fmt.Errorf("failed to unmarshal message body: %w", err)
	}
	if strings.TrimSpace(refresh.City) == "" {
		return errors.New("refresh message has no city")
	}

	if err := p.weatherUseCase.RefreshCity(ctx, refresh.City); err != nil {
		return fmt.Errorf("failed to refresh %s: %w", refresh.City, err)
	}

	log.Debug("City refreshed from queue", zap.String("city", refresh.City), zap.String("request_id", refresh.RunID))
	return nil
}
