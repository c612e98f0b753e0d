package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"go-weather/internal/domain/model"
	"go-weather/internal/domain/usecase/weather"
)

type fakeWeatherUseCase struct {
	refreshed []string
	err       error
}

func (f *fakeWeatherUseCase) GetWeather(context.Context, string) (*model.WeatherResponse, error) {
	return nil, nil
}

func (f *fakeWeatherUseCase) RefreshCity(_ context.Context, name string) error {
	f.refreshed = append(f.refreshed, name)
	return f.err
}

func (f *fakeWeatherUseCase) RefreshSavedCities(_ context.Context, runID string) weather.RefreshSummary {
	return weather.RefreshSummary{RunID: runID}
}

func TestHandleMessage(t *testing.T) {
	useCase := &fakeWeatherUseCase{}
	processor := NewWeatherProcessor(useCase)

	err := processor.HandleMessage(context.Background(), types.Message{
		MessageId: aws.String("refresh-0"),
		Body:      aws.String(`{"city":"london","runId":"run-1"}`),
	})
	if err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if len(useCase.refreshed) != 1 || useCase.refreshed[0] != "london" {
		t.Errorf("refreshed = %v, want [london]", useCase.refreshed)
	}
}

func TestHandleMessage_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    *string
		useCase *fakeWeatherUseCase
	}{
		{name: "nil body", body: nil, useCase: &fakeWeatherUseCase{}},
		{name: "invalid json", body: aws.String("{"), useCase: &fakeWeatherUseCase{}},
		{name: "blank city", body: aws.String(`{"city":"  "}`), useCase: &fakeWeatherUseCase{}},
		{name: "refresh fails", body: aws.String(`{"city":"london"}`), useCase: &fakeWeatherUseCase{err: errors.New("upstream down")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewWeatherProcessor(tt.useCase).HandleMessage(context.Background(), types.Message{Body: tt.body})
			if err == nil {
				t.Error("HandleMessage() expected error")
			}
		})
	}
}
