package queue

import "context"

// BatchMessage represents a message to be sent in batch
type BatchMessage struct {
	MessageID string `json:"messageId"`
	Body      any    `json:"body"`
}

// BatchResult represents the result of a batch send operation
type BatchResult struct {
	Successful []string `json:"successful"`
	Failed     []string `json:"failed"`
}

type Sender interface {
	SendMessage(ctx context.Context, queueName string, body any) error
	SendMessageBatch(ctx context.Context, queueName string, messages []BatchMessage) (*BatchResult, error)
}

// RefreshMessage asks a worker to refresh the cached weather of a city
type RefreshMessage struct {
	City  string `json:"city"`
	RunID string `json:"runId"`
}
