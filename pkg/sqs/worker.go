package sqs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"go-weather/pkg/log"
)

// HandlerFunc defines a function that handles a SQS Message
type HandlerFunc func(ctx context.Context, msg types.Message) error

// HandleMessage implements the Handler interface for HandlerFunc
func (f HandlerFunc) HandleMessage(ctx context.Context, msg types.Message) error {
	return f(ctx, msg)
}

// Handler defines an interface that processes a SQS Message.
// A message is deleted from the queue only when HandleMessage returns nil.
type Handler interface {
	HandleMessage(ctx context.Context, msg types.Message) error
}

// WorkerConfig defines the configuration options for a Worker
type WorkerConfig struct {
	MaxNumberOfMessages int32
	WaitTimeSeconds     int32
	PoolSize            int
	// ErrorBackoff is the pause after a failed ReceiveMessage call
	ErrorBackoff time.Duration
}

// Worker polls and processes messages from a SQS queue
type Worker struct {
	sqsClient           SQSClient
	queueName           string
	queueURL            string
	maxNumberOfMessages int32
	waitTimeSeconds     int32
	poolSize            int
	errorBackoff        time.Duration
	handler             Handler
	logger              *zap.Logger
	// slots bounds the messages handled at once across all pollers
	slots chan struct{}

	mu          sync.RWMutex
	running     bool
	lastPoll    time.Time
	lastError   string
	processed   int64
	failedCount int64
}

// NewWorker creates and returns a new Worker.
//
// If the provided WorkerConfig is nil or its fields are zero,
// the following defaults will be used:
//   - MaxNumberOfMessages: 10
//   - WaitTimeSeconds: 20
//   - PoolSize: 1
//   - ErrorBackoff: 1s
//
// Validations:
//   - MaxNumberOfMessages must be between 1 and 10.
//   - WaitTimeSeconds must be between 1 and 20.
//   - PoolSize must be greater than 0.
func NewWorker(ctx context.Context, sqsClient SQSClient, queueName string, handler Handler, config *WorkerConfig) (*Worker, error) {
	var maxMessages int32 = 10
	var waitTime int32 = 20
	poolSize := 1
	errorBackoff := time.Second

	if config != nil {
		if config.MaxNumberOfMessages != 0 {
			maxMessages = config.MaxNumberOfMessages
		}
		if config.WaitTimeSeconds != 0 {
			waitTime = config.WaitTimeSeconds
		}
		if config.PoolSize != 0 {
			poolSize = config.PoolSize
		}
		if config.ErrorBackoff != 0 {
			errorBackoff = config.ErrorBackoff
		}
	}

	if maxMessages < 1 || maxMessages > 10 {
		return nil, errors.New("maxNumberOfMessages must be between 1 and 10")
	}
	if waitTime < 1 || waitTime > 20 {
		return nil, errors.New("waitTimeSeconds must be between 1 and 20")
	}
	if poolSize < 1 {
		return nil, errors.New("poolSize must be greater than 0")
	}
	if handler == nil {
		return nil, errors.New("handler cannot be nil")
	}

	queueURL, err := getQueueURL(ctx, sqsClient, queueName)
	if err != nil {
		return nil, fmt.Errorf("unable to get queue URL: %w", err)
	}

	return &Worker{
		sqsClient:           sqsClient,
		queueName:           queueName,
		queueURL:            queueURL,
		maxNumberOfMessages: maxMessages,
		waitTimeSeconds:     waitTime,
		poolSize:            poolSize,
		errorBackoff:        errorBackoff,
		handler:             handler,
		slots:               make(chan struct{}, poolSize),
		logger:              log.Named("sqs-worker").With(zap.String("queue", queueName)),
	}, nil
}

// QueueName returns the name of the polled queue.
func (w *Worker) QueueName() string {
	return w.queueName
}

// Start begins polling messages and processing them concurrently.
// It spawns PoolSize pollers, handles at most PoolSize messages at once and
// blocks until ctx is canceled and every in-flight message has been handled.
func (w *Worker) Start(ctx context.Context) {
	w.setRunning(true)
	defer w.setRunning(false)

	var wg sync.WaitGroup

	for i := 0; i < w.poolSize; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.pollMessages(ctx)
		}()
	}

	wg.Wait()
}

func (w *Worker) pollMessages(ctx context.Context) {
	var inflight sync.WaitGroup
	defer inflight.Wait()

	for {
		if ctx.Err() != nil {
			return
		}

		output, err := w.sqsClient.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            &w.queueURL,
			MaxNumberOfMessages: w.maxNumberOfMessages,
			WaitTimeSeconds:     w.waitTimeSeconds,
		})
		w.recordPoll(err)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Error("failed to receive messages", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.errorBackoff):
			}
			continue
		}

		for _, msg := range output.Messages {
			// a received message is always handled, so this wait ignores ctx
			w.slots <- struct{}{}
			inflight.Add(1)
			go func(m types.Message) {
				defer func() {
					<-w.slots
					inflight.Done()
				}()
				w.handleMessage(ctx, m)
			}(msg)
		}
	}
}

func (w *Worker) handleMessage(ctx context.Context, msg types.Message) {
	messageID := safeMessageID(msg)

	if err := w.handler.HandleMessage(ctx, msg); err != nil {
		w.recordResult(false)
		w.logger.Error("error processing message", zap.String("messageId", messageID), zap.Error(err))
		return
	}

	// the delete must survive shutdown of the polling context
	_, err := w.sqsClient.DeleteMessage(context.WithoutCancel(ctx), &sqs.DeleteMessageInput{
		QueueUrl:      &w.queueURL,
		ReceiptHandle: msg.ReceiptHandle,
	})
	if err != nil {
		w.recordResult(false)
		w.logger.Error("failed to delete message", zap.String("messageId", messageID), zap.Error(err))
		return
	}
	w.recordResult(true)
	w.logger.Debug("message deleted", zap.String("messageId", messageID))
}

func safeMessageID(msg types.Message) string {
	if msg.MessageId == nil {
		return ""
	}
	return *msg.MessageId
}

// HealthCheck reports whether the pollers are running and the last
// ReceiveMessage call succeeded.
func (w *Worker) HealthCheck() WorkerHealth {
	w.mu.RLock()
	defer w.mu.RUnlock()

	status := StatusUp
	if !w.running || w.lastError != "" {
		status = StatusDown
	}

	details := map[string]string{
		"queue":     w.queueName,
		"running":   strconv.FormatBool(w.running),
		"pool_size": strconv.Itoa(w.poolSize),
		"processed": strconv.FormatInt(w.processed, 10),
		"failed":    strconv.FormatInt(w.failedCount, 10),
	}
	if !w.lastPoll.IsZero() {
		details["last_poll"] = w.lastPoll.Format(time.RFC3339)
	}
	if w.lastError != "" {
		details["message"] = w.lastError
	}

	return WorkerHealth{Status: status, Details: details}
}

func (w *Worker) setRunning(running bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.running = running
}

func (w *Worker) recordPoll(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastPoll = time.Now()
	w.lastError = ""
	if err != nil {
		w.lastError = err.Error()
	}
}

func (w *Worker) recordResult(ok bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if ok {
		w.processed++
		return
	}
	w.failedCount++
}
