package queue

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// TopicRecordChanges carries model.RecordChange events.
const TopicRecordChanges = "record_changes"

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue delivers each message to every subscriber of its topic
// on its own goroutine, retrying failed handlers with linear backoff.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
	log      zerolog.Logger

	MaxRetries int
	Backoff    time.Duration
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue(log zerolog.Logger) *InMemoryQueue {
	return &InMemoryQueue{
		handlers:   make(map[string][]func(payload any) error),
		log:        log.With().Str("component", "queue").Logger(),
		MaxRetries: 3,
		Backoff:    500 * time.Millisecond,
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Topic      string
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish fails when nobody listens on topic.
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Topic:      topic,
		Payload:    payload,
		MaxRetries: q.MaxRetries,
	}
	for _, handler := range handlers {
		go q.processJob(handler, job)
	}
	return nil
}

func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for {
		err := handler(job.Payload)
		if err == nil {
			q.log.Debug().Str("topic", job.Topic).Int("attempt", job.RetryCount+1).Msg("job processed")
			return
		}

		job.RetryCount++
		if job.RetryCount > job.MaxRetries {
			q.log.Error().Err(err).Str("topic", job.Topic).Int("attempts", job.RetryCount).Msg("job permanently failed")
			return
		}
		q.log.Warn().Err(err).Str("topic", job.Topic).Int("attempt", job.RetryCount).Msg("job failed, retrying")

		time.Sleep(time.Duration(job.RetryCount) * q.Backoff)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}
