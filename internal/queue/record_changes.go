package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/unclebandit/blooddrive-backend/internal/model"
)

// DecodeRecordChange accepts the payload shapes the two queue
// implementations deliver: the value itself in process, JSON from RabbitMQ.
func DecodeRecordChange(payload any) (model.RecordChange, error) {
	switch p := payload.(type) {
	case model.RecordChange:
		return p, nil
	case *model.RecordChange:
		if p == nil {
			return model.RecordChange{}, fmt.Errorf("nil record change")
		}
		return *p, nil
	case []byte:
		var rc model.RecordChange
		if err := json.Unmarshal(p, &rc); err != nil {
			return model.RecordChange{}, fmt.Errorf("invalid record change: %w", err)
		}
		return rc, nil
	}
	return model.RecordChange{}, fmt.Errorf("unexpected payload type %T", payload)
}

// ForwardRecordChanges subscribes to topic and sends every decodable
// change to out. Undecodable payloads are logged and acknowledged. Once
// ctx is done deliveries fail, so a broker keeps them for the next consumer.
func ForwardRecordChanges(ctx context.Context, q Queue, topic string, out chan<- model.RecordChange, log zerolog.Logger) error {
	return q.Subscribe(topic, func(payload any) error {
		rc, err := DecodeRecordChange(payload)
		if err != nil {
			log.Warn().Err(err).Str("topic", topic).Msg("dropping message")
			return nil
		}
		select {
		case out <- rc:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}
