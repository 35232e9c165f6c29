package service

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/unclebandit/blooddrive-backend/internal/metrics"
	"github.com/unclebandit/blooddrive-backend/internal/model"
	"github.com/unclebandit/blooddrive-backend/internal/queue"
)

// ChangePublisher announces committed writes. A nil publisher, or one
// without a queue, drops every change.
type ChangePublisher struct {
	Queue queue.Queue
	Topic string
	Log   zerolog.Logger
}

func NewChangePublisher(q queue.Queue, topic string, log zerolog.Logger) *ChangePublisher {
	if topic == "" {
		topic = queue.TopicRecordChanges
	}
	return &ChangePublisher{Queue: q, Topic: topic, Log: log}
}

// Publish never fails the caller; a lost event only delays the chart.
func (p *ChangePublisher) Publish(resource, action string, id, campaignID int) {
	if p == nil || p.Queue == nil {
		return
	}
	rc := model.RecordChange{
		Resource:   resource,
		Action:     action,
		ID:         id,
		CampaignID: campaignID,
		At:         time.Now().UTC(),
	}
	err := p.Queue.Publish(p.Topic, rc)
	metrics.RecordPublish(resource, err)
	if err != nil {
		p.Log.Warn().Err(err).
			Str("resource", resource).
			Str("action", action).
			Int("id", id).
			Msg("failed to publish record change")
	}
}
