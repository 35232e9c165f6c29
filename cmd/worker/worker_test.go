package main

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/unclebandit/blooddrive-backend/internal/model"
	"github.com/unclebandit/blooddrive-backend/internal/queue"
	"github.com/unclebandit/blooddrive-backend/internal/service"
)

// MockTotalsRepo counts donations in memory
type MockTotalsRepo struct {
	mu     sync.Mutex
	totals map[int]int
}

func (m *MockTotalsRepo) DonationTotals(ctx context.Context) ([]model.CampaignDonationTotal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.CampaignDonationTotal{}
	for id, n := range m.totals {
		out = append(out, model.CampaignDonationTotal{CampaignID: id, Name: "Drive", Total: n})
	}
	return out, nil
}

func TestWorker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := &MockTotalsRepo{totals: map[int]int{1: 3}}
	q := queue.NewInMemoryQueue(zerolog.Nop())

	refreshed := make(chan []model.CampaignDonationTotal, 1)
	_, err := service.StartChartPipeline(ctx, q, queue.TopicRecordChanges, repo, func(totals []model.CampaignDonationTotal) {
		refreshed <- totals
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to start pipeline: %v", err)
	}

	// A JSON body, as delivered by RabbitMQ
	body := []byte(`{"resource":"donation","action":"created","id":7,"campaign_id":1}`)
	if err := q.Publish(queue.TopicRecordChanges, body); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case totals := <-refreshed:
		if len(totals) != 1 || totals[0].Total != 3 {
			t.Errorf("unexpected totals %+v", totals)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("chart was not refreshed")
	}

	// logSnapshot must accept any snapshot
	logSnapshot(zerolog.Nop())([]model.CampaignDonationTotal{{CampaignID: 1, Total: 3}})
}
