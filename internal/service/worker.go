package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/unclebandit/blooddrive-backend/internal/model"
	"github.com/unclebandit/blooddrive-backend/internal/queue"
)

// DonationTotalsSource is the slice of the campaign repository the chart
// worker needs.
type DonationTotalsSource interface {
	DonationTotals(ctx context.Context) ([]model.CampaignDonationTotal, error)
}

// ChartWorker recomputes the donations-per-campaign chart whenever a
// record change arrives.
type ChartWorker struct {
	Totals    DonationTotalsSource
	Changes   <-chan model.RecordChange
	OnRefresh func([]model.CampaignDonationTotal)
	Log       zerolog.Logger
}

// Constructor
func NewChartWorker(totals DonationTotalsSource, changes <-chan model.RecordChange, log zerolog.Logger) *ChartWorker {
	return &ChartWorker{
		Totals:  totals,
		Changes: changes,
		Log:     log.With().Str("component", "chart_worker").Logger(),
	}
}

// Start processes changes until ctx is done or the channel closes.
func (w *ChartWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case rc, ok := <-w.Changes:
			if !ok {
				return
			}
			w.refresh(ctx, rc)
		}
	}
}

func (w *ChartWorker) refresh(ctx context.Context, rc model.RecordChange) {
	totals, err := w.Totals.DonationTotals(ctx)
	if err != nil {
		w.Log.Error().Err(err).
			Str("resource", rc.Resource).
			Int("id", rc.ID).
			Msg("failed to refresh donation totals")
		return
	}

	donations := 0
	for _, t := range totals {
		donations += t.Total
	}
	w.Log.Info().
		Str("trigger", rc.Resource+"."+rc.Action).
		Int("id", rc.ID).
		Int("campaigns", len(totals)).
		Int("donations", donations).
		Msg("donation totals refreshed")

	if w.OnRefresh != nil {
		w.OnRefresh(totals)
	}
}

// StartChartPipeline subscribes a chart worker to record changes on topic
// and runs it until ctx is done. onRefresh may be nil.
func StartChartPipeline(ctx context.Context, q queue.Queue, topic string, totals DonationTotalsSource, onRefresh func([]model.CampaignDonationTotal), log zerolog.Logger) (*ChartWorker, error) {
	changes := make(chan model.RecordChange, 64)
	if err := queue.ForwardRecordChanges(ctx, q, topic, changes, log); err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	w := NewChartWorker(totals, changes, log)
	w.OnRefresh = onRefresh
	go w.Start(ctx)
	return w, nil
}
