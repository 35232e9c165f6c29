package service_test

import (
	"context"
	"sync"

	appErrors "github.com/unclebandit/blooddrive-backend/internal/errors"
	"github.com/unclebandit/blooddrive-backend/internal/filter"
	"github.com/unclebandit/blooddrive-backend/internal/model"
)

// MockCampaignRepo keeps campaigns in memory and counts storage calls.
type MockCampaignRepo struct {
	mu        sync.Mutex
	campaigns map[int]model.Campaign
	nextID    int
	calls     int
	lastWhere filter.Predicate
	totals    []model.CampaignDonationTotal
	err       error
}

func NewMockCampaignRepo(seed ...model.Campaign) *MockCampaignRepo {
	m := &MockCampaignRepo{campaigns: map[int]model.Campaign{}, nextID: 1}
	for _, c := range seed {
		m.campaigns[c.ID] = c
		if c.ID >= m.nextID {
			m.nextID = c.ID + 1
		}
	}
	return m
}

func (m *MockCampaignRepo) touch() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.err
}

func (m *MockCampaignRepo) List(ctx context.Context, where filter.Predicate) ([]model.Campaign, error) {
	if err := m.touch(); err != nil {
		return nil, err
	}
	m.lastWhere = where
	out := []model.Campaign{}
	for _, c := range m.campaigns {
		out = append(out, c)
	}
	return out, nil
}

func (m *MockCampaignRepo) GetByID(ctx context.Context, id int) (*model.Campaign, error) {
	if err := m.touch(); err != nil {
		return nil, err
	}
	c, ok := m.campaigns[id]
	if !ok {
		return nil, appErrors.NewCampaignNotFound(id)
	}
	return &c, nil
}

func (m *MockCampaignRepo) Create(ctx context.Context, c *model.Campaign) error {
	if err := m.touch(); err != nil {
		return err
	}
	c.ID = m.nextID
	m.nextID++
	m.campaigns[c.ID] = *c
	return nil
}

func (m *MockCampaignRepo) Update(ctx context.Context, c *model.Campaign) (int64, error) {
	if err := m.touch(); err != nil {
		return 0, err
	}
	if _, ok := m.campaigns[c.ID]; !ok {
		return 0, nil
	}
	m.campaigns[c.ID] = *c
	return 1, nil
}

func (m *MockCampaignRepo) Delete(ctx context.Context, id int) (int64, error) {
	if err := m.touch(); err != nil {
		return 0, err
	}
	if _, ok := m.campaigns[id]; !ok {
		return 0, nil
	}
	delete(m.campaigns, id)
	return 1, nil
}

func (m *MockCampaignRepo) DonationTotals(ctx context.Context) ([]model.CampaignDonationTotal, error) {
	if err := m.touch(); err != nil {
		return nil, err
	}
	return m.totals, nil
}

// MockDonationRepo serves a fixed, id-ordered set of donation views.
type MockDonationRepo struct {
	views     []model.DonationView
	calls     int
	lastWhere filter.Predicate
	err       error
	nextID    int
}

func NewMockDonationRepo(n int) *MockDonationRepo {
	m := &MockDonationRepo{nextID: n + 1}
	for i := 1; i <= n; i++ {
		m.views = append(m.views, model.DonationView{
			Donation:     model.Donation{ID: i, CampaignID: 1, DonorName: "Donor"},
			CampaignName: "Drive",
		})
	}
	return m
}

func (m *MockDonationRepo) List(ctx context.Context, where filter.Predicate) ([]model.DonationView, error) {
	m.calls++
	m.lastWhere = where
	if m.err != nil {
		return nil, m.err
	}
	return m.views, nil
}

func (m *MockDonationRepo) ListPage(ctx context.Context, offset, limit int) ([]model.DonationView, int, error) {
	m.calls++
	if m.err != nil {
		return nil, 0, m.err
	}
	out := []model.DonationView{}
	for i := offset; i < offset+limit && i < len(m.views); i++ {
		out = append(out, m.views[i])
	}
	return out, len(m.views), nil
}

func (m *MockDonationRepo) GetByID(ctx context.Context, id int) (*model.Donation, error) {
	m.calls++
	for _, v := range m.views {
		if v.ID == id {
			d := v.Donation
			return &d, nil
		}
	}
	return nil, appErrors.NewDonationNotFound(id)
}

func (m *MockDonationRepo) Create(ctx context.Context, d *model.Donation) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	d.ID = m.nextID
	m.nextID++
	m.views = append(m.views, model.DonationView{Donation: *d})
	return nil
}

func (m *MockDonationRepo) Update(ctx context.Context, d *model.Donation) (int64, error) {
	m.calls++
	for i, v := range m.views {
		if v.ID == d.ID {
			m.views[i].Donation = *d
			return 1, nil
		}
	}
	return 0, nil
}

func (m *MockDonationRepo) Delete(ctx context.Context, id int) (int64, error) {
	m.calls++
	for i, v := range m.views {
		if v.ID == id {
			m.views = append(m.views[:i], m.views[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// recordingQueue captures published payloads synchronously.
type recordingQueue struct {
	mu        sync.Mutex
	published []any
	err       error
}

func (q *recordingQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.published = append(q.published, payload)
	return nil
}

func (q *recordingQueue) Subscribe(topic string, handler func(payload any) error) error {
	return nil
}

func (q *recordingQueue) changes() []model.RecordChange {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := []model.RecordChange{}
	for _, p := range q.published {
		out = append(out, p.(model.RecordChange))
	}
	return out
}
