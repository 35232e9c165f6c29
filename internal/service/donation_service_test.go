package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/blooddrive-backend/internal/errors"
	"github.com/unclebandit/blooddrive-backend/internal/filter"
	"github.com/unclebandit/blooddrive-backend/internal/model"
	"github.com/unclebandit/blooddrive-backend/internal/service"
)

func newDonationService(repo *MockDonationRepo, q *recordingQueue) *service.DonationService {
	return &service.DonationService{
		DonationRepo: repo,
		Changes:      service.NewChangePublisher(q, "", zerolog.Nop()),
		Log:          zerolog.Nop(),
	}
}

func sampleDonation() model.Donation {
	return model.Donation{
		CampaignID:   1,
		DonorName:    "Jane",
		DonorWeight:  decimal.NewNullDecimal(decimal.RequireFromString("72.5")),
		DonationDate: model.NewDate(2024, time.March, 2),
		FirstTime:    true,
		BloodGroup:   "O+",
		ImageURL:     "https://img/1.png",
	}
}

func TestCardsPagination(t *testing.T) {
	svc := newDonationService(NewMockDonationRepo(23), &recordingQueue{})
	ctx := context.Background()

	tests := []struct {
		raw       string
		wantPage  int
		wantItems int
		firstID   int
	}{
		{"", 1, 10, 1},
		{"1", 1, 10, 1},
		{"2", 2, 10, 11},
		{"3", 3, 3, 21},
		{"4", 4, 0, 0},
		{"0", 1, 10, 1},
		{"-2", 1, 10, 1},
		{"abc", 1, 10, 1},
	}
	for _, tt := range tests {
		t.Run("page="+tt.raw, func(t *testing.T) {
			cards, err := svc.Cards(ctx, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, cards.Page)
			assert.Equal(t, 3, cards.TotalPages)
			assert.Len(t, cards.Items, tt.wantItems)
			if tt.wantItems > 0 {
				assert.Equal(t, tt.firstID, cards.Items[0].ID)
			}
		})
	}
}

func TestCardsEmpty(t *testing.T) {
	svc := newDonationService(NewMockDonationRepo(0), &recordingQueue{})

	cards, err := svc.Cards(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 0, cards.TotalPages)
	assert.Empty(t, cards.Items)
}

func TestCardsStorageFailure(t *testing.T) {
	repo := NewMockDonationRepo(3)
	repo.err = errors.New("timeout")
	svc := newDonationService(repo, &recordingQueue{})

	_, err := svc.Cards(context.Background(), "1")
	assert.Error(t, err)
}

func TestListDonationsBuildsPredicate(t *testing.T) {
	repo := NewMockDonationRepo(2)
	svc := newDonationService(repo, &recordingQueue{})

	got, err := svc.ListDonations(context.Background(), filter.Params{
		"donation_date_min": "2024-01-01",
		"donation_date_max": "2024-12-31",
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	conds := repo.lastWhere.Conditions()
	require.Len(t, conds, 1)
	assert.Equal(t, filter.OpBetween, conds[0].Operator)
	assert.Equal(t, []any{"2024-01-01", "2024-12-31"}, conds[0].Values)
}

func TestCreateDonationPublishesCampaign(t *testing.T) {
	repo := NewMockDonationRepo(0)
	q := &recordingQueue{}
	svc := newDonationService(repo, q)

	d := sampleDonation()
	require.NoError(t, svc.CreateDonation(context.Background(), &d))
	assert.Equal(t, 1, d.ID)

	changes := q.changes()
	require.Len(t, changes, 1)
	assert.Equal(t, model.ResourceDonation, changes[0].Resource)
	assert.Equal(t, 1, changes[0].CampaignID)
}

func TestCreateDonationUnknownCampaignIsStorageFailure(t *testing.T) {
	repo := NewMockDonationRepo(0)
	repo.err = &pq.Error{Code: "23503"}
	q := &recordingQueue{}
	svc := newDonationService(repo, q)

	d := sampleDonation()
	d.CampaignID = 424242
	err := svc.CreateDonation(context.Background(), &d)
	require.Error(t, err)
	assert.False(t, appErrors.IsNotFound(err))
	assert.False(t, appErrors.IsValidation(err))
	assert.Empty(t, q.changes())
}

func TestCreateDonationMissingFields(t *testing.T) {
	repo := NewMockDonationRepo(0)
	svc := newDonationService(repo, &recordingQueue{})

	err := svc.CreateDonation(context.Background(), &model.Donation{DonorName: "Jane"})
	assert.True(t, appErrors.IsValidation(err))
	assert.Zero(t, repo.calls)
}

func TestUpdateDonationIDMismatch(t *testing.T) {
	repo := NewMockDonationRepo(3)
	svc := newDonationService(repo, &recordingQueue{})

	d := sampleDonation()
	d.ID = 2
	err := svc.UpdateDonation(context.Background(), 1, &d)
	assert.ErrorIs(t, err, appErrors.ErrIDMismatch)
	assert.Zero(t, repo.calls)
}

func TestUpdateAndDeleteDonation(t *testing.T) {
	repo := NewMockDonationRepo(3)
	q := &recordingQueue{}
	svc := newDonationService(repo, q)
	ctx := context.Background()

	d := sampleDonation()
	d.ID = 2
	require.NoError(t, svc.UpdateDonation(ctx, 2, &d))

	got, err := svc.GetDonation(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.DonorName)

	require.NoError(t, svc.DeleteDonation(ctx, 2))
	assert.True(t, appErrors.IsNotFound(svc.DeleteDonation(ctx, 2)))

	_, err = svc.GetDonation(ctx, 2)
	assert.True(t, appErrors.IsNotFound(err))

	missing := sampleDonation()
	missing.ID = 999999
	assert.True(t, appErrors.IsNotFound(svc.UpdateDonation(ctx, 999999, &missing)))

	assert.Len(t, q.changes(), 2)
}
