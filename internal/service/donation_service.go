package service

import (
	"context"

	"github.com/rs/zerolog"

	appErrors "github.com/unclebandit/blooddrive-backend/internal/errors"
	"github.com/unclebandit/blooddrive-backend/internal/filter"
	"github.com/unclebandit/blooddrive-backend/internal/model"
	"github.com/unclebandit/blooddrive-backend/internal/pagination"
	"github.com/unclebandit/blooddrive-backend/internal/repository"
)

type DonationService struct {
	DonationRepo repository.DonationRepositoryInterface
	Changes      *ChangePublisher
	Log          zerolog.Logger
}

// DonationCards is one page of the unfiltered card view.
type DonationCards struct {
	Items      []model.DonationView
	Page       int
	TotalPages int
}

func (s *DonationService) ListDonations(ctx context.Context, params filter.Params) ([]model.DonationView, error) {
	return s.DonationRepo.List(ctx, filter.Donations(params))
}

// Cards returns the page named by rawPage. Anything that is not a positive
// integer is page 1; a page past the end is empty.
func (s *DonationService) Cards(ctx context.Context, rawPage string) (*DonationCards, error) {
	w := pagination.Resolve(rawPage, pagination.CardsPageSize)

	items, total, err := s.DonationRepo.ListPage(ctx, w.Offset, w.Limit)
	if err != nil {
		return nil, err
	}
	return &DonationCards{
		Items:      items,
		Page:       w.Page,
		TotalPages: pagination.TotalPages(total, w.Size),
	}, nil
}

func (s *DonationService) GetDonation(ctx context.Context, id int) (*model.Donation, error) {
	return s.DonationRepo.GetByID(ctx, id)
}

// CreateDonation stores d and sets d.ID. The campaign reference is not
// checked here; storage rejects unknown campaigns.
func (s *DonationService) CreateDonation(ctx context.Context, d *model.Donation) error {
	if missing := d.MissingFields(); len(missing) > 0 {
		return &appErrors.ValidationError{Fields: missing}
	}
	if err := s.DonationRepo.Create(ctx, d); err != nil {
		if appErrors.IsForeignKeyViolation(err) {
			s.Log.Warn().Int("campaign_id", d.CampaignID).Msg("donation references unknown campaign")
		}
		return err
	}

	s.Log.Info().Int("donation_id", d.ID).Int("campaign_id", d.CampaignID).Msg("donation created")
	s.Changes.Publish(model.ResourceDonation, model.ActionCreated, d.ID, d.CampaignID)
	return nil
}

func (s *DonationService) UpdateDonation(ctx context.Context, pathID int, d *model.Donation) error {
	if d.ID != pathID {
		return appErrors.ErrIDMismatch
	}
	if missing := d.MissingFields(); len(missing) > 0 {
		return &appErrors.ValidationError{Fields: missing}
	}

	n, err := s.DonationRepo.Update(ctx, d)
	if err != nil {
		return err
	}
	if n == 0 {
		return appErrors.NewDonationNotFound(pathID)
	}

	s.Changes.Publish(model.ResourceDonation, model.ActionUpdated, d.ID, d.CampaignID)
	return nil
}

func (s *DonationService) DeleteDonation(ctx context.Context, id int) error {
	n, err := s.DonationRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return appErrors.NewDonationNotFound(id)
	}

	s.Log.Info().Int("donation_id", id).Msg("donation deleted")
	s.Changes.Publish(model.ResourceDonation, model.ActionDeleted, id, 0)
	return nil
}
