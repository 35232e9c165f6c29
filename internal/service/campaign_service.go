// internal/service/campaign_service.go
package service

import (
	"context"

	"github.com/rs/zerolog"

	appErrors "github.com/unclebandit/blooddrive-backend/internal/errors"
	"github.com/unclebandit/blooddrive-backend/internal/filter"
	"github.com/unclebandit/blooddrive-backend/internal/model"
	"github.com/unclebandit/blooddrive-backend/internal/repository"
)

type CampaignService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	Changes      *ChangePublisher
	Log          zerolog.Logger
}

// ListCampaigns returns every campaign matching the recognised filter
// keys in params. Unknown keys are ignored.
func (s *CampaignService) ListCampaigns(ctx context.Context, params filter.Params) ([]model.Campaign, error) {
	return s.CampaignRepo.List(ctx, filter.Campaigns(params))
}

func (s *CampaignService) GetCampaign(ctx context.Context, id int) (*model.Campaign, error) {
	return s.CampaignRepo.GetByID(ctx, id)
}

// CreateCampaign stores c and sets c.ID. Any identifier in c is ignored.
func (s *CampaignService) CreateCampaign(ctx context.Context, c *model.Campaign) error {
	if missing := c.MissingFields(); len(missing) > 0 {
		return &appErrors.ValidationError{Fields: missing}
	}
	if err := s.CampaignRepo.Create(ctx, c); err != nil {
		return err
	}

	s.Log.Info().Int("campaign_id", c.ID).Str("name", c.Name).Msg("campaign created")
	s.Changes.Publish(model.ResourceCampaign, model.ActionCreated, c.ID, c.ID)
	return nil
}

// UpdateCampaign overwrites the campaign at pathID with c. The body must
// carry the same identifier as the path; that is checked before storage
// is touched.
func (s *CampaignService) UpdateCampaign(ctx context.Context, pathID int, c *model.Campaign) error {
	if c.ID != pathID {
		return appErrors.ErrIDMismatch
	}
	if missing := c.MissingFields(); len(missing) > 0 {
		return &appErrors.ValidationError{Fields: missing}
	}

	n, err := s.CampaignRepo.Update(ctx, c)
	if err != nil {
		return err
	}
	if n == 0 {
		return appErrors.NewCampaignNotFound(pathID)
	}

	s.Changes.Publish(model.ResourceCampaign, model.ActionUpdated, c.ID, c.ID)
	return nil
}

// DeleteCampaign removes a campaign. Campaigns still referenced by
// donations are rejected by storage.
func (s *CampaignService) DeleteCampaign(ctx context.Context, id int) error {
	n, err := s.CampaignRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return appErrors.NewCampaignNotFound(id)
	}

	s.Log.Info().Int("campaign_id", id).Msg("campaign deleted")
	s.Changes.Publish(model.ResourceCampaign, model.ActionDeleted, id, id)
	return nil
}

// DonationTotals feeds the campaign chart.
func (s *CampaignService) DonationTotals(ctx context.Context) ([]model.CampaignDonationTotal, error) {
	return s.CampaignRepo.DonationTotals(ctx)
}
