package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	appErrors "github.com/unclebandit/blooddrive-backend/internal/errors"
	"github.com/unclebandit/blooddrive-backend/internal/filter"
	"github.com/unclebandit/blooddrive-backend/internal/metrics"
	"github.com/unclebandit/blooddrive-backend/internal/model"
	"github.com/unclebandit/blooddrive-backend/internal/query"
)

type CampaignRepositoryInterface interface {
	List(ctx context.Context, where filter.Predicate) ([]model.Campaign, error)
	GetByID(ctx context.Context, id int) (*model.Campaign, error)
	Create(ctx context.Context, c *model.Campaign) error
	Update(ctx context.Context, c *model.Campaign) (int64, error)
	Delete(ctx context.Context, id int) (int64, error)

	// Chart
	DonationTotals(ctx context.Context) ([]model.CampaignDonationTotal, error)
}

type CampaignRepository struct {
	DB DBExecutor
}

var campaignColumns = []string{
	"c.id", "c.name", "c.target_volume", "c.start_date", "c.end_date", "c.urgent",
}

// ====================== Campaign CRUD ======================

func (r *CampaignRepository) Create(ctx context.Context, c *model.Campaign) (err error) {
	done := metrics.Track("campaign_create")
	defer func() { done(err) }()
	q := `
        INSERT INTO campaigns (name, target_volume, start_date, end_date, urgent)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	if err = r.DB.GetContext(ctx, &c.ID, q, c.Name, c.TargetVolume, c.StartDate, c.EndDate, c.Urgent); err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	return nil
}

func (r *CampaignRepository) Update(ctx context.Context, c *model.Campaign) (n int64, err error) {
	done := metrics.Track("campaign_update")
	defer func() { done(err) }()
	q := `
        UPDATE campaigns
        SET name=$1, target_volume=$2, start_date=$3, end_date=$4, urgent=$5
        WHERE id=$6
    `
	res, err := r.DB.ExecContext(ctx, q, c.Name, c.TargetVolume, c.StartDate, c.EndDate, c.Urgent, c.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to update campaign %d: %w", c.ID, err)
	}
	return rowsAffected(res)
}

func (r *CampaignRepository) Delete(ctx context.Context, id int) (n int64, err error) {
	done := metrics.Track("campaign_delete")
	defer func() { done(err) }()
	res, err := r.DB.ExecContext(ctx, `DELETE FROM campaigns WHERE id=$1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete campaign %d: %w", id, err)
	}
	return rowsAffected(res)
}

func (r *CampaignRepository) GetByID(ctx context.Context, id int) (_ *model.Campaign, err error) {
	done := metrics.Track("campaign_get")
	defer func() { done(err) }()
	q := `
        SELECT id, name, target_volume, start_date, end_date, urgent
        FROM campaigns WHERE id=$1
    `
	var c model.Campaign
	if err = r.DB.GetContext(ctx, &c, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewCampaignNotFound(id)
		}
		return nil, fmt.Errorf("failed to get campaign %d: %w", id, err)
	}
	return &c, nil
}

// List returns campaigns matching where, ordered by id.
func (r *CampaignRepository) List(ctx context.Context, where filter.Predicate) (_ []model.Campaign, err error) {
	done := metrics.Track("campaign_list")
	defer func() { done(err) }()
	q, args := query.Select{
		Table:   "campaigns c",
		Columns: campaignColumns,
		Where:   where,
		OrderBy: []string{"c.id ASC"},
	}.Build()

	campaigns := []model.Campaign{}
	if err = r.DB.SelectContext(ctx, &campaigns, q, args...); err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

// ====================== Chart ======================

// DonationTotals counts donations per campaign. Campaigns without
// donations do not appear.
func (r *CampaignRepository) DonationTotals(ctx context.Context) (_ []model.CampaignDonationTotal, err error) {
	done := metrics.Track("campaign_donation_totals")
	defer func() { done(err) }()
	q, args := query.Select{
		Table:   "donations d",
		Columns: []string{"c.id AS campaign_id", "c.name", "COUNT(d.id) AS total"},
		Joins:   []query.Join{{Table: "campaigns c", On: "c.id = d.campaign_id"}},
		GroupBy: []string{"c.id", "c.name"},
		OrderBy: []string{"c.id ASC"},
	}.Build()

	totals := []model.CampaignDonationTotal{}
	if err = r.DB.SelectContext(ctx, &totals, q, args...); err != nil {
		return nil, fmt.Errorf("failed to count donations per campaign: %w", err)
	}
	return totals, nil
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
