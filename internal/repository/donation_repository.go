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

// DonationRepositoryInterface defines methods used by the donation service
type DonationRepositoryInterface interface {
	List(ctx context.Context, where filter.Predicate) ([]model.DonationView, error)
	ListPage(ctx context.Context, offset, limit int) ([]model.DonationView, int, error)
	GetByID(ctx context.Context, id int) (*model.Donation, error)
	Create(ctx context.Context, d *model.Donation) error
	Update(ctx context.Context, d *model.Donation) (int64, error)
	Delete(ctx context.Context, id int) (int64, error)
}

// DonationRepository is the concrete implementation
type DonationRepository struct {
	DB DBExecutor
}

// donationViews selects donations joined to their campaign. The join is
// inner, so a donation whose campaign row is missing is never returned.
func donationViews(where filter.Predicate) query.Select {
	return query.Select{
		Table: "donations d",
		Columns: []string{
			"d.id", "d.campaign_id", "d.donor_name", "d.donor_weight", "d.donation_date",
			"d.first_time", "d.blood_group", "d.image_url", "c.name AS campaign_name",
		},
		Joins:   []query.Join{{Table: "campaigns c", On: "c.id = d.campaign_id"}},
		Where:   where,
		OrderBy: []string{"d.id ASC"},
	}
}

// List returns donations matching where, ordered by id.
func (r *DonationRepository) List(ctx context.Context, where filter.Predicate) (_ []model.DonationView, err error) {
	done := metrics.Track("donation_list")
	defer func() { done(err) }()

	q, args := donationViews(where).Build()
	donations := []model.DonationView{}
	if err = r.DB.SelectContext(ctx, &donations, q, args...); err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	return donations, nil
}

// ListPage returns one window of the unfiltered donation listing together
// with the total number of rows the listing has. The two reads are not
// isolated from concurrent writes.
func (r *DonationRepository) ListPage(ctx context.Context, offset, limit int) (_ []model.DonationView, _ int, err error) {
	done := metrics.Track("donation_list_page")
	defer func() { done(err) }()

	s := donationViews(filter.Predicate{})
	s.Limit, s.Offset = limit, offset

	q, args := s.Build()
	donations := []model.DonationView{}
	if err = r.DB.SelectContext(ctx, &donations, q, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list donation page: %w", err)
	}

	countQuery, countArgs := s.Count()
	var total int
	if err = r.DB.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to count donations: %w", err)
	}
	return donations, total, nil
}

// GetByID fetches a donation by ID
func (r *DonationRepository) GetByID(ctx context.Context, id int) (_ *model.Donation, err error) {
	done := metrics.Track("donation_get")
	defer func() { done(err) }()

	q := `
        SELECT id, campaign_id, donor_name, donor_weight, donation_date, first_time, blood_group, image_url
        FROM donations
        WHERE id = $1
    `
	var d model.Donation
	if err = r.DB.GetContext(ctx, &d, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewDonationNotFound(id)
		}
		return nil, fmt.Errorf("failed to get donation %d: %w", id, err)
	}
	return &d, nil
}

// Create inserts a new donation and sets its ID
func (r *DonationRepository) Create(ctx context.Context, d *model.Donation) (err error) {
	done := metrics.Track("donation_create")
	defer func() { done(err) }()

	q := `
        INSERT INTO donations
        (campaign_id, donor_name, donor_weight, donation_date, first_time, blood_group, image_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	err = r.DB.GetContext(ctx, &d.ID, q,
		d.CampaignID,
		d.DonorName,
		d.DonorWeight,
		d.DonationDate,
		d.FirstTime,
		d.BloodGroup,
		d.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("failed to create donation: %w", err)
	}
	return nil
}

// Update overwrites every column of the donation with d.ID
func (r *DonationRepository) Update(ctx context.Context, d *model.Donation) (n int64, err error) {
	done := metrics.Track("donation_update")
	defer func() { done(err) }()

	q := `
        UPDATE donations
        SET campaign_id=$1, donor_name=$2, donor_weight=$3, donation_date=$4,
            first_time=$5, blood_group=$6, image_url=$7
        WHERE id=$8
    `
	res, err := r.DB.ExecContext(ctx, q,
		d.CampaignID, d.DonorName, d.DonorWeight, d.DonationDate,
		d.FirstTime, d.BloodGroup, d.ImageURL, d.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update donation %d: %w", d.ID, err)
	}
	return rowsAffected(res)
}

func (r *DonationRepository) Delete(ctx context.Context, id int) (n int64, err error) {
	done := metrics.Track("donation_delete")
	defer func() { done(err) }()

	res, err := r.DB.ExecContext(ctx, `DELETE FROM donations WHERE id=$1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete donation %d: %w", id, err)
	}
	return rowsAffected(res)
}

var _ DonationRepositoryInterface = (*DonationRepository)(nil)
