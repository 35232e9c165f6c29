// internal/model/donation.go
package model

import "github.com/shopspring/decimal"

type Donation struct {
	ID           int                 `db:"id" json:"id"`
	CampaignID   int                 `db:"campaign_id" json:"campaign_id"`
	DonorName    string              `db:"donor_name" json:"donor_name"`
	DonorWeight  decimal.NullDecimal `db:"donor_weight" json:"donor_weight"`
	DonationDate Date                `db:"donation_date" json:"donation_date"`
	FirstTime    bool                `db:"first_time" json:"first_time"`
	BloodGroup   string              `db:"blood_group" json:"blood_group"`
	ImageURL     string              `db:"image_url" json:"image_url"`
}

// MissingFields lists the required fields that were left empty.
func (d *Donation) MissingFields() []string {
	var missing []string
	if d.CampaignID == 0 {
		missing = append(missing, "campaign_id")
	}
	if d.DonorName == "" {
		missing = append(missing, "donor_name")
	}
	if !d.DonorWeight.Valid {
		missing = append(missing, "donor_weight")
	}
	if d.DonationDate.IsZero() {
		missing = append(missing, "donation_date")
	}
	if d.BloodGroup == "" {
		missing = append(missing, "blood_group")
	}
	if d.ImageURL == "" {
		missing = append(missing, "image_url")
	}
	return missing
}

// DonationView is a donation joined to the name of its campaign.
type DonationView struct {
	Donation
	CampaignName string `db:"campaign_name" json:"campaign_name"`
}
