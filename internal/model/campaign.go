// internal/model/campaign.go
package model

import "github.com/shopspring/decimal"

type Campaign struct {
	ID           int                 `db:"id" json:"id"`
	Name         string              `db:"name" json:"name"`
	TargetVolume decimal.NullDecimal `db:"target_volume" json:"target_volume"`
	StartDate    Date                `db:"start_date" json:"start_date"`
	EndDate      Date                `db:"end_date" json:"end_date"`
	Urgent       bool                `db:"urgent" json:"urgent"`
}

// MissingFields lists the required fields that were left empty. A zero
// target_volume is present; only an absent or null one is missing.
func (c *Campaign) MissingFields() []string {
	var missing []string
	if c.Name == "" {
		missing = append(missing, "name")
	}
	if !c.TargetVolume.Valid {
		missing = append(missing, "target_volume")
	}
	if c.StartDate.IsZero() {
		missing = append(missing, "start_date")
	}
	if c.EndDate.IsZero() {
		missing = append(missing, "end_date")
	}
	return missing
}

// CampaignDonationTotal is one row of the donations-per-campaign chart.
type CampaignDonationTotal struct {
	CampaignID int    `db:"campaign_id" json:"campaign_id"`
	Name       string `db:"name" json:"name"`
	Total      int    `db:"total" json:"total"`
}
