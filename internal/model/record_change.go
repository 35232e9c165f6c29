// internal/model/record_change.go
package model

import "time"

const (
	ResourceCampaign = "campaign"
	ResourceDonation = "donation"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// RecordChange is published after a campaign or donation has been written.
type RecordChange struct {
	Resource   string    `json:"resource"`
	Action     string    `json:"action"`
	ID         int       `json:"id"`
	CampaignID int       `json:"campaign_id,omitempty"`
	At         time.Time `json:"at"`
}
