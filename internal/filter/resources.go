package filter

// Campaign listing parameters.
const (
	CampaignName      = "name"
	CampaignTargetMin = "target_min"
	CampaignTargetMax = "target_max"
	CampaignStartDate = "start_date"
	CampaignEndDate   = "end_date"
	CampaignUrgent    = "urgent"
)

// Donation listing parameters.
const (
	DonationCampaignID = "campaign_id"
	DonationDonorName  = "donor_name"
	DonationWeightMin  = "weight_min"
	DonationWeightMax  = "weight_max"
	DonationDateMin    = "donation_date_min"
	DonationDateMax    = "donation_date_max"
	DonationBloodGroup = "blood_group"
)

// Columns are qualified with the aliases the repositories use: c for
// campaigns, d for donations.
var campaignRules = []Rule{
	Contains(CampaignName, "c.name"),
	Range(CampaignTargetMin, CampaignTargetMax, "c.target_volume"),
	AtLeast(CampaignStartDate, "c.start_date"),
	AtMost(CampaignEndDate, "c.end_date"),
	Bool(CampaignUrgent, "c.urgent"),
}

var donationRules = []Rule{
	Exact(DonationCampaignID, "d.campaign_id"),
	Contains(DonationDonorName, "d.donor_name"),
	Range(DonationWeightMin, DonationWeightMax, "d.donor_weight"),
	Range(DonationDateMin, DonationDateMax, "d.donation_date"),
	Contains(DonationBloodGroup, "d.blood_group"),
}

// Campaigns builds the predicate for a campaign listing.
func Campaigns(p Params) Predicate {
	return Build(p, campaignRules...)
}

// Donations builds the predicate for a donation listing.
func Donations(p Params) Predicate {
	return Build(p, donationRules...)
}
