// internal/controller/campaign_controller.go
package controller

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/unclebandit/blooddrive-backend/internal/filter"
	"github.com/unclebandit/blooddrive-backend/internal/model"
	"github.com/unclebandit/blooddrive-backend/internal/service"
)

type CampaignController struct {
	CampaignService *service.CampaignService
	Log             zerolog.Logger
}

func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := c.CampaignService.ListCampaigns(r.Context(), filter.ParamsFromQuery(r.URL.Query()))
	if err != nil {
		respondError(w, r, c.Log, err)
		return
	}
	respond(w, r, http.StatusOK, campaigns, "campaigns retrieved")
}

// DonationGraph serves the donations-per-campaign chart.
func (c *CampaignController) DonationGraph(w http.ResponseWriter, r *http.Request) {
	totals, err := c.CampaignService.DonationTotals(r.Context())
	if err != nil {
		respondError(w, r, c.Log, err)
		return
	}
	respond(w, r, http.StatusOK, totals, "donations per campaign retrieved")
}

func (c *CampaignController) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, c.Log, err)
		return
	}

	campaign, err := c.CampaignService.GetCampaign(r.Context(), id)
	if err != nil {
		respondError(w, r, c.Log, err)
		return
	}
	respond(w, r, http.StatusOK, campaign, "campaign retrieved")
}

func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var body model.Campaign
	if err := decodeBody(r, &body); err != nil {
		badRequest(w, r, "invalid body")
		return
	}
	body.ID = 0

	if err := c.CampaignService.CreateCampaign(r.Context(), &body); err != nil {
		respondError(w, r, c.Log, err)
		return
	}
	respond(w, r, http.StatusCreated, body, "campaign created")
}

func (c *CampaignController) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, c.Log, err)
		return
	}

	var body model.Campaign
	if err := decodeBody(r, &body); err != nil {
		badRequest(w, r, "invalid body")
		return
	}

	if err := c.CampaignService.UpdateCampaign(r.Context(), id, &body); err != nil {
		respondError(w, r, c.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *CampaignController) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, c.Log, err)
		return
	}

	if err := c.CampaignService.DeleteCampaign(r.Context(), id); err != nil {
		respondError(w, r, c.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
