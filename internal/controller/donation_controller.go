package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/unclebandit/blooddrive-backend/internal/filter"
	"github.com/unclebandit/blooddrive-backend/internal/model"
	"github.com/unclebandit/blooddrive-backend/internal/service"
)

type DonationController struct {
	DonationService *service.DonationService
	Log             zerolog.Logger
}

func (c *DonationController) ListDonations(w http.ResponseWriter, r *http.Request) {
	donations, err := c.DonationService.ListDonations(r.Context(), filter.ParamsFromQuery(r.URL.Query()))
	if err != nil {
		respondError(w, r, c.Log, err)
		return
	}
	respond(w, r, http.StatusOK, donations, "donations retrieved")
}

// DonationCards serves /cards and /cards/{page}; ?page= is honoured when
// the path carries no page.
func (c *DonationController) DonationCards(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "page")
	if raw == "" {
		raw = r.URL.Query().Get("page")
	}

	cards, err := c.DonationService.Cards(r.Context(), raw)
	if err != nil {
		respondError(w, r, c.Log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, PagedEnvelope{
		OK:         true,
		Data:       cards.Items,
		Pagination: PageInfo{Page: cards.Page, TotalPages: cards.TotalPages},
		Message:    "donation cards retrieved",
	})
}

func (c *DonationController) GetDonation(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, c.Log, err)
		return
	}

	donation, err := c.DonationService.GetDonation(r.Context(), id)
	if err != nil {
		respondError(w, r, c.Log, err)
		return
	}
	respond(w, r, http.StatusOK, donation, "donation retrieved")
}

func (c *DonationController) CreateDonation(w http.ResponseWriter, r *http.Request) {
	var body model.Donation
	if err := decodeBody(r, &body); err != nil {
		badRequest(w, r, "invalid body")
		return
	}
	body.ID = 0

	if err := c.DonationService.CreateDonation(r.Context(), &body); err != nil {
		respondError(w, r, c.Log, err)
		return
	}
	respond(w, r, http.StatusCreated, body, "donation created")
}

func (c *DonationController) UpdateDonation(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, c.Log, err)
		return
	}

	var body model.Donation
	if err := decodeBody(r, &body); err != nil {
		badRequest(w, r, "invalid body")
		return
	}

	if err := c.DonationService.UpdateDonation(r.Context(), id, &body); err != nil {
		respondError(w, r, c.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *DonationController) DeleteDonation(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, c.Log, err)
		return
	}

	if err := c.DonationService.DeleteDonation(r.Context(), id); err != nil {
		respondError(w, r, c.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
