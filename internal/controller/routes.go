package controller

import "github.com/go-chi/chi/v5"

// Mount registers the REST API on r.
func Mount(r chi.Router, campaigns *CampaignController, donations *DonationController) {
	r.Route("/api/campaigns", func(r chi.Router) {
		r.Get("/", campaigns.ListCampaigns)
		r.Post("/", campaigns.CreateCampaign)
		r.Get("/graph", campaigns.DonationGraph)
		r.Get("/{id}", campaigns.GetCampaign)
		r.Put("/{id}", campaigns.UpdateCampaign)
		r.Delete("/{id}", campaigns.DeleteCampaign)
	})

	r.Route("/api/donations", func(r chi.Router) {
		r.Get("/", donations.ListDonations)
		r.Post("/", donations.CreateDonation)
		r.Get("/cards", donations.DonationCards)
		r.Get("/cards/{page}", donations.DonationCards)
		r.Get("/{id}", donations.GetDonation)
		r.Put("/{id}", donations.UpdateDonation)
		r.Delete("/{id}", donations.DeleteDonation)
	})
}
