package wire

import (
	"stay-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// Listing reads are public.
func wireListing(r chi.Router, listingHandler *adaptor.ListingHandler) {
	r.Route("/api/listings", func(r chi.Router) {
		r.Post("/", listingHandler.FetchListings)
		r.Get("/{id}", listingHandler.GetListingDetail)
		r.Get("/{id}/availability", listingHandler.CheckAvailability)
	})
}
