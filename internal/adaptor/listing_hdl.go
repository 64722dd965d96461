package adaptor

import (
	"net/http"

	"stay-booking/internal/dto/request"
	"stay-booking/internal/usecase"
	"stay-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ListingHandler struct {
	service usecase.ListingService
	log     *zap.Logger
}

func NewListingHandler(service usecase.ListingService, log *zap.Logger) *ListingHandler {
	return &ListingHandler{
		service: service,
		log:     log.With(zap.String("handler", "listing")),
	}
}

// FetchListings handles POST /api/listings
func (h *ListingHandler) FetchListings(w http.ResponseWriter, r *http.Request) {
	var req request.FetchListingsRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	listings, err := h.service.FetchListings(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "fetch listings", http.StatusNotFound)
		return
	}

	utils.ResponseSuccess(w, "Listings fetched successfully", listings)
}

// GetListingDetail handles GET /api/listings/{id}
func (h *ListingHandler) GetListingDetail(w http.ResponseWriter, r *http.Request) {
	listing, err := h.service.GetListingDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get listing detail", http.StatusNotFound)
		return
	}

	utils.ResponseSuccess(w, "Listing details retrieved successfully", listing)
}

// CheckAvailability handles GET /api/listings/{id}/availability?check_in=&check_out=
func (h *ListingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := request.AvailabilityRequest{
		CheckIn:  q.Get("check_in"),
		CheckOut: q.Get("check_out"),
	}

	availability, err := h.service.CheckAvailability(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "check availability", http.StatusNotFound)
		return
	}

	utils.ResponseSuccess(w, "Availability checked successfully", availability)
}
