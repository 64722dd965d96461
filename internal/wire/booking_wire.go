package wire

import (
	"net/http"

	"stay-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	auth func(http.Handler) http.Handler,
) {
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(auth)

		r.Post("/", bookingHandler.CreateBooking)
		r.Post("/mine", bookingHandler.GetMyBookings)
		r.Get("/{id}", bookingHandler.GetBooking)
	})
}
