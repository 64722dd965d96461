package wire

import (
	"net/http"

	"stay-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	userHandler *adaptor.UserHandler,
	auth func(http.Handler) http.Handler,
) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/token", authHandler.Login)
		r.Post("/token/refresh", authHandler.Refresh)
		r.Post("/token/verify", authHandler.Verify)
		r.Post("/logout", authHandler.Logout)

		r.With(auth).Get("/me", userHandler.GetProfile)
	})
}
