package wire

import (
	"net/http"

	"stay-booking/internal/adaptor"
	"stay-booking/internal/data/repository"
	"stay-booking/internal/usecase"
	"stay-booking/pkg/metrics"
	"stay-booking/pkg/middleware"
	"stay-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the wired application.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and the router. gatherer backs /metrics and
// is normally the registry m was registered on.
func Wiring(
	repo *repository.Repository,
	tokens *utils.TokenManager,
	config *utils.Config,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, tokens, config, m, logger)
	handler := adaptor.NewHandler(service, config.Cookie, logger)

	auth := middleware.Authenticate(tokens, config.Cookie, logger)
	router := setupRouter(handler, auth, config, m, gatherer, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	auth func(http.Handler) http.Handler,
	config *utils.Config,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.AllowedOrigins))
	r.Use(middleware.Metrics(m))

	wireAuth(r, handler.Auth, handler.User, auth)
	wireListing(r, handler.Listing)
	wireBooking(r, handler.Booking, auth)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return r
}
