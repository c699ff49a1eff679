// internal/wire/wire.go
package wire

import (
	"net/http"

	"gym-booking/internal/adaptor"
	"gym-booking/internal/data/repository"
	"gym-booking/internal/usecase"
	"gym-booking/pkg/cache"
	"gym-booking/pkg/gateway"
	"gym-booking/pkg/middleware"
	"gym-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers, and routing
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	gw gateway.PaymentGateway,
	availability *cache.AvailabilityCache,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, gw, availability, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the chi router
func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, logger)
	wireGym(r, handler.Gym, config, logger)
	wireClass(r, handler.Class, config, logger)
	wireBooking(r, handler.Booking, config, logger)
	wireSubscription(r, handler.Subscription, config, logger)
	wirePayment(r, handler.Payment, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
