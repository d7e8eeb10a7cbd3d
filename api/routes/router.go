package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/barcodegenpro/barcodegen-backend/api/controllers"
	"github.com/barcodegenpro/barcodegen-backend/api/middleware"
	"github.com/barcodegenpro/barcodegen-backend/internal/catalog"
	"github.com/barcodegenpro/barcodegen-backend/internal/generation"
	"github.com/barcodegenpro/barcodegen-backend/internal/orders"
	"github.com/barcodegenpro/barcodegen-backend/internal/pricing"
	"github.com/barcodegenpro/barcodegen-backend/pkg/config"
	"github.com/barcodegenpro/barcodegen-backend/pkg/db"
	"github.com/barcodegenpro/barcodegen-backend/pkg/logger"
	"github.com/barcodegenpro/barcodegen-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	catalogService catalog.Service,
	pricingService pricing.Service,
	ordersService orders.Service,
	generationService generation.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Get("/", controllers.Root())

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		// The redis pinger is nil when the quote cache is disabled; a typed
		// nil *redis.Client must not reach the interface parameter.
		if redisClient != nil {
			r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
		} else {
			r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, nil))
		}
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/barcode-types", controllers.BarcodeTypes(catalogService, logg))
		r.Post("/calculate-price", controllers.CalculatePrice(pricingService, logg))
		r.Post("/create-order", controllers.CreateOrder(ordersService, logg))
		r.Get("/order/{orderId}", controllers.OrderDetail(ordersService, logg))
		r.Get("/orders", controllers.OrdersList(ordersService, logg))
		r.Post("/process-order/{orderId}", controllers.ProcessOrder(generationService, logg))
	})

	return r
}
