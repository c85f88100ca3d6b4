package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"foodtrack/internal/handler"
	"foodtrack/internal/mw"
	"foodtrack/internal/service"
)

type Deps struct {
	Catalog     *service.CatalogService
	Orders      *service.OrderService
	Collections *service.CollectionService
	Reports     *service.ReportService
	// DB is nil for in-memory storage.
	DB        handler.Pinger
	Logger    *slog.Logger
	StaticDir string
}

func NewRouter(d Deps) http.Handler {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/healthz", handler.HealthHandler(d.DB))

	r.Route("/api", func(r chi.Router) {
		r.Get("/restaurants", handler.ListRestaurantsHandler(d.Catalog))
		r.Get("/restaurants/{id}/menu", handler.GetMenuHandler(d.Catalog))

		r.Post("/orders", handler.PlaceOrderHandler(d.Orders))
		r.Get("/orders/{id}", handler.GetOrderHandler(d.Orders))
		r.Patch("/orders/{id}/update-status", handler.AdvanceStatusHandler(d.Orders))
	})

	r.Get("/wastes", handler.ListWasteTypesHandler(d.Collections))
	r.Post("/collections", handler.CreateCollectionHandler(d.Collections))
	r.Get("/collections", handler.ListCollectionsHandler(d.Collections))
	r.Patch("/collections/{id}/collect", handler.MarkCollectedHandler(d.Collections))
	r.Get("/reports/summary", handler.SummaryHandler(d.Reports))

	if d.StaticDir != "" {
		fs := staticHandler(d.StaticDir)
		r.Get("/*", fs.ServeHTTP)
		r.Head("/*", fs.ServeHTTP)
	}

	return r
}
