package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sunline-energie/offer-api/internal/auth"
	"github.com/sunline-energie/offer-api/internal/config"
	"github.com/sunline-energie/offer-api/internal/database"
	"github.com/sunline-energie/offer-api/internal/http/handler"
	"github.com/sunline-energie/offer-api/internal/http/middleware"
)

type Router struct {
	cfg             *config.Config
	logger          *zap.Logger
	db              *gorm.DB
	authMiddleware  *auth.Middleware
	rateLimiter     *middleware.RateLimiter
	authHandler     *handler.AuthHandler
	productHandler  *handler.ProductHandler
	companyHandler  *handler.CompanyHandler
	documentHandler *handler.DocumentHandler
	settingHandler  *handler.SettingHandler
	offerHandler    *handler.OfferHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	companyHandler *handler.CompanyHandler,
	documentHandler *handler.DocumentHandler,
	settingHandler *handler.SettingHandler,
	offerHandler *handler.OfferHandler,
) *Router {
	return &Router{
		cfg:             cfg,
		logger:          logger,
		db:              db,
		authMiddleware:  authMiddleware,
		rateLimiter:     rateLimiter,
		authHandler:     authHandler,
		productHandler:  productHandler,
		companyHandler:  companyHandler,
		documentHandler: documentHandler,
		settingHandler:  settingHandler,
		offerHandler:    offerHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with pool stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
			},
		})
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Token exchange is the only public endpoint
		r.Post("/auth/token", rt.authHandler.Token)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			r.Get("/auth/me", rt.authHandler.Me)

			// Component catalog
			r.Route("/products", func(r chi.Router) {
				r.Get("/", rt.productHandler.List)
				r.Post("/", rt.productHandler.Create)
				r.Get("/categories", rt.productHandler.ListCategories)
				r.Get("/{id}", rt.productHandler.GetByID)
				r.Put("/{id}", rt.productHandler.Update)
				r.Delete("/{id}", rt.productHandler.Delete)
			})

			// Installer firms
			r.Route("/companies", func(r chi.Router) {
				r.Get("/", rt.companyHandler.List)
				r.Post("/", rt.companyHandler.Create)
				r.Get("/{id}", rt.companyHandler.GetByID)
				r.Put("/{id}", rt.companyHandler.Update)
				r.Delete("/{id}", rt.companyHandler.Delete)
				r.Put("/{id}/active", rt.companyHandler.SetActive)
				r.Get("/{id}/documents", rt.documentHandler.ListForCompany)
			})

			// Appendix documents
			r.Route("/documents", func(r chi.Router) {
				r.Post("/", rt.documentHandler.Register)
				r.Delete("/{id}", rt.documentHandler.Delete)
			})

			// Admin settings
			r.Route("/settings", func(r chi.Router) {
				r.Get("/", rt.settingHandler.ListKeys)
				r.Get("/{key}", rt.settingHandler.Get)
				r.Put("/{key}", rt.settingHandler.Put)
				r.Delete("/{key}", rt.settingHandler.Delete)
			})

			// Offer generation and history
			r.Route("/offers", func(r chi.Router) {
				r.Post("/generate", rt.offerHandler.Generate)
				r.Post("/generate-record", rt.offerHandler.GenerateJSON)
				r.Get("/", rt.offerHandler.List)
				r.Get("/{id}", rt.offerHandler.GetByID)
				r.Get("/{id}/document", rt.offerHandler.Download)
				r.Delete("/{id}", rt.offerHandler.Delete)
			})
		})
	})

	return r
}
