package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
)

type routes struct {
	metaWebhook    *handlers.MetaWebhookHandler
	conversion     *handlers.ConversionHandler
	lead           *handlers.LeadHandler
	crm            *handlers.CRMHandler
	health         *handlers.HealthHandler
	allowedOrigins []string
	log            *zap.SugaredLogger
}

func newRouter(rt routes) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(rt.log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", rt.health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/webhooks/meta/leads", rt.metaWebhook.Verify)
	r.Post("/webhooks/meta/leads", rt.metaWebhook.Receive)

	r.Post("/conversions/{provider}", rt.conversion.Handle)
	r.Post("/leads/capture", rt.lead.Capture)
	r.Post("/crm/leads/{id}/stage", rt.crm.StageChanged)

	return r
}
