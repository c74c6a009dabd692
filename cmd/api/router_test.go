package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/meta"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type stubSettings struct{}

func (stubSettings) Get(context.Context) (*entity.Settings, error) {
	return &entity.Settings{MetaLeadsWebhook: entity.WebhookSettings{VerifyToken: "tok"}}, nil
}

type stubLeads struct{}

func (stubLeads) Create(context.Context, *entity.Lead) error { return nil }
func (stubLeads) FindByID(context.Context, string) (*entity.Lead, error) {
	return nil, entity.ErrLeadNotFound
}

func testRouter() http.Handler {
	settings := stubSettings{}
	leads := stubLeads{}
	dispatch := usecase.NewDispatchConversionUseCase(settings, nil)

	return newRouter(routes{
		metaWebhook:    handlers.NewMetaWebhookHandler(settings, usecase.NewIngestMetaLeadUseCase(meta.NewGraphClient("http://unused", nil), leads, nil), 0, nil),
		conversion:     handlers.NewConversionHandler(dispatch, nil),
		lead:           handlers.NewLeadHandler(usecase.NewCaptureLeadUseCase(leads, nil, nil), nil),
		crm:            handlers.NewCRMHandler(usecase.NewStageEventUseCase(leads, settings, dispatch), nil),
		health:         handlers.NewHealthHandler(nil, nil),
		allowedOrigins: []string{"*"},
	})
}

func TestRouter(t *testing.T) {
	r := testRouter()

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		wantCode int
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"handshake", http.MethodGet, "/webhooks/meta/leads?hub.mode=subscribe&hub.verify_token=tok&hub.challenge=42", "", http.StatusOK},
		{"provedor desconhecido", http.MethodPost, "/conversions/snapchat", "{}", http.StatusNotFound},
		{"corpo malformado", http.MethodPost, "/conversions/meta", "{bad", http.StatusInternalServerError},
		{"etapa sem evento", http.MethodPost, "/crm/leads/abc/stage", `{"status":"lost"}`, http.StatusOK},
		{"rota inexistente", http.MethodGet, "/checkout", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
