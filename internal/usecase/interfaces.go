package usecase

import (
	"context"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/meta"
)

// ConversionProvider é implementado por cada API de conversão (Meta, TikTok).
// Settings chega sempre por parâmetro; o provider nunca busca configuração sozinho.
type ConversionProvider interface {
	Name() string
	IsEnabled(settings entity.Settings) bool
	BuildEvent(input entity.ConversionInput) entity.ConversionEvent
	Send(ctx context.Context, ev entity.ConversionEvent, settings entity.Settings) (*entity.DispatchResult, error)
}

// ConversionQueue recebe jobs fire-and-forget. Enqueue não pode bloquear o fluxo principal.
type ConversionQueue interface {
	Enqueue(ctx context.Context, job entity.ConversionJob) error
}

type LeadFetcher interface {
	FetchLead(ctx context.Context, leadgenID, pageAccessToken string) (*meta.LeadgenResponse, error)
}
