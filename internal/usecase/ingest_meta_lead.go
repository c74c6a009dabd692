package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/infra/logger"
)

type IngestMetaLeadUseCase struct {
	Graph    LeadFetcher
	LeadRepo entity.LeadRepositoryInterface
	log      *zap.SugaredLogger
}

func NewIngestMetaLeadUseCase(graph LeadFetcher, leadRepo entity.LeadRepositoryInterface, log *zap.SugaredLogger) *IngestMetaLeadUseCase {
	return &IngestMetaLeadUseCase{
		Graph:    graph,
		LeadRepo: leadRepo,
		log:      logger.OrNop(log),
	}
}

// Execute busca um leadgen_id no Graph API e grava o lead.
func (uc *IngestMetaLeadUseCase) Execute(ctx context.Context, leadgenID, pageAccessToken string) (*entity.Lead, error) {
	data, err := uc.Graph.FetchLead(ctx, leadgenID, pageAccessToken)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar lead %s: %w", leadgenID, err)
	}

	fields := ParseLeadFields(data.FieldData)

	lead := entity.NewLead(fields.Name, fields.Email, fields.Phone, entity.LeadSourceMetaInstantForm)
	lead.Segment = fields.Segment
	lead.Investment = fields.Investment
	lead.Objective = fields.Objective

	if err := uc.LeadRepo.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("falha ao gravar lead %s: %w", leadgenID, err)
	}

	return lead, nil
}

// ExecuteAll processa cada leadgen_id isoladamente. Erro em um não interrompe
// os seguintes; tudo é logado e nada é devolvido ao webhook.
func (uc *IngestMetaLeadUseCase) ExecuteAll(ctx context.Context, leadgenIDs []string, pageAccessToken string) (created, failed int) {
	for _, id := range leadgenIDs {
		lead, err := uc.Execute(ctx, id, pageAccessToken)
		if err != nil {
			failed++
			middleware.RecordWebhookLead("failed")
			uc.log.Errorw("❌ Webhook Meta: erro ao processar lead", "leadgen_id", id, "error", err)
			continue
		}
		created++
		middleware.RecordWebhookLead("created")
		uc.log.Infow("✅ Webhook Meta: lead criado", "leadgen_id", id, "lead_id", lead.ID)
	}
	return created, failed
}
