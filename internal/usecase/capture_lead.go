package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/meta"
	"github.com/xavierca1/ligue-leads/internal/infra/logger"
)

type CaptureLeadInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Segment    string `json:"segment,omitempty"`
	Investment string `json:"investment,omitempty"`
	Objective  string `json:"objective,omitempty"`
	Slug       string `json:"slug"`
	SourceURL  string `json:"source_url"`
	FBC        string `json:"fbc,omitempty"`
	FBP        string `json:"fbp,omitempty"`
	TTCLID     string `json:"ttclid,omitempty"`
	TTP        string `json:"ttp,omitempty"`

	ClientIP  string `json:"-"`
	UserAgent string `json:"-"`
}

// CaptureLeadUseCase grava o lead da landing page e agenda os eventos de
// conversão sem esperar por eles. Falha no envio nunca desfaz a captura.
type CaptureLeadUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
	Queue    ConversionQueue
	log      *zap.SugaredLogger
}

func NewCaptureLeadUseCase(leadRepo entity.LeadRepositoryInterface, queue ConversionQueue, log *zap.SugaredLogger) *CaptureLeadUseCase {
	return &CaptureLeadUseCase{
		LeadRepo: leadRepo,
		Queue:    queue,
		log:      logger.OrNop(log),
	}
}

func (uc *CaptureLeadUseCase) Execute(ctx context.Context, input CaptureLeadInput) (*entity.Lead, error) {
	if errs := ValidateCaptureLeadInput(input); len(errs) > 0 {
		return nil, &DomainError{Code: "invalid_lead", Message: errs.Error(), Err: errs}
	}

	lead := entity.NewLead(input.Name, input.Email, input.Phone, entity.CaptureSource(input.Slug))
	lead.Segment = input.Segment
	lead.Investment = input.Investment
	lead.Objective = input.Objective

	if err := uc.LeadRepo.Create(ctx, lead); err != nil {
		return nil, &TechnicalError{Code: "lead_insert_failed", Message: "falha ao gravar lead", Err: err}
	}

	conversion := entity.ConversionInput{
		Email:      lead.Email,
		Phone:      lead.Phone,
		Name:       lead.Name,
		Segment:    lead.Segment,
		Investment: lead.Investment,
		SourceURL:  input.SourceURL,
		ClientIP:   input.ClientIP,
		UserAgent:  input.UserAgent,
	}

	metaInput := conversion
	metaInput.FBC, metaInput.FBP = input.FBC, input.FBP
	metaInput.EventName = meta.DefaultEventName
	uc.enqueue(ctx, entity.ConversionJob{Provider: entity.ProviderMeta, Input: metaInput})

	tiktokInput := conversion
	tiktokInput.TTCLID, tiktokInput.TTP = input.TTCLID, input.TTP
	uc.enqueue(ctx, entity.ConversionJob{Provider: entity.ProviderTikTok, Input: tiktokInput})

	return lead, nil
}

func (uc *CaptureLeadUseCase) enqueue(ctx context.Context, job entity.ConversionJob) {
	if uc.Queue == nil {
		return
	}
	if err := uc.Queue.Enqueue(ctx, job); err != nil {
		middleware.RecordDroppedJob()
		uc.log.Warnw("⚠️ Evento de conversão descartado", "provider", job.Provider, "error", err)
	}
}
