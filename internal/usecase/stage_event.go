package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

// stageEvents: etapa do CRM -> evento padrão do Meta. "" = nenhum evento.
var stageEvents = map[string]string{
	"contacted": "Contact",
	"qualified": "Lead",
	"proposal":  "InitiateCheckout",
	"converted": "Purchase",
	"lost":      "",
	"archived":  "",
}

const (
	SkipNoEventForStatus  = "no_event_for_status"
	SkipCRMEventsDisabled = "crm_events_disabled"
)

// EventForStatus devolve o evento da etapa, ou false quando a etapa não gera evento.
func EventForStatus(status string) (string, bool) {
	event := stageEvents[strings.ToLower(strings.TrimSpace(status))]
	return event, event != ""
}

type StageChangeInput struct {
	LeadID    string `json:"-"`
	Status    string `json:"status"`
	SourceURL string `json:"source_url,omitempty"`
	ClientIP  string `json:"client_ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

type StageChangeOutput struct {
	EventName     string                 `json:"event_name,omitempty"`
	SkippedReason string                 `json:"skipped_reason,omitempty"`
	Result        *entity.DispatchResult `json:"result,omitempty"`
}

// StageEventUseCase dispara eventos do Meta quando o lead muda de etapa no CRM.
// Só Meta: o TikTok recebe apenas o evento da captura.
type StageEventUseCase struct {
	LeadRepo     entity.LeadRepositoryInterface
	SettingsRepo entity.SettingsRepositoryInterface
	Dispatcher   *DispatchConversionUseCase
}

func NewStageEventUseCase(
	leadRepo entity.LeadRepositoryInterface,
	settingsRepo entity.SettingsRepositoryInterface,
	dispatcher *DispatchConversionUseCase,
) *StageEventUseCase {
	return &StageEventUseCase{
		LeadRepo:     leadRepo,
		SettingsRepo: settingsRepo,
		Dispatcher:   dispatcher,
	}
}

func (uc *StageEventUseCase) Execute(ctx context.Context, input StageChangeInput) (*StageChangeOutput, error) {
	eventName, ok := EventForStatus(input.Status)
	if !ok {
		return &StageChangeOutput{SkippedReason: SkipNoEventForStatus}, nil
	}

	settings, err := uc.SettingsRepo.Get(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: "settings_unavailable", Message: ErrSettingsUnavailable.Error(), Err: err}
	}

	// Pixel ligado não basta: eventos de CRM têm flag própria.
	if !settings.Meta.Enabled || !settings.MetaCRMEvents {
		return &StageChangeOutput{EventName: eventName, SkippedReason: SkipCRMEventsDisabled}, nil
	}

	lead, err := uc.LeadRepo.FindByID(ctx, input.LeadID)
	if errors.Is(err, entity.ErrLeadNotFound) {
		return nil, &DomainError{Code: "lead_not_found", Message: "lead não encontrado", Err: err}
	}
	if err != nil {
		return nil, &TechnicalError{Code: "lead_lookup_failed", Message: "falha ao buscar lead", Err: err}
	}

	result, err := uc.Dispatcher.ExecuteWithSettings(ctx, entity.ProviderMeta, *settings, entity.ConversionInput{
		Email:      lead.Email,
		Phone:      lead.Phone,
		Name:       lead.Name,
		Segment:    lead.Segment,
		Investment: lead.Investment,
		SourceURL:  input.SourceURL,
		ClientIP:   input.ClientIP,
		UserAgent:  input.UserAgent,
		EventName:  eventName,
	})
	if err != nil {
		return nil, err
	}

	return &StageChangeOutput{EventName: eventName, Result: result}, nil
}
