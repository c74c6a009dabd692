package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/infra/logger"
)

const (
	outcomeSent     = "sent"
	outcomeRejected = "rejected"
	outcomeSkipped  = "skipped"
	outcomeError    = "error"
)

// DispatchConversionUseCase envia um evento de conversão para um provedor.
// Não deduplica nem faz retry: cada chamada gera um event_id novo e o
// provedor é quem deduplica.
type DispatchConversionUseCase struct {
	SettingsRepo entity.SettingsRepositoryInterface
	providers    map[string]ConversionProvider
	log          *zap.SugaredLogger
}

func NewDispatchConversionUseCase(
	settingsRepo entity.SettingsRepositoryInterface,
	log *zap.SugaredLogger,
	providers ...ConversionProvider,
) *DispatchConversionUseCase {
	byName := make(map[string]ConversionProvider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	return &DispatchConversionUseCase{
		SettingsRepo: settingsRepo,
		providers:    byName,
		log:          logger.OrNop(log),
	}
}

// Execute carrega o Settings atual e despacha.
func (uc *DispatchConversionUseCase) Execute(ctx context.Context, provider string, input entity.ConversionInput) (*entity.DispatchResult, error) {
	if _, ok := uc.providers[provider]; !ok {
		return nil, unknownProviderError(provider)
	}

	settings, err := uc.SettingsRepo.Get(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: "settings_unavailable", Message: ErrSettingsUnavailable.Error(), Err: err}
	}

	return uc.ExecuteWithSettings(ctx, provider, *settings, input)
}

// ExecuteWithSettings usa um Settings já carregado pelo chamador.
func (uc *DispatchConversionUseCase) ExecuteWithSettings(ctx context.Context, provider string, settings entity.Settings, input entity.ConversionInput) (*entity.DispatchResult, error) {
	p, ok := uc.providers[provider]
	if !ok {
		return nil, unknownProviderError(provider)
	}

	if !p.IsEnabled(settings) {
		uc.log.Debugw("provedor desabilitado ou sem credenciais, evento ignorado", "provider", provider)
		middleware.RecordConversion(provider, outcomeSkipped)
		return &entity.DispatchResult{Success: false}, nil
	}

	ev := p.BuildEvent(input)

	result, err := p.Send(ctx, ev, settings)
	if err != nil {
		middleware.RecordConversion(provider, outcomeError)
		return nil, err
	}

	if result.Success {
		middleware.RecordConversion(provider, outcomeSent)
	} else {
		middleware.RecordConversion(provider, outcomeRejected)
	}
	return result, nil
}

func unknownProviderError(provider string) error {
	return &DomainError{
		Code:    "unknown_provider",
		Message: fmt.Sprintf("%s: %q", ErrUnknownProvider, provider),
		Err:     ErrUnknownProvider,
	}
}
