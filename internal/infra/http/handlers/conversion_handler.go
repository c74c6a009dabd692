package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/logger"
)

type ConversionDispatcher interface {
	Execute(ctx context.Context, provider string, input entity.ConversionInput) (*entity.DispatchResult, error)
}

// ConversionHandler expõe o envio de conversões para chamadas internas (CRM, landing pages).
type ConversionHandler struct {
	Dispatcher ConversionDispatcher
	log        *zap.SugaredLogger
}

func NewConversionHandler(dispatcher ConversionDispatcher, log *zap.SugaredLogger) *ConversionHandler {
	return &ConversionHandler{Dispatcher: dispatcher, log: logger.OrNop(log)}
}

func (h *ConversionHandler) Handle(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")

	var input entity.ConversionInput
	if err := decodeJSON(w, r, &input); err != nil {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large")
			return
		}
		h.log.Errorw("❌ Corpo inválido na chamada de conversão", "provider", provider, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	if input.ClientIP == "" {
		input.ClientIP = getClientIP(r)
	}
	if input.UserAgent == "" {
		input.UserAgent = r.UserAgent()
	}

	result, err := h.Dispatcher.Execute(r.Context(), provider, input)
	if err != nil {
		if writeDomainError(w, err) {
			return
		}
		h.log.Errorw("❌ Erro ao despachar conversão", "provider", provider, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
