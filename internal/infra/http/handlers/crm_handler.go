package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/logger"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type StageChanger interface {
	Execute(ctx context.Context, input usecase.StageChangeInput) (*usecase.StageChangeOutput, error)
}

type CRMHandler struct {
	StageEvent StageChanger
	log        *zap.SugaredLogger
}

func NewCRMHandler(stageEvent StageChanger, log *zap.SugaredLogger) *CRMHandler {
	return &CRMHandler{StageEvent: stageEvent, log: logger.OrNop(log)}
}

// success só é true quando um evento foi aceito pelo Meta.
type stageChangeResponse struct {
	Success       bool   `json:"success"`
	EventName     string `json:"event_name,omitempty"`
	SkippedReason string `json:"skipped_reason,omitempty"`
	*entity.DispatchResult
}

func (h *CRMHandler) StageChanged(w http.ResponseWriter, r *http.Request) {
	var input usecase.StageChangeInput
	if err := decodeJSON(w, r, &input); err != nil {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large")
			return
		}
		h.log.Errorw("❌ Corpo inválido na mudança de etapa", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	input.LeadID = chi.URLParam(r, "id")

	if input.ClientIP == "" {
		input.ClientIP = getClientIP(r)
	}
	if input.UserAgent == "" {
		input.UserAgent = r.UserAgent()
	}

	out, err := h.StageEvent.Execute(r.Context(), input)
	if err != nil {
		if writeDomainError(w, err) {
			return
		}
		h.log.Errorw("❌ Erro ao processar mudança de etapa", "lead_id", input.LeadID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	resp := stageChangeResponse{
		EventName:      out.EventName,
		SkippedReason:  out.SkippedReason,
		DispatchResult: out.Result,
	}
	if out.Result != nil {
		resp.Success = out.Result.Success
	}

	writeJSON(w, http.StatusOK, resp)
}
