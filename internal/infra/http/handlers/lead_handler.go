package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/logger"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type LeadCapturer interface {
	Execute(ctx context.Context, input usecase.CaptureLeadInput) (*entity.Lead, error)
}

type LeadHandler struct {
	CaptureLead LeadCapturer
	rateLimiter *RateLimiter
	log         *zap.SugaredLogger
}

func NewLeadHandler(capture LeadCapturer, log *zap.SugaredLogger) *LeadHandler {
	return &LeadHandler{
		CaptureLead: capture,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min por IP
		log:         logger.OrNop(log),
	}
}

type CaptureLeadResponse struct {
	Success bool                     `json:"success"`
	ID      string                   `json:"id,omitempty"`
	Message string                   `json:"message,omitempty"`
	Errors  usecase.ValidationErrors `json:"errors,omitempty"`
}

func (h *LeadHandler) Capture(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeJSON(w, http.StatusTooManyRequests, CaptureLeadResponse{
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	var input usecase.CaptureLeadInput
	if err := decodeJSON(w, r, &input); err != nil {
		if isBodyTooLarge(err) {
			writeJSON(w, http.StatusRequestEntityTooLarge, CaptureLeadResponse{Message: "Payload too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, CaptureLeadResponse{Message: "Invalid JSON"})
		return
	}
	input.ClientIP = clientIP
	input.UserAgent = r.UserAgent()

	lead, err := h.CaptureLead.Execute(r.Context(), input)
	if err != nil {
		if usecase.IsDomainError(err) {
			var verrs usecase.ValidationErrors
			errors.As(err, &verrs)
			writeJSON(w, http.StatusBadRequest, CaptureLeadResponse{Message: "Invalid lead", Errors: verrs})
			return
		}
		h.log.Errorw("❌ Erro ao capturar lead", "error", err)
		writeJSON(w, http.StatusInternalServerError, CaptureLeadResponse{Message: "Failed to capture lead"})
		return
	}

	writeJSON(w, http.StatusCreated, CaptureLeadResponse{Success: true, ID: lead.ID})
}
