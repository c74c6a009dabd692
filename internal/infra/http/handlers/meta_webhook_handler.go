package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/meta"
	"github.com/xavierca1/ligue-leads/internal/infra/logger"
)

const DefaultMaxBodyBytes int64 = 1 << 20

type LeadIngestor interface {
	ExecuteAll(ctx context.Context, leadgenIDs []string, pageAccessToken string) (created, failed int)
}

// MetaWebhookHandler recebe o webhook "leadgen" dos formulários instantâneos do Meta.
type MetaWebhookHandler struct {
	SettingsRepo entity.SettingsRepositoryInterface
	Ingestor     LeadIngestor
	MaxBodyBytes int64
	log          *zap.SugaredLogger
}

func NewMetaWebhookHandler(
	settingsRepo entity.SettingsRepositoryInterface,
	ingestor LeadIngestor,
	maxBodyBytes int64,
	log *zap.SugaredLogger,
) *MetaWebhookHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &MetaWebhookHandler{
		SettingsRepo: settingsRepo,
		Ingestor:     ingestor,
		MaxBodyBytes: maxBodyBytes,
		log:          logger.OrNop(log),
	}
}

// Verify responde ao handshake de assinatura do webhook.
func (h *MetaWebhookHandler) Verify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	settings, err := h.SettingsRepo.Get(r.Context())
	if err != nil {
		h.log.Errorw("❌ Erro ao carregar settings no handshake do webhook", "error", err)
		w.WriteHeader(http.StatusForbidden)
		return
	}

	token := settings.MetaLeadsWebhook.VerifyToken
	if q.Get("hub.mode") != "subscribe" || token == "" || q.Get("hub.verify_token") != token {
		h.log.Warn("⚠️ Handshake do webhook recusado")
		w.WriteHeader(http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, q.Get("hub.challenge"))
}

func (h *MetaWebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	// a assinatura é calculada sobre os bytes exatos recebidos
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large")
			return
		}
		writeError(w, http.StatusBadRequest, "unreadable_body")
		return
	}

	settings, err := h.SettingsRepo.Get(r.Context())
	if err != nil {
		h.log.Errorw("❌ Erro ao carregar settings do webhook", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	cfg := settings.MetaLeadsWebhook
	if cfg.AppSecret != "" {
		if !meta.VerifySignature(body, r.Header.Get(meta.SignatureHeader), cfg.AppSecret) {
			h.log.Warn("🚫 Assinatura inválida no webhook de leads")
			writeError(w, http.StatusUnauthorized, "invalid_signature")
			return
		}
	} else {
		h.log.Warn("⚠️ App secret não configurado, webhook aceito sem verificar assinatura")
	}

	var payload meta.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		h.log.Errorw("❌ JSON inválido no webhook de leads", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	ids := payload.LeadgenIDs()
	if len(ids) > 0 {
		created, failed := h.Ingestor.ExecuteAll(r.Context(), ids, cfg.PageAccessToken)
		h.log.Infow("📥 Webhook de leads processado", "received", len(ids), "created", created, "failed", failed)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
