package meta

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/logger"
	"github.com/xavierca1/ligue-leads/internal/pii"
)

const (
	DefaultEventName    = "Lead"
	actionSourceWebsite = "website"
	currencyBRL         = "BRL"
)

// CAPIProvider envia eventos para a Conversions API do Meta.
type CAPIProvider struct {
	baseURL string
	http    *http.Client
	log     *zap.SugaredLogger
}

func NewCAPIProvider(baseURL string, httpClient *http.Client, log *zap.SugaredLogger) *CAPIProvider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &CAPIProvider{
		baseURL: baseURL,
		http:    httpClient,
		log:     logger.OrNop(log),
	}
}

func (p *CAPIProvider) Name() string {
	return entity.ProviderMeta
}

func (p *CAPIProvider) IsEnabled(settings entity.Settings) bool {
	return settings.Meta.Ready()
}

// BuildEvent faz o hash de email, telefone (sem "+") e primeiro nome.
func (p *CAPIProvider) BuildEvent(input entity.ConversionInput) entity.ConversionEvent {
	eventName := input.EventName
	if eventName == "" {
		eventName = DefaultEventName
	}

	custom := map[string]string{"currency": currencyBRL}
	if input.Segment != "" {
		custom["segment"] = input.Segment
	}
	if input.Investment != "" {
		custom["investment"] = input.Investment
	}

	return entity.ConversionEvent{
		EventName: eventName,
		EventID:   uuid.New().String(),
		EventTime: time.Now().UTC(),
		UserData: entity.HashedUserData{
			Email:     pii.HashEmail(input.Email),
			Phone:     pii.HashPhone(input.Phone, pii.PhoneBare),
			FirstName: pii.HashFirstName(input.Name),
		},
		ClientIP:   input.ClientIP,
		UserAgent:  input.UserAgent,
		ClickID:    input.FBC,
		BrowserID:  input.FBP,
		SourceURL:  input.SourceURL,
		CustomData: custom,
	}
}

func newCAPIRequest(ev entity.ConversionEvent, testEventCode string) capiRequest {
	return capiRequest{
		Data: []capiEvent{{
			EventName:      ev.EventName,
			EventTime:      ev.EventTime.Unix(),
			EventID:        ev.EventID,
			EventSourceURL: ev.SourceURL,
			ActionSource:   actionSourceWebsite,
			UserData: capiUserData{
				Email:           nonEmpty(ev.UserData.Email),
				Phone:           nonEmpty(ev.UserData.Phone),
				FirstName:       nonEmpty(ev.UserData.FirstName),
				ClientIPAddress: ev.ClientIP,
				ClientUserAgent: ev.UserAgent,
				FBC:             ev.ClickID,
				FBP:             ev.BrowserID,
			},
			CustomData: ev.CustomData,
		}},
		TestEventCode: testEventCode,
	}
}

// Send faz POST /{pixel_id}/events?access_token=... . Erro do provedor vira
// Success=false; só erros inesperados (serialização) retornam error.
func (p *CAPIProvider) Send(ctx context.Context, ev entity.ConversionEvent, settings entity.Settings) (*entity.DispatchResult, error) {
	body, err := json.Marshal(newCAPIRequest(ev, settings.Meta.TestEventCode))
	if err != nil {
		return nil, fmt.Errorf("meta capi: erro ao gerar json: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/events?access_token=%s",
		p.baseURL, url.PathEscape(settings.Meta.PixelID), url.QueryEscape(settings.Meta.AccessToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("meta capi: erro ao criar request: %w", redactURLError(err))
	}
	req.Header.Set("Content-Type", "application/json")

	result := &entity.DispatchResult{EventID: ev.EventID}

	resp, err := p.http.Do(req)
	if err != nil {
		err = redactURLError(err)
		p.log.Errorw("❌ Meta CAPI: erro na conexão", "event_name", ev.EventName, "event_id", ev.EventID, "error", err)
		result.Error = err.Error()
		return result, nil
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var parsed capiResponse
	_ = json.Unmarshal(respBody, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 || parsed.Error != nil {
		p.log.Errorw("❌ Meta CAPI: evento rejeitado",
			"status", resp.StatusCode, "event_name", ev.EventName, "event_id", ev.EventID, "response", string(respBody))
		result.Details = string(respBody)
		if parsed.Error != nil {
			result.Message = parsed.Error.Message
			result.FBTraceID = parsed.Error.FBTraceID
		}
		return result, nil
	}

	result.Success = true
	result.EventsReceived = parsed.EventsReceived
	result.FBTraceID = parsed.FBTraceID

	p.log.Infow("✅ Meta CAPI: evento enviado", "event_name", ev.EventName, "event_id", ev.EventID, "fbtrace_id", parsed.FBTraceID)
	return result, nil
}

func nonEmpty(hash string) []string {
	if hash == "" {
		return nil
	}
	return []string{hash}
}
