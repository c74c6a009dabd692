package tiktok

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
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
	DefaultEventName   = "SubmitForm"
	AccessTokenHeader  = "Access-Token"
	trackPath          = "/pixel/track/"
	contentTypeProduct = "product"
	currencyBRL        = "BRL"
)

// EventsProvider envia eventos para a Events API do TikTok.
type EventsProvider struct {
	baseURL string
	http    *http.Client
	log     *zap.SugaredLogger
}

func NewEventsProvider(baseURL string, httpClient *http.Client, log *zap.SugaredLogger) *EventsProvider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &EventsProvider{
		baseURL: baseURL,
		http:    httpClient,
		log:     logger.OrNop(log),
	}
}

func (p *EventsProvider) Name() string {
	return entity.ProviderTikTok
}

func (p *EventsProvider) IsEnabled(settings entity.Settings) bool {
	return settings.TikTok.Ready()
}

// BuildEvent faz o hash de email e telefone (com "+"). TikTok não recebe nome.
func (p *EventsProvider) BuildEvent(input entity.ConversionInput) entity.ConversionEvent {
	eventName := input.EventName
	if eventName == "" {
		eventName = DefaultEventName
	}

	custom := map[string]string{}
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
			Email: pii.HashEmail(input.Email),
			Phone: pii.HashPhone(input.Phone, pii.PhonePlus),
		},
		ClientIP:   input.ClientIP,
		UserAgent:  input.UserAgent,
		ClickID:    input.TTCLID,
		BrowserID:  input.TTP,
		SourceURL:  input.SourceURL,
		CustomData: custom,
	}
}

func newTrackRequest(ev entity.ConversionEvent, settings entity.ProviderSettings) trackRequest {
	req := trackRequest{
		PixelCode:     settings.PixelID,
		Event:         ev.EventName,
		EventID:       ev.EventID,
		Timestamp:     ev.EventTime.UTC().Format(time.RFC3339),
		TestEventCode: settings.TestEventCode,
		Context: trackContext{
			Page: page{URL: ev.SourceURL},
			User: user{
				Email:       ev.UserData.Email,
				PhoneNumber: ev.UserData.Phone,
				TTP:         ev.BrowserID,
			},
			IP:        ev.ClientIP,
			UserAgent: ev.UserAgent,
		},
		Properties: properties{
			Contents: []content{{
				ContentID:   ev.EventName,
				ContentType: contentTypeProduct,
				ContentName: ev.CustomData["segment"],
			}},
			Currency: currencyBRL,
		},
	}
	if ev.ClickID != "" {
		req.Context.Ad = &ad{Callback: ev.ClickID}
	}
	return req
}

// Send faz POST /pixel/track/ com o header Access-Token. code != 0 é erro do provedor.
func (p *EventsProvider) Send(ctx context.Context, ev entity.ConversionEvent, settings entity.Settings) (*entity.DispatchResult, error) {
	body, err := json.Marshal(newTrackRequest(ev, settings.TikTok))
	if err != nil {
		return nil, fmt.Errorf("tiktok events: erro ao gerar json: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+trackPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("tiktok events: erro ao criar request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(AccessTokenHeader, settings.TikTok.AccessToken)

	result := &entity.DispatchResult{EventID: ev.EventID}

	resp, err := p.http.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		p.log.Errorw("❌ TikTok Events: erro na conexão", "event_name", ev.EventName, "event_id", ev.EventID, "error", err)
		result.Error = err.Error()
		return result, nil
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var parsed trackResponse
	_ = json.Unmarshal(respBody, &parsed)

	result.Code = parsed.Code
	result.Message = parsed.Message

	if resp.StatusCode < 200 || resp.StatusCode > 299 || parsed.Code == nil || *parsed.Code != 0 {
		p.log.Errorw("❌ TikTok Events: evento rejeitado",
			"status", resp.StatusCode, "event_name", ev.EventName, "event_id", ev.EventID, "response", string(respBody))
		result.Details = string(respBody)
		return result, nil
	}

	result.Success = true
	p.log.Infow("✅ TikTok Events: evento enviado", "event_name", ev.EventName, "event_id", ev.EventID, "request_id", parsed.RequestID)
	return result, nil
}
