package meta

import (
	"encoding/json"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

const FieldLeadgen = "leadgen"

// WebhookPayload é o envelope do webhook da página. Só field e leadgen_id são
// lidos; o value das outras mudanças fica cru para não quebrar o decode.
type WebhookPayload struct {
	Entry []WebhookEntry `json:"entry"`
}

type WebhookEntry struct {
	Changes []WebhookChange `json:"changes"`
}

type WebhookChange struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
}

type leadgenValue struct {
	LeadgenID json.RawMessage `json:"leadgen_id"`
}

// LeadgenIDs devolve os leadgen_id de todas as mudanças "leadgen", na ordem recebida.
// Mudanças com value ilegível são ignoradas.
func (p WebhookPayload) LeadgenIDs() []string {
	var ids []string
	for _, entry := range p.Entry {
		for _, change := range entry.Changes {
			if change.Field != FieldLeadgen {
				continue
			}
			if id := change.leadgenID(); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// leadgenID aceita o id como string ou número.
func (c WebhookChange) leadgenID() string {
	var v leadgenValue
	if err := json.Unmarshal(c.Value, &v); err != nil || len(v.LeadgenID) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(v.LeadgenID, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(v.LeadgenID, &n); err == nil {
		return n.String()
	}
	return ""
}

// LeadgenResponse é o retorno do Graph API para GET /{leadgen_id}.
type LeadgenResponse struct {
	ID          string             `json:"id"`
	CreatedTime string             `json:"created_time"`
	FormID      string             `json:"form_id,omitempty"`
	AdID        string             `json:"ad_id,omitempty"`
	FieldData   []entity.LeadField `json:"field_data"`
}

// Conversions API

type capiRequest struct {
	Data          []capiEvent `json:"data"`
	TestEventCode string      `json:"test_event_code,omitempty"`
}

type capiEvent struct {
	EventName      string            `json:"event_name"`
	EventTime      int64             `json:"event_time"`
	EventID        string            `json:"event_id"`
	EventSourceURL string            `json:"event_source_url,omitempty"`
	ActionSource   string            `json:"action_source"`
	UserData       capiUserData      `json:"user_data"`
	CustomData     map[string]string `json:"custom_data,omitempty"`
}

type capiUserData struct {
	Email           []string `json:"em,omitempty"`
	Phone           []string `json:"ph,omitempty"`
	FirstName       []string `json:"fn,omitempty"`
	ClientIPAddress string   `json:"client_ip_address,omitempty"`
	ClientUserAgent string   `json:"client_user_agent,omitempty"`
	FBC             string   `json:"fbc,omitempty"`
	FBP             string   `json:"fbp,omitempty"`
}

type capiResponse struct {
	EventsReceived *int        `json:"events_received,omitempty"`
	FBTraceID      string      `json:"fbtrace_id,omitempty"`
	Error          *graphError `json:"error,omitempty"`
}

type graphError struct {
	Message   string `json:"message"`
	Type      string `json:"type"`
	Code      int    `json:"code"`
	FBTraceID string `json:"fbtrace_id"`
}
