package entity

import "time"

const (
	ProviderMeta   = "meta"
	ProviderTikTok = "tiktok"
)

// ConversionInput é o que chega da captura de lead ou da mudança de etapa no CRM.
type ConversionInput struct {
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Name       string `json:"name"`
	Segment    string `json:"segment,omitempty"`
	Investment string `json:"investment,omitempty"`
	SourceURL  string `json:"source_url"`
	ClientIP   string `json:"client_ip,omitempty"`
	UserAgent  string `json:"user_agent,omitempty"`
	FBC        string `json:"fbc,omitempty"`
	FBP        string `json:"fbp,omitempty"`
	TTCLID     string `json:"ttclid,omitempty"`
	TTP        string `json:"ttp,omitempty"`
	EventName  string `json:"event_name,omitempty"`
}

// HashedUserData nunca carrega valor em claro.
type HashedUserData struct {
	Email     string
	Phone     string
	FirstName string
}

// ConversionEvent existe só durante uma chamada de dispatch.
type ConversionEvent struct {
	EventName  string
	EventID    string
	EventTime  time.Time
	UserData   HashedUserData
	ClientIP   string
	UserAgent  string
	ClickID    string // fbc ou ttclid
	BrowserID  string // fbp ou ttp
	SourceURL  string
	CustomData map[string]string
}

// DispatchResult é devolvido ao chamador interno (captura / CRM).
type DispatchResult struct {
	Success        bool   `json:"success"`
	EventID        string `json:"event_id,omitempty"`
	EventsReceived *int   `json:"events_received,omitempty"`
	FBTraceID      string `json:"fbtrace_id,omitempty"`
	Code           *int   `json:"code,omitempty"`
	Message        string `json:"message,omitempty"`
	Details        string `json:"details,omitempty"`
	Error          string `json:"error,omitempty"`
}

// ConversionJob é a unidade de trabalho fire-and-forget.
type ConversionJob struct {
	Provider string          `json:"provider"`
	Input    ConversionInput `json:"input"`
}
