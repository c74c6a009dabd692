package tiktok

type trackRequest struct {
	PixelCode     string       `json:"pixel_code"`
	Event         string       `json:"event"`
	EventID       string       `json:"event_id"`
	Timestamp     string       `json:"timestamp"`
	TestEventCode string       `json:"test_event_code,omitempty"`
	Context       trackContext `json:"context"`
	Properties    properties   `json:"properties"`
}

type trackContext struct {
	Page      page   `json:"page"`
	User      user   `json:"user"`
	Ad        *ad    `json:"ad,omitempty"`
	IP        string `json:"ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

type page struct {
	URL string `json:"url,omitempty"`
}

type user struct {
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	TTP         string `json:"ttp,omitempty"`
}

type ad struct {
	Callback string `json:"callback"`
}

type properties struct {
	Contents []content `json:"contents"`
	Currency string    `json:"currency,omitempty"`
}

type content struct {
	ContentID   string `json:"content_id"`
	ContentType string `json:"content_type"`
	ContentName string `json:"content_name,omitempty"`
}

type trackResponse struct {
	Code      *int   `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}
