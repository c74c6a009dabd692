package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	LeadSourceMetaInstantForm = "meta_instant_form"
	leadSourceCapturePrefix   = "captura:"

	LeadStatusNew = "new"
)

var ErrLeadNotFound = errors.New("lead not found")

// Lead pertence ao CRM. Aqui só criamos (webhook / captura) ou lemos (eventos de CRM).
type Lead struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Segment    string    `json:"segment,omitempty"`
	Investment string    `json:"investment,omitempty"`
	Objective  string    `json:"objective,omitempty"`
	Source     string    `json:"source"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewLead(name, email, phone, source string) *Lead {
	return &Lead{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Phone:     strings.TrimSpace(phone),
		Source:    source,
		Status:    LeadStatusNew,
		CreatedAt: time.Now().UTC(),
	}
}

// CaptureSource monta a origem "captura:<slug>" da landing page.
func CaptureSource(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = "default"
	}
	return leadSourceCapturePrefix + slug
}

// LeadField é um par nome/valores vindo do formulário de Lead Ads.
type LeadField struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
}
