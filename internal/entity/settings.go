package entity

import (
	"context"
	"strings"
)

// ProviderSettings são as credenciais de um pixel (Meta ou TikTok).
type ProviderSettings struct {
	Enabled       bool
	PixelID       string
	AccessToken   string
	TestEventCode string
}

// Ready indica que o provedor está habilitado e com credenciais preenchidas.
func (p ProviderSettings) Ready() bool {
	return p.Enabled && strings.TrimSpace(p.PixelID) != "" && strings.TrimSpace(p.AccessToken) != ""
}

type WebhookSettings struct {
	VerifyToken     string
	AppSecret       string
	PageAccessToken string
}

// Settings é a linha única da tabela settings, mantida pelo painel.
// Só leitura para este serviço.
type Settings struct {
	Meta             ProviderSettings
	MetaCRMEvents    bool
	TikTok           ProviderSettings
	MetaLeadsWebhook WebhookSettings
}

type SettingsRepositoryInterface interface {
	Get(ctx context.Context) (*Settings, error)
}
