package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type SettingsRepository struct {
	DB *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{DB: db}
}

// Get lê a linha única de settings. Sem linha = tudo desabilitado.
func (r *SettingsRepository) Get(ctx context.Context) (*entity.Settings, error) {
	query := `
		SELECT meta_pixel_enabled, meta_pixel_id, meta_access_token, meta_test_event_code, meta_crm_events_enabled,
		       tiktok_enabled, tiktok_pixel_id, tiktok_access_token, tiktok_test_event_code,
		       meta_webhook_verify_token, meta_app_secret, meta_page_access_token
		FROM settings
		LIMIT 1
	`

	var s entity.Settings
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&s.Meta.Enabled,
		&s.Meta.PixelID,
		&s.Meta.AccessToken,
		&s.Meta.TestEventCode,
		&s.MetaCRMEvents,
		&s.TikTok.Enabled,
		&s.TikTok.PixelID,
		&s.TikTok.AccessToken,
		&s.TikTok.TestEventCode,
		&s.MetaLeadsWebhook.VerifyToken,
		&s.MetaLeadsWebhook.AppSecret,
		&s.MetaLeadsWebhook.PageAccessToken,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return &entity.Settings{}, nil
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}
