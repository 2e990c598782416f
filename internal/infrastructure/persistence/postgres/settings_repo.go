package postgres

import (
	"context"
	"database/sql"

	settingsDomain "price-alerts/internal/domain/settings"
)

// SettingsRepo 提供全域工作設定的存取，資料表僅有單一列。
type SettingsRepo struct {
	db *sql.DB
}

// NewSettingsRepo 建立 SettingsRepo。
func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get 讀取設定列。
func (r *SettingsRepo) Get(ctx context.Context) (settingsDomain.Core, error) {
	const q = `
SELECT update_last_prices, send_alert_via_telegram, send_alert_via_email
FROM core_settings
WHERE id = 1
LIMIT 1;
`
	var cfg settingsDomain.Core
	if err := r.db.QueryRowContext(ctx, q).Scan(&cfg.UpdateLastPrices, &cfg.SendAlertViaTelegram, &cfg.SendAlertViaEmail); err != nil {
		return settingsDomain.Core{}, err
	}
	return cfg, nil
}

// Update 覆寫設定列。
func (r *SettingsRepo) Update(ctx context.Context, cfg settingsDomain.Core) error {
	const q = `
UPDATE core_settings
SET update_last_prices = $1, send_alert_via_telegram = $2, send_alert_via_email = $3, updated_at = NOW()
WHERE id = 1;
`
	res, err := r.db.ExecContext(ctx, q, cfg.UpdateLastPrices, cfg.SendAlertViaTelegram, cfg.SendAlertViaEmail)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// EnsureDefault 確保設定列存在，不存在時以預設值建立。
func (r *SettingsRepo) EnsureDefault(ctx context.Context) error {
	const q = `
INSERT INTO core_settings (id, update_last_prices, send_alert_via_telegram, send_alert_via_email)
VALUES (1, $1, $2, $3)
ON CONFLICT (id) DO NOTHING;
`
	def := settingsDomain.Default()
	_, err := r.db.ExecContext(ctx, q, def.UpdateLastPrices, def.SendAlertViaTelegram, def.SendAlertViaEmail)
	return err
}
