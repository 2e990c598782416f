package memory

import (
	"context"

	alertDomain "price-alerts/internal/domain/alert"
	authDomain "price-alerts/internal/domain/auth"
	marketDomain "price-alerts/internal/domain/market"
	settingsDomain "price-alerts/internal/domain/settings"

	"github.com/shopspring/decimal"
)

// UserRepo 以使用者倉儲介面暴露 Store。
type UserRepo struct{ *Store }

func (r UserRepo) Create(ctx context.Context, user authDomain.User) (authDomain.User, error) {
	return r.CreateUser(ctx, user)
}

func (r UserRepo) FindByEmail(ctx context.Context, email string) (authDomain.User, error) {
	return r.FindUserByEmail(ctx, email)
}

func (r UserRepo) FindByID(ctx context.Context, id string) (authDomain.User, error) {
	return r.FindUserByID(ctx, id)
}

// SymbolRepo 以交易對倉儲介面暴露 Store。
type SymbolRepo struct{ *Store }

func (r SymbolRepo) Create(ctx context.Context, s marketDomain.Symbol) (marketDomain.Symbol, error) {
	return r.CreateSymbol(ctx, s)
}

func (r SymbolRepo) List(ctx context.Context) ([]marketDomain.Symbol, error) {
	return r.ListSymbols(ctx)
}

func (r SymbolRepo) FindByID(ctx context.Context, id string) (marketDomain.Symbol, error) {
	return r.FindSymbolByID(ctx, id)
}

func (r SymbolRepo) UpdateLastPrice(ctx context.Context, id string, price decimal.Decimal) error {
	return r.UpdateSymbolPrice(ctx, id, price)
}

func (r SymbolRepo) Delete(ctx context.Context, id string) error {
	return r.DeleteSymbol(ctx, id)
}

// AlertRepo 以警報倉儲介面暴露 Store。
type AlertRepo struct{ *Store }

func (r AlertRepo) Create(ctx context.Context, a alertDomain.Alert) (alertDomain.Alert, error) {
	return r.CreateAlert(ctx, a)
}

func (r AlertRepo) FindByID(ctx context.Context, id string) (alertDomain.Alert, error) {
	return r.FindAlertByID(ctx, id)
}

func (r AlertRepo) ListByUser(ctx context.Context, userID string, filter alertDomain.ListFilter) ([]alertDomain.Alert, error) {
	return r.ListAlertsByUser(ctx, userID, filter.Symbols, filter.Active)
}

func (r AlertRepo) ListActive(ctx context.Context) ([]alertDomain.Alert, error) {
	return r.ListActiveAlerts(ctx)
}

func (r AlertRepo) Update(ctx context.Context, a alertDomain.Alert) error {
	return r.UpdateAlert(ctx, a)
}

func (r AlertRepo) UpdateState(ctx context.Context, a alertDomain.Alert) error {
	return r.UpdateAlertState(ctx, a)
}

func (r AlertRepo) Delete(ctx context.Context, id string) error {
	return r.DeleteAlert(ctx, id)
}

// SettingsRepo 以設定倉儲介面暴露 Store。
type SettingsRepo struct{ *Store }

func (r SettingsRepo) Get(ctx context.Context) (settingsDomain.Core, error) {
	return r.GetSettings(ctx)
}

func (r SettingsRepo) Update(ctx context.Context, cfg settingsDomain.Core) error {
	return r.UpdateSettings(ctx, cfg)
}

func (r SettingsRepo) EnsureDefault(ctx context.Context) error {
	return r.EnsureDefaultSettings(ctx)
}
