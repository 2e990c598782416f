package alert

import (
	"context"
	"fmt"
	"log"

	alertDomain "price-alerts/internal/domain/alert"
	"price-alerts/internal/domain/auth"
	"price-alerts/internal/domain/settings"

	"github.com/shopspring/decimal"
)

// AlertRepository 管理警報存取與狀態回寫。
type AlertRepository interface {
	ListActive(ctx context.Context) ([]alertDomain.Alert, error)
	UpdateState(ctx context.Context, a alertDomain.Alert) error
}

// SymbolPrices 提供交易對名稱到快取價格的查表。
type SymbolPrices interface {
	LastPrices(ctx context.Context) (map[string]decimal.Decimal, error)
}

// UserDirectory 以 ID 查詢通知收件人。
type UserDirectory interface {
	FindByID(ctx context.Context, id string) (auth.User, error)
}

// SettingsStore 讀取全域工作設定。
type SettingsStore interface {
	Get(ctx context.Context) (settings.Core, error)
}

// Engine 為警報派送引擎：逐一評估活躍警報、透過通道送出通知、
// 並套用狀態轉移。單一警報的失敗不會中斷整批執行。
type Engine struct {
	alerts   AlertRepository
	symbols  SymbolPrices
	users    UserDirectory
	settings SettingsStore
	channels []Channel
}

// NewEngine 建立派送引擎。channels 依優先序嘗試，首個成功者即停止。
func NewEngine(alerts AlertRepository, symbols SymbolPrices, users UserDirectory, store SettingsStore, channels ...Channel) *Engine {
	return &Engine{
		alerts:   alerts,
		symbols:  symbols,
		users:    users,
		settings: store,
		channels: channels,
	}
}

// Run 執行一輪派送。僅在無法取得設定、警報清單或價格表時回傳錯誤；
// 個別警報的評估/送達失敗只記 log，留待下一輪重試。
func (e *Engine) Run(ctx context.Context) error {
	cfg, err := e.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	alerts, err := e.alerts.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active alerts: %w", err)
	}
	if len(alerts) == 0 {
		return nil
	}

	prices, err := e.symbols.LastPrices(ctx)
	if err != nil {
		return fmt.Errorf("load symbol prices: %w", err)
	}

	for _, a := range alerts {
		e.dispatchOne(ctx, cfg, a, prices)
	}
	return nil
}

func (e *Engine) dispatchOne(ctx context.Context, cfg settings.Core, a alertDomain.Alert, prices map[string]decimal.Decimal) {
	current, ok := prices[a.Symbol]
	if !ok {
		log.Printf("[Dispatch] no cached price for symbol=%s alert=%s, skipping", a.Symbol, a.ID)
		return
	}

	out := alertDomain.Evaluate(a, current)
	if !out.Triggered {
		return
	}

	if out.Flipped {
		// cross 的方向翻轉與送達結果無關，必須先保存。
		a.Condition = out.NewCondition
		if err := e.alerts.UpdateState(ctx, a); err != nil {
			log.Printf("[Dispatch] persist condition flip failed alert=%s: %v", a.ID, err)
			return
		}
		log.Printf("[Dispatch] alert=%s symbol=%s condition flipped to %s", a.ID, a.Symbol, a.Condition)
	}

	user, err := e.users.FindByID(ctx, a.UserID)
	if err != nil {
		log.Printf("[Dispatch] find user failed alert=%s user=%s: %v", a.ID, a.UserID, err)
		return
	}

	delivered := false
	for _, ch := range e.channels {
		if !ch.Enabled(cfg) {
			continue
		}
		if ch.Send(ctx, user, out.Message) {
			log.Printf("[Dispatch] alert=%s delivered via %s user=%s", a.ID, ch.Name(), a.UserID)
			delivered = true
			break
		}
	}
	if !delivered {
		// 通道全關或全部失敗：警報維持活躍，下一輪重試。
		log.Printf("[Dispatch] alert=%s not delivered, will retry next run", a.ID)
		return
	}

	a.Deactivate()
	if err := e.alerts.UpdateState(ctx, a); err != nil {
		log.Printf("[Dispatch] persist deactivation failed alert=%s: %v", a.ID, err)
	}
}
