package market

import (
	"context"
	"fmt"
	"log"

	"price-alerts/internal/domain/market"
	"price-alerts/internal/domain/settings"

	"github.com/shopspring/decimal"
)

// SymbolRepository 管理追蹤中的交易對。
type SymbolRepository interface {
	List(ctx context.Context) ([]market.Symbol, error)
	UpdateLastPrice(ctx context.Context, id string, price decimal.Decimal) error
}

// PriceSource 查詢交易所的最新成交價。
type PriceSource interface {
	LastPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// SettingsStore 讀取全域工作設定。
type SettingsStore interface {
	Get(ctx context.Context) (settings.Core, error)
}

// RefreshUseCase 逐一更新所有追蹤交易對的快取價格。
// 單一交易對查價失敗時寫入零值哨兵，不會中斷整批更新。
type RefreshUseCase struct {
	symbols  SymbolRepository
	source   PriceSource
	settings SettingsStore
}

// NewRefreshUseCase 建立價格更新用例。
func NewRefreshUseCase(symbols SymbolRepository, source PriceSource, store SettingsStore) *RefreshUseCase {
	return &RefreshUseCase{symbols: symbols, source: source, settings: store}
}

// Execute 執行一輪價格更新,可重複執行。
func (uc *RefreshUseCase) Execute(ctx context.Context) error {
	cfg, err := uc.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if !cfg.UpdateLastPrices {
		log.Printf("[PriceRefresh] update_last_prices disabled, skipping run")
		return nil
	}

	symbols, err := uc.symbols.List(ctx)
	if err != nil {
		return fmt.Errorf("list symbols: %w", err)
	}

	for _, s := range symbols {
		price, err := uc.source.LastPrice(ctx, s.Name)
		if err != nil {
			// 查價失敗以零值作為未知價格哨兵,保持與其餘交易對同步更新。
			log.Printf("[PriceRefresh] fetch price failed symbol=%s: %v", s.Name, err)
			price = decimal.Zero
		}
		if err := uc.symbols.UpdateLastPrice(ctx, s.ID, price); err != nil {
			log.Printf("[PriceRefresh] store price failed symbol=%s: %v", s.Name, err)
		}
	}
	return nil
}
