package market

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Symbol 代表一個交易對與其最後快取價格。
type Symbol struct {
	ID        string
	Name      string // 例如 BTCUSDT，一律大寫
	LastPrice decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate 基本欄位檢查。
func (s Symbol) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("name is required")
	}
	if s.Name != strings.ToUpper(s.Name) {
		return errors.New("name must be upper case")
	}
	if s.LastPrice.IsNegative() {
		return errors.New("last_price must not be negative")
	}
	return nil
}

// PriceKnown 回報快取價格是否可用；零值代表「未知/取價失敗」哨兵。
func (s Symbol) PriceKnown() bool {
	return s.LastPrice.IsPositive()
}
