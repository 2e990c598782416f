package alert

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Condition 列舉警報觸發條件。
type Condition string

const (
	ConditionAbove Condition = "above"
	ConditionBelow Condition = "below"
	ConditionCross Condition = "cross"
)

// Valid 檢查條件是否為支援的值。
func (c Condition) Valid() bool {
	switch c {
	case ConditionAbove, ConditionBelow, ConditionCross:
		return true
	}
	return false
}

// Alert 定義單一使用者對單一交易對的價格警報。
// above/below 為一次性條件，觸發且送達後停用；cross 在價格穿越目標價時
// 會先翻轉條件方向，再走相同的送達/停用流程。
type Alert struct {
	ID        string
	UserID    string
	Symbol    string // 交易對名稱，一律大寫
	Price     decimal.Decimal
	Condition Condition
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate 基本欄位檢查。
func (a Alert) Validate() error {
	if a.UserID == "" {
		return errors.New("user_id is required")
	}
	if a.Symbol == "" {
		return errors.New("symbol is required")
	}
	if !a.Condition.Valid() {
		return fmt.Errorf("unsupported condition: %s", a.Condition)
	}
	if !a.Price.IsPositive() {
		return errors.New("price must be positive")
	}
	return nil
}

// Title 組出人類可讀的警報描述，例如 "BTCUSDT above 26000"。
func (a Alert) Title() string {
	return fmt.Sprintf("%s %s %s", a.Symbol, a.Condition, a.Price.String())
}

// Deactivate 關閉警報；條件欄位保持不變，重新啟用屬外部 CRUD 行為。
func (a *Alert) Deactivate() {
	a.IsActive = false
}

// ListFilter 限縮警報清單查詢的條件。
type ListFilter struct {
	Symbols []string
	Active  *bool
}
