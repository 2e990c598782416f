package alert

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Outcome 描述單次評估的結果。
type Outcome struct {
	Triggered bool
	// Flipped 表示 cross 條件已翻轉方向；不論後續通知是否送達，
	// 翻轉都必須被保存。
	Flipped bool
	// NewCondition 為翻轉後的方向，僅在 Flipped 時有意義。
	NewCondition Condition
	// Message 為要送出的通知內容，僅在 Triggered 時有意義。
	Message string
}

// Evaluate 以現價對單一警報做純函式評估，不修改警報本身。
// 比較一律使用嚴格不等式：現價等於目標價不觸發任何條件。
// 現價為零（取價失敗哨兵）時對 below/cross 仍照字面比較，
// 這是刻意保留的行為，呼叫端自行決定是否略過未知價格。
func Evaluate(a Alert, currentPrice decimal.Decimal) Outcome {
	switch a.Condition {
	case ConditionAbove:
		if currentPrice.GreaterThan(a.Price) {
			return Outcome{Triggered: true, Message: message(a.Symbol, ConditionAbove, a.Price)}
		}
	case ConditionBelow:
		if currentPrice.LessThan(a.Price) {
			return Outcome{Triggered: true, Message: message(a.Symbol, ConditionBelow, a.Price)}
		}
	case ConditionCross:
		// 穿越後條件翻向另一側，通知訊息採用翻轉後的新方向。
		if currentPrice.GreaterThan(a.Price) {
			return Outcome{
				Triggered:    true,
				Flipped:      true,
				NewCondition: ConditionBelow,
				Message:      message(a.Symbol, ConditionBelow, a.Price),
			}
		}
		if currentPrice.LessThan(a.Price) {
			return Outcome{
				Triggered:    true,
				Flipped:      true,
				NewCondition: ConditionAbove,
				Message:      message(a.Symbol, ConditionAbove, a.Price),
			}
		}
	}
	return Outcome{}
}

func message(symbol string, cond Condition, price decimal.Decimal) string {
	return fmt.Sprintf("%s is %s %s", symbol, cond, price.String())
}
