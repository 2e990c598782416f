package binance

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceSourceAdapter implements the market.PriceSource interface.
type PriceSourceAdapter struct {
	client *Client
}

func NewPriceSourceAdapter(client *Client) *PriceSourceAdapter {
	return &PriceSourceAdapter{client: client}
}

// LastPrice 查詢最新成交價並轉成 decimal。
func (a *PriceSourceAdapter) LastPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	raw, err := a.client.GetPrice(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse price %q: %w", raw, err)
	}
	return price, nil
}
