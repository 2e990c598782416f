package postgres

import (
	"context"
	"database/sql"

	marketDomain "price-alerts/internal/domain/market"

	"github.com/shopspring/decimal"
)

// SymbolRepo 提供追蹤交易對的存取。
type SymbolRepo struct {
	db *sql.DB
}

// NewSymbolRepo 建立 SymbolRepo。
func NewSymbolRepo(db *sql.DB) *SymbolRepo {
	return &SymbolRepo{db: db}
}

// Create 新增交易對，名稱重複時回傳錯誤。
func (r *SymbolRepo) Create(ctx context.Context, s marketDomain.Symbol) (marketDomain.Symbol, error) {
	const q = `
INSERT INTO symbols (name, last_price, created_at, updated_at)
VALUES ($1, $2, NOW(), NOW())
RETURNING id, created_at, updated_at;
`
	if err := r.db.QueryRowContext(ctx, q, s.Name, s.LastPrice).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return marketDomain.Symbol{}, err
	}
	return s, nil
}

// List 依名稱排序取回全部交易對。
func (r *SymbolRepo) List(ctx context.Context) ([]marketDomain.Symbol, error) {
	const q = `
SELECT id, name, last_price, created_at, updated_at
FROM symbols
ORDER BY name;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []marketDomain.Symbol
	for rows.Next() {
		var s marketDomain.Symbol
		if err := rows.Scan(&s.ID, &s.Name, &s.LastPrice, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// FindByID 依 ID 查詢交易對。
func (r *SymbolRepo) FindByID(ctx context.Context, id string) (marketDomain.Symbol, error) {
	const q = `
SELECT id, name, last_price, created_at, updated_at
FROM symbols
WHERE id = $1
LIMIT 1;
`
	var s marketDomain.Symbol
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.Name, &s.LastPrice, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return marketDomain.Symbol{}, err
	}
	return s, nil
}

// UpdateLastPrice 更新快取價格。
func (r *SymbolRepo) UpdateLastPrice(ctx context.Context, id string, price decimal.Decimal) error {
	const q = `
UPDATE symbols SET last_price = $2, updated_at = NOW()
WHERE id = $1;
`
	_, err := r.db.ExecContext(ctx, q, id, price)
	return err
}

// Delete 移除交易對。
func (r *SymbolRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM symbols WHERE id = $1;`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// LastPrices 取回名稱到快取價格的查表。
func (r *SymbolRepo) LastPrices(ctx context.Context) (map[string]decimal.Decimal, error) {
	const q = `SELECT name, last_price FROM symbols;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]decimal.Decimal{}
	for rows.Next() {
		var name string
		var price decimal.Decimal
		if err := rows.Scan(&name, &price); err != nil {
			return nil, err
		}
		out[name] = price
	}
	return out, rows.Err()
}
