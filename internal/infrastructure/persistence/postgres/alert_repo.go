package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	alertDomain "price-alerts/internal/domain/alert"
)

// AlertRepo 提供價格警報的存取。
type AlertRepo struct {
	db *sql.DB
}

// NewAlertRepo 建立 AlertRepo。
func NewAlertRepo(db *sql.DB) *AlertRepo {
	return &AlertRepo{db: db}
}

// Create 新增警報並回傳含 ID 的完整資料。
func (r *AlertRepo) Create(ctx context.Context, a alertDomain.Alert) (alertDomain.Alert, error) {
	const q = `
INSERT INTO alerts (user_id, symbol, price, condition, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
RETURNING id, created_at, updated_at;
`
	if err := r.db.QueryRowContext(ctx, q,
		a.UserID,
		a.Symbol,
		a.Price,
		string(a.Condition),
		a.IsActive,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return alertDomain.Alert{}, err
	}
	return a, nil
}

// FindByID 依 ID 查詢警報。
func (r *AlertRepo) FindByID(ctx context.Context, id string) (alertDomain.Alert, error) {
	const q = `
SELECT id, user_id, symbol, price, condition, is_active, created_at, updated_at
FROM alerts
WHERE id = $1
LIMIT 1;
`
	return r.scanAlert(r.db.QueryRowContext(ctx, q, id))
}

// ListByUser 取回使用者的警報，可依交易對與啟用狀態過濾。
func (r *AlertRepo) ListByUser(ctx context.Context, userID string, filter alertDomain.ListFilter) ([]alertDomain.Alert, error) {
	query := `
SELECT id, user_id, symbol, price, condition, is_active, created_at, updated_at
FROM alerts
WHERE user_id = $1`
	args := []interface{}{userID}

	if len(filter.Symbols) > 0 {
		placeholders := make([]string, 0, len(filter.Symbols))
		for _, s := range filter.Symbols {
			args = append(args, s)
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		query += fmt.Sprintf(" AND symbol IN (%s)", strings.Join(placeholders, ", "))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		query += fmt.Sprintf(" AND is_active = $%d", len(args))
	}
	query += " ORDER BY created_at DESC;"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []alertDomain.Alert
	for rows.Next() {
		var a alertDomain.Alert
		var cond string
		if err := rows.Scan(&a.ID, &a.UserID, &a.Symbol, &a.Price, &cond, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		a.Condition = alertDomain.Condition(cond)
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListActive 取回所有啟用中的警報。
func (r *AlertRepo) ListActive(ctx context.Context) ([]alertDomain.Alert, error) {
	const q = `
SELECT id, user_id, symbol, price, condition, is_active, created_at, updated_at
FROM alerts
WHERE is_active = TRUE
ORDER BY created_at;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []alertDomain.Alert
	for rows.Next() {
		var a alertDomain.Alert
		var cond string
		if err := rows.Scan(&a.ID, &a.UserID, &a.Symbol, &a.Price, &cond, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		a.Condition = alertDomain.Condition(cond)
		out = append(out, a)
	}
	return out, rows.Err()
}

// Update 更新警報內容。
func (r *AlertRepo) Update(ctx context.Context, a alertDomain.Alert) error {
	const q = `
UPDATE alerts
SET symbol = $2, price = $3, condition = $4, is_active = $5, updated_at = NOW()
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q, a.ID, a.Symbol, a.Price, string(a.Condition), a.IsActive)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// UpdateState 回寫評估後的 condition/is_active。
func (r *AlertRepo) UpdateState(ctx context.Context, a alertDomain.Alert) error {
	const q = `
UPDATE alerts
SET condition = $2, is_active = $3, updated_at = NOW()
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q, a.ID, string(a.Condition), a.IsActive)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete 移除警報。
func (r *AlertRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM alerts WHERE id = $1;`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *AlertRepo) scanAlert(row *sql.Row) (alertDomain.Alert, error) {
	var a alertDomain.Alert
	var cond string
	if err := row.Scan(&a.ID, &a.UserID, &a.Symbol, &a.Price, &cond, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return alertDomain.Alert{}, err
	}
	a.Condition = alertDomain.Condition(cond)
	return a, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
