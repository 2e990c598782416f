package postgres

import (
	"context"
	"database/sql"

	authDomain "price-alerts/internal/domain/auth"
	authinfra "price-alerts/internal/infrastructure/auth"
)

// AuthRepo 提供使用者的存取。
type AuthRepo struct {
	db *sql.DB
}

// NewAuthRepo 建立 AuthRepo。
func NewAuthRepo(db *sql.DB) *AuthRepo {
	return &AuthRepo{db: db}
}

// Create 建立使用者並回傳含 ID 的完整資料。
func (r *AuthRepo) Create(ctx context.Context, user authDomain.User) (authDomain.User, error) {
	const q = `
INSERT INTO users (email, display_name, telegram_id, role, status, password_hash, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id;
`
	if err := r.db.QueryRowContext(ctx, q,
		user.Email,
		user.Name,
		user.TelegramID,
		string(user.Role),
		string(user.Status),
		user.Password,
		user.CreatedAt,
	).Scan(&user.ID); err != nil {
		return authDomain.User{}, err
	}
	return user, nil
}

// FindByEmail 依 email 查詢使用者。
func (r *AuthRepo) FindByEmail(ctx context.Context, email string) (authDomain.User, error) {
	const q = `
SELECT id, email, display_name, telegram_id, role, status, password_hash, created_at
FROM users
WHERE email = $1
LIMIT 1;
`
	return r.scanUser(r.db.QueryRowContext(ctx, q, email))
}

// FindByID 依 ID 查詢使用者。
func (r *AuthRepo) FindByID(ctx context.Context, id string) (authDomain.User, error) {
	const q = `
SELECT id, email, display_name, telegram_id, role, status, password_hash, created_at
FROM users
WHERE id = $1
LIMIT 1;
`
	return r.scanUser(r.db.QueryRowContext(ctx, q, id))
}

func (r *AuthRepo) scanUser(row *sql.Row) (authDomain.User, error) {
	var u authDomain.User
	var role, status string
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.TelegramID, &role, &status, &u.Password, &u.CreatedAt); err != nil {
		return authDomain.User{}, err
	}
	u.Role = authDomain.Role(role)
	u.Status = authDomain.Status(status)
	return u, nil
}

// SeedDefaults 建立預設管理員帳號。
func (r *AuthRepo) SeedDefaults(ctx context.Context) error {
	const q = `
INSERT INTO users (email, display_name, telegram_id, role, status, password_hash, created_at)
VALUES ($1, $2, '', $3, $4, $5, NOW())
ON CONFLICT (email) DO NOTHING;
`
	hash, err := authinfra.HashPassword("password123")
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, q,
		"admin@example.com",
		"Admin",
		string(authDomain.RoleAdmin),
		string(authDomain.StatusActive),
		hash,
	)
	return err
}
