package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"price-alerts/internal/domain/auth"
)

// UserRepository 存取使用者。
type UserRepository interface {
	Create(ctx context.Context, user auth.User) (auth.User, error)
	FindByEmail(ctx context.Context, email string) (auth.User, error)
	FindByID(ctx context.Context, id string) (auth.User, error)
}

// PasswordHasher 產生與驗證密碼雜湊。
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hashed, plain string) bool
}

// TokenIssuer 簽發 access token。
type TokenIssuer interface {
	Issue(user auth.User) (auth.TokenPair, error)
}

// Permission 表示功能權限。
type Permission string

const (
	PermAlertWrite     Permission = "alert:write"
	PermSymbolManage   Permission = "symbol:manage"
	PermSettingsManage Permission = "settings:manage"
	PermJobsTrigger    Permission = "jobs:trigger"
)

// RolePermissions 簡化權限表。
var RolePermissions = map[auth.Role][]Permission{
	auth.RoleAdmin: {
		PermAlertWrite,
		PermSymbolManage,
		PermSettingsManage,
		PermJobsTrigger,
	},
	auth.RoleUser: {
		PermAlertWrite,
	},
}

// LoginUseCase 驗證帳密並簽發 token。
type LoginUseCase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewLoginUseCase(users UserRepository, hasher PasswordHasher, tokens TokenIssuer) *LoginUseCase {
	return &LoginUseCase{users: users, hasher: hasher, tokens: tokens}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	User  auth.User
	Token auth.TokenPair
}

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (LoginResult, error) {
	var out LoginResult
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || input.Password == "" {
		return out, errors.New("email and password required")
	}

	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return out, fmt.Errorf("find user: %w", err)
	}
	if !user.IsActive() {
		return out, errors.New("user disabled")
	}
	if !uc.hasher.Compare(user.Password, input.Password) {
		return out, errors.New("invalid credentials")
	}

	token, err := uc.tokens.Issue(user)
	if err != nil {
		return out, fmt.Errorf("issue token: %w", err)
	}

	out.User = user
	out.Token = token
	return out, nil
}

// RegisterUseCase 建立新使用者並簽發 token。
type RegisterUseCase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	now    func() time.Time
}

func NewRegisterUseCase(users UserRepository, hasher PasswordHasher, tokens TokenIssuer) *RegisterUseCase {
	return &RegisterUseCase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

type RegisterInput struct {
	Email      string
	Name       string
	Password   string
	TelegramID string
}

func (uc *RegisterUseCase) Execute(ctx context.Context, input RegisterInput) (LoginResult, error) {
	var out LoginResult
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || input.Password == "" {
		return out, errors.New("email and password required")
	}
	if len(input.Password) < 8 {
		return out, errors.New("password must be at least 8 characters")
	}

	if _, err := uc.users.FindByEmail(ctx, email); err == nil {
		return out, errors.New("email already registered")
	}

	hashed, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return out, fmt.Errorf("hash password: %w", err)
	}

	user := auth.User{
		Email:      email,
		Name:       strings.TrimSpace(input.Name),
		TelegramID: strings.TrimSpace(input.TelegramID),
		Role:       auth.RoleUser,
		Status:     auth.StatusActive,
		Password:   hashed,
		CreatedAt:  uc.now(),
	}
	if err := user.Validate(); err != nil {
		return out, err
	}

	created, err := uc.users.Create(ctx, user)
	if err != nil {
		return out, fmt.Errorf("create user: %w", err)
	}

	token, err := uc.tokens.Issue(created)
	if err != nil {
		return out, fmt.Errorf("issue token: %w", err)
	}

	out.User = created
	out.Token = token
	return out, nil
}

// Authorizer 檢查角色/權限。
type Authorizer struct{}

func NewAuthorizer() *Authorizer {
	return &Authorizer{}
}

func (a *Authorizer) HasPermission(role auth.Role, perm Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}
