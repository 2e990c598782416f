package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	alertDomain "price-alerts/internal/domain/alert"
	authDomain "price-alerts/internal/domain/auth"
	marketDomain "price-alerts/internal/domain/market"
	settingsDomain "price-alerts/internal/domain/settings"
	authinfra "price-alerts/internal/infrastructure/auth"

	"github.com/shopspring/decimal"
)

// Store 為未設定資料庫時使用的記憶體後備儲存。
type Store struct {
	mu       sync.RWMutex
	users    map[string]authDomain.User
	symbols  map[string]marketDomain.Symbol
	alerts   map[string]alertDomain.Alert
	settings settingsDomain.Core
	idSeq    int64
}

// NewStore 建立新的記憶體 Store 實例。
func NewStore() *Store {
	return &Store{
		users:    make(map[string]authDomain.User),
		symbols:  make(map[string]marketDomain.Symbol),
		alerts:   make(map[string]alertDomain.Alert),
		settings: settingsDomain.Default(),
	}
}

func (s *Store) nextID() string {
	s.idSeq++
	return fmt.Sprintf("id-%d", s.idSeq)
}

// SeedUsers 建立預設帳號供登入測試。
func (s *Store) SeedUsers() {
	hash := func(p string) string {
		h, err := authinfra.HashPassword(p)
		if err != nil {
			return p
		}
		return h
	}
	s.addUser("admin@example.com", hash("password123"), "Admin", authDomain.RoleAdmin)
	s.addUser("user@example.com", hash("password123"), "User", authDomain.RoleUser)
}

func (s *Store) addUser(email, password, name string, role authDomain.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID()
	s.users[id] = authDomain.User{
		ID:        id,
		Email:     email,
		Name:      name,
		Role:      role,
		Status:    authDomain.StatusActive,
		Password:  password,
		CreatedAt: time.Now(),
	}
}

// CreateUser 建立使用者。
func (s *Store) CreateUser(ctx context.Context, user authDomain.User) (authDomain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return authDomain.User{}, fmt.Errorf("email already exists")
		}
	}
	user.ID = s.nextID()
	s.users[user.ID] = user
	return user, nil
}

// FindUserByEmail 依 email 查詢使用者。
func (s *Store) FindUserByEmail(ctx context.Context, email string) (authDomain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return authDomain.User{}, fmt.Errorf("user not found")
}

// FindUserByID 依 ID 查詢使用者。
func (s *Store) FindUserByID(ctx context.Context, id string) (authDomain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return authDomain.User{}, fmt.Errorf("user not found")
	}
	return u, nil
}

// CreateSymbol 新增交易對。
func (s *Store) CreateSymbol(ctx context.Context, sym marketDomain.Symbol) (marketDomain.Symbol, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.symbols {
		if existing.Name == sym.Name {
			return marketDomain.Symbol{}, fmt.Errorf("symbol already exists")
		}
	}
	sym.ID = s.nextID()
	sym.CreatedAt = time.Now()
	sym.UpdatedAt = sym.CreatedAt
	s.symbols[sym.ID] = sym
	return sym, nil
}

// ListSymbols 依名稱排序取回全部交易對。
func (s *Store) ListSymbols(ctx context.Context) ([]marketDomain.Symbol, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]marketDomain.Symbol, 0, len(s.symbols))
	for _, sym := range s.symbols {
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// FindSymbolByID 依 ID 查詢交易對。
func (s *Store) FindSymbolByID(ctx context.Context, id string) (marketDomain.Symbol, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sym, ok := s.symbols[id]
	if !ok {
		return marketDomain.Symbol{}, fmt.Errorf("symbol not found")
	}
	return sym, nil
}

// UpdateSymbolPrice 更新快取價格。
func (s *Store) UpdateSymbolPrice(ctx context.Context, id string, price decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sym, ok := s.symbols[id]
	if !ok {
		return fmt.Errorf("symbol not found")
	}
	sym.LastPrice = price
	sym.UpdatedAt = time.Now()
	s.symbols[id] = sym
	return nil
}

// DeleteSymbol 移除交易對。
func (s *Store) DeleteSymbol(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.symbols[id]; !ok {
		return fmt.Errorf("symbol not found")
	}
	delete(s.symbols, id)
	return nil
}

// LastPrices 取回名稱到快取價格的查表。
func (s *Store) LastPrices(ctx context.Context) (map[string]decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]decimal.Decimal, len(s.symbols))
	for _, sym := range s.symbols {
		out[sym.Name] = sym.LastPrice
	}
	return out, nil
}

// CreateAlert 新增警報。
func (s *Store) CreateAlert(ctx context.Context, a alertDomain.Alert) (alertDomain.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.nextID()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	s.alerts[a.ID] = a
	return a, nil
}

// FindAlertByID 依 ID 查詢警報。
func (s *Store) FindAlertByID(ctx context.Context, id string) (alertDomain.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.alerts[id]
	if !ok {
		return alertDomain.Alert{}, fmt.Errorf("alert not found")
	}
	return a, nil
}

// ListAlertsByUser 取回使用者的警報，可依交易對與啟用狀態過濾。
func (s *Store) ListAlertsByUser(ctx context.Context, userID string, symbols []string, active *bool) ([]alertDomain.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := map[string]bool{}
	for _, sym := range symbols {
		wanted[sym] = true
	}

	var out []alertDomain.Alert
	for _, a := range s.alerts {
		if a.UserID != userID {
			continue
		}
		if len(wanted) > 0 && !wanted[a.Symbol] {
			continue
		}
		if active != nil && a.IsActive != *active {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ListActiveAlerts 取回所有啟用中的警報。
func (s *Store) ListActiveAlerts(ctx context.Context) ([]alertDomain.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []alertDomain.Alert
	for _, a := range s.alerts {
		if a.IsActive {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// UpdateAlert 更新警報內容。
func (s *Store) UpdateAlert(ctx context.Context, a alertDomain.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.alerts[a.ID]
	if !ok {
		return fmt.Errorf("alert not found")
	}
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = time.Now()
	s.alerts[a.ID] = a
	return nil
}

// UpdateAlertState 回寫評估後的 condition/is_active。
func (s *Store) UpdateAlertState(ctx context.Context, a alertDomain.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.alerts[a.ID]
	if !ok {
		return fmt.Errorf("alert not found")
	}
	existing.Condition = a.Condition
	existing.IsActive = a.IsActive
	existing.UpdatedAt = time.Now()
	s.alerts[a.ID] = existing
	return nil
}

// DeleteAlert 移除警報。
func (s *Store) DeleteAlert(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.alerts[id]; !ok {
		return fmt.Errorf("alert not found")
	}
	delete(s.alerts, id)
	return nil
}

// GetSettings 讀取全域工作設定。
func (s *Store) GetSettings(ctx context.Context) (settingsDomain.Core, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, nil
}

// UpdateSettings 覆寫全域工作設定。
func (s *Store) UpdateSettings(ctx context.Context, cfg settingsDomain.Core) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = cfg
	return nil
}

// EnsureDefaultSettings 記憶體版一律已有預設值。
func (s *Store) EnsureDefaultSettings(ctx context.Context) error {
	return nil
}
