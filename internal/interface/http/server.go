package httpapi

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	alertApp "price-alerts/internal/application/alert"
	authApp "price-alerts/internal/application/auth"
	"price-alerts/internal/application/jobs"
	marketApp "price-alerts/internal/application/market"
	alertDomain "price-alerts/internal/domain/alert"
	marketDomain "price-alerts/internal/domain/market"
	settingsDomain "price-alerts/internal/domain/settings"
	"price-alerts/internal/infra/memory"
	authinfra "price-alerts/internal/infrastructure/auth"
	"price-alerts/internal/infrastructure/config"
	"price-alerts/internal/infrastructure/external/binance"
	"price-alerts/internal/infrastructure/notify"
	"price-alerts/internal/infrastructure/persistence/postgres"
)

const seedTimeout = 5 * time.Second

// AlertRepository 供 HTTP 層存取警報。
type AlertRepository interface {
	Create(ctx context.Context, a alertDomain.Alert) (alertDomain.Alert, error)
	FindByID(ctx context.Context, id string) (alertDomain.Alert, error)
	ListByUser(ctx context.Context, userID string, filter alertDomain.ListFilter) ([]alertDomain.Alert, error)
	Update(ctx context.Context, a alertDomain.Alert) error
	Delete(ctx context.Context, id string) error
}

// SymbolRepository 供 HTTP 層存取交易對。
type SymbolRepository interface {
	Create(ctx context.Context, s marketDomain.Symbol) (marketDomain.Symbol, error)
	List(ctx context.Context) ([]marketDomain.Symbol, error)
	FindByID(ctx context.Context, id string) (marketDomain.Symbol, error)
	Delete(ctx context.Context, id string) error
}

// SettingsRepository 供 HTTP 層存取全域工作設定。
type SettingsRepository interface {
	Get(ctx context.Context) (settingsDomain.Core, error)
	Update(ctx context.Context, cfg settingsDomain.Core) error
}

// Server 封裝 HTTP 路由與依賴。
type Server struct {
	mux        *http.ServeMux
	store      *memory.Store
	db         *sql.DB
	tokenSvc   *authinfra.JWTIssuer
	loginUC    *authApp.LoginUseCase
	registerUC *authApp.RegisterUseCase
	authz      *authApp.Authorizer
	users      authApp.UserRepository
	alerts     AlertRepository
	symbols    SymbolRepository
	settings   SettingsRepository
	refreshUC  *marketApp.RefreshUseCase
	dispatch   *alertApp.Engine
}

// NewServer 建立 API 伺服器，預設使用記憶體資料存儲；若配置了資料庫則注入
// 對應的 repository。
func NewServer(cfg config.Config, db *sql.DB) *Server {
	store := memory.NewStore()

	var (
		users    authApp.UserRepository
		alerts   AlertRepository
		symbols  SymbolRepository
		settings SettingsRepository

		refreshSymbols  marketApp.SymbolRepository
		dispatchAlerts  alertApp.AlertRepository
		dispatchPrices  alertApp.SymbolPrices
		dispatchUsers   alertApp.UserDirectory
		settingsForJobs alertApp.SettingsStore
	)
	if db != nil {
		authRepo := postgres.NewAuthRepo(db)
		alertRepo := postgres.NewAlertRepo(db)
		symbolRepo := postgres.NewSymbolRepo(db)
		settingsRepo := postgres.NewSettingsRepo(db)

		users = authRepo
		alerts = alertRepo
		symbols = symbolRepo
		settings = settingsRepo
		refreshSymbols = symbolRepo
		dispatchAlerts = alertRepo
		dispatchPrices = symbolRepo
		dispatchUsers = authRepo
		settingsForJobs = settingsRepo

		ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
		defer cancel()
		if err := settingsRepo.EnsureDefault(ctx); err != nil {
			log.Printf("[Server] ensure default settings failed: %v", err)
		}
		if err := authRepo.SeedDefaults(ctx); err != nil {
			log.Printf("[Server] seed users failed: %v", err)
		}
	} else {
		store.SeedUsers()
		users = memory.UserRepo{Store: store}
		alerts = memory.AlertRepo{Store: store}
		symbols = memory.SymbolRepo{Store: store}
		settings = memory.SettingsRepo{Store: store}
		refreshSymbols = memory.SymbolRepo{Store: store}
		dispatchAlerts = memory.AlertRepo{Store: store}
		dispatchPrices = memory.SymbolRepo{Store: store}
		dispatchUsers = memory.UserRepo{Store: store}
		settingsForJobs = memory.SettingsRepo{Store: store}
	}

	ttl := cfg.Auth.TokenTTL
	if ttl == 0 {
		ttl = 30 * time.Minute
	}
	tokenSvc := authinfra.NewJWTIssuer(cfg.Auth.Secret, ttl)
	hasher := authinfra.BcryptHasher{}

	priceSource := binance.NewPriceSourceAdapter(binance.NewClient(cfg.Binance.BaseURL))
	refreshUC := marketApp.NewRefreshUseCase(refreshSymbols, priceSource, settingsForJobs)

	tgClient := notify.NewTelegramClient(cfg.Notifier.Telegram.Token)
	emailClient := notify.NewEmailClient(
		cfg.Notifier.Email.Host,
		cfg.Notifier.Email.Port,
		cfg.Notifier.Email.Account,
		cfg.Notifier.Email.Password,
	)
	dispatch := alertApp.NewEngine(dispatchAlerts, dispatchPrices, dispatchUsers, settingsForJobs,
		alertApp.NewTelegramChannel(tgClient),
		alertApp.NewEmailChannel(emailClient, cfg.Notifier.Email.Subject),
	)

	s := &Server{
		mux:        http.NewServeMux(),
		store:      store,
		db:         db,
		tokenSvc:   tokenSvc,
		loginUC:    authApp.NewLoginUseCase(users, hasher, tokenSvc),
		registerUC: authApp.NewRegisterUseCase(users, hasher, tokenSvc),
		authz:      authApp.NewAuthorizer(),
		users:      users,
		alerts:     alerts,
		symbols:    symbols,
		settings:   settings,
		refreshUC:  refreshUC,
		dispatch:   dispatch,
	}
	s.registerRoutes()
	return s
}

// Handler 回傳路由處理器，供 HTTP server 掛載。
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Store 主要用於測試注入初始資料。
func (s *Server) Store() *memory.Store {
	return s.store
}

// RefreshJob 回傳價格更新工作，供背景 worker 排程。
func (s *Server) RefreshJob() jobs.Job {
	return jobs.JobFunc(s.refreshUC.Execute)
}

// DispatchJob 回傳警報派送工作，供背景 worker 排程。
func (s *Server) DispatchJob() jobs.Job {
	return jobs.JobFunc(s.dispatch.Run)
}

// ensureSymbol 讓警報引用的交易對自動進入追蹤清單，已存在則忽略。
func (s *Server) ensureSymbol(ctx context.Context, name string) {
	symbols, err := s.symbols.List(ctx)
	if err != nil {
		log.Printf("[Server] list symbols failed: %v", err)
		return
	}
	for _, sym := range symbols {
		if sym.Name == name {
			return
		}
	}
	if _, err := s.symbols.Create(ctx, marketDomain.Symbol{Name: name}); err != nil {
		log.Printf("[Server] auto-create symbol %s failed: %v", name, err)
	}
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/api/health", s.wrapGet(s.handleHealth))
	s.mux.Handle("/api/auth/register", s.wrapPost(s.handleRegister))
	s.mux.Handle("/api/auth/login", s.wrapPost(s.handleLogin))
	s.mux.Handle("/api/auth/me", s.requireAuth("", s.wrapGet(s.handleMe)))
	s.mux.Handle("/api/alerts", s.requireAuth(authApp.PermAlertWrite, s.wrapMethods(s.handleAlerts, http.MethodGet, http.MethodPost)))
	s.mux.Handle("/api/alerts/", s.requireAuth(authApp.PermAlertWrite, s.wrapMethods(s.handleAlertItem, http.MethodGet, http.MethodPut, http.MethodDelete)))
	s.mux.Handle("/api/symbols", s.requireAuth("", s.wrapMethods(s.handleSymbols, http.MethodGet, http.MethodPost)))
	s.mux.Handle("/api/symbols/", s.requireAuth("", s.wrapMethods(s.handleSymbolItem, http.MethodGet, http.MethodDelete)))
	s.mux.Handle("/api/admin/settings", s.requireAuth(authApp.PermSettingsManage, s.wrapMethods(s.handleSettings, http.MethodGet, http.MethodPut)))
	s.mux.Handle("/api/admin/jobs/refresh-prices", s.requireAuth(authApp.PermJobsTrigger, s.wrapPost(s.handleRefreshPrices)))
	s.mux.Handle("/api/admin/jobs/dispatch-alerts", s.requireAuth(authApp.PermJobsTrigger, s.wrapPost(s.handleDispatchAlerts)))
}
