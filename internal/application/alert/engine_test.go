package alert

import (
	"context"
	"errors"
	"testing"

	alertDomain "price-alerts/internal/domain/alert"
	"price-alerts/internal/domain/auth"
	"price-alerts/internal/domain/settings"

	"github.com/shopspring/decimal"
)

type fakeAlertRepo struct {
	active    []alertDomain.Alert
	updated   []alertDomain.Alert
	listErr   error
	updateErr error
}

func (f *fakeAlertRepo) ListActive(ctx context.Context) ([]alertDomain.Alert, error) {
	return f.active, f.listErr
}

func (f *fakeAlertRepo) UpdateState(ctx context.Context, a alertDomain.Alert) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, a)
	return nil
}

type fakePrices struct {
	prices map[string]decimal.Decimal
	err    error
}

func (f *fakePrices) LastPrices(ctx context.Context) (map[string]decimal.Decimal, error) {
	return f.prices, f.err
}

type fakeUsers struct {
	users map[string]auth.User
}

func (f *fakeUsers) FindByID(ctx context.Context, id string) (auth.User, error) {
	u, ok := f.users[id]
	if !ok {
		return auth.User{}, errors.New("user not found")
	}
	return u, nil
}

type fakeSettingsStore struct {
	cfg settings.Core
	err error
}

func (f *fakeSettingsStore) Get(ctx context.Context) (settings.Core, error) {
	return f.cfg, f.err
}

type fakeChat struct {
	messages []string
	chatIDs  []string
	err      error
}

func (f *fakeChat) SendMessage(ctx context.Context, chatID, text string) error {
	if f.err != nil {
		return f.err
	}
	f.chatIDs = append(f.chatIDs, chatID)
	f.messages = append(f.messages, text)
	return nil
}

type fakeEmail struct {
	to       [][]string
	subjects []string
	bodies   []string
	err      error
}

func (f *fakeEmail) Send(ctx context.Context, to []string, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.to = append(f.to, to)
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, body)
	return nil
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func testUser() auth.User {
	return auth.User{ID: "u1", Email: "trader@example.com", TelegramID: "12345", Role: auth.RoleUser, Status: auth.StatusActive}
}

func newTestEngine(alerts *fakeAlertRepo, prices *fakePrices, users *fakeUsers, store *fakeSettingsStore, chat ChatTransport, email EmailTransport) *Engine {
	return NewEngine(alerts, prices, users, store,
		NewTelegramChannel(chat),
		NewEmailChannel(email, "Crypto alert!"),
	)
}

func TestEngineAboveAlertDeliveredAndDeactivated(t *testing.T) {
	repo := &fakeAlertRepo{active: []alertDomain.Alert{
		{ID: "a1", UserID: "u1", Symbol: "BTCUSDT", Price: dec(t, "25000"), Condition: alertDomain.ConditionAbove, IsActive: true},
	}}
	prices := &fakePrices{prices: map[string]decimal.Decimal{"BTCUSDT": dec(t, "26000")}}
	users := &fakeUsers{users: map[string]auth.User{"u1": testUser()}}
	store := &fakeSettingsStore{cfg: settings.Default()}
	chat := &fakeChat{}
	email := &fakeEmail{}

	engine := newTestEngine(repo, prices, users, store, chat, email)
	if err := engine.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(chat.messages) != 1 || chat.messages[0] != "BTCUSDT is above 25000" {
		t.Errorf("unexpected telegram messages: %v", chat.messages)
	}
	if len(chat.chatIDs) != 1 || chat.chatIDs[0] != "12345" {
		t.Errorf("unexpected chat ids: %v", chat.chatIDs)
	}
	if len(email.bodies) != 0 {
		t.Errorf("email should not be used when telegram succeeds, got %v", email.bodies)
	}
	if len(repo.updated) != 1 {
		t.Fatalf("expected 1 state update, got %d", len(repo.updated))
	}
	if repo.updated[0].IsActive {
		t.Error("alert should be deactivated after delivery")
	}
}

func TestEngineFallsBackToEmailWhenTelegramFails(t *testing.T) {
	repo := &fakeAlertRepo{active: []alertDomain.Alert{
		{ID: "a1", UserID: "u1", Symbol: "BTCUSDT", Price: dec(t, "25000"), Condition: alertDomain.ConditionBelow, IsActive: true},
	}}
	prices := &fakePrices{prices: map[string]decimal.Decimal{"BTCUSDT": dec(t, "24000")}}
	users := &fakeUsers{users: map[string]auth.User{"u1": testUser()}}
	store := &fakeSettingsStore{cfg: settings.Default()}
	chat := &fakeChat{err: errors.New("telegram unavailable")}
	email := &fakeEmail{}

	engine := newTestEngine(repo, prices, users, store, chat, email)
	if err := engine.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(email.bodies) != 1 || email.bodies[0] != "BTCUSDT is below 25000" {
		t.Errorf("unexpected email bodies: %v", email.bodies)
	}
	if email.subjects[0] != "Crypto alert!" {
		t.Errorf("unexpected subject: %s", email.subjects[0])
	}
	if email.to[0][0] != "trader@example.com" {
		t.Errorf("unexpected recipient: %v", email.to[0])
	}
	if len(repo.updated) != 1 || repo.updated[0].IsActive {
		t.Errorf("alert should be deactivated after email fallback, updates=%v", repo.updated)
	}
}

func TestEngineEmailFallbackWhenUserHasNoTelegram(t *testing.T) {
	user := testUser()
	user.TelegramID = ""
	repo := &fakeAlertRepo{active: []alertDomain.Alert{
		{ID: "a1", UserID: "u1", Symbol: "ETHUSDT", Price: dec(t, "1500"), Condition: alertDomain.ConditionAbove, IsActive: true},
	}}
	prices := &fakePrices{prices: map[string]decimal.Decimal{"ETHUSDT": dec(t, "1600")}}
	users := &fakeUsers{users: map[string]auth.User{"u1": user}}
	store := &fakeSettingsStore{cfg: settings.Default()}
	chat := &fakeChat{}
	email := &fakeEmail{}

	engine := newTestEngine(repo, prices, users, store, chat, email)
	if err := engine.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(chat.messages) != 0 {
		t.Errorf("telegram should be skipped without chat id, got %v", chat.messages)
	}
	if len(email.bodies) != 1 {
		t.Fatalf("expected email fallback, got %v", email.bodies)
	}
}

func TestEngineCrossFlipsConditionAndNotifiesNewDirection(t *testing.T) {
	repo := &fakeAlertRepo{active: []alertDomain.Alert{
		{ID: "a1", UserID: "u1", Symbol: "ETHUSDT", Price: dec(t, "26000"), Condition: alertDomain.ConditionCross, IsActive: true},
	}}
	prices := &fakePrices{prices: map[string]decimal.Decimal{"ETHUSDT": dec(t, "27000")}}
	users := &fakeUsers{users: map[string]auth.User{"u1": testUser()}}
	store := &fakeSettingsStore{cfg: settings.Default()}
	chat := &fakeChat{}
	email := &fakeEmail{}

	engine := newTestEngine(repo, prices, users, store, chat, email)
	if err := engine.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(chat.messages) != 1 || chat.messages[0] != "ETHUSDT is below 26000" {
		t.Errorf("cross above target should announce the new direction, got %v", chat.messages)
	}
	if len(repo.updated) != 2 {
		t.Fatalf("expected flip then deactivation updates, got %d", len(repo.updated))
	}
	if repo.updated[0].Condition != alertDomain.ConditionBelow || !repo.updated[0].IsActive {
		t.Errorf("first update should persist the flip while still active: %+v", repo.updated[0])
	}
	if repo.updated[1].IsActive {
		t.Errorf("second update should deactivate the alert: %+v", repo.updated[1])
	}
}

func TestEngineCrossFlipPersistedEvenWhenDeliveryFails(t *testing.T) {
	repo := &fakeAlertRepo{active: []alertDomain.Alert{
		{ID: "a1", UserID: "u1", Symbol: "ETHUSDT", Price: dec(t, "26000"), Condition: alertDomain.ConditionCross, IsActive: true},
	}}
	prices := &fakePrices{prices: map[string]decimal.Decimal{"ETHUSDT": dec(t, "25000")}}
	users := &fakeUsers{users: map[string]auth.User{"u1": testUser()}}
	store := &fakeSettingsStore{cfg: settings.Default()}
	chat := &fakeChat{err: errors.New("telegram unavailable")}
	email := &fakeEmail{err: errors.New("smtp unavailable")}

	engine := newTestEngine(repo, prices, users, store, chat, email)
	if err := engine.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(repo.updated) != 1 {
		t.Fatalf("expected only the flip to be persisted, got %d updates", len(repo.updated))
	}
	if repo.updated[0].Condition != alertDomain.ConditionAbove {
		t.Errorf("cross below target should flip to above, got %s", repo.updated[0].Condition)
	}
	if !repo.updated[0].IsActive {
		t.Error("alert should stay active when no channel delivers")
	}
}

func TestEngineDisabledChannelsLeaveAlertActive(t *testing.T) {
	repo := &fakeAlertRepo{active: []alertDomain.Alert{
		{ID: "a1", UserID: "u1", Symbol: "BTCUSDT", Price: dec(t, "25000"), Condition: alertDomain.ConditionAbove, IsActive: true},
	}}
	prices := &fakePrices{prices: map[string]decimal.Decimal{"BTCUSDT": dec(t, "26000")}}
	users := &fakeUsers{users: map[string]auth.User{"u1": testUser()}}
	store := &fakeSettingsStore{cfg: settings.Core{UpdateLastPrices: true}}
	chat := &fakeChat{}
	email := &fakeEmail{}

	engine := newTestEngine(repo, prices, users, store, chat, email)
	if err := engine.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(chat.messages) != 0 || len(email.bodies) != 0 {
		t.Error("no channel should be attempted when all are disabled")
	}
	if len(repo.updated) != 0 {
		t.Errorf("alert state should be untouched, got %v", repo.updated)
	}
}

func TestEngineSkipsAlertWithoutCachedPrice(t *testing.T) {
	repo := &fakeAlertRepo{active: []alertDomain.Alert{
		{ID: "a1", UserID: "u1", Symbol: "DOGEUSDT", Price: dec(t, "1"), Condition: alertDomain.ConditionAbove, IsActive: true},
	}}
	prices := &fakePrices{prices: map[string]decimal.Decimal{}}
	users := &fakeUsers{users: map[string]auth.User{"u1": testUser()}}
	store := &fakeSettingsStore{cfg: settings.Default()}
	chat := &fakeChat{}
	email := &fakeEmail{}

	engine := newTestEngine(repo, prices, users, store, chat, email)
	if err := engine.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(chat.messages) != 0 || len(repo.updated) != 0 {
		t.Error("alert without a cached price should be skipped")
	}
}

func TestEngineNotTriggeredLeavesStateUntouched(t *testing.T) {
	repo := &fakeAlertRepo{active: []alertDomain.Alert{
		{ID: "a1", UserID: "u1", Symbol: "BTCUSDT", Price: dec(t, "25000"), Condition: alertDomain.ConditionAbove, IsActive: true},
	}}
	prices := &fakePrices{prices: map[string]decimal.Decimal{"BTCUSDT": dec(t, "25000")}}
	users := &fakeUsers{users: map[string]auth.User{"u1": testUser()}}
	store := &fakeSettingsStore{cfg: settings.Default()}
	chat := &fakeChat{}
	email := &fakeEmail{}

	engine := newTestEngine(repo, prices, users, store, chat, email)
	if err := engine.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(chat.messages) != 0 || len(repo.updated) != 0 {
		t.Error("price equal to target must not trigger")
	}
}

func TestEngineReturnsErrorWhenListingFails(t *testing.T) {
	repo := &fakeAlertRepo{listErr: errors.New("db down")}
	prices := &fakePrices{}
	users := &fakeUsers{}
	store := &fakeSettingsStore{cfg: settings.Default()}

	engine := newTestEngine(repo, prices, users, store, &fakeChat{}, &fakeEmail{})
	if err := engine.Run(context.Background()); err == nil {
		t.Fatal("expected error when alert listing fails")
	}
}
