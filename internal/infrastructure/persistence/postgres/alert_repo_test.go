package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	alertDomain "price-alerts/internal/domain/alert"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func TestAlertRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %s", err)
	}
	defer db.Close()

	repo := NewAlertRepo(db)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO alerts").
		WithArgs("u-1", "BTCUSDT", mustDecimal(t, "25000"), "above", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("a-1", now, now))

	created, err := repo.Create(context.Background(), alertDomain.Alert{
		UserID:    "u-1",
		Symbol:    "BTCUSDT",
		Price:     mustDecimal(t, "25000"),
		Condition: alertDomain.ConditionAbove,
		IsActive:  true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID != "a-1" {
		t.Errorf("unexpected id: %s", created.ID)
	}
}

func TestAlertRepo_ListActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %s", err)
	}
	defer db.Close()

	repo := NewAlertRepo(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "user_id", "symbol", "price", "condition", "is_active", "created_at", "updated_at"}).
		AddRow("a-1", "u-1", "BTCUSDT", "25000", "above", true, now, now).
		AddRow("a-2", "u-2", "ETHUSDT", "1600.5", "cross", true, now, now)

	mock.ExpectQuery("SELECT (.+) FROM alerts").WillReturnRows(rows)

	alerts, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}
	if alerts[1].Condition != alertDomain.ConditionCross {
		t.Errorf("unexpected condition: %s", alerts[1].Condition)
	}
	if !alerts[1].Price.Equal(mustDecimal(t, "1600.5")) {
		t.Errorf("unexpected price: %s", alerts[1].Price)
	}
}

func TestAlertRepo_ListByUserWithFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %s", err)
	}
	defer db.Close()

	repo := NewAlertRepo(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "user_id", "symbol", "price", "condition", "is_active", "created_at", "updated_at"}).
		AddRow("a-1", "u-1", "BTCUSDT", "25000", "below", true, now, now)

	mock.ExpectQuery("SELECT (.+) FROM alerts").
		WithArgs("u-1", "BTCUSDT", "ETHUSDT", true).
		WillReturnRows(rows)

	active := true
	alerts, err := repo.ListByUser(context.Background(), "u-1", alertDomain.ListFilter{
		Symbols: []string{"BTCUSDT", "ETHUSDT"},
		Active:  &active,
	})
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(alerts) != 1 || alerts[0].ID != "a-1" {
		t.Errorf("unexpected alerts: %+v", alerts)
	}
}

func TestAlertRepo_UpdateState(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %s", err)
	}
	defer db.Close()

	repo := NewAlertRepo(db)

	mock.ExpectExec("UPDATE alerts").
		WithArgs("a-1", "below", false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdateState(context.Background(), alertDomain.Alert{
		ID:        "a-1",
		Condition: alertDomain.ConditionBelow,
		IsActive:  false,
	})
	if err != nil {
		t.Fatalf("UpdateState failed: %v", err)
	}
}

func TestAlertRepo_DeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %s", err)
	}
	defer db.Close()

	repo := NewAlertRepo(db)

	mock.ExpectExec("DELETE FROM alerts").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), "missing")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}
