package credits

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGStoreBalance(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT credits_remaining FROM users`).
		WithArgs("google:1").
		WillReturnRows(sqlmock.NewRows([]string{"credits_remaining"}).AddRow(7))

	store := NewPGStore(db)
	balance, err := store.Balance(context.Background(), "google:1")
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 7 {
		t.Fatalf("expected 7, got %d", balance)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGStoreBalanceNotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT credits_remaining FROM users`).
		WithArgs("google:missing").
		WillReturnRows(sqlmock.NewRows([]string{"credits_remaining"}))

	store := NewPGStore(db)
	if _, err := store.Balance(context.Background(), "google:missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGStoreDebitIsSingleStatement(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`UPDATE users\s+SET credits_remaining = GREATEST`).
		WithArgs(1, "google:1").
		WillReturnRows(sqlmock.NewRows([]string{"credits_remaining"}).AddRow(4))

	store := NewPGStore(db)
	balance, err := store.Debit(context.Background(), "google:1", 1)
	if err != nil {
		t.Fatalf("Debit: %v", err)
	}
	if balance != 4 {
		t.Fatalf("expected 4, got %d", balance)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGStoreAdd(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`UPDATE users\s+SET credits_remaining = credits_remaining \+`).
		WithArgs(10, "google:1").
		WillReturnRows(sqlmock.NewRows([]string{"credits_remaining"}).AddRow(14))

	store := NewPGStore(db)
	balance, err := store.Add(context.Background(), "google:1", 10)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if balance != 14 {
		t.Fatalf("expected 14, got %d", balance)
	}
}
