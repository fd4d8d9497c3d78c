package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/corebank/backend/internal/credentials"
)

func TestAccountService_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewAccountService(db)
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO accounts").
			WithArgs("Alice", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"account_number"}).AddRow(int64(1)))

		accountNumber, err := service.Create(ctx, "Alice", "pass1234")
		assert.NoError(t, err)
		assert.Equal(t, int64(1), accountNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty name rejected before storage", func(t *testing.T) {
		_, err := service.Create(ctx, "   ", "pass1234")
		assert.ErrorIs(t, err, ErrNameRequired)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("short password rejected before storage", func(t *testing.T) {
		_, err := service.Create(ctx, "Bob", "short")
		assert.ErrorIs(t, err, credentials.ErrPasswordTooShort)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountService_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewAccountService(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT account_number, name, balance, version, totp_secret, created_at, updated_at").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"account_number", "name", "balance", "version", "totp_secret", "created_at", "updated_at"}).
				AddRow(int64(1), "Alice", int64(0), 1, "", now, now))

		acc, err := service.Get(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, "Alice", acc.Name)
		assert.Equal(t, int64(0), acc.Balance)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT account_number, name, balance, version, totp_secret, created_at, updated_at").
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"account_number", "name", "balance", "version", "totp_secret", "created_at", "updated_at"}))

		_, err := service.Get(ctx, 7)
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestAccountService_Authenticate(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewAccountService(db)
	ctx := context.Background()

	hash, err := credentials.Hash("pass1234")
	assert.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		mock.ExpectQuery("SELECT password_hash FROM accounts").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"password_hash"}).AddRow(hash))

		assert.True(t, service.Authenticate(ctx, 1, "pass1234"))
	})

	t.Run("wrong password", func(t *testing.T) {
		mock.ExpectQuery("SELECT password_hash FROM accounts").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"password_hash"}).AddRow(hash))

		assert.False(t, service.Authenticate(ctx, 1, "wrongpass"))
	})

	t.Run("unknown account is indistinguishable from wrong password", func(t *testing.T) {
		mock.ExpectQuery("SELECT password_hash FROM accounts").
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"password_hash"}))

		assert.False(t, service.Authenticate(ctx, 42, "pass1234"))
	})
}

func TestAccountService_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewAccountService(db)
	ctx := context.Background()

	t.Run("deletes account and cascades in one commit", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM accounts WHERE account_number = \\$1").
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, service.Delete(ctx, 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown account", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM accounts WHERE account_number = \\$1").
			WithArgs(int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		assert.ErrorIs(t, service.Delete(ctx, 9), ErrAccountNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountService_ListAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewAccountService(db)
	ctx := context.Background()

	t.Run("no filter, ascending", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT account_number, name, balance, created_at FROM accounts ORDER BY account_number ASC").
			WillReturnRows(sqlmock.NewRows([]string{"account_number", "name", "balance", "created_at"}).
				AddRow(int64(1), "Alice", int64(70000), now).
				AddRow(int64(2), "Bob", int64(30000), now))

		accounts, err := service.ListAll(ctx, "")
		assert.NoError(t, err)
		assert.Len(t, accounts, 2)
		assert.Equal(t, int64(1), accounts[0].AccountNumber)
	})

	t.Run("substring search is lowercased", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT account_number, name, balance, created_at FROM accounts WHERE").
			WithArgs("%ali%").
			WillReturnRows(sqlmock.NewRows([]string{"account_number", "name", "balance", "created_at"}).
				AddRow(int64(1), "Alice", int64(70000), now))

		accounts, err := service.ListAll(ctx, "ALI")
		assert.NoError(t, err)
		assert.Len(t, accounts, 1)
		assert.Equal(t, "Alice", accounts[0].Name)
	})
}
