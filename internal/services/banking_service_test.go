package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/corebank/backend/internal/credentials"
)

func newBankingFixture(t *testing.T) (*BankingService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	accounts := NewAccountService(db)
	ledger := NewLedgerService(db, nil)
	loans := NewLoanService(db, nil)
	banking := NewBankingService(db, accounts, ledger, loans, nil)
	return banking, mock, func() { db.Close() }
}

func TestBankingService_LoginAccount(t *testing.T) {
	banking, mock, cleanup := newBankingFixture(t)
	defer cleanup()
	ctx := context.Background()

	hash, err := credentials.Hash("pass1234")
	assert.NoError(t, err)

	t.Run("valid credentials mint a token", func(t *testing.T) {
		mock.ExpectQuery("SELECT password_hash FROM accounts").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"password_hash"}).AddRow(hash))

		token, err := banking.LoginAccount(ctx, 1, "pass1234")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		mock.ExpectQuery("SELECT password_hash FROM accounts").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"password_hash"}).AddRow(hash))

		_, err := banking.LoginAccount(ctx, 1, "nope-nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown account gives the same failure", func(t *testing.T) {
		mock.ExpectQuery("SELECT password_hash FROM accounts").
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"password_hash"}))

		_, err := banking.LoginAccount(ctx, 42, "pass1234")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestBankingService_LoginAdmin(t *testing.T) {
	banking, mock, cleanup := newBankingFixture(t)
	defer cleanup()
	ctx := context.Background()

	hash, err := credentials.Hash("admin123")
	assert.NoError(t, err)

	t.Run("valid credentials update last_login", func(t *testing.T) {
		mock.ExpectQuery("SELECT password_hash FROM admin").
			WithArgs("admin").
			WillReturnRows(sqlmock.NewRows([]string{"password_hash"}).AddRow(hash))
		mock.ExpectExec("UPDATE admin SET last_login").
			WithArgs("admin").
			WillReturnResult(sqlmock.NewResult(0, 1))

		token, err := banking.LoginAdmin(ctx, "Admin", "admin123")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wrong password", func(t *testing.T) {
		mock.ExpectQuery("SELECT password_hash FROM admin").
			WithArgs("admin").
			WillReturnRows(sqlmock.NewRows([]string{"password_hash"}).AddRow(hash))

		_, err := banking.LoginAdmin(ctx, "admin", "wrongpass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		mock.ExpectQuery("SELECT password_hash FROM admin").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"password_hash"}))

		_, err := banking.LoginAdmin(ctx, "ghost", "admin123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestBankingService_CreateAdmin(t *testing.T) {
	banking, mock, cleanup := newBankingFixture(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("creates with lowercased username", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("jord").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("INSERT INTO admin").
			WithArgs("jord", sqlmock.AnyArg(), "Jordan Lee").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, banking.CreateAdmin(ctx, "  Jord ", "Jordan Lee", "s3cret!pw"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate username", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("jord").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		assert.ErrorIs(t, banking.CreateAdmin(ctx, "jord", "Jordan Lee", "s3cret!pw"), ErrAdminExists)
	})

	t.Run("password policy applies to admins too", func(t *testing.T) {
		assert.ErrorIs(t, banking.CreateAdmin(ctx, "newbie", "New Admin", "short"), credentials.ErrPasswordTooShort)
	})
}

func TestBankingService_ListAdmins(t *testing.T) {
	banking, mock, cleanup := newBankingFixture(t)
	defer cleanup()

	lastLogin := time.Now()
	mock.ExpectQuery("SELECT username, full_name, last_login FROM admin").
		WillReturnRows(sqlmock.NewRows([]string{"username", "full_name", "last_login"}).
			AddRow("admin", "System Administrator", lastLogin).
			AddRow("jord", "Jordan Lee", nil))

	admins, err := banking.ListAdmins(context.Background())
	assert.NoError(t, err)
	assert.Len(t, admins, 2)
	assert.NotNil(t, admins[0].LastLogin)
	assert.Nil(t, admins[1].LastLogin)
}

func TestBankingService_DashboardStats(t *testing.T) {
	banking, mock, cleanup := newBankingFixture(t)
	defer cleanup()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\), COALESCE\\(SUM\\(balance\\), 0\\) FROM accounts").
		WillReturnRows(sqlmock.NewRows([]string{"count", "sum"}).AddRow(int64(3), int64(250000)))
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM transactions").
		WithArgs("Deposit").
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(int64(400000)))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM loan_applications").
		WithArgs("Pending").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM transactions").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(12)))

	stats, err := banking.DashboardStats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalAccounts)
	assert.Equal(t, int64(250000), stats.TotalBalance)
	assert.Equal(t, int64(400000), stats.TotalDeposited)
	assert.Equal(t, int64(2), stats.PendingLoans)
	assert.Equal(t, int64(12), stats.RecentTransactions)
	assert.NoError(t, mock.ExpectationsWereMet())
}
