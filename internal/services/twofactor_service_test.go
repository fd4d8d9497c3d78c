package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
)

func expectAccountWithSecret(mock sqlmock.Sqlmock, accountNumber int64, secret string) {
	now := time.Now()
	mock.ExpectQuery("SELECT account_number, name, balance, version, totp_secret, created_at, updated_at").
		WithArgs(accountNumber).
		WillReturnRows(sqlmock.NewRows([]string{"account_number", "name", "balance", "version", "totp_secret", "created_at", "updated_at"}).
			AddRow(accountNumber, "Alice", int64(0), 1, secret, now, now))
}

func TestTwoFactorService_Enable(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewTwoFactorService(NewAccountService(db))

	mock.ExpectExec("UPDATE accounts SET totp_secret").
		WithArgs(sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	secret, err := service.Enable(context.Background(), 1)
	assert.NoError(t, err)
	assert.NotEmpty(t, secret)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTwoFactorService_Verify(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewTwoFactorService(NewAccountService(db))
	ctx := context.Background()

	key, err := totp.Generate(totp.GenerateOpts{Issuer: "test", AccountName: "account-1"})
	assert.NoError(t, err)

	t.Run("accepts a current code", func(t *testing.T) {
		code, err := totp.GenerateCode(key.Secret(), time.Now())
		assert.NoError(t, err)

		expectAccountWithSecret(mock, 1, key.Secret())

		ok, err := service.Verify(ctx, 1, code)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("rejects a wrong code", func(t *testing.T) {
		expectAccountWithSecret(mock, 1, key.Secret())

		ok, err := service.Verify(ctx, 1, "000000")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("account without a secret", func(t *testing.T) {
		expectAccountWithSecret(mock, 1, "")

		_, err := service.Verify(ctx, 1, "123456")
		assert.ErrorIs(t, err, ErrTwoFactorNotEnabled)
	})
}

func TestTwoFactorService_ProvisioningQR(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewTwoFactorService(NewAccountService(db))
	ctx := context.Background()

	t.Run("renders a PNG for an enabled account", func(t *testing.T) {
		expectAccountWithSecret(mock, 1, "JBSWY3DPEHPK3PXP")

		png, err := service.ProvisioningQR(ctx, 1)
		assert.NoError(t, err)
		assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
	})

	t.Run("not enabled", func(t *testing.T) {
		expectAccountWithSecret(mock, 1, "")

		_, err := service.ProvisioningQR(ctx, 1)
		assert.ErrorIs(t, err, ErrTwoFactorNotEnabled)
	})
}
