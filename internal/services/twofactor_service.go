package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"
)

// ErrTwoFactorNotEnabled is returned when an account has no TOTP secret yet.
var ErrTwoFactorNotEnabled = errors.New("two-factor authentication not enabled")

const totpIssuer = "CoreBank"

// TwoFactorService manages TOTP secrets and provisioning QR codes for
// account holders. Verification is advisory: nothing in the core gates on
// it, clients decide whether to enforce.
type TwoFactorService struct {
	accounts *AccountService
}

func NewTwoFactorService(accounts *AccountService) *TwoFactorService {
	return &TwoFactorService{accounts: accounts}
}

// Enable generates and stores a fresh TOTP secret for the account,
// replacing any previous one, and returns the secret for manual entry.
func (s *TwoFactorService) Enable(ctx context.Context, accountNumber int64) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: fmt.Sprintf("account-%d", accountNumber),
	})
	if err != nil {
		return "", fmt.Errorf("totp generation failed: %w", err)
	}

	if err := s.accounts.SetTOTPSecret(ctx, accountNumber, key.Secret()); err != nil {
		return "", err
	}

	log.Printf("[2FA] Enabled for account #%d", accountNumber)
	return key.Secret(), nil
}

// ProvisioningQR renders the otpauth URI for the account's secret as a PNG
// suitable for authenticator apps.
func (s *TwoFactorService) ProvisioningQR(ctx context.Context, accountNumber int64) ([]byte, error) {
	acc, err := s.accounts.Get(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if acc.TOTPSecret == "" {
		return nil, ErrTwoFactorNotEnabled
	}

	uri := fmt.Sprintf("otpauth://totp/%s:account-%d?secret=%s&issuer=%s",
		url.PathEscape(totpIssuer), accountNumber,
		url.QueryEscape(acc.TOTPSecret), url.QueryEscape(totpIssuer))

	png, err := qrcode.Encode(uri, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("qr encoding failed: %w", err)
	}
	return png, nil
}

// Verify checks a 6-digit code against the account's secret.
func (s *TwoFactorService) Verify(ctx context.Context, accountNumber int64, code string) (bool, error) {
	acc, err := s.accounts.Get(ctx, accountNumber)
	if err != nil {
		return false, err
	}
	if acc.TOTPSecret == "" {
		return false, ErrTwoFactorNotEnabled
	}
	return totp.Validate(code, acc.TOTPSecret), nil
}
