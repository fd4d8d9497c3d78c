package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/viper"

	"github.com/corebank/backend/internal/services"
)

type AuthHandler struct {
	banking   *services.BankingService
	twoFactor *services.TwoFactorService
	redis     *redis.Client
	validator *services.ValidationHelper
}

func NewAuthHandler(banking *services.BankingService, twoFactor *services.TwoFactorService, redisClient *redis.Client) *AuthHandler {
	return &AuthHandler{
		banking:   banking,
		twoFactor: twoFactor,
		redis:     redisClient,
		validator: services.NewValidationHelper(),
	}
}

// RegisterRequest represents the account registration payload
// @Description Account registration request structure
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1" example:"Alice"`        // Account holder display name
	Password string `json:"password" validate:"required,min=8" example:"pass1234"` // Account password
}

// LoginRequest represents the account login payload
// @Description Account login request structure
type LoginRequest struct {
	AccountNumber int64  `json:"account_number" validate:"required,gt=0" example:"1"` // Account number
	Password      string `json:"password" validate:"required" example:"pass1234"`     // Account password
}

// AdminLoginRequest represents the administrator login payload
// @Description Administrator login request structure
type AdminLoginRequest struct {
	Username string `json:"username" validate:"required" example:"admin"`    // Admin username
	Password string `json:"password" validate:"required" example:"admin123"` // Admin password
}

// AuthResponse represents a successful authentication
// @Description Authentication response structure
type AuthResponse struct {
	Token         string `json:"token"`                    // JWT session token
	AccountNumber int64  `json:"account_number,omitempty"` // Account number for holders
	Username      string `json:"username,omitempty"`       // Username for administrators
}

// Register opens a new account
// @Summary Register a new account
// @Description Create a bank account with a display name and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration request"
// @Success 201 {object} AuthResponse "Account created"
// @Failure 400 {object} services.ErrorResponse "Invalid request"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		services.SendErrorResponse(w, "Invalid request", http.StatusBadRequest, nil)
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	accountNumber, err := h.banking.Accounts().Create(r.Context(), req.Name, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	token, err := services.GenerateJWT(fmt.Sprintf("%d", accountNumber), services.RoleUser)
	if err != nil {
		log.Printf("[AUTH] JWT generation failed for account #%d: %v", accountNumber, err)
		services.SendErrorResponse(w, "Failed to generate token", http.StatusInternalServerError, nil)
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{Token: token, AccountNumber: accountNumber})
}

// Login authenticates an account holder
// @Summary Login account holder
// @Description Authenticate with account number and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login request"
// @Success 200 {object} AuthResponse "Login successful"
// @Failure 401 {object} services.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		services.SendErrorResponse(w, "Invalid request", http.StatusBadRequest, nil)
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	token, err := h.banking.LoginAccount(r.Context(), req.AccountNumber, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("[AUTH] Login successful for account #%d", req.AccountNumber)
	writeJSON(w, http.StatusOK, AuthResponse{Token: token, AccountNumber: req.AccountNumber})
}

// AdminLogin authenticates an administrator
// @Summary Login administrator
// @Description Authenticate with admin username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body AdminLoginRequest true "Admin login request"
// @Success 200 {object} AuthResponse "Login successful"
// @Failure 401 {object} services.ErrorResponse "Invalid credentials"
// @Router /auth/admin/login [post]
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req AdminLoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		services.SendErrorResponse(w, "Invalid request", http.StatusBadRequest, nil)
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	token, err := h.banking.LoginAdmin(r.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("[AUTH] Admin login successful for %s", strings.ToLower(req.Username))
	writeJSON(w, http.StatusOK, AuthResponse{Token: token, Username: strings.ToLower(req.Username)})
}

// Logout revokes the presented session token
// @Summary Logout
// @Description Blacklist the current session token until it expires
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Logout successful"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("Authorization")
	if token != "" && len(token) > 7 {
		token = token[7:] // Remove "Bearer " prefix

		if h.redis != nil {
			ctx := context.Background()
			key := fmt.Sprintf("blacklist:%s", token)
			// Blacklist token until its expiration
			expiry := time.Duration(viper.GetInt("jwt.expiry_hours")) * time.Hour
			if err := h.redis.Set(ctx, key, "1", expiry).Err(); err != nil {
				log.Printf("[AUTH] Failed to blacklist token: %v", err)
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// Me returns the authenticated account's details
// @Summary Get own account
// @Description Return the authenticated account holder's record
// @Tags accounts
// @Produce json
// @Success 200 {object} models.Account "Account details"
// @Failure 404 {object} services.ErrorResponse "Account not found"
// @Router /accounts/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	accountNumber, ok := subjectAccountNumber(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	acc, err := h.banking.Accounts().Get(r.Context(), accountNumber)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

// TwoFactorVerifyRequest carries a TOTP code
// @Description TOTP verification request
type TwoFactorVerifyRequest struct {
	Code string `json:"code" validate:"required,len=6" example:"123456"` // 6-digit TOTP code
}

// EnableTwoFactor provisions a TOTP secret
// @Summary Enable two-factor authentication
// @Description Generate and store a TOTP secret for the account
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Secret for manual entry"
// @Router /auth/2fa/enable [post]
func (h *AuthHandler) EnableTwoFactor(w http.ResponseWriter, r *http.Request) {
	accountNumber, ok := subjectAccountNumber(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	secret, err := h.twoFactor.Enable(r.Context(), accountNumber)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"secret": secret})
}

// TwoFactorQR renders the provisioning QR code
// @Summary Two-factor provisioning QR
// @Description PNG QR code for authenticator apps
// @Tags auth
// @Produce png
// @Success 200 {string} binary "QR code PNG"
// @Failure 409 {object} services.ErrorResponse "Not enabled"
// @Router /auth/2fa/qr [get]
func (h *AuthHandler) TwoFactorQR(w http.ResponseWriter, r *http.Request) {
	accountNumber, ok := subjectAccountNumber(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	png, err := h.twoFactor.ProvisioningQR(r.Context(), accountNumber)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// VerifyTwoFactor checks a TOTP code
// @Summary Verify two-factor code
// @Description Validate a 6-digit TOTP code for the account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body TwoFactorVerifyRequest true "TOTP code"
// @Success 200 {object} map[string]bool "Verification result"
// @Router /auth/2fa/verify [post]
func (h *AuthHandler) VerifyTwoFactor(w http.ResponseWriter, r *http.Request) {
	accountNumber, ok := subjectAccountNumber(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req TwoFactorVerifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		services.SendErrorResponse(w, "Invalid request", http.StatusBadRequest, nil)
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	valid, err := h.twoFactor.Verify(r.Context(), accountNumber, req.Code)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": valid})
}
