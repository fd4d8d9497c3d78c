package handlers

import (
	"net/http"
	"strconv"

	"github.com/corebank/backend/internal/services"
)

type TransactionHandler struct {
	banking   *services.BankingService
	validator *services.ValidationHelper
}

func NewTransactionHandler(banking *services.BankingService) *TransactionHandler {
	return &TransactionHandler{
		banking:   banking,
		validator: services.NewValidationHelper(),
	}
}

// MoneyRequest represents a deposit or withdrawal payload
// @Description Deposit/withdrawal request structure
type MoneyRequest struct {
	Amount      int64  `json:"amount" validate:"required,gt=0" example:"100000"` // Amount in cents
	Description string `json:"description" validate:"max=200" example:"Salary"`  // Optional description
}

// TransferRequest represents a transfer payload
// @Description Transfer request structure
type TransferRequest struct {
	ToAccount   int64  `json:"to_account" validate:"required,gt=0" example:"2"` // Recipient account number
	Amount      int64  `json:"amount" validate:"required,gt=0" example:"30000"` // Amount in cents
	Description string `json:"description" validate:"max=200" example:"Rent"`   // Optional description
}

// BalanceResponse carries a current balance
// @Description Balance response structure
type BalanceResponse struct {
	AccountNumber int64 `json:"account_number"` // Account number
	Balance       int64 `json:"balance"`        // Balance in cents
}

// Deposit credits the authenticated account
// @Summary Deposit funds
// @Description Atomically credit the account and append a Deposit record
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body MoneyRequest true "Deposit request"
// @Success 200 {object} BalanceResponse "Updated balance"
// @Failure 400 {object} services.ErrorResponse "Invalid amount"
// @Router /transactions/deposit [post]
func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	accountNumber, ok := subjectAccountNumber(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req MoneyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		services.SendErrorResponse(w, "Invalid request", http.StatusBadRequest, nil)
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	if err := h.banking.Ledger().Deposit(r.Context(), accountNumber, req.Amount, req.Description); err != nil {
		respondServiceError(w, err)
		return
	}

	h.respondBalance(w, r, accountNumber)
}

// Withdraw debits the authenticated account
// @Summary Withdraw funds
// @Description Atomically debit the account if the balance covers the amount
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body MoneyRequest true "Withdrawal request"
// @Success 200 {object} BalanceResponse "Updated balance"
// @Failure 422 {object} services.ErrorResponse "Insufficient funds"
// @Router /transactions/withdraw [post]
func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	accountNumber, ok := subjectAccountNumber(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req MoneyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		services.SendErrorResponse(w, "Invalid request", http.StatusBadRequest, nil)
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	if err := h.banking.Ledger().Withdraw(r.Context(), accountNumber, req.Amount, req.Description); err != nil {
		respondServiceError(w, err)
		return
	}

	h.respondBalance(w, r, accountNumber)
}

// Transfer moves funds to another account
// @Summary Transfer funds
// @Description Atomically move funds: one TransferOut and one TransferIn leg
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body TransferRequest true "Transfer request"
// @Success 200 {object} BalanceResponse "Updated sender balance"
// @Failure 404 {object} services.ErrorResponse "Recipient not found"
// @Failure 422 {object} services.ErrorResponse "Insufficient funds"
// @Router /transactions/transfer [post]
func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	accountNumber, ok := subjectAccountNumber(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req TransferRequest
	if err := decodeJSON(w, r, &req); err != nil {
		services.SendErrorResponse(w, "Invalid request", http.StatusBadRequest, nil)
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	if err := h.banking.Ledger().Transfer(r.Context(), accountNumber, req.ToAccount, req.Amount, req.Description); err != nil {
		respondServiceError(w, err)
		return
	}

	h.respondBalance(w, r, accountNumber)
}

// Balance returns the authenticated account's balance
// @Summary Check balance
// @Description Current balance in cents
// @Tags accounts
// @Produce json
// @Success 200 {object} BalanceResponse "Current balance"
// @Router /accounts/balance [get]
func (h *TransactionHandler) Balance(w http.ResponseWriter, r *http.Request) {
	accountNumber, ok := subjectAccountNumber(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	h.respondBalance(w, r, accountNumber)
}

// History lists the authenticated account's transactions
// @Summary Transaction history
// @Description Transactions newest first, bounded by the limit query parameter
// @Tags transactions
// @Produce json
// @Param limit query int false "Maximum records to return"
// @Success 200 {array} models.Transaction "Transactions"
// @Router /transactions [get]
func (h *TransactionHandler) History(w http.ResponseWriter, r *http.Request) {
	accountNumber, ok := subjectAccountNumber(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	transactions, err := h.banking.Ledger().History(r.Context(), accountNumber, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transactions)
}

func (h *TransactionHandler) respondBalance(w http.ResponseWriter, r *http.Request, accountNumber int64) {
	balance, err := h.banking.Ledger().Balance(r.Context(), accountNumber)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BalanceResponse{AccountNumber: accountNumber, Balance: balance})
}
