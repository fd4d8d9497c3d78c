package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/corebank/backend/internal/models"
	"github.com/corebank/backend/internal/services"
)

type AdminHandler struct {
	banking   *services.BankingService
	validator *services.ValidationHelper
}

func NewAdminHandler(banking *services.BankingService) *AdminHandler {
	return &AdminHandler{
		banking:   banking,
		validator: services.NewValidationHelper(),
	}
}

// ListAccounts lists all accounts for administrative search
// @Summary List accounts
// @Description All accounts ascending by number, optional substring search on name or number
// @Tags admin
// @Produce json
// @Param search query string false "Case-insensitive substring filter"
// @Success 200 {array} models.Account "Accounts"
// @Router /admin/accounts [get]
func (h *AdminHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.banking.Accounts().ListAll(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

// DeleteAccount removes an account and its transactions
// @Summary Delete account
// @Description Remove the account and, atomically, all of its transactions
// @Tags admin
// @Produce json
// @Param accountNumber path int true "Account number"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 404 {object} services.ErrorResponse "Account not found"
// @Router /admin/accounts/{accountNumber} [delete]
func (h *AdminHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountNumber, err := strconv.ParseInt(chi.URLParam(r, "accountNumber"), 10, 64)
	if err != nil || accountNumber <= 0 {
		services.SendErrorResponse(w, "Invalid account number", http.StatusBadRequest, nil)
		return
	}

	if err := h.banking.Accounts().Delete(r.Context(), accountNumber); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Account deleted"})
}

// AllTransactions lists transactions across all accounts
// @Summary All transactions
// @Description Transactions newest first with optional date range and limit
// @Tags admin
// @Produce json
// @Param from query string false "RFC 3339 lower bound"
// @Param to query string false "RFC 3339 upper bound"
// @Param limit query int false "Maximum records"
// @Success 200 {array} models.Transaction "Transactions"
// @Router /admin/transactions [get]
func (h *AdminHandler) AllTransactions(w http.ResponseWriter, r *http.Request) {
	var filter services.TransactionFilter

	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			services.SendErrorResponse(w, "Invalid 'from' timestamp", http.StatusBadRequest, nil)
			return
		}
		filter.From = &t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			services.SendErrorResponse(w, "Invalid 'to' timestamp", http.StatusBadRequest, nil)
			return
		}
		filter.To = &t
	}
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))

	transactions, err := h.banking.Ledger().AllTransactions(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transactions)
}

// ListLoans lists loan applications across all accounts
// @Summary List loan applications
// @Description Applications newest first, optionally filtered by status
// @Tags admin
// @Produce json
// @Param status query string false "Status filter (Pending|Approved|Rejected)"
// @Success 200 {array} models.LoanApplication "Applications"
// @Router /admin/loans [get]
func (h *AdminHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	status := models.LoanStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		services.SendErrorResponse(w, "Invalid status filter", http.StatusBadRequest, nil)
		return
	}

	applications, err := h.banking.Loans().List(r.Context(), 0, status)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, applications)
}

// LoanDecisionRequest carries an administrator decision
// @Description Loan decision request structure
type LoanDecisionRequest struct {
	Approve bool `json:"approve" example:"true"` // true approves, false rejects
}

// DecideLoan applies a decision to a pending application
// @Summary Decide loan application
// @Description Approve or reject a pending application; decisions are terminal
// @Tags admin
// @Accept json
// @Produce json
// @Param applicationID path int true "Application identifier"
// @Param request body LoanDecisionRequest true "Decision"
// @Success 200 {object} map[string]string "Decision applied"
// @Failure 404 {object} services.ErrorResponse "Application not found"
// @Failure 409 {object} services.ErrorResponse "Already decided"
// @Router /admin/loans/{applicationID}/decision [put]
func (h *AdminHandler) DecideLoan(w http.ResponseWriter, r *http.Request) {
	applicationID, err := strconv.ParseInt(chi.URLParam(r, "applicationID"), 10, 64)
	if err != nil || applicationID <= 0 {
		services.SendErrorResponse(w, "Invalid application identifier", http.StatusBadRequest, nil)
		return
	}

	var req LoanDecisionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		services.SendErrorResponse(w, "Invalid request", http.StatusBadRequest, nil)
		return
	}

	if err := h.banking.Loans().Decide(r.Context(), applicationID, req.Approve); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Decision applied"})
}

// CreateAdminRequest represents a new administrator payload
// @Description Administrator creation request structure
type CreateAdminRequest struct {
	Username string `json:"username" validate:"required,min=3" example:"jord"`        // Unique username
	FullName string `json:"full_name" validate:"required,min=1" example:"Jordan Lee"` // Display name
	Password string `json:"password" validate:"required,min=8" example:"s3cret!pw"`   // Password
}

// CreateAdmin registers a new administrator
// @Summary Create administrator
// @Description Add a back-office operator; usernames are unique case-insensitively
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CreateAdminRequest true "New administrator"
// @Success 201 {object} map[string]string "Created"
// @Failure 409 {object} services.ErrorResponse "Username exists"
// @Router /admin/admins [post]
func (h *AdminHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req CreateAdminRequest
	if err := decodeJSON(w, r, &req); err != nil {
		services.SendErrorResponse(w, "Invalid request", http.StatusBadRequest, nil)
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	if err := h.banking.CreateAdmin(r.Context(), req.Username, req.FullName, req.Password); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Administrator created"})
}

// ListAdmins lists administrators
// @Summary List administrators
// @Tags admin
// @Produce json
// @Success 200 {array} models.AdminUser "Administrators"
// @Router /admin/admins [get]
func (h *AdminHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.banking.ListAdmins(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, admins)
}

// Stats returns dashboard aggregates
// @Summary Dashboard statistics
// @Description Totals derived from ledger and repository reads
// @Tags admin
// @Produce json
// @Success 200 {object} services.DashboardStats "Aggregates"
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.banking.DashboardStats(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
