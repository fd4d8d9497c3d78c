package handlers

import (
	"net/http"

	"github.com/corebank/backend/internal/models"
	"github.com/corebank/backend/internal/services"
)

type LoanHandler struct {
	banking   *services.BankingService
	predictor services.Predictor
	validator *services.ValidationHelper
}

func NewLoanHandler(banking *services.BankingService, predictor services.Predictor) *LoanHandler {
	return &LoanHandler{
		banking:   banking,
		predictor: predictor,
		validator: services.NewValidationHelper(),
	}
}

// LoanRequest represents a loan application payload
// @Description Loan application request structure
type LoanRequest struct {
	Income      int64 `json:"income" validate:"required,gt=0" example:"5000000"`            // Annual income in cents
	CreditScore int   `json:"credit_score" validate:"required,gte=300,lte=850" example:"720"` // Credit score
	Amount      int64 `json:"amount" validate:"required,gt=0" example:"1000000"`            // Requested amount in cents
	TermMonths  int   `json:"term_months" validate:"required,gt=0" example:"24"`            // Term in months
	AutoDecide  bool  `json:"auto_decide" example:"true"`                                   // Evaluate eligibility immediately
}

// LoanResponse carries a submitted application
// @Description Loan application response structure
type LoanResponse struct {
	ApplicationID int64             `json:"application_id"` // Application identifier
	Status        models.LoanStatus `json:"status"`         // Resulting status
}

// Submit files a loan application
// @Summary Submit loan application
// @Description File an application; with auto_decide the eligibility predictor decides immediately
// @Tags loans
// @Accept json
// @Produce json
// @Param request body LoanRequest true "Loan application"
// @Success 201 {object} LoanResponse "Application stored"
// @Failure 400 {object} services.ErrorResponse "Invalid fields"
// @Router /loans [post]
func (h *LoanHandler) Submit(w http.ResponseWriter, r *http.Request) {
	accountNumber, ok := subjectAccountNumber(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req LoanRequest
	if err := decodeJSON(w, r, &req); err != nil {
		services.SendErrorResponse(w, "Invalid request", http.StatusBadRequest, nil)
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	// The predictor runs outside any storage transaction; its verdict is
	// submitted as ordinary data.
	decided := models.LoanStatus("")
	if req.AutoDecide {
		if h.predictor.Evaluate(req.Income, req.CreditScore, req.Amount, req.TermMonths) {
			decided = models.LoanApproved
		} else {
			decided = models.LoanRejected
		}
	}

	applicationID, err := h.banking.Loans().Submit(r.Context(), accountNumber,
		req.Income, req.CreditScore, req.Amount, req.TermMonths, decided)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	status := models.LoanPending
	if decided != "" {
		status = decided
	}
	writeJSON(w, http.StatusCreated, LoanResponse{ApplicationID: applicationID, Status: status})
}

// List returns the authenticated account's applications
// @Summary List own loan applications
// @Description Applications newest first, optionally filtered by status
// @Tags loans
// @Produce json
// @Param status query string false "Status filter (Pending|Approved|Rejected)"
// @Success 200 {array} models.LoanApplication "Applications"
// @Router /loans [get]
func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	accountNumber, ok := subjectAccountNumber(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	status := models.LoanStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		services.SendErrorResponse(w, "Invalid status filter", http.StatusBadRequest, nil)
		return
	}

	applications, err := h.banking.Loans().List(r.Context(), accountNumber, status)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, applications)
}
