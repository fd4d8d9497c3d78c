package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/corebank/backend/internal/credentials"
	"github.com/corebank/backend/internal/middleware"
	"github.com/corebank/backend/internal/services"
)

const maxRequestBytes = 1_048_576 // 1 MB

// decodeJSON reads a single JSON object into dst, rejecting unknown fields
// and trailing content.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("request body must only contain a single JSON object")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// subjectAccountNumber extracts the authenticated account number set by the
// auth middleware.
func subjectAccountNumber(r *http.Request) (int64, bool) {
	subject, _ := r.Context().Value(middleware.SubjectKey).(string)
	accountNumber, err := strconv.ParseInt(subject, 10, 64)
	if err != nil || accountNumber <= 0 {
		return 0, false
	}
	return accountNumber, true
}

// respondServiceError maps domain errors onto HTTP statuses. Anything
// unrecognized is a storage fault: logged, reported generically.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidLoanInput),
		errors.Is(err, services.ErrSameAccountTransfer),
		errors.Is(err, services.ErrNameRequired),
		errors.Is(err, credentials.ErrPasswordTooShort):
		services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		services.SendErrorResponse(w, "Invalid credentials", http.StatusUnauthorized, nil)
	case errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrLoanNotFound):
		services.SendErrorResponse(w, err.Error(), http.StatusNotFound, nil)
	case errors.Is(err, services.ErrInsufficientFunds):
		services.SendErrorResponse(w, err.Error(), http.StatusUnprocessableEntity, nil)
	case errors.Is(err, services.ErrAlreadyDecided),
		errors.Is(err, services.ErrAdminExists):
		services.SendErrorResponse(w, err.Error(), http.StatusConflict, nil)
	case errors.Is(err, services.ErrTwoFactorNotEnabled):
		services.SendErrorResponse(w, err.Error(), http.StatusConflict, nil)
	default:
		log.Printf("[HTTP] Internal error: %v", err)
		services.SendErrorResponse(w, "An internal error occurred", http.StatusInternalServerError, nil)
	}
}
