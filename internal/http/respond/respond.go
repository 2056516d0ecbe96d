// Package respond writes JSON bodies and maps domain errors onto status codes.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/agungalvian/wjg/internal/announcement"
	"github.com/agungalvian/wjg/internal/auth"
	"github.com/agungalvian/wjg/internal/importer"
	"github.com/agungalvian/wjg/internal/ledger"
	"github.com/agungalvian/wjg/internal/matching"
	"github.com/agungalvian/wjg/internal/payment"
	"github.com/agungalvian/wjg/internal/settings"
	"github.com/agungalvian/wjg/internal/user"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Decode reads a JSON request body into v, answering 400 on failure.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}

	return true
}

// Error writes err with the status its kind maps to. Unclassified errors are
// logged and hidden behind a generic message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", status)

		return
	}

	http.Error(w, err.Error(), status)
}

var statuses = []struct {
	target error
	status int
}{
	{ledger.ErrQueryFailed, http.StatusInternalServerError},
	{ledger.ErrInvalidWindow, http.StatusBadRequest},
	{ledger.ErrInvalidMutation, http.StatusBadRequest},
	{payment.ErrInvalidMonths, http.StatusBadRequest},
	{payment.ErrProofRequired, http.StatusBadRequest},
	{payment.ErrInvalidStatus, http.StatusBadRequest},
	{user.ErrInvalidUser, http.StatusBadRequest},
	{settings.ErrInvalidValue, http.StatusBadRequest},
	{matching.ErrInvalidRule, http.StatusBadRequest},
	{importer.ErrUnknownFormat, http.StatusBadRequest},
	{announcement.ErrInvalidAnnouncement, http.StatusBadRequest},
	{user.ErrInvalidCredentials, http.StatusUnauthorized},
	{auth.ErrInvalidToken, http.StatusUnauthorized},
	{auth.ErrMissingToken, http.StatusUnauthorized},
	{user.ErrSelfDelete, http.StatusForbidden},
	{payment.ErrNotFound, http.StatusNotFound},
	{user.ErrNotFound, http.StatusNotFound},
	{announcement.ErrNotFound, http.StatusNotFound},
	{payment.ErrAlreadyReviewed, http.StatusConflict},
	{user.ErrUsernameTaken, http.StatusConflict},
	{payment.ErrMalformedBreakdown, http.StatusUnprocessableEntity},
}

// StatusOf returns the HTTP status for err.
func StatusOf(err error) int {
	for _, s := range statuses {
		if errors.Is(err, s.target) {
			return s.status
		}
	}

	return http.StatusInternalServerError
}
