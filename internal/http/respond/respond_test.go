package respond

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agungalvian/wjg/internal/ledger"
	"github.com/agungalvian/wjg/internal/payment"
	"github.com/agungalvian/wjg/internal/user"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid window", err: fmt.Errorf("%w: month 13", ledger.ErrInvalidWindow), want: http.StatusBadRequest},
		{name: "not found", err: payment.ErrNotFound, want: http.StatusNotFound},
		{name: "already reviewed", err: fmt.Errorf("approve: %w", payment.ErrAlreadyReviewed), want: http.StatusConflict},
		{name: "self delete", err: user.ErrSelfDelete, want: http.StatusForbidden},
		{name: "bad login", err: user.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{
			name: "query failure wins over cause",
			err:  fmt.Errorf("%w: listing: %w", ledger.ErrQueryFailed, user.ErrNotFound),
			want: http.StatusInternalServerError,
		},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}

func TestError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ledger/balances", nil)

	Error(rec, req, fmt.Errorf("%w: dial tcp 10.0.0.3:5432", ledger.ErrQueryFailed))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error\n", rec.Body.String())
}
