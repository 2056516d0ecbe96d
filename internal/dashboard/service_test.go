package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/agungalvian/wjg/internal/ledger"
	"github.com/agungalvian/wjg/internal/payment"
	"github.com/agungalvian/wjg/internal/user"
)

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func TestService_Summary(t *testing.T) {
	residentID := uuid.New()
	series := &ledger.YearSeries{Year: 2024}
	status := &payment.ResidentStatus{Year: 2024, Labels: []string{payment.LabelPaid}}

	tests := []struct {
		name      string
		viewer    Viewer
		setupMock func(l *MockLedger, p *MockPayments, r *MockResidents)
		verify    func(t *testing.T, got *Summary)
		wantErr   bool
	}{
		{
			name:   "admin sees pending payments",
			viewer: Viewer{ID: uuid.New(), Role: user.RoleAdmin},
			setupMock: func(l *MockLedger, p *MockPayments, r *MockResidents) {
				r.EXPECT().CountResidents(gomock.Any()).Return(42, nil)
				p.EXPECT().CountPending(gomock.Any()).Return(3, nil)
				l.EXPECT().Balances(gomock.Any()).Return(ledger.Balances{Housing: 100, Social: 20, RT: 5}, nil)
				l.EXPECT().YearSeries(gomock.Any(), 2024).Return(series, nil)
			},
			verify: func(t *testing.T, got *Summary) {
				assert.Equal(t, 2024, got.Year)
				assert.Equal(t, 42, got.Residents)
				assert.Equal(t, 3, got.PendingPayments)
				assert.Equal(t, int64(125), got.Total)
				assert.Same(t, series, got.Series)
				assert.Nil(t, got.Status)
			},
		},
		{
			name:   "resident sees own status",
			viewer: Viewer{ID: residentID, Role: user.RoleResident},
			setupMock: func(l *MockLedger, p *MockPayments, r *MockResidents) {
				r.EXPECT().CountResidents(gomock.Any()).Return(42, nil)
				l.EXPECT().Balances(gomock.Any()).Return(ledger.Balances{}, nil)
				l.EXPECT().YearSeries(gomock.Any(), 2024).Return(series, nil)
				p.EXPECT().ResidentStatus(gomock.Any(), residentID, 2024).Return(status, nil)
			},
			verify: func(t *testing.T, got *Summary) {
				assert.Zero(t, got.PendingPayments)
				assert.Same(t, status, got.Status)
			},
		},
		{
			name:   "balance failure stops before the series",
			viewer: Viewer{ID: uuid.New(), Role: user.RoleViewer},
			setupMock: func(l *MockLedger, p *MockPayments, r *MockResidents) {
				r.EXPECT().CountResidents(gomock.Any()).Return(42, nil).AnyTimes()
				p.EXPECT().CountPending(gomock.Any()).Return(0, nil).AnyTimes()
				l.EXPECT().Balances(gomock.Any()).Return(ledger.Balances{}, ledger.ErrQueryFailed)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			l := NewMockLedger(ctrl)
			p := NewMockPayments(ctrl)
			r := NewMockResidents(ctrl)
			tt.setupMock(l, p, r)

			svc := NewService(l, p, r, func() time.Time { return fixedNow })

			got, err := svc.Summary(context.Background(), tt.viewer)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ledger.ErrQueryFailed))

				return
			}

			require.NoError(t, err)
			tt.verify(t, got)
		})
	}
}
