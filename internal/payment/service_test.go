package payment_test

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
	"github.com/agungalvian/wjg/internal/settings"
)

var now = time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func pending(id uuid.UUID) *payment.Payment {
	return &payment.Payment{
		ID:          id,
		UserID:      uuid.New(),
		Amount:      70000,
		Months:      []string{"2024-03"},
		Breakdown:   payment.Breakdown{Housing: 50000, Social: 10000, RT: 10000, Count: 1},
		Status:      payment.StatusPending,
		ProofImage:  "bukti.jpg",
		PaymentDate: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestService_Submit(t *testing.T) {
	userID := uuid.New()
	dues := settings.Dues{Housing: 50000, Social: 10000, RT: 10000}

	type testCase struct {
		name      string
		params    payment.SubmitParams
		setupMock func(repo *payment.MockRepository, src *payment.MockDuesSource)
		wantErr   bool
		errIs     error
		check     func(t *testing.T, p *payment.Payment)
	}

	tests := []testCase{
		{
			name: "PricesWithCurrentDues",
			params: payment.SubmitParams{
				UserID:     userID,
				Months:     []string{"2024-02", "2024-01"},
				ProofImage: "bukti.jpg",
			},
			setupMock: func(repo *payment.MockRepository, src *payment.MockDuesSource) {
				src.EXPECT().Dues(gomock.Any()).Return(dues, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *payment.Payment) error {
						p.ID = uuid.New()
						return nil
					})
			},
			check: func(t *testing.T, p *payment.Payment) {
				assert.Equal(t, int64(140000), p.Amount)
				assert.Equal(t, payment.Breakdown{Housing: 100000, Social: 20000, RT: 20000, Count: 2}, p.Breakdown)
				assert.Equal(t, []string{"2024-01", "2024-02"}, p.Months)
				assert.Equal(t, payment.StatusPending, p.Status)
				assert.Equal(t, userID, p.UserID)
				assert.True(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC).Equal(p.PaymentDate))
			},
		},
		{
			name:    "MissingProof",
			params:  payment.SubmitParams{UserID: userID, Months: []string{"2024-01"}},
			wantErr: true,
			errIs:   payment.ErrProofRequired,
		},
		{
			name:    "NoMonths",
			params:  payment.SubmitParams{UserID: userID, ProofImage: "x.jpg"},
			wantErr: true,
			errIs:   payment.ErrInvalidMonths,
		},
		{
			name:   "DuesUnavailable",
			params: payment.SubmitParams{UserID: userID, Months: []string{"2024-01"}, ProofImage: "x.jpg"},
			setupMock: func(_ *payment.MockRepository, src *payment.MockDuesSource) {
				src.EXPECT().Dues(gomock.Any()).Return(settings.Dues{}, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := payment.NewMockRepository(ctrl)
			src := payment.NewMockDuesSource(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, src)
			}

			got, err := payment.NewService(repo, src, clock).Submit(context.Background(), tt.params)
			if tt.wantErr {
				assert.Error(t, err)

				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				}

				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestService_Approve(t *testing.T) {
	id := uuid.New()

	t.Run("RecordsOneMutationPerFund", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := payment.NewMockRepository(ctrl)
		rtx := payment.NewMockReviewTx(ctrl)

		var recorded []*ledger.Mutation

		repo.EXPECT().BeginReview(gomock.Any()).Return(rtx, nil)
		gomock.InOrder(
			rtx.EXPECT().GetForUpdate(gomock.Any(), id).Return(pending(id), nil),
			rtx.EXPECT().SetStatus(gomock.Any(), id, payment.StatusApproved, "ok").Return(nil),
			rtx.EXPECT().InsertMutations(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, ms []*ledger.Mutation) error {
					recorded = ms
					return nil
				}),
			rtx.EXPECT().Commit().Return(nil),
		)
		rtx.EXPECT().Rollback().Return(nil)

		p, err := payment.NewService(repo, nil, clock).Approve(context.Background(), id, "ok")
		require.NoError(t, err)
		assert.Equal(t, payment.StatusApproved, p.Status)
		require.NotNil(t, p.ReviewedAt)

		require.Len(t, recorded, 3)

		var sum int64

		for _, m := range recorded {
			assert.Equal(t, ledger.DirectionIn, m.Direction)
			require.NotNil(t, m.PaymentID)
			assert.Equal(t, id, *m.PaymentID)

			sum += m.Amount
		}

		assert.Equal(t, int64(70000), sum)
	})

	t.Run("InsertFailureLeavesPaymentPending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := payment.NewMockRepository(ctrl)
		rtx := payment.NewMockReviewTx(ctrl)

		repo.EXPECT().BeginReview(gomock.Any()).Return(rtx, nil)
		rtx.EXPECT().GetForUpdate(gomock.Any(), id).Return(pending(id), nil)
		rtx.EXPECT().SetStatus(gomock.Any(), id, payment.StatusApproved, "").Return(nil)
		rtx.EXPECT().InsertMutations(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
		rtx.EXPECT().Rollback().Return(nil)

		_, err := payment.NewService(repo, nil, clock).Approve(context.Background(), id, "")
		assert.Error(t, err)
	})

	t.Run("AlreadyReviewed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := payment.NewMockRepository(ctrl)
		rtx := payment.NewMockReviewTx(ctrl)

		p := pending(id)
		p.Status = payment.StatusApproved

		repo.EXPECT().BeginReview(gomock.Any()).Return(rtx, nil)
		rtx.EXPECT().GetForUpdate(gomock.Any(), id).Return(p, nil)
		rtx.EXPECT().Rollback().Return(nil)

		_, err := payment.NewService(repo, nil, clock).Approve(context.Background(), id, "")
		assert.ErrorIs(t, err, payment.ErrAlreadyReviewed)
	})

	t.Run("MalformedBreakdown", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := payment.NewMockRepository(ctrl)
		rtx := payment.NewMockReviewTx(ctrl)

		p := pending(id)
		p.Amount = 90000

		repo.EXPECT().BeginReview(gomock.Any()).Return(rtx, nil)
		rtx.EXPECT().GetForUpdate(gomock.Any(), id).Return(p, nil)
		rtx.EXPECT().Rollback().Return(nil)

		_, err := payment.NewService(repo, nil, clock).Approve(context.Background(), id, "")
		assert.ErrorIs(t, err, payment.ErrMalformedBreakdown)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := payment.NewMockRepository(ctrl)
		rtx := payment.NewMockReviewTx(ctrl)

		repo.EXPECT().BeginReview(gomock.Any()).Return(rtx, nil)
		rtx.EXPECT().GetForUpdate(gomock.Any(), id).Return(nil, payment.ErrNotFound)
		rtx.EXPECT().Rollback().Return(nil)

		_, err := payment.NewService(repo, nil, clock).Approve(context.Background(), id, "")
		assert.ErrorIs(t, err, payment.ErrNotFound)
	})
}

func TestService_Reject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := payment.NewMockRepository(ctrl)
	rtx := payment.NewMockReviewTx(ctrl)

	repo.EXPECT().BeginReview(gomock.Any()).Return(rtx, nil)
	rtx.EXPECT().GetForUpdate(gomock.Any(), id).Return(pending(id), nil)
	rtx.EXPECT().SetStatus(gomock.Any(), id, payment.StatusRejected, "bukti buram").Return(nil)
	rtx.EXPECT().Commit().Return(nil)
	rtx.EXPECT().Rollback().Return(nil)

	p, err := payment.NewService(repo, nil, clock).Reject(context.Background(), id, "bukti buram")
	require.NoError(t, err)
	assert.Equal(t, payment.StatusRejected, p.Status)
	assert.Equal(t, "bukti buram", p.Note)
}

func TestService_ResidentStatus(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := payment.NewMockRepository(ctrl)
		repo.EXPECT().ApprovedMonths(gomock.Any(), &userID, 2024).Return([]payment.PaidMonths{
			{UserID: userID, Months: "2024-01, 2024-02"},
		}, nil)

		got, err := payment.NewService(repo, nil, clock).ResidentStatus(context.Background(), userID, 2024)
		require.NoError(t, err)
		assert.Equal(t, []string{payment.LabelUnpaid}, got.Labels)
		assert.Equal(t, "2024-03", got.ReferenceMonth)
	})

	t.Run("QueryFailureIsNotEmpty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := payment.NewMockRepository(ctrl)
		repo.EXPECT().ApprovedMonths(gomock.Any(), gomock.Any(), 2024).Return(nil, errors.New("timeout"))

		_, err := payment.NewService(repo, nil, clock).ResidentStatus(context.Background(), userID, 2024)
		assert.ErrorIs(t, err, ledger.ErrQueryFailed)
	})
}

func TestService_Matrix(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := payment.Resident{ID: uuid.New(), FullName: "Budi", HouseNumber: "A-01"}

	repo := payment.NewMockRepository(ctrl)
	repo.EXPECT().ListResidents(gomock.Any()).Return([]payment.Resident{r}, nil)
	repo.EXPECT().ApprovedMonths(gomock.Any(), nil, 2024).Return([]payment.PaidMonths{
		{UserID: r.ID, Months: "2024-05"},
	}, nil)

	m, err := payment.NewService(repo, nil, clock).Matrix(context.Background(), 2024)
	require.NoError(t, err)
	assert.True(t, m.IsPaid(r.ID, "2024-05"))

	_, err = payment.NewService(repo, nil, clock).Matrix(context.Background(), 0)
	assert.ErrorIs(t, err, ledger.ErrInvalidWindow)
}
