package ledger_test

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
)

var fixedNow = time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func TestService_PeriodReport(t *testing.T) {
	type testCase struct {
		name      string
		window    ledger.Window
		setupMock func(m *ledger.MockRepository)
		wantErr   error
		check     func(t *testing.T, r *ledger.PeriodReport)
	}

	tests := []testCase{
		{
			name:   "YearAndMonthQueriesOpeningFirst",
			window: ledger.Window{Month: 3, Year: 2024},
			setupMock: func(m *ledger.MockRepository) {
				start := day(2024, 3, 1)
				gomock.InOrder(
					m.EXPECT().
						QueryMutations(gomock.Any(), ledger.MutationFilter{Before: &start}).
						Return([]*ledger.Mutation{
							mutation(ledger.FundHousing, ledger.DirectionIn, 40000, day(2024, 1, 1)),
						}, nil),
					m.EXPECT().
						QueryMutations(gomock.Any(), ledger.MutationFilter{Year: 2024, Month: 3}).
						Return([]*ledger.Mutation{
							mutation(ledger.FundHousing, ledger.DirectionOut, 15000, day(2024, 3, 3)),
						}, nil),
				)
			},
			check: func(t *testing.T, r *ledger.PeriodReport) {
				assert.Equal(t, ledger.FundSummary{Opening: 40000, Out: 15000, Balance: 25000}, r.Summary.Housing)
			},
		},
		{
			name:   "MonthOnlySkipsOpening",
			window: ledger.Window{Month: 3},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					QueryMutations(gomock.Any(), ledger.MutationFilter{Month: 3}).
					Return([]*ledger.Mutation{
						mutation(ledger.FundSocial, ledger.DirectionIn, 10000, day(2022, 3, 3)),
						mutation(ledger.FundSocial, ledger.DirectionIn, 10000, day(2023, 3, 3)),
					}, nil)
			},
			check: func(t *testing.T, r *ledger.PeriodReport) {
				assert.Equal(t, ledger.FundSummary{In: 20000, Balance: 20000}, r.Summary.Social)
			},
		},
		{
			name:   "UnsetWindowIsAllTime",
			window: ledger.Window{},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					QueryMutations(gomock.Any(), ledger.MutationFilter{}).
					Return(nil, nil)
			},
			check: func(t *testing.T, r *ledger.PeriodReport) {
				assert.Equal(t, ledger.Summary{}, r.Summary)
				assert.Empty(t, r.Entries)
			},
		},
		{
			name:    "InvalidMonthRejectedBeforeQuery",
			window:  ledger.Window{Month: 13, Year: 2024},
			wantErr: ledger.ErrInvalidWindow,
		},
		{
			name:   "OpeningQueryFails",
			window: ledger.Window{Year: 2024},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					QueryMutations(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("connection refused"))
			},
			wantErr: ledger.ErrQueryFailed,
		},
		{
			name:   "WindowQueryFails",
			window: ledger.Window{Year: 2024},
			setupMock: func(m *ledger.MockRepository) {
				gomock.InOrder(
					m.EXPECT().QueryMutations(gomock.Any(), gomock.Any()).Return(nil, nil),
					m.EXPECT().QueryMutations(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout")),
				)
			},
			wantErr: ledger.ErrQueryFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := ledger.NewService(repo, clock)
			got, err := svc.PeriodReport(context.Background(), tt.window)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestService_YearSeries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)

	start := day(2024, 1, 1)
	gomock.InOrder(
		repo.EXPECT().
			QueryMutations(gomock.Any(), ledger.MutationFilter{Before: &start}).
			Return(nil, nil),
		repo.EXPECT().
			QueryMutations(gomock.Any(), ledger.MutationFilter{Year: 2024}).
			Return([]*ledger.Mutation{
				mutation(ledger.FundHousing, ledger.DirectionIn, 50000, day(2024, 1, 5)),
				mutation(ledger.FundHousing, ledger.DirectionOut, 20000, day(2024, 2, 10)),
			}, nil),
	)

	svc := ledger.NewService(repo, clock)
	s, err := svc.YearSeries(context.Background(), 2024)
	require.NoError(t, err)

	assert.Equal(t, []any{int64(50000), int64(30000), int64(30000), nil, nil, nil, nil, nil, nil, nil, nil, nil}, values(s.Housing))

	_, err = svc.YearSeries(context.Background(), 0)
	assert.ErrorIs(t, err, ledger.ErrInvalidWindow)
}

func TestService_Balances(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().
		QueryMutations(gomock.Any(), ledger.MutationFilter{}).
		Return([]*ledger.Mutation{
			mutation(ledger.FundRT, ledger.DirectionIn, 10000, day(2023, 5, 1)),
			mutation("unknown", ledger.DirectionIn, 10000, day(2023, 5, 1)),
		}, nil)

	repo.EXPECT().
		QueryMutations(gomock.Any(), ledger.MutationFilter{}).
		Return(nil, errors.New("db down"))

	svc := ledger.NewService(repo, clock)

	b, err := svc.Balances(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ledger.Balances{RT: 10000}, b)

	_, err = svc.Balances(context.Background())
	assert.ErrorIs(t, err, ledger.ErrQueryFailed)
}

func TestService_Record(t *testing.T) {
	type testCase struct {
		name      string
		now       func() time.Time
		params    ledger.CreateParams
		setupMock func(m *ledger.MockRepository)
		wantErr   error
	}

	jakarta := time.FixedZone("WIB", 7*60*60)

	tests := []testCase{
		{
			name: "DefaultsDate",
			params: ledger.CreateParams{
				Direction:   ledger.DirectionOut,
				Amount:      25000,
				Description: "Beli lampu jalan",
				Category:    "perawatan",
				Fund:        ledger.FundHousing,
			},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					CreateMutation(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, got *ledger.Mutation) error {
						assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), got.Date)
						got.ID = uuid.New()

						return nil
					})
			},
		},
		{
			name: "DefaultsDateToLocalDay",
			now:  func() time.Time { return time.Date(2024, time.March, 1, 3, 0, 0, 0, jakarta) },
			params: ledger.CreateParams{
				Direction:   ledger.DirectionIn,
				Amount:      40000,
				Description: "Sumbangan warga",
				Fund:        ledger.FundSocial,
			},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					CreateMutation(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, got *ledger.Mutation) error {
						assert.Equal(t, time.March, got.Date.UTC().Month())
						assert.Equal(t, 1, got.Date.UTC().Day())

						deltas := ledger.MonthlyDeltas(2024, []*ledger.Mutation{got})
						assert.Equal(t, int64(0), deltas[1].Social)
						assert.Equal(t, int64(40000), deltas[2].Social)

						got.ID = uuid.New()

						return nil
					})
			},
		},
		{
			name:    "NegativeAmount",
			params:  ledger.CreateParams{Direction: ledger.DirectionIn, Amount: -1, Fund: ledger.FundRT},
			wantErr: ledger.ErrInvalidMutation,
		},
		{
			name:    "UnknownFund",
			params:  ledger.CreateParams{Direction: ledger.DirectionIn, Amount: 1, Fund: "parkir"},
			wantErr: ledger.ErrInvalidMutation,
		},
		{
			name:    "UnknownDirection",
			params:  ledger.CreateParams{Direction: "both", Amount: 1},
			wantErr: ledger.ErrInvalidMutation,
		},
		{
			name:   "RepoError",
			params: ledger.CreateParams{Direction: ledger.DirectionIn, Amount: 1},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().CreateMutation(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: ledger.ErrQueryFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			now := tt.now
			if now == nil {
				now = clock
			}

			svc := ledger.NewService(repo, now)
			got, err := svc.Record(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestService_ImportBatch(t *testing.T) {
	params := []ledger.CreateParams{
		{Direction: ledger.DirectionIn, Amount: 1000, Fund: ledger.FundSocial, Date: day(2024, 1, 1)},
		{Direction: ledger.DirectionOut, Amount: 500, Fund: ledger.FundSocial, Date: day(2024, 1, 2)},
	}

	t.Run("Commits", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := ledger.NewMockRepository(ctrl)
		btx := ledger.NewMockBatchTx(ctrl)

		repo.EXPECT().BeginBatch(gomock.Any()).Return(btx, nil)
		btx.EXPECT().CreateMutations(gomock.Any(), gomock.Len(2)).Return(nil)
		btx.EXPECT().Commit().Return(nil)
		btx.EXPECT().Rollback().Return(nil)

		got, err := ledger.NewService(repo, clock).ImportBatch(context.Background(), params)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("RollsBackOnInsertFailure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := ledger.NewMockRepository(ctrl)
		btx := ledger.NewMockBatchTx(ctrl)

		repo.EXPECT().BeginBatch(gomock.Any()).Return(btx, nil)
		btx.EXPECT().CreateMutations(gomock.Any(), gomock.Any()).Return(errors.New("constraint"))
		btx.EXPECT().Rollback().Return(nil)

		_, err := ledger.NewService(repo, clock).ImportBatch(context.Background(), params)
		assert.ErrorIs(t, err, ledger.ErrQueryFailed)
	})

	t.Run("InvalidRowStopsBeforeWrite", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := ledger.NewMockRepository(ctrl)
		bad := append([]ledger.CreateParams{}, params...)
		bad[1].Amount = -5

		_, err := ledger.NewService(repo, clock).ImportBatch(context.Background(), bad)
		assert.ErrorIs(t, err, ledger.ErrInvalidMutation)
		assert.ErrorContains(t, err, "row 2")
	})
}
