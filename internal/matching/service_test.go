package matching_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/agungalvian/wjg/internal/ledger"
	"github.com/agungalvian/wjg/internal/matching"
)

func TestService_Learn(t *testing.T) {
	tests := []struct {
		name      string
		rule      *matching.Rule
		setupMock func(m *matching.MockRepository)
		wantErr   bool
	}{
		{
			name: "Success",
			rule: &matching.Rule{RawPattern: "  PLN PREPAID ", Fund: ledger.FundHousing, Category: "listrik"},
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().CreateRule(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, r *matching.Rule) error {
						assert.Equal(t, "PLN PREPAID", r.RawPattern)
						return nil
					})
			},
		},
		{name: "EmptyPattern", rule: &matching.Rule{Fund: ledger.FundRT}, wantErr: true},
		{name: "UnknownFund", rule: &matching.Rule{RawPattern: "x", Fund: "kas"}, wantErr: true},
		{name: "NothingToApply", rule: &matching.Rule{RawPattern: "x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := matching.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			err := matching.NewService(repo).Learn(context.Background(), tt.rule)
			if tt.wantErr {
				assert.ErrorIs(t, err, matching.ErrInvalidRule)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_Apply(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := matching.NewMockRepository(ctrl)
	repo.EXPECT().FindMatch(gomock.Any(), "TRSF PLN 1234").
		Return(&matching.Rule{Fund: ledger.FundHousing, Category: "listrik", Description: "Token listrik pos"}, nil)
	repo.EXPECT().FindMatch(gomock.Any(), "Sumbangan").Return(nil, nil)

	params := []ledger.CreateParams{
		{Description: "TRSF PLN 1234"},
		{Description: "Sumbangan"},
		{Description: "Iuran", Fund: ledger.FundRT, Category: "iuran"},
	}

	n, err := matching.NewService(repo).Apply(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Equal(t, ledger.FundHousing, params[0].Fund)
	assert.Equal(t, "listrik", params[0].Category)
	assert.Equal(t, "Token listrik pos", params[0].Description)
	assert.Equal(t, ledger.FundNone, params[1].Fund)
	assert.Equal(t, ledger.FundRT, params[2].Fund)
}

func TestService_ApplyError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := matching.NewMockRepository(ctrl)
	repo.EXPECT().FindMatch(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))

	_, err := matching.NewService(repo).Apply(context.Background(), []ledger.CreateParams{{Description: "x"}})
	assert.Error(t, err)
}
