package settings_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/agungalvian/wjg/internal/settings"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: "50000", want: 50000},
		{raw: " 10000 ", want: 10000},
		{raw: "10000.00", want: 10000},
		{raw: "", want: 0},
		{raw: "10000.5", wantErr: true},
		{raw: "-1", wantErr: true},
		{raw: "lima puluh", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := settings.ParseAmount(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, settings.ErrInvalidValue)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Get(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *settings.MockRepository)
		want      *settings.Settings
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *settings.MockRepository) {
				m.EXPECT().All(gomock.Any()).Return(map[string]string{
					settings.KeyHousingDues:   "50000",
					settings.KeySocialDues:    "10000",
					settings.KeyRTDues:        "10000",
					settings.KeyBankName:      "BRI",
					settings.KeyAccountNumber: "0123456789",
					settings.KeyAccountName:   "Kas Warga",
				}, nil)
			},
			want: &settings.Settings{
				Dues: settings.Dues{Housing: 50000, Social: 10000, RT: 10000},
				Bank: settings.BankAccount{BankName: "BRI", AccountNumber: "0123456789", AccountName: "Kas Warga"},
			},
		},
		{
			name: "MalformedDuesReadAsZero",
			setupMock: func(m *settings.MockRepository) {
				m.EXPECT().All(gomock.Any()).Return(map[string]string{
					settings.KeyHousingDues: "abc",
					settings.KeySocialDues:  "10000",
				}, nil)
			},
			want: &settings.Settings{Dues: settings.Dues{Social: 10000}},
		},
		{
			name: "RepoError",
			setupMock: func(m *settings.MockRepository) {
				m.EXPECT().All(gomock.Any()).Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := settings.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := settings.NewService(repo).Get(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Dues.Housing+tt.want.Dues.Social+tt.want.Dues.RT, got.Dues.Total())
		})
	}
}

func TestService_Update(t *testing.T) {
	st := settings.Settings{
		Dues: settings.Dues{Housing: 60000, Social: 10000, RT: 5000},
		Bank: settings.BankAccount{BankName: "BCA"},
	}

	t.Run("WritesEveryKey", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := settings.NewMockRepository(ctrl)
		tx := settings.NewMockUpdateTx(ctrl)

		written := map[string]string{}

		repo.EXPECT().BeginUpdate(gomock.Any()).Return(tx, nil)
		tx.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, key, value string) error {
				written[key] = value
				return nil
			}).Times(6)
		tx.EXPECT().Commit().Return(nil)
		tx.EXPECT().Rollback().Return(nil)

		require.NoError(t, settings.NewService(repo).Update(context.Background(), st))
		assert.Equal(t, "60000", written[settings.KeyHousingDues])
		assert.Equal(t, "5000", written[settings.KeyRTDues])
		assert.Equal(t, "BCA", written[settings.KeyBankName])
		assert.Equal(t, "", written[settings.KeyAccountName])
	})

	t.Run("RollsBackOnFailure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := settings.NewMockRepository(ctrl)
		tx := settings.NewMockUpdateTx(ctrl)

		repo.EXPECT().BeginUpdate(gomock.Any()).Return(tx, nil)
		tx.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db error"))
		tx.EXPECT().Rollback().Return(nil)

		assert.Error(t, settings.NewService(repo).Update(context.Background(), st))
	})

	t.Run("RejectsNegativeDues", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		bad := st
		bad.Dues.RT = -1

		err := settings.NewService(settings.NewMockRepository(ctrl)).Update(context.Background(), bad)
		assert.ErrorIs(t, err, settings.ErrInvalidValue)
	})
}
