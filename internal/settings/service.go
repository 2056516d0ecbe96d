package settings

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=settings
type Repository interface {
	All(ctx context.Context) (map[string]string, error)
	BeginUpdate(ctx context.Context) (UpdateTx, error)
}

type UpdateTx interface {
	Set(ctx context.Context, key, value string) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get loads every setting. A malformed dues value reads as zero and is logged.
func (s *Service) Get(ctx context.Context) (*Settings, error) {
	raw, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	return &Settings{
		Dues: Dues{
			Housing: amount(ctx, raw, KeyHousingDues),
			Social:  amount(ctx, raw, KeySocialDues),
			RT:      amount(ctx, raw, KeyRTDues),
		},
		Bank: BankAccount{
			BankName:      raw[KeyBankName],
			AccountNumber: raw[KeyAccountNumber],
			AccountName:   raw[KeyAccountName],
		},
	}, nil
}

// Dues returns only the dues part of the settings.
func (s *Service) Dues(ctx context.Context) (Dues, error) {
	st, err := s.Get(ctx)
	if err != nil {
		return Dues{}, err
	}

	return st.Dues, nil
}

// Update writes every key in one transaction.
func (s *Service) Update(ctx context.Context, st Settings) error {
	if err := st.Validate(); err != nil {
		return err
	}

	tx, err := s.repo.BeginUpdate(ctx)
	if err != nil {
		return fmt.Errorf("beginning settings update: %w", err)
	}
	defer tx.Rollback()

	values := st.values()
	for _, key := range slices.Sorted(maps.Keys(values)) {
		if err := tx.Set(ctx, key, values[key]); err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing settings: %w", err)
	}

	return nil
}

func amount(ctx context.Context, raw map[string]string, key string) int64 {
	v, err := ParseAmount(raw[key])
	if err != nil {
		slog.WarnContext(ctx, "malformed dues setting, using zero", "key", key, "error", err)
		return 0
	}

	return v
}
