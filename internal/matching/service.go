// Package matching learns how raw bank descriptions map onto funds and categories
// so imported mutations can be classified without manual editing.
package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agungalvian/wjg/internal/ledger"
)

var ErrInvalidRule = errors.New("invalid matching rule")

// Rule maps any description containing RawPattern to the given classification.
// Empty target fields leave the imported value untouched.
type Rule struct {
	ID          uuid.UUID
	RawPattern  string
	Fund        ledger.Fund
	Category    string
	Description string
	CreatedAt   time.Time
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	// FindMatch returns the rule with the longest pattern contained in rawDescription,
	// or nil when none matches.
	FindMatch(ctx context.Context, rawDescription string) (*Rule, error)
	CreateRule(ctx context.Context, rule *Rule) error
	ListRules(ctx context.Context) ([]*Rule, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the best rule for rawDescription, nil if nothing matches.
func (s *Service) Suggest(ctx context.Context, rawDescription string) (*Rule, error) {
	return s.repo.FindMatch(ctx, rawDescription)
}

// Learn stores a new rule.
func (s *Service) Learn(ctx context.Context, rule *Rule) error {
	rule.RawPattern = strings.TrimSpace(rule.RawPattern)
	if rule.RawPattern == "" {
		return fmt.Errorf("%w: raw pattern is required", ErrInvalidRule)
	}

	if rule.Fund != ledger.FundNone && !rule.Fund.Tracked() {
		return fmt.Errorf("%w: unknown fund %q", ErrInvalidRule, rule.Fund)
	}

	if rule.Fund == ledger.FundNone && rule.Category == "" && rule.Description == "" {
		return fmt.Errorf("%w: rule has nothing to apply", ErrInvalidRule)
	}

	return s.repo.CreateRule(ctx, rule)
}

func (s *Service) List(ctx context.Context) ([]*Rule, error) {
	return s.repo.ListRules(ctx)
}

// Apply classifies params in place. Values already present on a row win over the
// rule. It returns how many rows a rule was applied to.
func (s *Service) Apply(ctx context.Context, params []ledger.CreateParams) (int, error) {
	applied := 0

	for i := range params {
		p := &params[i]
		if p.Fund != ledger.FundNone && p.Category != "" {
			continue
		}

		rule, err := s.repo.FindMatch(ctx, p.Description)
		if err != nil {
			return applied, fmt.Errorf("matching row %d: %w", i+1, err)
		}

		if rule == nil {
			continue
		}

		if p.Fund == ledger.FundNone {
			p.Fund = rule.Fund
		}

		if p.Category == "" {
			p.Category = rule.Category
		}

		if rule.Description != "" {
			p.Description = rule.Description
		}

		applied++
	}

	return applied, nil
}
