// Package announcement is the community notice board: notices from the
// committee, optionally with a reference to an attached image.
package announcement

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound            = errors.New("announcement not found")
	ErrInvalidAnnouncement = errors.New("invalid announcement")
)

type Category string

const (
	CategoryImportant     Category = "important"
	CategoryEvent         Category = "event"
	CategoryDocumentation Category = "documentation"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryImportant, CategoryEvent, CategoryDocumentation:
		return true
	}

	return false
}

// ParseFilter reads a list filter. Empty and "all" select every category.
func ParseFilter(s string) (*Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "all" {
		return nil, nil
	}

	c := Category(s)
	if !c.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidAnnouncement, s)
	}

	return &c, nil
}

type Announcement struct {
	ID       uuid.UUID
	Title    string
	Content  string
	Category Category
	// Image is a stored reference, the same way payment proofs are kept.
	Image     string
	CreatedAt time.Time
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=announcement
type Repository interface {
	// List returns announcements newest first; a nil category lists all of them.
	List(ctx context.Context, category *Category) ([]*Announcement, error)
	Create(ctx context.Context, a *Announcement) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, category string) ([]*Announcement, error) {
	filter, err := ParseFilter(category)
	if err != nil {
		return nil, err
	}

	return s.repo.List(ctx, filter)
}

// Post validates and stores a new announcement.
func (s *Service) Post(ctx context.Context, a *Announcement) error {
	a.Title = strings.TrimSpace(a.Title)
	a.Content = strings.TrimSpace(a.Content)
	a.Image = strings.TrimSpace(a.Image)

	switch {
	case a.Title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidAnnouncement)
	case a.Content == "":
		return fmt.Errorf("%w: content is required", ErrInvalidAnnouncement)
	case !a.Category.Valid():
		return fmt.Errorf("%w: unknown category %q", ErrInvalidAnnouncement, a.Category)
	}

	return s.repo.Create(ctx, a)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
