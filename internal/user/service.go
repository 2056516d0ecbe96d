package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=user
type Repository interface {
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id uuid.UUID) (*User, error)
	// GetByUsername matches case-insensitively.
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, filter ListFilter) ([]*User, error)
	Update(ctx context.Context, u *User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByRole(ctx context.Context, role Role) (int, error)
}

type Service struct {
	repo Repository
	cost int
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, cost: bcrypt.DefaultCost}
}

// WithCost overrides the bcrypt cost, tests use bcrypt.MinCost.
func (s *Service) WithCost(cost int) *Service {
	s.cost = cost
	return s
}

func (s *Service) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	return string(h), nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*User, error) {
	if err := params.normalize(); err != nil {
		return nil, err
	}

	if err := s.ensureUsernameFree(ctx, params.Username, uuid.Nil); err != nil {
		return nil, err
	}

	hash, err := s.hash(params.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Username:     params.Username,
		PasswordHash: hash,
		Role:         params.Role,
		FullName:     params.FullName,
		HouseNumber:  params.HouseNumber,
		Phone:        params.Phone,
		Occupancy:    params.Occupancy,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return u, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*User, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.List(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if username := strings.TrimSpace(params.Username); username != "" && username != u.Username {
		if err := s.ensureUsernameFree(ctx, username, id); err != nil {
			return nil, err
		}

		u.Username = username
	}

	if params.Role != "" {
		if !params.Role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidUser, params.Role)
		}

		u.Role = params.Role
	}

	if params.Occupancy != "" {
		if !params.Occupancy.Valid() {
			return nil, fmt.Errorf("%w: unknown occupancy %q", ErrInvalidUser, params.Occupancy)
		}

		u.Occupancy = params.Occupancy
	}

	u.FullName = params.FullName
	u.HouseNumber = params.HouseNumber
	u.Phone = params.Phone

	if strings.TrimSpace(params.Password) != "" {
		hash, err := s.hash(params.Password)
		if err != nil {
			return nil, err
		}

		u.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return u, nil
}

// Delete removes a user. actorID is the account performing the deletion.
func (s *Service) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return ErrSelfDelete
	}

	return s.repo.Delete(ctx, id)
}

// Authenticate checks a username and password. Unknown users and wrong passwords
// return the same error.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", ErrInvalidUser)
	}

	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := s.hash(newPassword)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, id, hash)
}

// EnsureAdmin creates the bootstrap administrator when no account has the username.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}

	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("looking up admin: %w", err)
	}

	if _, err := s.Create(ctx, CreateParams{
		Username: username,
		Password: password,
		Role:     RoleAdmin,
		FullName: "Administrator",
	}); err != nil {
		return err
	}

	slog.InfoContext(ctx, "bootstrap admin created", "username", username)

	return nil
}

func (s *Service) CountResidents(ctx context.Context) (int, error) {
	return s.repo.CountByRole(ctx, RoleResident)
}

func (s *Service) ensureUsernameFree(ctx context.Context, username string, self uuid.UUID) error {
	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}

		return fmt.Errorf("checking username: %w", err)
	}

	if existing.ID != self {
		return ErrUsernameTaken
	}

	return nil
}
