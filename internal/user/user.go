package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSelfDelete         = errors.New("cannot delete your own account")
	ErrInvalidUser        = errors.New("invalid user")
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleViewer   Role = "viewer"
	RoleResident Role = "resident"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleViewer, RoleResident:
		return true
	}

	return false
}

// CanRead reports access to the administrative read views.
func (r Role) CanRead() bool {
	return r == RoleAdmin || r == RoleViewer
}

// CanWrite reports access to administrative changes.
func (r Role) CanWrite() bool {
	return r == RoleAdmin
}

type Occupancy string

const (
	OccupancyOccupied Occupancy = "dihuni"
	OccupancyRented   Occupancy = "sewa"
	OccupancyEmpty    Occupancy = "kosong"
)

func (o Occupancy) Valid() bool {
	switch o {
	case OccupancyOccupied, OccupancyRented, OccupancyEmpty:
		return true
	}

	return false
}

type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         Role
	FullName     string
	HouseNumber  string
	Phone        string
	Occupancy    Occupancy
	CreatedAt    time.Time
}

type CreateParams struct {
	Username    string
	Password    string
	Role        Role
	FullName    string
	HouseNumber string
	Phone       string
	Occupancy   Occupancy
}

func (p *CreateParams) normalize() error {
	p.Username = strings.TrimSpace(p.Username)
	if p.Username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidUser)
	}

	if p.Password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidUser)
	}

	if p.Role == "" {
		p.Role = RoleResident
	}

	if !p.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidUser, p.Role)
	}

	if p.Occupancy == "" {
		p.Occupancy = OccupancyOccupied
	}

	if !p.Occupancy.Valid() {
		return fmt.Errorf("%w: unknown occupancy %q", ErrInvalidUser, p.Occupancy)
	}

	return nil
}

// UpdateParams replaces the profile of a user. An empty Password keeps the current one.
type UpdateParams struct {
	Username    string
	Password    string
	Role        Role
	FullName    string
	HouseNumber string
	Phone       string
	Occupancy   Occupancy
}

// ListFilter restricts a user listing. Search matches name or house number.
type ListFilter struct {
	Role   *Role
	Search string
}
