package unit

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyUnitName = errors.New("unit name cannot be empty")
	ErrNegativeRate  = errors.New("nightly rate cannot be negative")
	ErrUnitInactive  = errors.New("unit is not active")
	ErrEmptyUnitRef  = errors.New("unit reference needs an id or a code")
)

const MaxUnitNameLength = 255

// Unit is a bookable cabin type. Immutable for the duration of a pricing
// calculation.
type Unit struct {
	id               uuid.UUID
	code             string
	name             string
	weekdayRateCents int64
	weekendRateCents int64
	isActive         bool
	createdAt        time.Time
	updatedAt        time.Time
}

func NewUnit(id uuid.UUID, code, name string, weekdayRateCents, weekendRateCents int64, isActive bool) (*Unit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if weekdayRateCents < 0 || weekendRateCents < 0 {
		return nil, ErrNegativeRate
	}

	return &Unit{
		id:               id,
		code:             strings.TrimSpace(code),
		name:             name,
		weekdayRateCents: weekdayRateCents,
		weekendRateCents: weekendRateCents,
		isActive:         isActive,
	}, nil
}

func (u *Unit) ID() uuid.UUID           { return u.id }
func (u *Unit) Code() string            { return u.code }
func (u *Unit) Name() string            { return u.name }
func (u *Unit) WeekdayRateCents() int64 { return u.weekdayRateCents }
func (u *Unit) WeekendRateCents() int64 { return u.weekendRateCents }
func (u *Unit) IsActive() bool          { return u.isActive }
func (u *Unit) CreatedAt() time.Time    { return u.createdAt }
func (u *Unit) UpdatedAt() time.Time    { return u.updatedAt }

func (u *Unit) Ref() Ref {
	return Ref{id: u.id, code: u.code}
}

// Ref identifies a unit by id and/or legacy code. The id is authoritative;
// the code is still honored as a join key for rows that predate ids.
type Ref struct {
	id   uuid.UUID
	code string
}

func NewRef(id uuid.UUID, code string) (Ref, error) {
	code = strings.TrimSpace(code)
	if id == uuid.Nil && code == "" {
		return Ref{}, ErrEmptyUnitRef
	}
	return Ref{id: id, code: code}, nil
}

func (r Ref) ID() uuid.UUID { return r.id }
func (r Ref) Code() string  { return r.code }

// Matches reports whether a stored row identified by rowID/rowCode refers to
// the same unit. Legacy rows may carry only a code, so either key matching
// counts as identity.
func (r Ref) Matches(rowID uuid.UUID, rowCode string) bool {
	if r.id != uuid.Nil && rowID != uuid.Nil && r.id == rowID {
		return true
	}
	if r.code != "" && rowCode != "" && strings.EqualFold(r.code, rowCode) {
		return true
	}
	return false
}

func (r Ref) String() string {
	if r.id != uuid.Nil {
		return r.id.String()
	}
	return r.code
}
