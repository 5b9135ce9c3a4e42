//go:build unit || e2e

package builder

import (
	domunit "cabinstay/internal/domain/unit"
	"cabinstay/internal/usecase/shared"

	"github.com/google/uuid"
)

type UnitBuilder struct {
	ID               uuid.UUID
	Code             string
	Name             string
	WeekdayRateCents int64
	WeekendRateCents int64
	IsActive         bool
}

func NewUnitBuilder() *UnitBuilder {
	return &UnitBuilder{
		ID:               uuid.New(),
		Code:             "CEDAR-01",
		Name:             "Cedar Cabin",
		WeekdayRateCents: 10000,
		WeekendRateCents: 15000,
		IsActive:         true,
	}
}

func (u *UnitBuilder) With(mutate func(*UnitBuilder)) *UnitBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UnitBuilder) BuildDomain() (*domunit.Unit, error) {
	return domunit.NewUnit(u.ID, u.Code, u.Name, u.WeekdayRateCents, u.WeekendRateCents, u.IsActive)
}

func (u *UnitBuilder) MustBuildDomain() *domunit.Unit {
	built, err := u.BuildDomain()
	if err != nil {
		panic(err)
	}
	return built
}

func (u *UnitBuilder) BuildRef() domunit.Ref {
	ref, err := domunit.NewRef(u.ID, u.Code)
	if err != nil {
		panic(err)
	}
	return ref
}

func (u *UnitBuilder) BuildSnapshot() *shared.UnitSnapshot {
	return &shared.UnitSnapshot{
		ID:               u.ID,
		Code:             u.Code,
		Name:             u.Name,
		WeekdayRateCents: u.WeekdayRateCents,
		WeekendRateCents: u.WeekendRateCents,
		IsActive:         u.IsActive,
	}
}

// Fluent builder methods
func (u *UnitBuilder) WithID(id uuid.UUID) *UnitBuilder {
	u.ID = id
	return u
}

func (u *UnitBuilder) WithCode(code string) *UnitBuilder {
	u.Code = code
	return u
}

func (u *UnitBuilder) WithName(name string) *UnitBuilder {
	u.Name = name
	return u
}

func (u *UnitBuilder) WithRates(weekdayCents, weekendCents int64) *UnitBuilder {
	u.WeekdayRateCents = weekdayCents
	u.WeekendRateCents = weekendCents
	return u
}

func (u *UnitBuilder) AsInactive() *UnitBuilder {
	u.IsActive = false
	return u
}
