package booking

import (
	"time"

	"cabinstay/internal/domain/unit"

	"github.com/google/uuid"
)

// PricedUnit is one selected unit with its room subtotal over the shared
// stay range.
type PricedUnit struct {
	Unit         *unit.Unit
	RoomSubtotal Money
	Breakdown    NightBreakdown
}

// Group is the result of assembling a booking: one leader carrying extras,
// discount and coupon, plus cost-only members for the remaining units. A
// single-unit booking is a group with no members and no group id.
type Group struct {
	Leader  *Booking
	Members []*Booking
}

func (g *Group) All() []*Booking {
	all := make([]*Booking, 0, 1+len(g.Members))
	all = append(all, g.Leader)
	return append(all, g.Members...)
}

// AggregateRoomSubtotal sums every unit's subtotal. Display-only; it is never
// stored as a single field.
func (g *Group) AggregateRoomSubtotal() Money {
	total := g.Leader.RoomSubtotal()
	for _, m := range g.Members {
		total = total.Add(m.RoomSubtotal())
	}
	return total
}

func (g *Group) Total() Money {
	total := g.Leader.Total()
	for _, m := range g.Members {
		total = total.Add(m.Total())
	}
	return total
}

// EditContext carries identity to preserve when re-assembling an existing
// booking.
type EditContext struct {
	BookingID uuid.UUID
	GroupID   *uuid.UUID
	GroupCode *string
}

// buildGroup splits priced units into leader and member drafts. The first
// unit becomes the leader. Group identity rules:
//   - N == 1: no group id, ever.
//   - N > 1, new booking: group id is the leader's own id, fresh code.
//   - N > 1, edit of an already-grouped booking: prior group id and code are
//     preserved so siblings stay consistent.
//   - N > 1, edit of a previously single booking: the edited reservation
//     becomes the new leader and anchors a fresh group.
func buildGroup(
	units []PricedUnit,
	stay StayRange,
	guest Guest,
	extras []ExtraLine,
	discount Money,
	couponCode *string,
	packageID *uuid.UUID,
	edit *EditContext,
	now time.Time,
) (*Group, error) {
	leaderID := uuid.Nil
	if edit != nil {
		leaderID = edit.BookingID
	}

	leader, err := newBooking(leaderID, units[0].Unit.Ref(), stay, guest, units[0].RoomSubtotal, extras, discount, couponCode, packageID, now)
	if err != nil {
		return nil, err
	}

	group := &Group{Leader: leader}
	if len(units) == 1 {
		return group, nil
	}

	groupID := leader.id
	groupCode := NewConfirmationCode()
	if edit != nil && edit.GroupID != nil && edit.GroupCode != nil {
		groupID = *edit.GroupID
		groupCode = *edit.GroupCode
	}
	leader.groupID = &groupID
	leader.groupCode = &groupCode

	for _, pu := range units[1:] {
		member, err := newBooking(uuid.Nil, pu.Unit.Ref(), stay, guest, pu.RoomSubtotal, nil, NewMoney(0), nil, packageID, now)
		if err != nil {
			return nil, err
		}
		member.groupID = &groupID
		member.groupCode = &groupCode
		group.Members = append(group.Members, member)
	}

	return group, nil
}
