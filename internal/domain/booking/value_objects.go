package booking

import (
	"crypto/rand"
	"errors"
	"strings"
)

// Money is an amount in integer cents. Arithmetic stays exact; formatting to
// a currency string happens at the edge.
type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 { return m.cents }

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// SubFloor subtracts and floors at zero.
func (m Money) SubFloor(other Money) Money {
	remaining := m.cents - other.cents
	if remaining < 0 {
		remaining = 0
	}
	return Money{cents: remaining}
}

func (m Money) MulInt(n int64) Money {
	return Money{cents: m.cents * n}
}

func (m Money) Min(other Money) Money {
	if other.cents < m.cents {
		return other
	}
	return m
}

func (m Money) IsZero() bool     { return m.cents == 0 }
func (m Money) IsNegative() bool { return m.cents < 0 }

func (m Money) Dollars() float64 {
	return float64(m.cents) / 100.0
}

var (
	ErrEmptyGuestName  = errors.New("guest name cannot be empty")
	ErrEmptyGuestEmail = errors.New("guest email cannot be empty")
)

type Guest struct {
	name  string
	email string
	phone string
}

func NewGuest(name, email, phone string) (Guest, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return Guest{}, ErrEmptyGuestName
	}
	if email == "" {
		return Guest{}, ErrEmptyGuestEmail
	}
	return Guest{name: name, email: strings.ToLower(email), phone: strings.TrimSpace(phone)}, nil
}

func (g Guest) Name() string  { return g.name }
func (g Guest) Email() string { return g.email }
func (g Guest) Phone() string { return g.phone }

const confirmationCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// NewConfirmationCode generates the short code printed on guest-facing
// confirmations and shared by every reservation in a group.
func NewConfirmationCode() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "RSVP0000"
	}
	code := make([]byte, len(buf))
	for i, b := range buf {
		code[i] = confirmationCodeAlphabet[int(b)%len(confirmationCodeAlphabet)]
	}
	return string(code)
}
