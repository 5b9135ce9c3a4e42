package extra

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyExtraName  = errors.New("extra name cannot be empty")
	ErrNegativePrice   = errors.New("extra price cannot be negative")
	ErrInvalidQuantity = errors.New("extra quantity must be positive")
	ErrUnknownExtra    = errors.New("unknown extra")
	ErrExtraNotOffered = errors.New("extra is not currently offered")
)

// Extra is a priced add-on from the catalog (firewood bundle, hot tub,
// late checkout and the like).
type Extra struct {
	id         uuid.UUID
	name       string
	priceCents int64
	isActive   bool
}

func NewExtra(id uuid.UUID, name string, priceCents int64, isActive bool) (*Extra, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyExtraName
	}
	if priceCents < 0 {
		return nil, ErrNegativePrice
	}
	return &Extra{id: id, name: name, priceCents: priceCents, isActive: isActive}, nil
}

func (e *Extra) ID() uuid.UUID     { return e.id }
func (e *Extra) Name() string      { return e.name }
func (e *Extra) PriceCents() int64 { return e.priceCents }
func (e *Extra) IsActive() bool    { return e.isActive }

// Selection is a caller-supplied (extra, quantity) pair, not yet priced.
type Selection struct {
	ExtraID  uuid.UUID
	Quantity int32
}

// Catalog resolves selections against the loaded extras.
type Catalog map[uuid.UUID]*Extra

func NewCatalog(extras []*Extra) Catalog {
	c := make(Catalog, len(extras))
	for _, e := range extras {
		c[e.ID()] = e
	}
	return c
}

// Resolve prices a selection. Unknown or inactive extras reject the whole
// selection; the unit price is always the catalog price at resolution time.
func (c Catalog) Resolve(sel Selection) (*Extra, error) {
	if sel.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	e, ok := c[sel.ExtraID]
	if !ok {
		return nil, ErrUnknownExtra
	}
	if !e.IsActive() {
		return nil, ErrExtraNotOffered
	}
	return e, nil
}
