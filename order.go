package matchbook

import (
	"time"

	"github.com/cockroachdb/apd"
	"github.com/google/uuid"
)

const (
	// MinQty is the smallest accepted order quantity.
	MinQty = 1

	// NoOrderID is returned for submissions that are rejected outright.
	NoOrderID uint64 = 0
)

type OrderSide byte

const (
	SideBuy OrderSide = iota + 1
	SideSell
)

func (s OrderSide) String() string {
	switch s {
	case SideBuy:
		return "buy"
	case SideSell:
		return "sell"
	}
	return "unknown"
}

// Opposite returns the side an order of this side matches against.
func (s OrderSide) Opposite() OrderSide {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

type OrderType byte

const (
	TypeLimit OrderType = iota + 1
	TypeMarket
)

func (t OrderType) String() string {
	switch t {
	case TypeLimit:
		return "limit"
	case TypeMarket:
		return "market"
	}
	return "unknown"
}

// Order is a single order known to the book. Qty is the remaining quantity;
// the matching loop is the only mutator while the order rests. Timestamp is
// diagnostic only - priority comes from insertion position, never from it.
type Order struct {
	ID        uint64
	Owner     uuid.UUID
	Side      OrderSide
	Type      OrderType
	Price     apd.Decimal // zero for market orders; never validated
	Qty       int64
	Timestamp time.Time
}

func (o Order) IsBid() bool {
	return o.Side == SideBuy
}
