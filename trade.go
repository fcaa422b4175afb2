package matchbook

import (
	"time"

	"github.com/cockroachdb/apd"
	"github.com/google/uuid"
)

// Trade represents two opposed matched orders. Price is always the resting
// order's price - the resting side sets the execution price, not the
// aggressor. Trades are immutable once entered into a TradeBook.
type Trade struct {
	ID            uint64
	Buyer, Seller uuid.UUID
	Instrument    string
	Qty           int64
	Price         apd.Decimal
	Total         apd.Decimal
	Timestamp     time.Time

	BidOrderID uint64
	AskOrderID uint64
}
