package matchbook

// TradeBook is the append-only execution log for an instrument. Entries are
// never edited or removed; append order is execution order.
type TradeBook struct {
	Instrument string

	trades []Trade
	nextID uint64
}

func NewTradeBook(instrument string) *TradeBook {
	return &TradeBook{
		Instrument: instrument,
		trades:     make([]Trade, 0, 1024),
	}
}

// Enter appends a trade, stamping it with the next trade ID and the book's
// instrument. The stored trade is returned.
func (t *TradeBook) Enter(trade Trade) Trade {
	t.nextID++
	trade.ID = t.nextID
	trade.Instrument = t.Instrument
	t.trades = append(t.trades, trade)
	return trade
}

// Trades returns a copy of the log in execution order.
func (t *TradeBook) Trades() []Trade {
	tradesCopy := make([]Trade, len(t.trades))
	copy(tradesCopy, t.trades)
	return tradesCopy
}

func (t *TradeBook) Len() int {
	return len(t.trades)
}

// Reset empties the log. The trade ID sequence continues, so IDs stay
// unique across the book's lifetime.
func (t *TradeBook) Reset() {
	t.trades = t.trades[:0]
}
