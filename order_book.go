// Package matchbook implements a single-instrument limit order book with
// price-time priority matching: better price always matches first, and ties
// at a price are broken purely by arrival order.
package matchbook

import (
	"log"
	"math"
	"time"

	"github.com/cockroachdb/apd"
	"github.com/google/uuid"
)

// BaseContext carries the decimal arithmetic settings used for trade totals.
var BaseContext = apd.Context{
	Precision:   0, // no rounding
	MaxExponent: apd.MaxExponent,
	MinExponent: apd.MinExponent,
	Traps:       apd.DefaultTraps,
}

// Sentinel limits under which market orders always satisfy the crossing
// condition. Market orders never rest, so a sentinel never becomes a key.
const (
	marketBuyLimit  = math.MaxFloat64
	marketSellLimit = -math.MaxFloat64
)

// slot records where a resting order currently lives.
type slot struct {
	price float64
	side  OrderSide
}

// OrderBook contains all resting orders for an instrument and handles
// matching, cancellation and the audit trail of executed trades.
//
// The book is single-writer by design: no operation takes a lock, and every
// operation runs to completion before returning. A host embedding it in a
// concurrent program must serialize access, e.g. one matching goroutine
// consuming a command queue.
type OrderBook struct {
	Instrument string

	bids *bookSide
	asks *bookSide

	index map[uint64]slot // order ID -> resting location

	tradeBook *TradeBook
	orderRepo OrderRepository

	marketPrice apd.Decimal // price of the most recent execution

	nextID uint64 // never reset; NoOrderID is reserved for rejections

	onTrade  TradeCallbackFunc
	onRested OrderCallbackFunc
}

// Create a new order book.
func NewOrderBook(instrument string, tradeBook *TradeBook, orderRepo OrderRepository) *OrderBook {
	return &OrderBook{
		Instrument: instrument,
		bids:       newBookSide(true),
		asks:       newBookSide(false),
		index:      make(map[uint64]slot),
		tradeBook:  tradeBook,
		orderRepo:  orderRepo,
	}
}

// OnTrade registers an observer invoked once per executed trade.
func (o *OrderBook) OnTrade(cb TradeCallbackFunc) {
	o.onTrade = cb
}

// OnOrderRested registers an observer invoked when an order enters the book.
func (o *OrderBook) OnOrderRested(cb OrderCallbackFunc) {
	o.onRested = cb
}

// SubmitLimit submits a limit order. It is matched immediately as far as the
// opposite side allows; any remainder rests in the book. Returns the
// assigned order ID, or NoOrderID when qty is below MinQty (the book is
// left untouched). Price is not validated - negative and zero prices are
// accepted as-is.
func (o *OrderBook) SubmitLimit(side OrderSide, price apd.Decimal, qty int64) uint64 {
	return o.SubmitLimitAs(uuid.Nil, side, price, qty)
}

// SubmitLimitAs is SubmitLimit with an owning party recorded on the order
// and carried into its trades.
func (o *OrderBook) SubmitLimitAs(owner uuid.UUID, side OrderSide, price apd.Decimal, qty int64) uint64 {
	if qty < MinQty {
		return NoOrderID
	}
	limit, err := price.Float64() // ledger keys are float projections of the decimal price
	if err != nil {
		log.Printf("unrepresentable price %s: %v", price.String(), err)
		return NoOrderID
	}
	order := &Order{
		ID:        o.assignID(),
		Owner:     owner,
		Side:      side,
		Type:      TypeLimit,
		Price:     price,
		Qty:       qty,
		Timestamp: time.Now(),
	}
	o.match(order, limit)
	if order.Qty > 0 {
		o.rest(order, limit)
	}
	return order.ID
}

// SubmitMarket submits a market order: a marketable limit whose sentinel
// limit always crosses. It never rests - any remainder left after the
// opposite side is exhausted is discarded. The assigned ID is consumed
// either way.
func (o *OrderBook) SubmitMarket(side OrderSide, qty int64) uint64 {
	return o.SubmitMarketAs(uuid.Nil, side, qty)
}

// SubmitMarketAs is SubmitMarket with an owning party recorded on the order.
func (o *OrderBook) SubmitMarketAs(owner uuid.UUID, side OrderSide, qty int64) uint64 {
	if qty < MinQty {
		return NoOrderID
	}
	limit := marketSellLimit
	if side == SideBuy {
		limit = marketBuyLimit
	}
	order := &Order{
		ID:        o.assignID(),
		Owner:     owner,
		Side:      side,
		Type:      TypeMarket,
		Qty:       qty,
		Timestamp: time.Now(),
	}
	o.match(order, limit)
	return order.ID
}

// Cancel removes a resting order. It reports false, with no state change,
// when the ID is unknown or the order was already filled or cancelled; a
// second Cancel of the same ID therefore always reports false.
func (o *OrderBook) Cancel(id uint64) bool {
	loc, ok := o.index[id]
	if !ok {
		return false
	}
	side := o.asks
	if loc.side == SideBuy {
		side = o.bids
	}
	delete(o.index, id)
	order, ok := side.remove(loc.price, id)
	if !ok {
		log.Printf("order %d indexed at price %v but not resting there", id, loc.price)
		return false
	}
	o.saveOrder(*order)
	return true
}

// Reset empties both sides, the index and the trade log. The order ID
// sequence continues, keeping IDs unique across the book's lifetime.
func (o *OrderBook) Reset() {
	o.bids = newBookSide(true)
	o.asks = newBookSide(false)
	o.index = make(map[uint64]slot)
	o.tradeBook.Reset()
}

// ActiveOrders reports how many orders rest across both sides.
func (o *OrderBook) ActiveOrders() int {
	return len(o.index)
}

// Trades returns the executed trades in execution order.
func (o *OrderBook) Trades() []Trade {
	return o.tradeBook.Trades()
}

// MarketPrice returns the price of the most recent execution.
func (o *OrderBook) MarketPrice() apd.Decimal {
	return o.marketPrice
}

// Quote is an aggregate view of the best level on one side.
type Quote struct {
	Price float64
	Qty   int64
}

// BestBid returns the highest bid level, false when no bids rest.
func (o *OrderBook) BestBid() (Quote, bool) {
	return bestOf(o.bids)
}

// BestAsk returns the lowest ask level, false when no asks rest.
func (o *OrderBook) BestAsk() (Quote, bool) {
	return bestOf(o.asks)
}

func bestOf(side *bookSide) (Quote, bool) {
	price, lvl, ok := side.best()
	if !ok {
		return Quote{}, false
	}
	return Quote{Price: price, Qty: lvl.totalQty}, true
}

// Bids returns all resting bids ordered the same way they are matched.
func (o *OrderBook) Bids() []Order {
	return collect(o.bids)
}

// Asks returns all resting asks ordered the same way they are matched.
func (o *OrderBook) Asks() []Order {
	return collect(o.asks)
}

func collect(side *bookSide) []Order {
	orders := make([]Order, 0, side.len())
	side.each(func(_ float64, o *Order) bool {
		orders = append(orders, *o)
		return true
	})
	return orders
}

// match sweeps the opposite side best price first while the incoming order
// has quantity left and the best opposite price still crosses the limit.
// Within a level resting orders are consumed strictly in arrival order.
// Each pairwise match trades min(incoming, resting) at the resting order's
// price; a drained resting order is popped and unregistered, a drained
// level is dropped from the ledger.
func (o *OrderBook) match(incoming *Order, limit float64) {
	opposite := o.asks
	if !incoming.IsBid() {
		opposite = o.bids
	}
	for incoming.Qty > 0 {
		price, lvl, ok := opposite.best()
		if !ok || !crosses(incoming.Side, limit, price) {
			return
		}
		resting := lvl.front()
		qty := min(incoming.Qty, resting.Qty)
		incoming.Qty -= qty
		resting.Qty -= qty
		lvl.totalQty -= qty
		o.recordTrade(incoming, resting, qty)
		o.saveOrder(*resting)
		if resting.Qty == 0 {
			opposite.dropFront(price, lvl)
			delete(o.index, resting.ID)
		}
	}
}

// crosses reports whether a resting level at price is eligible against an
// incoming order with the given limit: buys match levels at or below the
// limit, sells match levels at or above it.
func crosses(side OrderSide, limit, price float64) bool {
	if side == SideBuy {
		return price <= limit
	}
	return price >= limit
}

func (o *OrderBook) recordTrade(incoming, resting *Order, qty int64) {
	buyer, seller := incoming.Owner, resting.Owner
	bidOrderID, askOrderID := incoming.ID, resting.ID
	if !incoming.IsBid() {
		buyer, seller = resting.Owner, incoming.Owner
		bidOrderID, askOrderID = resting.ID, incoming.ID
	}
	price := resting.Price
	var total apd.Decimal
	if _, err := BaseContext.Mul(&total, &price, apd.New(qty, 0)); err != nil {
		log.Printf("cannot compute trade total for %s x %d: %v", price.String(), qty, err)
	}
	trade := o.tradeBook.Enter(Trade{
		Buyer:      buyer,
		Seller:     seller,
		Qty:        qty,
		Price:      price,
		Total:      total,
		Timestamp:  time.Now(),
		BidOrderID: bidOrderID,
		AskOrderID: askOrderID,
	})
	o.marketPrice = price
	if o.onTrade != nil {
		o.onTrade(trade)
	}
}

func (o *OrderBook) rest(order *Order, key float64) {
	if order.Side == SideBuy {
		o.bids.insert(key, order)
	} else {
		o.asks.insert(key, order)
	}
	o.index[order.ID] = slot{price: key, side: order.Side}
	o.saveOrder(*order)
	if o.onRested != nil {
		o.onRested(*order)
	}
}

func (o *OrderBook) saveOrder(order Order) {
	if err := o.orderRepo.Save(order); err != nil {
		log.Printf("cannot save order %d - repository data might be inconsistent: %v", order.ID, err)
	}
}

func (o *OrderBook) assignID() uint64 {
	o.nextID++
	return o.nextID
}
