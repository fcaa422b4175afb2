package matchbook

import (
	"github.com/igrmk/treemap/v2"
)

// level is the FIFO queue of resting orders sharing one price. A head index
// is used instead of reslicing on every dequeue so pop-from-front stays O(1);
// the dead prefix is dropped once it reaches half the backing array.
type level struct {
	orders   []*Order
	head     int
	totalQty int64
}

func (l *level) push(o *Order) {
	l.orders = append(l.orders, o)
	l.totalQty += o.Qty
}

func (l *level) empty() bool {
	return l.head >= len(l.orders)
}

func (l *level) front() *Order {
	return l.orders[l.head]
}

func (l *level) popFront() {
	l.head++
	if l.head >= len(l.orders)/2 {
		l.orders = append([]*Order(nil), l.orders[l.head:]...)
		l.head = 0
	}
}

// remove deletes the order with the given id, keeping the arrival order of
// the remaining orders intact. Linear in the number of orders at this price.
func (l *level) remove(id uint64) (*Order, bool) {
	for i := l.head; i < len(l.orders); i++ {
		if l.orders[i].ID == id {
			o := l.orders[i]
			l.orders = append(l.orders[:i], l.orders[i+1:]...)
			l.totalQty -= o.Qty
			return o, true
		}
	}
	return nil, false
}

func (l *level) size() int {
	return len(l.orders) - l.head
}

// bookSide holds all resting orders on one side, price levels ordered best
// first: bids descending, asks ascending. A price key exists in the tree iff
// its level is non-empty. Keys are float64 projections of the decimal order
// price; the exact decimal lives on the orders themselves.
type bookSide struct {
	levels *treemap.TreeMap[float64, *level]
	orders int // resting orders across all levels
}

func newBookSide(priceDescending bool) *bookSide {
	less := func(a, b float64) bool { return a < b }
	if priceDescending {
		less = func(a, b float64) bool { return a > b }
	}
	return &bookSide{
		levels: treemap.NewWithKeyCompare[float64, *level](less),
	}
}

// insert appends the order to the FIFO queue at price, creating the level
// if absent.
func (s *bookSide) insert(price float64, o *Order) {
	lvl, ok := s.levels.Get(price)
	if !ok {
		lvl = &level{}
		s.levels.Set(price, lvl)
	}
	lvl.push(o)
	s.orders++
}

// best returns the best-priced level, or false when the side is empty.
func (s *bookSide) best() (float64, *level, bool) {
	it := s.levels.Iterator()
	if !it.Valid() {
		return 0, nil, false
	}
	return it.Key(), it.Value(), true
}

// dropFront pops the fully consumed front order of the level at price and
// removes the level once its queue drains.
func (s *bookSide) dropFront(price float64, lvl *level) {
	lvl.popFront()
	s.orders--
	if lvl.empty() {
		s.levels.Del(price)
	}
}

// remove locates and removes one resting order, dropping the level if it
// becomes empty. Returns false when no order with that id rests at price.
func (s *bookSide) remove(price float64, id uint64) (*Order, bool) {
	lvl, ok := s.levels.Get(price)
	if !ok {
		return nil, false
	}
	o, ok := lvl.remove(id)
	if !ok {
		return nil, false
	}
	s.orders--
	if lvl.empty() {
		s.levels.Del(price)
	}
	return o, true
}

func (s *bookSide) len() int {
	return s.orders
}

// each visits resting orders in match order: best price first, FIFO within
// a level. The walk stops early when fn returns false.
func (s *bookSide) each(fn func(price float64, o *Order) bool) {
	for it := s.levels.Iterator(); it.Valid(); it.Next() {
		lvl := it.Value()
		for i := lvl.head; i < len(lvl.orders); i++ {
			if !fn(it.Key(), lvl.orders[i]) {
				return
			}
		}
	}
}
