package matchbook

// Callbacks run synchronously on the submitting goroutine, after the book
// state for the event is fully updated. They must not call back into the
// book.

type OrderCallbackFunc func(order Order)
type TradeCallbackFunc func(trade Trade)
