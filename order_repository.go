package matchbook

// OrderRepository observes order state transitions outside the book. The
// engine calls Save whenever an order rests, is partially or fully filled,
// or is cancelled; implementations decide what to keep. Save failures are
// logged by the engine and never affect matching.
type OrderRepository interface {
	Save(order Order) error
	GetByID(id uint64) (Order, error)
}

// NOPOrderRepository drops everything it is given.
var NOPOrderRepository = &nopOrderRepository{}

type nopOrderRepository struct {
}

func (n *nopOrderRepository) Save(order Order) error {
	return nil
}

func (n *nopOrderRepository) GetByID(id uint64) (Order, error) {
	return Order{}, nil
}
