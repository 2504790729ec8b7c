package core

// The order lifecycle:
//
//	pending → processing → shipped → delivered
//	pending | processing | shipped → returned | cancelled
//
// delivered, returned and cancelled are terminal. Invalid transitions are
// rejected rather than silently applied.

// Terminal reports whether no further transitions are defined from s.
func (s OrderStatus) Terminal() bool {
	switch s {
	case StatusDelivered, StatusReturned, StatusCancelled:
		return true
	}
	return false
}

// Valid reports whether s is one of the defined order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusReturned, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether the order status graph defines an edge from → to.
func CanTransition(from, to OrderStatus) bool {
	if !from.Valid() || !to.Valid() || from == to {
		return false
	}
	switch from {
	case StatusPending:
		return to == StatusProcessing || to == StatusShipped || to == StatusDelivered ||
			to == StatusReturned || to == StatusCancelled
	case StatusProcessing:
		return to == StatusShipped || to == StatusDelivered || to == StatusReturned || to == StatusCancelled
	case StatusShipped:
		return to == StatusDelivered || to == StatusReturned || to == StatusCancelled
	}
	return false
}

// stockEffect is the inventory side effect a transition triggers.
type stockEffect int

const (
	stockNone stockEffect = iota
	stockDebit
	stockCredit
)

// transitionStockEffect returns the inventory reconciliation a from→to
// transition requires:
//
//   - leaving pending for processing/shipped/delivered debits the order quantity
//     (not cancellations or returns — those never consumed stock);
//   - entering returned/cancelled from any non-terminal-return state credits it
//     back;
//   - everything else leaves stock untouched.
func transitionStockEffect(from, to OrderStatus) stockEffect {
	if to == StatusReturned || to == StatusCancelled {
		if from != StatusReturned && from != StatusCancelled {
			return stockCredit
		}
		return stockNone
	}
	if from == StatusPending {
		switch to {
		case StatusProcessing, StatusShipped, StatusDelivered:
			return stockDebit
		}
	}
	return stockNone
}
