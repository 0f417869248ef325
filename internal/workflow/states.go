package workflow

import "restaurant-pos/internal/models"

// State is a stage in the order lifecycle. Draft exists only in memory
// (cart and order intent); the later states are backed by the orders table.
type State string

const (
	StateDraft           State = "draft"
	StateConfirmed       State = "confirmed"
	StateAwaitingPayment State = "awaiting_payment"
	StateCompleted       State = "completed"
	StateCancelled       State = "cancelled"
)

// transitions maps each state to the states reachable from it.
// Completed and Cancelled are terminal.
var transitions = map[State][]State{
	StateDraft:           {StateConfirmed, StateCancelled},
	StateConfirmed:       {StateAwaitingPayment, StateCancelled},
	StateAwaitingPayment: {StateCompleted, StateCancelled},
	StateCompleted:       {},
	StateCancelled:       {},
}

// CanTransition reports whether moving from one state to another is allowed
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no transitions leave the state
func (s State) Terminal() bool {
	return len(transitions[s]) == 0
}

// stateOf maps a persisted order status onto the lifecycle. The single
// persisted "pending" status stands for an order awaiting settlement, so
// it maps to the awaiting-payment stage.
func stateOf(status models.OrderStatus) State {
	switch status {
	case models.OrderCompleted:
		return StateCompleted
	case models.OrderCancelled:
		return StateCancelled
	default:
		return StateAwaitingPayment
	}
}
