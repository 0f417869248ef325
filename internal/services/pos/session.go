package pos

import (
	"sync"

	"restaurant-pos/internal/cart"
	"restaurant-pos/internal/models"
	"restaurant-pos/internal/workflow"
)

// Session holds the per-terminal state between requests: the working cart
// and, after checkout, the line snapshot that will appear on the receipt.
type Session struct {
	mu             sync.Mutex
	cart           *cart.Cart
	pendingOrderID int64
	pendingLines   []models.CartLine
}

func newSession() *Session {
	return &Session{cart: cart.New()}
}

// rememberOrder stores the confirmed order ID and its line snapshot so a
// later settlement request can print the receipt without a database read.
func (s *Session) rememberOrder(orderID int64, intent *workflow.OrderIntent) {
	s.pendingOrderID = orderID
	s.pendingLines = intent.Lines()
	s.cart.Clear()
}

// takePendingLines returns the line snapshot for the given order, if this
// session checked it out, and forgets it.
func (s *Session) takePendingLines(orderID int64) ([]models.CartLine, bool) {
	if s.pendingOrderID != orderID || s.pendingLines == nil {
		return nil, false
	}
	lines := s.pendingLines
	s.pendingOrderID = 0
	s.pendingLines = nil
	return lines, true
}

// discard drops the working cart and any pending order snapshot
func (s *Session) discard() {
	s.cart.Clear()
	s.pendingOrderID = 0
	s.pendingLines = nil
}

// Sessions is a registry of active terminal sessions keyed by session ID
type Sessions struct {
	mu sync.Mutex
	m  map[string]*Session
}

// NewSessions creates an empty session registry
func NewSessions() *Sessions {
	return &Sessions{m: make(map[string]*Session)}
}

// Get returns the session for the given ID, creating it if needed
func (r *Sessions) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.m[id]
	if !ok {
		s = newSession()
		r.m[id] = s
	}
	return s
}
