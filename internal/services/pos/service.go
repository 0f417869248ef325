package pos

import (
	"context"
	"errors"

	"restaurant-pos/internal/catalog"
	"restaurant-pos/internal/logger"
	"restaurant-pos/internal/models"
	"restaurant-pos/internal/workflow"
)

// ErrItemUnavailable is returned when a menu item exists but is switched off
var ErrItemUnavailable = errors.New("menu item is not available")

// Pinger reports backend connectivity for health checks
type Pinger interface {
	Ping(ctx context.Context) error
}

// CartView is the cart representation returned to the terminal
type CartView struct {
	Lines []models.CartLine `json:"lines"`
	Total int64             `json:"total"`
}

// FailedLineView reports one cart line that could not be persisted
type FailedLineView struct {
	Line  models.CartLine `json:"line"`
	Error string          `json:"error"`
}

// CheckoutResponse is returned after confirming a cart as an order
type CheckoutResponse struct {
	OrderID     int64              `json:"order_id"`
	Total       int64              `json:"total"`
	Status      models.OrderStatus `json:"status"`
	FailedLines []FailedLineView   `json:"failed_lines,omitempty"`
}

// Service coordinates terminal sessions, the menu catalog and the order workflow
type Service struct {
	workflow *workflow.Workflow
	catalog  *catalog.Service
	sessions *Sessions
	health   Pinger
	logger   *logger.Logger
}

// NewService creates a new POS service
func NewService(wf *workflow.Workflow, cat *catalog.Service, health Pinger, log *logger.Logger) *Service {
	return &Service{
		workflow: wf,
		catalog:  cat,
		sessions: NewSessions(),
		health:   health,
		logger:   log,
	}
}

// Menu returns the currently available menu items
func (s *Service) Menu(ctx context.Context, requestID string) ([]models.MenuItem, error) {
	return s.catalog.ListAvailable(ctx, requestID)
}

// AddItem adds a menu item to the session cart. The item's name and unit
// price are snapshotted from the catalog at add time.
func (s *Service) AddItem(ctx context.Context, sessionID string, req *models.AddItemRequest, requestID string) (*CartView, error) {
	item, err := s.catalog.Item(ctx, req.MenuItemID, requestID)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, ErrItemUnavailable
	}

	sess := s.sessions.Get(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.cart.Add(*item, req.Quantity)

	s.logger.Debug("cart_item_added", "Item added to cart", requestID, map[string]interface{}{
		"session_id":   sessionID,
		"menu_item_id": item.ID,
		"quantity":     req.Quantity,
	})

	return cartView(sess), nil
}

// SetQuantity changes a cart line quantity. Zero or less removes the line.
func (s *Service) SetQuantity(sessionID string, req *models.SetQuantityRequest, requestID string) *CartView {
	sess := s.sessions.Get(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.cart.SetQuantity(req.MenuItemID, req.Quantity)

	s.logger.Debug("cart_quantity_set", "Cart line quantity changed", requestID, map[string]interface{}{
		"session_id":   sessionID,
		"menu_item_id": req.MenuItemID,
		"quantity":     req.Quantity,
	})

	return cartView(sess)
}

// Cart returns the current contents of the session cart
func (s *Service) Cart(sessionID string) *CartView {
	sess := s.sessions.Get(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	return cartView(sess)
}

// ClearCart empties the session cart without touching any order
func (s *Service) ClearCart(sessionID string, requestID string) *CartView {
	sess := s.sessions.Get(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.cart.Clear()

	s.logger.Debug("cart_cleared", "Cart cleared", requestID, map[string]interface{}{
		"session_id": sessionID,
	})

	return cartView(sess)
}

// DiscardDraft abandons the session's draft. Nothing has been persisted at
// this point, so the discard is purely local.
func (s *Service) DiscardDraft(sessionID string, req *models.CancelRequest, requestID string) error {
	if err := req.Validate(); err != nil {
		return workflow.ErrEmptyReason
	}

	sess := s.sessions.Get(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.discard()

	s.logger.Info("draft_discarded", "Draft order discarded", requestID, map[string]interface{}{
		"session_id": sessionID,
		"reason":     req.Reason,
	})

	return nil
}

// Checkout assembles the session cart into an order intent and confirms it.
// On success the cart is cleared and the line snapshot is kept for the
// settlement step. A partially persisted order is reported back with its
// failed lines so the cashier can decide whether to cancel.
func (s *Service) Checkout(ctx context.Context, sessionID string, req *models.CheckoutRequest, requestID string) (*CheckoutResponse, error) {
	sess := s.sessions.Get(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	intent, err := workflow.Assemble(sess.cart, req.Note)
	if err != nil {
		return nil, err
	}

	result, err := s.workflow.Checkout(ctx, intent, req.CustomerID, requestID)

	var partial *workflow.PartialPersistError
	switch {
	case err == nil:
		sess.rememberOrder(result.OrderID, intent)
		return &CheckoutResponse{
			OrderID: result.OrderID,
			Total:   result.Total,
			Status:  models.OrderPending,
		}, nil
	case errors.As(err, &partial):
		// The order exists with the lines that did persist. Keep the full
		// snapshot so a follow-up cancellation or settlement can proceed.
		sess.rememberOrder(partial.OrderID, intent)
		failed := make([]FailedLineView, 0, len(partial.Failed))
		for _, f := range partial.Failed {
			failed = append(failed, FailedLineView{Line: f.Line, Error: f.Err.Error()})
		}
		return &CheckoutResponse{
			OrderID:     partial.OrderID,
			Total:       intent.Total(),
			Status:      models.OrderPending,
			FailedLines: failed,
		}, nil
	default:
		return nil, err
	}
}

// Settle records payment for a confirmed order and completes it. The receipt
// lines come from the session snapshot when this session checked the order
// out, otherwise they are read back from storage.
func (s *Service) Settle(ctx context.Context, sessionID string, orderID int64, req *models.PaymentRequest, requestID string) (*workflow.SettlementResult, error) {
	sess := s.sessions.Get(sessionID)
	sess.mu.Lock()
	lines, ok := sess.takePendingLines(orderID)
	sess.mu.Unlock()

	if !ok {
		loaded, err := s.orderLines(ctx, orderID)
		if err != nil {
			return nil, err
		}
		lines = loaded
	}

	result, err := s.workflow.ChoosePayment(ctx, orderID, models.PaymentMethod(req.Method), lines, requestID)
	if err != nil {
		// Settlement did not complete, so the snapshot is still needed for
		// a retry.
		sess.mu.Lock()
		if ok && sess.pendingOrderID == 0 {
			sess.pendingOrderID = orderID
			sess.pendingLines = lines
		}
		sess.mu.Unlock()
		return nil, err
	}

	return result, nil
}

// CancelOrder cancels a confirmed order with the given reason
func (s *Service) CancelOrder(ctx context.Context, orderID int64, req *models.CancelRequest, requestID string) (*workflow.CancelResult, error) {
	return s.workflow.Cancel(ctx, orderID, req.Reason, requestID)
}

// OrderDetails returns an order with its lines, payment and receipt
func (s *Service) OrderDetails(ctx context.Context, orderID int64) (*workflow.OrderDetails, error) {
	return s.workflow.Details(ctx, orderID)
}

// HealthCheck verifies backend connectivity
func (s *Service) HealthCheck(ctx context.Context) bool {
	if s.health == nil {
		return true
	}
	if err := s.health.Ping(ctx); err != nil {
		s.logger.Error("health_check_failed", "Backend ping failed", "", err, nil)
		return false
	}
	return true
}

// orderLines reads persisted order lines back as cart lines for the receipt
func (s *Service) orderLines(ctx context.Context, orderID int64) ([]models.CartLine, error) {
	details, err := s.workflow.Details(ctx, orderID)
	if err != nil {
		return nil, err
	}

	lines := make([]models.CartLine, 0, len(details.Lines))
	for _, l := range details.Lines {
		lines = append(lines, models.CartLine{
			MenuItemID: l.MenuItemID,
			Name:       l.Name,
			UnitPrice:  l.UnitPrice,
			Quantity:   l.Quantity,
		})
	}
	return lines, nil
}

// cartView snapshots the session cart. Callers must hold the session lock.
func cartView(sess *Session) *CartView {
	return &CartView{
		Lines: sess.cart.Lines(),
		Total: sess.cart.Total(),
	}
}
