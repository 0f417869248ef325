package workflow

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"restaurant-pos/internal/cart"
	"restaurant-pos/internal/logger"
	"restaurant-pos/internal/models"
)

// fakeStores is an in-memory implementation of all store interfaces with
// per-method error injection and call counters.
type fakeStores struct {
	orders        map[int64]*models.Order
	lines         map[int64][]models.OrderLine
	payments      map[int64]*models.PaymentRecord
	receipts      map[int64]*models.Receipt
	cancellations map[int64]*models.CancellationRecord

	nextOrderID   int64
	nextPaymentID int64
	nextReceiptID int64

	createOrderErr   error
	failLineItems    map[int64]error // menu item ID -> injected insert error
	updateStatusErr  error
	createPaymentErr error
	createReceiptErr error
	createCancelErr  error

	calls map[string]int
}

func newFakeStores() *fakeStores {
	return &fakeStores{
		orders:        make(map[int64]*models.Order),
		lines:         make(map[int64][]models.OrderLine),
		payments:      make(map[int64]*models.PaymentRecord),
		receipts:      make(map[int64]*models.Receipt),
		cancellations: make(map[int64]*models.CancellationRecord),
		failLineItems: make(map[int64]error),
		calls:         make(map[string]int),
	}
}

func (f *fakeStores) Create(ctx context.Context, customerID, total int64, note string) (int64, error) {
	f.calls["order.create"]++
	if f.createOrderErr != nil {
		return 0, f.createOrderErr
	}
	f.nextOrderID++
	f.orders[f.nextOrderID] = &models.Order{
		ID:         f.nextOrderID,
		CustomerID: customerID,
		Total:      total,
		Note:       note,
		Status:     models.OrderPending,
	}
	return f.nextOrderID, nil
}

func (f *fakeStores) UpdateStatus(ctx context.Context, orderID int64, status models.OrderStatus) error {
	f.calls["order.updateStatus"]++
	if f.updateStatusErr != nil {
		return f.updateStatusErr
	}
	order, ok := f.orders[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	order.Status = status
	return nil
}

func (f *fakeStores) Get(ctx context.Context, orderID int64) (*models.Order, error) {
	f.calls["order.get"]++
	order, ok := f.orders[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	snapshot := *order
	return &snapshot, nil
}

func (f *fakeStores) CreateBatch(ctx context.Context, orderID int64, lines []models.CartLine) []LineResult {
	f.calls["lines.createBatch"]++
	results := make([]LineResult, 0, len(lines))
	for _, line := range lines {
		if err, bad := f.failLineItems[line.MenuItemID]; bad {
			results = append(results, LineResult{Line: line, Err: err})
			continue
		}
		f.lines[orderID] = append(f.lines[orderID], models.OrderLine{
			OrderID:    orderID,
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
		})
		results = append(results, LineResult{Line: line})
	}
	return results
}

func (f *fakeStores) ListByOrder(ctx context.Context, orderID int64) ([]models.OrderLine, error) {
	f.calls["lines.list"]++
	return f.lines[orderID], nil
}

func (f *fakeStores) CreatePayment(ctx context.Context, orderID, cashierID int64, method models.PaymentMethod, amount int64, status models.PaymentStatus) (int64, error) {
	f.calls["payment.create"]++
	if f.createPaymentErr != nil {
		return 0, f.createPaymentErr
	}
	f.nextPaymentID++
	f.payments[orderID] = &models.PaymentRecord{
		ID:        f.nextPaymentID,
		OrderID:   orderID,
		CashierID: cashierID,
		Method:    method,
		Amount:    amount,
		Status:    status,
	}
	return f.nextPaymentID, nil
}

func (f *fakeStores) GetPaymentByOrder(ctx context.Context, orderID int64) (*models.PaymentRecord, error) {
	if p, ok := f.payments[orderID]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("no payment for order %d", orderID)
}

func (f *fakeStores) CreateReceipt(ctx context.Context, number string, orderID, amount int64, method models.PaymentMethod, status models.PaymentStatus) (int64, error) {
	f.calls["receipt.create"]++
	if f.createReceiptErr != nil {
		return 0, f.createReceiptErr
	}
	f.nextReceiptID++
	f.receipts[orderID] = &models.Receipt{
		ID:      f.nextReceiptID,
		Number:  number,
		OrderID: orderID,
		Amount:  amount,
		Method:  method,
		Status:  status,
	}
	return f.nextReceiptID, nil
}

func (f *fakeStores) GetReceiptByOrder(ctx context.Context, orderID int64) (*models.Receipt, error) {
	if r, ok := f.receipts[orderID]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("no receipt for order %d", orderID)
}

func (f *fakeStores) CreateCancellation(ctx context.Context, orderID int64, reason string) error {
	f.calls["cancellation.create"]++
	if f.createCancelErr != nil {
		return f.createCancelErr
	}
	f.cancellations[orderID] = &models.CancellationRecord{OrderID: orderID, Reason: reason}
	return nil
}

func (f *fakeStores) Exists(ctx context.Context, orderID int64) (bool, error) {
	f.calls["cancellation.exists"]++
	_, ok := f.cancellations[orderID]
	return ok, nil
}

func (f *fakeStores) totalCalls() int {
	var n int
	for _, c := range f.calls {
		n += c
	}
	return n
}

// Adapter types so one fake can satisfy every interface despite the
// overlapping Create method names.
type paymentStoreAdapter struct{ *fakeStores }

func (a paymentStoreAdapter) Create(ctx context.Context, orderID, cashierID int64, method models.PaymentMethod, amount int64, status models.PaymentStatus) (int64, error) {
	return a.CreatePayment(ctx, orderID, cashierID, method, amount, status)
}

func (a paymentStoreAdapter) GetByOrder(ctx context.Context, orderID int64) (*models.PaymentRecord, error) {
	return a.GetPaymentByOrder(ctx, orderID)
}

type receiptStoreAdapter struct{ *fakeStores }

func (a receiptStoreAdapter) Create(ctx context.Context, number string, orderID, amount int64, method models.PaymentMethod, status models.PaymentStatus) (int64, error) {
	return a.CreateReceipt(ctx, number, orderID, amount, method, status)
}

func (a receiptStoreAdapter) GetByOrder(ctx context.Context, orderID int64) (*models.Receipt, error) {
	return a.GetReceiptByOrder(ctx, orderID)
}

type cancellationStoreAdapter struct{ *fakeStores }

func (a cancellationStoreAdapter) Create(ctx context.Context, orderID int64, reason string) error {
	return a.CreateCancellation(ctx, orderID, reason)
}

func newTestWorkflow(f *fakeStores) *Workflow {
	return New(Stores{
		Orders:        f,
		Lines:         f,
		Payments:      paymentStoreAdapter{f},
		Receipts:      receiptStoreAdapter{f},
		Cancellations: cancellationStoreAdapter{f},
	}, nil, logger.New("workflow-test"), 1)
}

func gudegCart(qty int) *cart.Cart {
	c := cart.New()
	c.Add(gudeg, qty)
	return c
}

func mustCheckout(t *testing.T, w *Workflow, c *cart.Cart) *CheckoutResult {
	t.Helper()
	intent, err := Assemble(c, "")
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	result, err := w.Checkout(context.Background(), intent, 7, "req-test")
	if err != nil {
		t.Fatalf("Checkout returned error: %v", err)
	}
	return result
}

func TestCheckout_CashSettlement(t *testing.T) {
	f := newFakeStores()
	w := newTestWorkflow(f)

	result := mustCheckout(t, w, gudegCart(2))
	if result.Total != 30000 {
		t.Fatalf("expected total 30000, got %d", result.Total)
	}

	order := f.orders[result.OrderID]
	if order.Status != models.OrderPending {
		t.Fatalf("expected pending order after checkout, got %s", order.Status)
	}
	if order.Total != 30000 {
		t.Fatalf("expected order total 30000, got %d", order.Total)
	}
	if len(f.lines[result.OrderID]) != 1 {
		t.Fatalf("expected 1 order line, got %d", len(f.lines[result.OrderID]))
	}

	settlement, err := w.ChoosePayment(context.Background(), result.OrderID, models.PaymentCash, nil, "req-test")
	if err != nil {
		t.Fatalf("ChoosePayment returned error: %v", err)
	}

	if f.orders[result.OrderID].Status != models.OrderCompleted {
		t.Fatalf("expected completed order, got %s", f.orders[result.OrderID].Status)
	}
	payment := f.payments[result.OrderID]
	if payment == nil {
		t.Fatal("expected a payment record")
	}
	if payment.Amount != 30000 || payment.Method != models.PaymentCash || payment.Status != models.PaymentSucceeded {
		t.Fatalf("unexpected payment record: %+v", payment)
	}
	if !settlement.ReceiptIssued || f.receipts[result.OrderID] == nil {
		t.Fatal("expected a receipt to be issued")
	}
	if len(f.receipts[result.OrderID].Number) != 8 {
		t.Fatalf("expected 8-character receipt number, got %q", f.receipts[result.OrderID].Number)
	}
}

func TestCheckout_OrderPersistFailure(t *testing.T) {
	f := newFakeStores()
	f.createOrderErr = errors.New("connection refused")
	w := newTestWorkflow(f)

	intent, _ := Assemble(gudegCart(1), "")
	_, err := w.Checkout(context.Background(), intent, 7, "req-test")

	var persistErr *OrderPersistError
	if !errors.As(err, &persistErr) {
		t.Fatalf("expected OrderPersistError, got %v", err)
	}
	if f.calls["lines.createBatch"] != 0 {
		t.Fatal("no lines may be written when the order row failed")
	}
}

func TestCheckout_PartialLineFailure(t *testing.T) {
	f := newFakeStores()
	f.failLineItems[esTeh.ID] = errors.New("insert failed")
	w := newTestWorkflow(f)

	c := cart.New()
	c.Add(gudeg, 1)
	c.Add(esTeh, 2)
	c.Add(models.MenuItem{ID: 3, Name: "Sate Ayam", Price: 20000}, 1)

	intent, _ := Assemble(c, "")
	_, err := w.Checkout(context.Background(), intent, 7, "req-test")

	var partial *PartialPersistError
	if !errors.As(err, &partial) {
		t.Fatalf("expected PartialPersistError, got %v", err)
	}
	if len(partial.Failed) != 1 || partial.Failed[0].Line.MenuItemID != esTeh.ID {
		t.Fatalf("expected exactly the failed line to be reported, got %+v", partial.Failed)
	}

	// The order row stays pending; the caller decides what to do with it.
	order := f.orders[partial.OrderID]
	if order == nil || order.Status != models.OrderPending {
		t.Fatalf("expected a pending order row, got %+v", order)
	}
	if len(f.lines[partial.OrderID]) != 2 {
		t.Fatalf("expected the 2 good lines to persist, got %d", len(f.lines[partial.OrderID]))
	}
}

func TestCancel_BeforePayment(t *testing.T) {
	f := newFakeStores()
	w := newTestWorkflow(f)

	result := mustCheckout(t, w, gudegCart(2))

	cancelled, err := w.Cancel(context.Background(), result.OrderID, "changed mind", "req-test")
	if err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if !cancelled.AuditRecorded {
		t.Fatal("expected the audit record to be written")
	}

	if f.orders[result.OrderID].Status != models.OrderCancelled {
		t.Fatalf("expected cancelled order, got %s", f.orders[result.OrderID].Status)
	}
	record := f.cancellations[result.OrderID]
	if record == nil || record.Reason != "changed mind" {
		t.Fatalf("unexpected cancellation record: %+v", record)
	}
	if f.payments[result.OrderID] != nil {
		t.Fatal("no payment record may exist for a cancelled order")
	}
}

func TestCancel_SecondAttemptIsTerminal(t *testing.T) {
	f := newFakeStores()
	w := newTestWorkflow(f)

	result := mustCheckout(t, w, gudegCart(1))
	if _, err := w.Cancel(context.Background(), result.OrderID, "changed mind", "req-test"); err != nil {
		t.Fatalf("first Cancel returned error: %v", err)
	}

	created := f.calls["cancellation.create"]
	_, err := w.Cancel(context.Background(), result.OrderID, "again", "req-test")

	var terminal *AlreadyTerminalError
	if !errors.As(err, &terminal) {
		t.Fatalf("expected AlreadyTerminalError, got %v", err)
	}
	if terminal.Status != models.OrderCancelled {
		t.Fatalf("expected cancelled status in error, got %s", terminal.Status)
	}
	if f.calls["cancellation.create"] != created {
		t.Fatal("second cancel must not create another audit record")
	}
}

func TestCancel_CompletedOrder(t *testing.T) {
	f := newFakeStores()
	w := newTestWorkflow(f)

	result := mustCheckout(t, w, gudegCart(1))
	if _, err := w.ChoosePayment(context.Background(), result.OrderID, models.PaymentQRIS, nil, "req-test"); err != nil {
		t.Fatalf("ChoosePayment returned error: %v", err)
	}

	_, err := w.Cancel(context.Background(), result.OrderID, "too late", "req-test")
	var terminal *AlreadyTerminalError
	if !errors.As(err, &terminal) {
		t.Fatalf("expected AlreadyTerminalError, got %v", err)
	}
	if len(f.cancellations) != 0 {
		t.Fatal("completed orders must not gain cancellation records")
	}
}

func TestCancel_EmptyReason(t *testing.T) {
	f := newFakeStores()
	w := newTestWorkflow(f)

	result := mustCheckout(t, w, gudegCart(1))
	before := f.totalCalls()

	for _, reason := range []string{"", "   "} {
		if _, err := w.Cancel(context.Background(), result.OrderID, reason, "req-test"); !errors.Is(err, ErrEmptyReason) {
			t.Fatalf("reason %q: expected ErrEmptyReason, got %v", reason, err)
		}
	}
	if f.totalCalls() != before {
		t.Fatal("empty-reason cancellation must not touch any store")
	}
}

func TestCancel_AuditWriteFailureTolerated(t *testing.T) {
	f := newFakeStores()
	f.createCancelErr = errors.New("insert failed")
	w := newTestWorkflow(f)

	result := mustCheckout(t, w, gudegCart(1))

	cancelled, err := w.Cancel(context.Background(), result.OrderID, "changed mind", "req-test")
	if err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if cancelled.AuditRecorded {
		t.Fatal("expected AuditRecorded=false when the audit write fails")
	}
	if f.orders[result.OrderID].Status != models.OrderCancelled {
		t.Fatal("order must stay cancelled despite the missing audit record")
	}
}

func TestCancel_StatusUpdateFailure(t *testing.T) {
	f := newFakeStores()
	w := newTestWorkflow(f)

	result := mustCheckout(t, w, gudegCart(1))
	f.updateStatusErr = errors.New("connection reset")

	_, err := w.Cancel(context.Background(), result.OrderID, "changed mind", "req-test")
	var cancelErr *CancelPersistError
	if !errors.As(err, &cancelErr) {
		t.Fatalf("expected CancelPersistError, got %v", err)
	}
	if f.calls["cancellation.create"] != 0 {
		t.Fatal("no audit record may be written when the status update failed")
	}
}

func TestChoosePayment_PaymentPersistFailureKeepsOrderPending(t *testing.T) {
	f := newFakeStores()
	f.createPaymentErr = errors.New("insert failed")
	w := newTestWorkflow(f)

	result := mustCheckout(t, w, gudegCart(1))

	_, err := w.ChoosePayment(context.Background(), result.OrderID, models.PaymentCash, nil, "req-test")
	var payErr *PaymentPersistError
	if !errors.As(err, &payErr) {
		t.Fatalf("expected PaymentPersistError, got %v", err)
	}

	// Status untouched: the order stays payable and can be retried or cancelled.
	if f.orders[result.OrderID].Status != models.OrderPending {
		t.Fatalf("expected pending order, got %s", f.orders[result.OrderID].Status)
	}
	if f.calls["order.updateStatus"] != 0 {
		t.Fatal("status must not be updated when the payment record failed")
	}

	// Retry after the store recovers.
	f.createPaymentErr = nil
	if _, err := w.ChoosePayment(context.Background(), result.OrderID, models.PaymentCash, nil, "req-test"); err != nil {
		t.Fatalf("retry returned error: %v", err)
	}
	if f.orders[result.OrderID].Status != models.OrderCompleted {
		t.Fatal("expected completed order after retry")
	}
}

func TestChoosePayment_RetryAfterSuccessIsTerminal(t *testing.T) {
	f := newFakeStores()
	w := newTestWorkflow(f)

	result := mustCheckout(t, w, gudegCart(1))
	if _, err := w.ChoosePayment(context.Background(), result.OrderID, models.PaymentCash, nil, "req-test"); err != nil {
		t.Fatalf("ChoosePayment returned error: %v", err)
	}

	payments := f.calls["payment.create"]
	_, err := w.ChoosePayment(context.Background(), result.OrderID, models.PaymentCash, nil, "req-test")

	var terminal *AlreadyTerminalError
	if !errors.As(err, &terminal) {
		t.Fatalf("expected AlreadyTerminalError, got %v", err)
	}
	if f.calls["payment.create"] != payments {
		t.Fatal("a retry on a completed order must not create another payment")
	}
}

func TestChoosePayment_StatusUpdateFailure(t *testing.T) {
	f := newFakeStores()
	w := newTestWorkflow(f)

	result := mustCheckout(t, w, gudegCart(1))
	f.updateStatusErr = errors.New("connection reset")

	_, err := w.ChoosePayment(context.Background(), result.OrderID, models.PaymentCash, nil, "req-test")
	var inconsistent *InconsistentStateError
	if !errors.As(err, &inconsistent) {
		t.Fatalf("expected InconsistentStateError, got %v", err)
	}
	if inconsistent.PaymentID == 0 {
		t.Fatal("expected the recorded payment ID in the error")
	}
	if f.calls["receipt.create"] != 0 {
		t.Fatal("no receipt may be created in the inconsistent case")
	}
}

func TestChoosePayment_ReceiptFailureTolerated(t *testing.T) {
	f := newFakeStores()
	f.createReceiptErr = errors.New("insert failed")
	w := newTestWorkflow(f)

	result := mustCheckout(t, w, gudegCart(1))

	settlement, err := w.ChoosePayment(context.Background(), result.OrderID, models.PaymentQRIS, nil, "req-test")
	if err != nil {
		t.Fatalf("ChoosePayment returned error: %v", err)
	}
	if settlement.ReceiptIssued {
		t.Fatal("expected ReceiptIssued=false when the receipt write fails")
	}
	if f.orders[result.OrderID].Status != models.OrderCompleted {
		t.Fatal("the order must complete regardless of the receipt")
	}
}

func TestChoosePayment_InvalidMethod(t *testing.T) {
	f := newFakeStores()
	w := newTestWorkflow(f)

	result := mustCheckout(t, w, gudegCart(1))
	before := f.calls["payment.create"]

	if _, err := w.ChoosePayment(context.Background(), result.OrderID, "credit_card", nil, "req-test"); !errors.Is(err, ErrInvalidPaymentMethod) {
		t.Fatalf("expected ErrInvalidPaymentMethod, got %v", err)
	}
	if f.calls["payment.create"] != before {
		t.Fatal("invalid methods must not reach the payment store")
	}
}

func TestChoosePayment_UnknownOrder(t *testing.T) {
	f := newFakeStores()
	w := newTestWorkflow(f)

	if _, err := w.ChoosePayment(context.Background(), 404, models.PaymentCash, nil, "req-test"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestDetails(t *testing.T) {
	f := newFakeStores()
	w := newTestWorkflow(f)

	c := cart.New()
	c.Add(gudeg, 2)
	c.Add(esTeh, 1)
	result := mustCheckout(t, w, c)
	if _, err := w.ChoosePayment(context.Background(), result.OrderID, models.PaymentCash, c.Lines(), "req-test"); err != nil {
		t.Fatalf("ChoosePayment returned error: %v", err)
	}

	details, err := w.Details(context.Background(), result.OrderID)
	if err != nil {
		t.Fatalf("Details returned error: %v", err)
	}
	if details.Order.Status != models.OrderCompleted {
		t.Fatalf("expected completed order, got %s", details.Order.Status)
	}
	if len(details.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(details.Lines))
	}
	if details.Payment == nil || details.Receipt == nil {
		t.Fatal("expected payment and receipt in the details")
	}
}

// slowPaymentStore signals when payment persistence starts and holds it
// until released, so a test can interleave a concurrent cancellation.
type slowPaymentStore struct {
	paymentStoreAdapter
	entered chan struct{}
	release chan struct{}
}

func (s *slowPaymentStore) Create(ctx context.Context, orderID, cashierID int64, method models.PaymentMethod, amount int64, status models.PaymentStatus) (int64, error) {
	close(s.entered)
	<-s.release
	return s.paymentStoreAdapter.Create(ctx, orderID, cashierID, method, amount, status)
}

func TestChoosePayment_ConcurrentCancelSerializes(t *testing.T) {
	f := newFakeStores()
	slow := &slowPaymentStore{
		paymentStoreAdapter: paymentStoreAdapter{f},
		entered:             make(chan struct{}),
		release:             make(chan struct{}),
	}
	w := New(Stores{
		Orders:        f,
		Lines:         f,
		Payments:      slow,
		Receipts:      receiptStoreAdapter{f},
		Cancellations: cancellationStoreAdapter{f},
	}, nil, logger.New("workflow-test"), 1)

	result := mustCheckout(t, w, gudegCart(1))

	settleErr := make(chan error, 1)
	go func() {
		_, err := w.ChoosePayment(context.Background(), result.OrderID, models.PaymentCash, nil, "req-settle")
		settleErr <- err
	}()

	// Settlement now holds the order lock inside payment persistence.
	<-slow.entered

	cancelErr := make(chan error, 1)
	go func() {
		_, err := w.Cancel(context.Background(), result.OrderID, "changed my mind", "req-cancel")
		cancelErr <- err
	}()

	select {
	case err := <-cancelErr:
		t.Fatalf("cancel finished while settlement held the lock: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(slow.release)

	if err := <-settleErr; err != nil {
		t.Fatalf("ChoosePayment returned error: %v", err)
	}

	err := <-cancelErr
	var terminal *AlreadyTerminalError
	if !errors.As(err, &terminal) {
		t.Fatalf("expected AlreadyTerminalError from the late cancel, got %v", err)
	}
	if len(f.cancellations) != 0 {
		t.Fatalf("expected no cancellation records, got %d", len(f.cancellations))
	}
	if f.orders[result.OrderID].Status != models.OrderCompleted {
		t.Fatalf("expected completed order, got %s", f.orders[result.OrderID].Status)
	}
	if f.payments[result.OrderID] == nil {
		t.Fatal("expected a payment record on the completed order")
	}
}

func TestLockReclaimedOnTerminalAndUnknownOrders(t *testing.T) {
	f := newFakeStores()
	w := newTestWorkflow(f)

	result := mustCheckout(t, w, gudegCart(1))
	if _, err := w.ChoosePayment(context.Background(), result.OrderID, models.PaymentCash, nil, "req-test"); err != nil {
		t.Fatalf("ChoosePayment returned error: %v", err)
	}

	// Rejected cancel of a completed order must not leave a lock behind.
	if _, err := w.Cancel(context.Background(), result.OrderID, "too late", "req-test"); err == nil {
		t.Fatal("expected an error cancelling a completed order")
	}
	if n := lockCount(w); n != 0 {
		t.Fatalf("expected no lock entries after terminal rejection, got %d", n)
	}

	// Neither must an operation on an order that does not exist.
	if _, err := w.Cancel(context.Background(), 404, "ghost", "req-test"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if _, err := w.ChoosePayment(context.Background(), 404, models.PaymentCash, nil, "req-test"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if n := lockCount(w); n != 0 {
		t.Fatalf("expected no lock entries after unknown-order rejections, got %d", n)
	}
}

func lockCount(w *Workflow) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.locks)
}
