package pos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"restaurant-pos/internal/logger"
	"restaurant-pos/internal/models"
	"restaurant-pos/internal/store"
	"restaurant-pos/internal/workflow"
)

// Handler handles HTTP requests for the POS service
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new POS handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// GetMenu handles GET /menu requests
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	items, err := h.service.Menu(r.Context(), requestID)
	if err != nil {
		h.logger.Error("menu_read_failed", "Failed to load menu", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, items, requestID)
}

// GetCart handles GET /cart requests
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	sessionID, ok := h.sessionID(w, r, requestID)
	if !ok {
		return
	}

	h.writeJSON(w, http.StatusOK, h.service.Cart(sessionID), requestID)
}

// AddCartItem handles POST /cart/items requests
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	sessionID, ok := h.sessionID(w, r, requestID)
	if !ok {
		return
	}

	var req models.AddItemRequest
	if !h.decodeBody(w, r, &req, requestID) {
		return
	}

	if err := req.Validate(); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	view, err := h.service.AddItem(r.Context(), sessionID, &req, requestID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoRecord):
			h.writeErrorResponse(w, http.StatusNotFound, "Menu item not found", requestID)
		case errors.Is(err, ErrItemUnavailable):
			h.writeErrorResponse(w, http.StatusConflict, "Menu item is not available", requestID)
		default:
			h.logger.Error("cart_add_failed", "Failed to add item to cart", requestID, err, map[string]interface{}{
				"menu_item_id": req.MenuItemID,
			})
			h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, view, requestID)
}

// SetCartQuantity handles POST /cart/quantity requests
func (h *Handler) SetCartQuantity(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	sessionID, ok := h.sessionID(w, r, requestID)
	if !ok {
		return
	}

	var req models.SetQuantityRequest
	if !h.decodeBody(w, r, &req, requestID) {
		return
	}

	if err := req.Validate(); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, h.service.SetQuantity(sessionID, &req, requestID), requestID)
}

// ClearCart handles POST /cart/clear requests
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	sessionID, ok := h.sessionID(w, r, requestID)
	if !ok {
		return
	}

	h.writeJSON(w, http.StatusOK, h.service.ClearCart(sessionID, requestID), requestID)
}

// DiscardDraft handles POST /cart/cancel requests. The draft only exists in
// the session, so nothing is persisted or deleted.
func (h *Handler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	sessionID, ok := h.sessionID(w, r, requestID)
	if !ok {
		return
	}

	var req models.CancelRequest
	if !h.decodeBody(w, r, &req, requestID) {
		return
	}

	if err := h.service.DiscardDraft(sessionID, &req, requestID); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Cancellation reason is required", requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "discarded",
	}, requestID)
}

// Checkout handles POST /checkout requests
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	sessionID, ok := h.sessionID(w, r, requestID)
	if !ok {
		return
	}

	var req models.CheckoutRequest
	if !h.decodeBody(w, r, &req, requestID) {
		return
	}

	if err := req.Validate(); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	response, err := h.service.Checkout(ctx, sessionID, &req, requestID)
	if err != nil {
		h.writeWorkflowError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusCreated, response, requestID)
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	healthy := h.service.HealthCheck(ctx)

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "pos-service",
		"healthy":   healthy,
	}

	w.Header().Set("Content-Type", "application/json")

	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
		response["status"] = "unhealthy"
	}

	json.NewEncoder(w).Encode(response)
}

// routeOrderRequests routes /orders/{id} and its sub-resources
func (h *Handler) routeOrderRequests(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasSuffix(r.URL.Path, "/payment"):
		h.SettleOrder(w, r)
	case strings.HasSuffix(r.URL.Path, "/cancel"):
		h.CancelOrder(w, r)
	default:
		h.GetOrder(w, r)
	}
}

// SettleOrder handles POST /orders/{id}/payment requests
func (h *Handler) SettleOrder(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	sessionID, ok := h.sessionID(w, r, requestID)
	if !ok {
		return
	}

	orderID, ok := h.extractOrderID(w, r.URL.Path, "/payment", requestID)
	if !ok {
		return
	}

	var req models.PaymentRequest
	if !h.decodeBody(w, r, &req, requestID) {
		return
	}

	if err := req.Validate(); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	result, err := h.service.Settle(ctx, sessionID, orderID, &req, requestID)
	if err != nil {
		h.writeWorkflowError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, result, requestID)
}

// CancelOrder handles POST /orders/{id}/cancel requests
func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	orderID, ok := h.extractOrderID(w, r.URL.Path, "/cancel", requestID)
	if !ok {
		return
	}

	var req models.CancelRequest
	if !h.decodeBody(w, r, &req, requestID) {
		return
	}

	if err := req.Validate(); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	result, err := h.service.CancelOrder(ctx, orderID, &req, requestID)
	if err != nil {
		h.writeWorkflowError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, result, requestID)
}

// GetOrder handles GET /orders/{id} requests
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	orderID, ok := h.extractOrderID(w, r.URL.Path, "", requestID)
	if !ok {
		return
	}

	details, err := h.service.OrderDetails(r.Context(), orderID)
	if err != nil {
		h.writeWorkflowError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, details, requestID)
}

// sessionID reads the terminal session header, failing the request if absent
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request, requestID string) (string, bool) {
	id := r.Header.Get("X-Session-ID")
	if id == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "X-Session-ID header is required", requestID)
		return "", false
	}
	return id, true
}

// extractOrderID parses the order ID out of /orders/{id}{suffix}
func (h *Handler) extractOrderID(w http.ResponseWriter, path, suffix string, requestID string) (int64, bool) {
	raw := strings.TrimPrefix(path, "/orders/")
	raw = strings.TrimSuffix(raw, suffix)
	raw = strings.Trim(raw, "/")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid order ID", requestID)
		return 0, false
	}
	return id, true
}

// decodeBody parses a JSON request body, writing a 400 on failure
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, v interface{}, requestID string) bool {
	if r.Header.Get("Content-Type") != "application/json" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Content-Type must be application/json", requestID)
		return false
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		h.logger.Error("validation_failed", "Failed to parse request body", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return false
	}
	return true
}

// writeWorkflowError maps workflow errors to HTTP status codes
func (h *Handler) writeWorkflowError(w http.ResponseWriter, err error, requestID string) {
	var (
		invalidQty *workflow.InvalidQuantityError
		terminal   *workflow.AlreadyTerminalError
	)

	switch {
	case errors.Is(err, workflow.ErrEmptyCart),
		errors.Is(err, workflow.ErrEmptyReason),
		errors.Is(err, workflow.ErrInvalidPaymentMethod),
		errors.As(err, &invalidQty):
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
	case errors.Is(err, workflow.ErrOrderNotFound):
		h.writeErrorResponse(w, http.StatusNotFound, "Order not found", requestID)
	case errors.As(err, &terminal):
		h.writeErrorResponse(w, http.StatusConflict, err.Error(), requestID)
	default:
		h.logger.Error("workflow_operation_failed", "Order workflow operation failed", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
	}
}

// writeJSON writes a successful JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, v interface{}, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", requestID, err, nil)
	}
}

// writeErrorResponse writes an error response in JSON format
func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, message, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	}

	json.NewEncoder(w).Encode(errorResponse)
}

// SetupRoutes sets up the HTTP routes
func (h *Handler) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/menu", h.withLogging(h.GetMenu))
	mux.HandleFunc("/cart", h.withLogging(h.GetCart))
	mux.HandleFunc("/cart/items", h.withLogging(h.AddCartItem))
	mux.HandleFunc("/cart/quantity", h.withLogging(h.SetCartQuantity))
	mux.HandleFunc("/cart/clear", h.withLogging(h.ClearCart))
	mux.HandleFunc("/cart/cancel", h.withLogging(h.DiscardDraft))
	mux.HandleFunc("/checkout", h.withLogging(h.Checkout))
	mux.HandleFunc("/orders/", h.withLogging(h.routeOrderRequests))
	mux.HandleFunc("/health", h.withLogging(h.HealthCheck))

	return mux
}

// withLogging adds request logging middleware
func (h *Handler) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()

		h.logger.Debug("request_started",
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
				"user_agent":  r.Header.Get("User-Agent"),
			})

		rw := &responseWriter{ResponseWriter: w, statusCode: 200}

		next(rw, r)

		duration := time.Since(start)
		h.logger.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": duration.Milliseconds(),
			})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
