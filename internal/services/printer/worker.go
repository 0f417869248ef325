package printer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"restaurant-pos/internal/database"
	"restaurant-pos/internal/logger"
	"restaurant-pos/internal/messaging"
	"restaurant-pos/internal/models"
)

// Worker consumes receipt print jobs and simulates a thermal printer
type Worker struct {
	name              string
	heartbeatInterval time.Duration
	prefetch          int

	db       *database.DB
	consumer *messaging.Consumer
	logger   *logger.Logger

	shutdown chan os.Signal
	done     chan bool
}

// NewWorker creates a new receipt printer worker
func NewWorker(name string, heartbeatInterval time.Duration, prefetch int,
	db *database.DB, consumer *messaging.Consumer, log *logger.Logger) *Worker {

	return &Worker{
		name:              name,
		heartbeatInterval: heartbeatInterval,
		prefetch:          prefetch,
		db:                db,
		consumer:          consumer,
		logger:            log,
		shutdown:          make(chan os.Signal, 1),
		done:              make(chan bool, 1),
	}
}

// Start registers the printer and begins consuming print jobs
func (w *Worker) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()

	if err := w.register(ctx, requestID); err != nil {
		return fmt.Errorf("failed to register printer: %w", err)
	}

	signal.Notify(w.shutdown, syscall.SIGINT, syscall.SIGTERM)

	go w.heartbeatLoop(ctx)

	go func() {
		if err := w.consumer.StartConsuming(ctx, w.handleMessage); err != nil {
			w.logger.Error("consumer_failed", "Print job consumer failed", requestID, err, nil)
		}
		w.done <- true
	}()

	w.logger.Info("printer_started", fmt.Sprintf("Receipt printer %s started", w.name), requestID, map[string]interface{}{
		"printer_name":       w.name,
		"heartbeat_interval": w.heartbeatInterval.Seconds(),
		"prefetch":           w.prefetch,
	})

	select {
	case <-w.shutdown:
		w.logger.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		return w.gracefulShutdown(ctx, requestID)
	case <-w.done:
		return nil
	}
}

// register inserts or revives this printer's row
func (w *Worker) register(ctx context.Context, requestID string) error {
	var printerID int
	err := w.db.QueryRow(ctx, database.RegisterPrinterSQL, w.name).Scan(&printerID)
	if err != nil {
		return fmt.Errorf("failed to register printer: %w", err)
	}

	w.logger.Info("printer_registered", fmt.Sprintf("Printer %s registered successfully", w.name), requestID, map[string]interface{}{
		"printer_id":   printerID,
		"printer_name": w.name,
	})

	return nil
}

// handleMessage processes one receipt print job
func (w *Worker) handleMessage(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var job models.ReceiptPrintMessage
	if err := json.Unmarshal(body, &job); err != nil {
		w.logger.Error("message_parsing_failed", "Failed to parse print job", requestID, err, nil)
		return fmt.Errorf("failed to parse message: %w", err)
	}

	w.logger.Debug("print_started", fmt.Sprintf("Printing receipt %s", job.ReceiptNumber), requestID, map[string]interface{}{
		"receipt_number": job.ReceiptNumber,
		"order_id":       job.OrderID,
		"method":         job.Method,
	})

	// QRIS receipts carry the payment reference block and take longer
	printTime := models.PrintDuration(job.Method)
	time.Sleep(printTime)

	fmt.Println(renderReceipt(&job))

	if err := w.recordPrinted(ctx); err != nil {
		w.logger.Error("print_count_failed", "Failed to record printed receipt", requestID, err, map[string]interface{}{
			"receipt_number": job.ReceiptNumber,
		})
		// The receipt is already out of the printer, do not requeue
	}

	w.logger.Info("print_completed", fmt.Sprintf("Receipt %s printed", job.ReceiptNumber), requestID, map[string]interface{}{
		"receipt_number": job.ReceiptNumber,
		"order_id":       job.OrderID,
		"print_time_ms":  printTime.Milliseconds(),
	})

	return nil
}

// recordPrinted bumps the printed counter and last_seen
func (w *Worker) recordPrinted(ctx context.Context) error {
	return w.db.Exec(ctx, database.UpdatePrinterHeartbeatSQL, 1, w.name)
}

// renderReceipt formats the receipt the way it comes off the till printer
func renderReceipt(job *models.ReceiptPrintMessage) string {
	var b strings.Builder

	b.WriteString("================================\n")
	b.WriteString(fmt.Sprintf("  RECEIPT %s\n", job.ReceiptNumber))
	b.WriteString(fmt.Sprintf("  Order #%d\n", job.OrderID))
	b.WriteString(fmt.Sprintf("  %s\n", job.IssuedAt.Format("2006-01-02 15:04:05")))
	b.WriteString("--------------------------------\n")

	for _, line := range job.Lines {
		b.WriteString(fmt.Sprintf("  %-16s x%-3d %9d\n", line.Name, line.Quantity, line.Subtotal()))
	}

	b.WriteString("--------------------------------\n")
	b.WriteString(fmt.Sprintf("  TOTAL %24d\n", job.Amount))
	b.WriteString(fmt.Sprintf("  PAID BY %s\n", strings.ToUpper(string(job.Method))))
	b.WriteString("================================")

	return b.String()
}

// heartbeatLoop keeps last_seen fresh while the printer is up
func (w *Worker) heartbeatLoop(ctx context.Context) {
	ticker := time.NewTicker(w.heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case <-ticker.C:
			if err := w.sendHeartbeat(ctx); err != nil {
				w.logger.Error("heartbeat_failed", "Failed to send heartbeat", "", err, nil)
			} else {
				w.logger.Debug("heartbeat_sent", "Heartbeat sent successfully", "", nil)
			}
		}
	}
}

// sendHeartbeat marks the printer online and updates last_seen
func (w *Worker) sendHeartbeat(ctx context.Context) error {
	return w.db.Exec(ctx, database.UpdatePrinterStatusSQL, "online", w.name)
}

// gracefulShutdown marks the printer offline and stops consuming
func (w *Worker) gracefulShutdown(ctx context.Context, requestID string) error {
	w.logger.Info("graceful_shutdown", "Starting graceful shutdown", requestID, nil)

	if err := w.db.Exec(ctx, database.UpdatePrinterStatusSQL, "offline", w.name); err != nil {
		w.logger.Error("shutdown_failed", "Failed to mark printer offline", requestID, err, nil)
	}

	if w.consumer != nil {
		w.consumer.Close()
	}

	w.logger.Info("graceful_shutdown", "Graceful shutdown completed", requestID, nil)
	return nil
}
