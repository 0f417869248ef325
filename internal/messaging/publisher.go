package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"restaurant-pos/internal/logger"
	"restaurant-pos/internal/models"
)

// Publisher handles publishing messages to RabbitMQ
type Publisher struct {
	conn   *Connection
	logger *logger.Logger
}

// NewPublisher creates a new publisher
func NewPublisher(conn *Connection, log *logger.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: log,
	}
}

// PublishReceiptPrint sends a receipt print job to the receipts exchange.
// The routing key carries the payment method so printers can filter.
func (p *Publisher) PublishReceiptPrint(ctx context.Context, msg *models.ReceiptPrintMessage) error {
	routingKey := models.PrintRoutingKey(msg.Method)

	if err := p.publishMessage(ctx, ReceiptsExchange, routingKey, msg); err != nil {
		return fmt.Errorf("failed to publish receipt print job: %w", err)
	}

	p.logger.Debug("receipt_print_published", "Receipt print job published", "", map[string]interface{}{
		"order_id":       msg.OrderID,
		"receipt_number": msg.ReceiptNumber,
		"routing_key":    routingKey,
	})

	return nil
}

// PublishStatusUpdate broadcasts an order status change to all subscribers
func (p *Publisher) PublishStatusUpdate(ctx context.Context, msg *models.StatusUpdateMessage) error {
	if err := p.publishMessage(ctx, NotificationsExchange, "", msg); err != nil {
		return fmt.Errorf("failed to publish status update: %w", err)
	}

	p.logger.Debug("status_update_published", "Status update published", "", map[string]interface{}{
		"order_id":   msg.OrderID,
		"old_status": msg.OldStatus,
		"new_status": msg.NewStatus,
	})

	return nil
}

// publishMessage publishes a message to the specified exchange
func (p *Publisher) publishMessage(ctx context.Context, exchange, routingKey string, message interface{}) error {
	if p.conn.IsClosed() {
		if err := p.conn.Reconnect(); err != nil {
			return fmt.Errorf("connection is closed and reconnect failed: %w", err)
		}
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.conn.Channel().PublishWithContext(
		publishCtx,
		exchange,   // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}
