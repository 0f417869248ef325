package database

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (customer_id, total, note, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	UpdateOrderStatusSQL = `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2`

	GetOrderSQL = `
		SELECT id, customer_id, created_at, total, note, status
		FROM orders WHERE id = $1`

	InsertOrderLineSQL = `
		INSERT INTO order_lines (order_id, menu_item_id, name, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)`

	GetOrderLinesSQL = `
		SELECT id, order_id, menu_item_id, name, quantity, unit_price
		FROM order_lines
		WHERE order_id = $1
		ORDER BY id ASC`
)

// Payment and receipt queries
const (
	InsertPaymentSQL = `
		INSERT INTO payments (order_id, cashier_id, method, amount, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	GetPaymentByOrderSQL = `
		SELECT id, order_id, cashier_id, method, amount, status, paid_at
		FROM payments WHERE order_id = $1`

	InsertReceiptSQL = `
		INSERT INTO receipts (number, order_id, amount, method, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	GetReceiptByOrderSQL = `
		SELECT id, number, order_id, issued_at, amount, method, status
		FROM receipts WHERE order_id = $1`
)

// Cancellation queries
const (
	InsertCancellationSQL = `
		INSERT INTO cancellations (order_id, reason)
		VALUES ($1, $2)`

	CancellationExistsSQL = `
		SELECT COUNT(*) FROM cancellations WHERE order_id = $1`
)

// Menu queries
const (
	ListAvailableMenuSQL = `
		SELECT id, name, price, available
		FROM menu_items
		WHERE available
		ORDER BY name ASC`

	GetMenuItemSQL = `
		SELECT id, name, price, available
		FROM menu_items WHERE id = $1`
)

// Printer worker queries
const (
	RegisterPrinterSQL = `
		INSERT INTO printers (name, status)
		VALUES ($1, 'online')
		ON CONFLICT (name) DO UPDATE SET
			status = 'online',
			last_seen = NOW()
		RETURNING id`

	UpdatePrinterStatusSQL = `
		UPDATE printers SET status = $1, last_seen = NOW()
		WHERE name = $2`

	UpdatePrinterHeartbeatSQL = `
		UPDATE printers SET last_seen = NOW(), receipts_printed = receipts_printed + $1
		WHERE name = $2`
)
