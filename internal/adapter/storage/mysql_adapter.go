package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rajagopika181204/techstore/internal/core/domain"
)

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

// lockProduct reads a product's quantity and price under an exclusive row
// lock. The lock is held until the surrounding transaction resolves, so
// concurrent reservations against the same product serialize here.
func lockProduct(ctx context.Context, tx *sql.Tx, productID int64) (quantity int, price decimal.Decimal, err error) {
	err = tx.QueryRowContext(ctx, `
		SELECT quantity, price FROM products WHERE id = ? FOR UPDATE`,
		productID,
	).Scan(&quantity, &price)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, decimal.Decimal{}, domain.ErrProductNotFound
	}
	if err != nil {
		return 0, decimal.Decimal{}, fmt.Errorf("lock product %d: %w", productID, err)
	}
	return quantity, price, nil
}

// reserveStockTx performs the check-then-decrement for one product inside
// an already-open transaction. It returns the locked-in unit price so
// callers can snapshot it.
func reserveStockTx(ctx context.Context, tx *sql.Tx, productID int64, quantity int) (decimal.Decimal, error) {
	current, price, err := lockProduct(ctx, tx, productID)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if current < quantity {
		return decimal.Decimal{}, domain.ErrInsufficientStock
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE products SET quantity = quantity - ? WHERE id = ?`,
		quantity, productID,
	)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("decrement stock: %w", err)
	}
	return price, nil
}

func (m *MySQLAdapter) ReserveStock(ctx context.Context, productID int64, quantity int) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := reserveStockTx(ctx, tx, productID, quantity); err != nil {
		return err
	}

	return tx.Commit()
}

func (m *MySQLAdapter) ListAvailableProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, price, quantity, image_url
		FROM products WHERE quantity > 0 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.ImageURL); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (m *MySQLAdapter) GetCart(ctx context.Context, userID string) ([]domain.CartLine, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT c.product_id, p.name, p.price, p.image_url, c.quantity
		FROM cart c JOIN products p ON c.product_id = p.id
		WHERE c.user_id = ? ORDER BY c.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query cart: %w", err)
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.Price, &l.ImageURL, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (m *MySQLAdapter) ReplaceCart(ctx context.Context, userID string, items []domain.CartItem) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	for _, item := range items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO cart (user_id, product_id, quantity) VALUES (?, ?, ?)`,
			userID, item.ProductID, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert cart item %d: %w", item.ProductID, err)
		}
	}

	return tx.Commit()
}

// insertOrderTx inserts the order header and its items inside an open
// transaction. price resolves the unit price snapshot for each item; when
// nil, the price is read from the products table without locking it.
func insertOrderTx(ctx context.Context, tx *sql.Tx, order domain.NewOrder, price map[int64]decimal.Decimal) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO orders (customer_name, customer_email, total_amount)
		VALUES (?, ?, ?)`,
		order.CustomerName, order.CustomerEmail, order.TotalAmount,
	)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	orderID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("order id: %w", err)
	}

	for _, item := range order.Items {
		unitPrice, ok := price[item.ProductID]
		if !ok {
			err := tx.QueryRowContext(ctx, `
				SELECT price FROM products WHERE id = ?`, item.ProductID,
			).Scan(&unitPrice)
			if errors.Is(err, sql.ErrNoRows) {
				return 0, domain.ErrProductNotFound
			}
			if err != nil {
				return 0, fmt.Errorf("read price for product %d: %w", item.ProductID, err)
			}
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			VALUES (?, ?, ?, ?)`,
			orderID, item.ProductID, item.Quantity, unitPrice,
		)
		if err != nil {
			return 0, fmt.Errorf("insert order item %d: %w", item.ProductID, err)
		}
	}

	return orderID, nil
}

func (m *MySQLAdapter) CreateOrder(ctx context.Context, order domain.NewOrder) (int64, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	orderID, err := insertOrderTx(ctx, tx, order, nil)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit order: %w", err)
	}
	return orderID, nil
}

// Checkout is the composed path: every line item's stock is reserved under
// its row lock, the order and its items are inserted with the locked-in
// prices, and the user's cart is cleared, all in one transaction. Any
// failure rolls back the reservations along with the inserts.
func (m *MySQLAdapter) Checkout(ctx context.Context, userID string, order domain.NewOrder) (int64, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	price := make(map[int64]decimal.Decimal, len(order.Items))
	for _, item := range order.Items {
		p, err := reserveStockTx(ctx, tx, item.ProductID, item.Quantity)
		if err != nil {
			return 0, err
		}
		price[item.ProductID] = p
	}

	orderID, err := insertOrderTx(ctx, tx, order, price)
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart WHERE user_id = ?`, userID); err != nil {
		return 0, fmt.Errorf("clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit checkout: %w", err)
	}
	return orderID, nil
}

func (m *MySQLAdapter) GetOrder(ctx context.Context, orderID int64) (*domain.Order, []domain.OrderLine, error) {
	var o domain.Order
	err := m.db.QueryRowContext(ctx, `
		SELECT id, customer_name, customer_email, total_amount, created_at
		FROM orders WHERE id = ?`, orderID,
	).Scan(&o.ID, &o.CustomerName, &o.CustomerEmail, &o.TotalAmount, &o.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("query order: %w", err)
	}

	rows, err := m.db.QueryContext(ctx, `
		SELECT oi.product_id, p.name, oi.unit_price, oi.quantity
		FROM order_items oi JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = ? ORDER BY oi.id`,
		orderID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.UnitPrice, &l.Quantity); err != nil {
			return nil, nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, l)
	}
	return &o, lines, rows.Err()
}

func (m *MySQLAdapter) CreateUser(ctx context.Context, username, email, passwordHash string) (int64, error) {
	var count int
	err := m.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM users WHERE username = ? OR email = ?`,
		username, email,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("check user: %w", err)
	}
	if count > 0 {
		return 0, domain.ErrUserExists
	}

	res, err := m.db.ExecContext(ctx, `
		INSERT INTO users (username, email, password) VALUES (?, ?, ?)`,
		username, email, passwordHash,
	)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return res.LastInsertId()
}

func (m *MySQLAdapter) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := m.db.QueryRowContext(ctx, `
		SELECT id, username, email, password, created_at
		FROM users WHERE username = ?`, username,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}
