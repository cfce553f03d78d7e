package repository

import (
	"context"
	"database/sql"
	"fmt"

	"vitrine/internal/domain"
	"vitrine/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error) {
	query := `INSERT INTO Orders (totalPrice, shippingCost, status) VALUES (?, ?, ?)`

	result, err := tx.ExecContext(ctx, query, order.TotalPrice, order.ShippingCost, order.Status)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting inserted order id: %w", err)
	}

	return uint(id), nil
}

// FindByID returns the order with its items eagerly loaded.
func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	query := `
		SELECT id, totalPrice, shippingCost, status, createdAt, updatedAt
		FROM Orders
		WHERE id = ?`

	var order domain.Order
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID, &order.TotalPrice, &order.ShippingCost, &order.Status,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	items, err := r.findItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

// FindAll returns all orders with their items, one JOIN query grouped in
// memory.
func (r *MySQLOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT o.id, o.totalPrice, o.shippingCost, o.status, o.createdAt, o.updatedAt,
		       i.id, i.orderId, i.productId, i.quantity, i.price
		FROM Orders o
		LEFT JOIN OrderItems i ON i.orderId = o.id
		ORDER BY o.id, i.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	index := map[uint]int{}
	for rows.Next() {
		var order domain.Order
		var itemID, itemOrderID sql.NullInt64
		var productID, quantity sql.NullInt64
		var price sql.NullFloat64

		err := rows.Scan(
			&order.ID, &order.TotalPrice, &order.ShippingCost, &order.Status,
			&order.CreatedAt, &order.UpdatedAt,
			&itemID, &itemOrderID, &productID, &quantity, &price,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}

		pos, seen := index[order.ID]
		if !seen {
			orders = append(orders, order)
			pos = len(orders) - 1
			index[order.ID] = pos
		}

		if itemID.Valid {
			orders[pos].Items = append(orders[pos].Items, domain.OrderItem{
				ID:        uint(itemID.Int64),
				OrderID:   uint(itemOrderID.Int64),
				ProductID: int(productID.Int64),
				Quantity:  int(quantity.Int64),
				Price:     price.Float64,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}

// UpdateStatus overwrites the status unconditionally; any non-empty
// string is a legal value.
func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	query := `UPDATE Orders SET status = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

func (r *MySQLOrderRepository) findItems(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
	query := `
		SELECT id, orderId, productId, quantity, price
		FROM OrderItems
		WHERE orderId = ?
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price)
		if err != nil {
			return nil, fmt.Errorf("scanning order item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order item rows: %w", err)
	}

	return items, nil
}
