package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"vitrine/internal/domain"
)

type MySQLOrderItemRepository struct {
	db *sql.DB
}

func NewMySQLOrderItemRepository(db *sql.DB) *MySQLOrderItemRepository {
	return &MySQLOrderItemRepository{db: db}
}

// InsertBatch writes all items of an order in one statement, inside the
// caller's transaction.
func (r *MySQLOrderItemRepository) InsertBatch(ctx context.Context, tx *sql.Tx, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	placeholders := make([]string, len(items))
	args := make([]interface{}, 0, len(items)*4)
	for i, item := range items {
		placeholders[i] = "(?, ?, ?, ?)"
		args = append(args, item.OrderID, item.ProductID, item.Quantity, item.Price)
	}

	query := fmt.Sprintf(
		"INSERT INTO OrderItems (orderId, productId, quantity, price) VALUES %s",
		strings.Join(placeholders, ", "),
	)

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting order items: %w", err)
	}

	return nil
}
