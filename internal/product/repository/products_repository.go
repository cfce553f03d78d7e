package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"vitrine/internal/domain"
	"vitrine/internal/errors"
)

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

const productColumns = "id, name, description, price, stock, createdAt, updatedAt"

func scanProduct(row *sql.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MySQLRepository) Insert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	query := `INSERT INTO Products (name, description, price, stock) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, p.Name, p.Description, p.Price, p.Stock)
	if err != nil {
		return nil, fmt.Errorf("inserting product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting inserted product id: %w", err)
	}

	return r.FindByID(ctx, int(id))
}

func (r *MySQLRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM Products ORDER BY id", productColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

func (r *MySQLRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM Products WHERE id = ?", productColumns)

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}

	return product, nil
}

// Update applies only the fields present in the map. Column names are
// fixed by the callers; values come from the request.
func (r *MySQLRepository) Update(ctx context.Context, id int, fields map[string]interface{}) (*domain.Product, error) {
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}

	assignments := make([]string, 0, len(fields))
	args := make([]interface{}, 0, len(fields)+1)
	for _, column := range []string{"name", "description", "price", "stock"} {
		if value, ok := fields[column]; ok {
			assignments = append(assignments, fmt.Sprintf("%s = ?", column))
			args = append(args, value)
		}
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE Products SET %s WHERE id = ?", strings.Join(assignments, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("updating product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		// MySQL also reports 0 when the values did not change; only a
		// missing row is an error.
		if _, err := r.FindByID(ctx, id); err != nil {
			return nil, err
		}
	}

	return r.FindByID(ctx, id)
}

func (r *MySQLRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}

	return nil
}

// DecreaseStock decrements atomically: the stock guard is part of the
// UPDATE itself, so two concurrent decrements cannot race past a
// check-then-set boundary and drive stock negative.
func (r *MySQLRepository) DecreaseStock(ctx context.Context, id int, quantity int) (*domain.Product, error) {
	query := `UPDATE Products SET stock = stock - ? WHERE id = ? AND stock >= ?`

	result, err := r.db.ExecContext(ctx, query, quantity, id, quantity)
	if err != nil {
		return nil, fmt.Errorf("decreasing stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, errors.NewInsufficientStockError("insufficient stock", id)
	}

	return r.FindByID(ctx, id)
}

// IncreaseStock is the inverse of DecreaseStock, used to return reserved
// stock when an order fails partway through.
func (r *MySQLRepository) IncreaseStock(ctx context.Context, id int, quantity int) (*domain.Product, error) {
	query := `UPDATE Products SET stock = stock + ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, quantity, id)
	if err != nil {
		return nil, fmt.Errorf("increasing stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return nil, err
		}
	}

	return r.FindByID(ctx, id)
}
