package product

import (
	"context"

	"vitrine/internal/domain"
)

// CatalogService is the surface the controller needs from the product
// service layer.
type CatalogService interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int) (*domain.Product, error)
	Update(ctx context.Context, id int, fields map[string]interface{}) (*domain.Product, error)
	Delete(ctx context.Context, id int) error
	DecreaseStock(ctx context.Context, id int, quantity int) (*domain.Product, error)
	IncreaseStock(ctx context.Context, id int, quantity int) (*domain.Product, error)
}
