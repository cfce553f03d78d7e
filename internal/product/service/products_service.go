package service

import (
	"context"

	"vitrine/internal/domain"
	apperrors "vitrine/internal/errors"
)

type Repository interface {
	Insert(ctx context.Context, p domain.Product) (*domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id int) (*domain.Product, error)
	Update(ctx context.Context, id int, fields map[string]interface{}) (*domain.Product, error)
	Delete(ctx context.Context, id int) error
	DecreaseStock(ctx context.Context, id int, quantity int) (*domain.Product, error)
	IncreaseStock(ctx context.Context, id int, quantity int) (*domain.Product, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	return s.repo.Insert(ctx, p)
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) Get(ctx context.Context, id int) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int, fields map[string]interface{}) (*domain.Product, error) {
	return s.repo.Update(ctx, id, fields)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) DecreaseStock(ctx context.Context, id int, quantity int) (*domain.Product, error) {
	if quantity <= 0 {
		return nil, apperrors.NewValidationError("quantity must be a positive integer", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be a positive integer",
		})
	}
	return s.repo.DecreaseStock(ctx, id, quantity)
}

func (s *Service) IncreaseStock(ctx context.Context, id int, quantity int) (*domain.Product, error) {
	if quantity <= 0 {
		return nil, apperrors.NewValidationError("quantity must be a positive integer", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be a positive integer",
		})
	}
	return s.repo.IncreaseStock(ctx, id, quantity)
}
