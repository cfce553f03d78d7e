package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"vitrine/internal/domain"
	apperrors "vitrine/internal/errors"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error)
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type OrderItemRepository interface {
	InsertBatch(ctx context.Context, tx *sql.Tx, items []domain.OrderItem) error
}

type FreightClient interface {
	Quote(ctx context.Context, destination string) (float64, error)
}

type ProductClient interface {
	DecreaseStock(ctx context.Context, productID, quantity int) error
	IncreaseStock(ctx context.Context, productID, quantity int) error
}

// NewOrderItem is one requested line item; Price is the unit price the
// caller agreed to, snapshotted onto the order.
type NewOrderItem struct {
	ProductID int
	Quantity  int
	Price     float64
}

type Service struct {
	db            TransactionManager
	orderRepo     OrderRepository
	orderItemRepo OrderItemRepository
	freight       FreightClient
	products      ProductClient
	logger        *zap.Logger
}

func NewService(
	db TransactionManager,
	orderRepo OrderRepository,
	orderItemRepo OrderItemRepository,
	freight FreightClient,
	products ProductClient,
	logger *zap.Logger,
) *Service {
	return &Service{
		db:            db,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		freight:       freight,
		products:      products,
		logger:        logger,
	}
}

// CreateOrder runs the order workflow: quote freight, reserve stock on
// the product service, then persist header and items in one transaction.
// Freight is quoted before stock on purpose; the total depends on it and
// a bad zipcode should fail before any stock moves. Reserved stock is
// returned when a later step fails, so a failed order leaves neither
// rows nor missing stock behind.
func (s *Service) CreateOrder(ctx context.Context, items []NewOrderItem, shippingZipcode string) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, apperrors.NewValidationError("order must contain at least one item", apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	shippingCost, err := s.freight.Quote(ctx, shippingZipcode)
	if err != nil {
		s.logger.Warn("freight quote failed", zap.String("zipcode", shippingZipcode), zap.Error(err))
		return nil, err
	}

	order := domain.Order{
		ShippingCost: shippingCost,
		Status:       domain.OrderStatusPending,
		Items:        make([]domain.OrderItem, len(items)),
	}
	for i, item := range items {
		order.Items[i] = domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}
	order.TotalPrice = order.Subtotal() + shippingCost

	s.logger.Info("order workflow started",
		zap.Int("itemCount", len(items)),
		zap.Float64("shippingCost", shippingCost),
		zap.Float64("totalPrice", order.TotalPrice),
	)

	if err := s.reserveStock(ctx, items); err != nil {
		return nil, err
	}

	orderID, err := s.persistOrder(ctx, order)
	if err != nil {
		// The reservation already landed on the product service; give
		// it back before surfacing the failure.
		s.releaseStock(ctx, items, len(items))
		return nil, err
	}

	s.logger.Info("order created", zap.Uint("orderId", orderID))

	return s.orderRepo.FindByID(ctx, orderID)
}

// reserveStock decrements stock per item on the product service. On the
// first failure it restocks every item already decremented and returns
// the failing item's error.
func (s *Service) reserveStock(ctx context.Context, items []NewOrderItem) error {
	for i, item := range items {
		if err := s.products.DecreaseStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.Warn("stock reservation failed",
				zap.Int("productId", item.ProductID),
				zap.Int("quantity", item.Quantity),
				zap.Error(err),
			)
			s.releaseStock(ctx, items, i)
			return err
		}
	}
	return nil
}

// releaseStock is the compensating action: it restocks items[0:reserved].
// Failures are logged and skipped; there is nothing further to unwind.
func (s *Service) releaseStock(ctx context.Context, items []NewOrderItem, reserved int) {
	for _, item := range items[:reserved] {
		if err := s.products.IncreaseStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.Error("stock compensation failed",
				zap.Int("productId", item.ProductID),
				zap.Int("quantity", item.Quantity),
				zap.Error(err),
			)
		}
	}
}

func (s *Service) persistOrder(ctx context.Context, order domain.Order) (uint, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, apperrors.NewInternalError("beginning order transaction", err)
	}
	// No-op after a successful commit.
	defer tx.Rollback()

	orderID, err := s.orderRepo.Insert(ctx, tx, order)
	if err != nil {
		return 0, apperrors.NewInternalError("persisting order", err)
	}

	for i := range order.Items {
		order.Items[i].OrderID = orderID
	}

	if err := s.orderItemRepo.InsertBatch(ctx, tx, order.Items); err != nil {
		return 0, apperrors.NewInternalError("persisting order items", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, apperrors.NewInternalError("committing order transaction", err)
	}

	return orderID, nil
}

func (s *Service) GetOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orderRepo.FindAll(ctx)
}

func (s *Service) GetOrderByID(ctx context.Context, id uint) (*domain.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

func (s *Service) UpdateStatus(ctx context.Context, id uint, status string) (*domain.Order, error) {
	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	s.logger.Info("order status updated", zap.Uint("orderId", id), zap.String("status", status))

	return s.orderRepo.FindByID(ctx, id)
}
