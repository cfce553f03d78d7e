package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"vitrine/internal/domain"
	apperrors "vitrine/internal/errors"
	"vitrine/internal/order/service"
)

type OrderService interface {
	CreateOrder(ctx context.Context, items []service.NewOrderItem, shippingZipcode string) (*domain.Order, error)
	GetOrders(ctx context.Context) ([]domain.Order, error)
	GetOrderByID(ctx context.Context, id uint) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*domain.Order, error)
}

type Controller struct {
	service OrderService
	logger  *zap.Logger
}

func NewController(service OrderService, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := validateCreateRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	items := make([]service.NewOrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.NewOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	order, err := c.service.CreateOrder(r.Context(), items, req.ShippingZipcode)
	if err != nil {
		c.handleCreateError(w, err, logger)
		return
	}

	logger.Info("order created", zap.Uint("orderId", order.ID), zap.Float64("totalPrice", order.TotalPrice))
	c.writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	orders, err := c.service.GetOrders(r.Context())
	if err != nil {
		c.handleError(w, err, c.requestLogger())
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (c *Controller) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := c.parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	order, err := c.service.GetOrderByID(r.Context(), id)
	if err != nil {
		c.handleError(w, err, c.requestLogger())
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (c *Controller) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	id, ok := c.parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.Status == "" {
		c.writeValidationError(w, "status is required", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status is required",
		})
		return
	}

	order, err := c.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func validateCreateRequest(req CreateOrderRequest) error {
	if len(req.Items) == 0 {
		return apperrors.NewValidationError("order must contain at least one item", apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	var details []apperrors.ValidationDetail

	if req.ShippingZipcode == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "shippingZipcode",
			Message: "shippingZipcode is required",
		})
	}

	for idx, item := range req.Items {
		prefix := "items[" + strconv.Itoa(idx) + "]"
		if item.ProductID <= 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   prefix + ".productId",
				Message: "productId must be a positive integer",
			})
		}
		if item.Quantity <= 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   prefix + ".quantity",
				Message: "quantity must be a positive integer",
			})
		}
		if item.Price < 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   prefix + ".price",
				Message: "price must be non-negative",
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func (c *Controller) parseID(w http.ResponseWriter, raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.writeValidationError(w, "invalid order id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

func (c *Controller) requestLogger() *zap.Logger {
	return c.logger.With(zap.String("traceId", uuid.New().String()))
}

// handleCreateError maps workflow failures for order creation. A missing
// product on the remote decrement is a workflow failure here, not a lookup
// miss, so it collapses into the generic 500 along with every other
// downstream error; the caller is not told which step failed.
func (c *Controller) handleCreateError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	logger.Error("order creation failed", zap.Error(err))
	c.writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
}

func (c *Controller) handleError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, http.StatusNotFound, err.Error())
		return
	}

	logger.Error("order request failed", zap.Error(err))
	c.writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
}

type errorResponse struct {
	Error   string                       `json:"error"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
}

func (c *Controller) writeError(w http.ResponseWriter, status int, message string) {
	c.writeJSON(w, status, errorResponse{Error: message})
}

func (c *Controller) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, errorResponse{Error: message, Details: details})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
