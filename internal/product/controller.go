package product

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
)

type Controller struct {
	service CatalogService
	logger  *zap.Logger
}

func NewController(service CatalogService, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req CreateProductRequest
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

	created, err := c.service.Create(r.Context(), domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Stock:       *req.Stock,
	})
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	logger.Info("product created", zap.Int("productId", created.ID))
	c.writeJSON(w, http.StatusCreated, toProductResponse(created))
}

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.List(r.Context())
	if err != nil {
		c.handleError(w, err, c.requestLogger())
		return
	}

	c.writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (c *Controller) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := c.parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	product, err := c.service.Get(r.Context(), id)
	if err != nil {
		c.handleError(w, err, c.requestLogger())
		return
	}

	c.writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (c *Controller) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	id, ok := c.parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Stock != nil {
		fields["stock"] = *req.Stock
	}

	updated, err := c.service.Update(r.Context(), id, fields)
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	logger.Info("product updated", zap.Int("productId", id))
	c.writeJSON(w, http.StatusOK, toProductResponse(updated))
}

func (c *Controller) HandleDelete(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	id, ok := c.parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := c.service.Delete(r.Context(), id); err != nil {
		c.handleError(w, err, logger)
		return
	}

	logger.Info("product deleted", zap.Int("productId", id))
	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) HandleDecreaseStock(w http.ResponseWriter, r *http.Request) {
	c.handleStockChange(w, r, c.service.DecreaseStock, "stock decreased")
}

func (c *Controller) HandleIncreaseStock(w http.ResponseWriter, r *http.Request) {
	c.handleStockChange(w, r, c.service.IncreaseStock, "stock increased")
}

func (c *Controller) handleStockChange(
	w http.ResponseWriter,
	r *http.Request,
	change func(ctx context.Context, id int, quantity int) (*domain.Product, error),
	event string,
) {
	logger := c.requestLogger()

	id, ok := c.parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req StockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.Quantity == nil {
		c.writeValidationError(w, "quantity is required", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity is required",
		})
		return
	}

	updated, err := change(r.Context(), id, *req.Quantity)
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	logger.Info(event, zap.Int("productId", id), zap.Int("quantity", *req.Quantity), zap.Int("stock", updated.Stock))
	c.writeJSON(w, http.StatusOK, toProductResponse(updated))
}

func validateCreateRequest(req CreateProductRequest) error {
	var details []apperrors.ValidationDetail

	if req.Name == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if req.Description == "" {
		details = append(details, apperrors.ValidationDetail{Field: "description", Message: "description is required"})
	}
	if req.Price == nil {
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: "price is required"})
	} else if *req.Price < 0 {
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: "price must be non-negative"})
	}
	if req.Stock == nil {
		details = append(details, apperrors.ValidationDetail{Field: "stock", Message: "stock is required"})
	} else if *req.Stock < 0 {
		details = append(details, apperrors.ValidationDetail{Field: "stock", Message: "stock must be non-negative"})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("all fields are required", details...)
	}

	return nil
}

func (c *Controller) parseID(w http.ResponseWriter, raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		c.writeValidationError(w, "invalid product id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return 0, false
	}
	return id, true
}

func (c *Controller) requestLogger() *zap.Logger {
	return c.logger.With(zap.String("traceId", uuid.New().String()))
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

	if _, ok := apperrors.IsInsufficientStockError(err); ok {
		c.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	logger.Error("unexpected error", zap.Error(err))
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
