package freight

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	apperrors "vitrine/internal/errors"
)

type CalculateRequest struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Weight      float64 `json:"weight"`
}

type CalculateResponse struct {
	Price float64 `json:"price"`
}

type Controller struct {
	service *Service
	logger  *zap.Logger
}

func NewController(service *Service, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

// HandleCalculate prices a shipment to a destination zipcode. Origin and
// weight are accepted for interface compatibility and ignored.
func (c *Controller) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "request body must be valid JSON"})
		return
	}

	price, err := c.service.Quote(req.Destination)
	if err != nil {
		if ve, ok := apperrors.IsValidationError(err); ok {
			c.logger.Warn("invalid destination zipcode", zap.String("destination", req.Destination))
			c.writeJSON(w, http.StatusBadRequest, map[string]string{"error": ve.Message})
			return
		}
		c.logger.Error("freight quote failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "an unexpected error occurred"})
		return
	}

	c.writeJSON(w, http.StatusOK, CalculateResponse{Price: price})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
