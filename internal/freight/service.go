package freight

import (
	"math"
	"math/rand"
	"regexp"

	"go.uber.org/zap"

	"vitrine/internal/config"
	apperrors "vitrine/internal/errors"
)

// Brazilian CEP format.
var zipcodePattern = regexp.MustCompile(`^\d{5}-\d{3}$`)

// Service is a stand-in for a real rating engine: a base price plus a
// random variable cost. Quotes are not repeatable.
type Service struct {
	basePrice   float64
	variableMax float64
	logger      *zap.Logger

	// random returns a value in [0, 1); injected by tests.
	random func() float64
}

func NewService(cfg config.FreightConfig, logger *zap.Logger) *Service {
	return &Service{
		basePrice:   cfg.BasePrice,
		variableMax: cfg.VariableMax,
		logger:      logger,
		random:      rand.Float64,
	}
}

func (s *Service) Quote(destination string) (float64, error) {
	if !zipcodePattern.MatchString(destination) {
		return 0, apperrors.NewValidationError("invalid zipcode", apperrors.ValidationDetail{
			Field:   "destination",
			Message: "destination must match 00000-000",
		})
	}

	price := math.Round((s.basePrice+s.random()*s.variableMax)*100) / 100

	s.logger.Info("freight quoted", zap.String("destination", destination), zap.Float64("price", price))

	return price, nil
}
