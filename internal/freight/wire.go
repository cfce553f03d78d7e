package freight

import (
	"go.uber.org/zap"

	"vitrine/internal/config"
)

func NewModule(cfg config.FreightConfig, logger *zap.Logger) *Controller {
	svc := NewService(cfg, logger)
	return NewController(svc, logger)
}
