package order

import (
	"database/sql"
	"net/http"

	"go.uber.org/zap"

	"vitrine/internal/config"
	"vitrine/internal/order/client"
	"vitrine/internal/order/controller"
	"vitrine/internal/order/repository"
	"vitrine/internal/order/service"
)

type Module struct {
	Controller *controller.Controller
	GraphQL    http.Handler
}

func NewModule(db *sql.DB, cfg config.OrderConfig, logger *zap.Logger) (*Module, error) {
	orderRepo := repository.NewMySQLOrderRepository(db)
	orderItemRepo := repository.NewMySQLOrderItemRepository(db)

	// The freight call is bounded only by the request context; the fixed
	// client timeout applies to the stock calls.
	freightClient := client.NewFreightClient(cfg.FreightServiceURL, cfg.OriginZipcode, 0)
	productClient := client.NewProductClient(cfg.ProductServiceURL, cfg.StockCallTimeout)

	svc := service.NewService(db, orderRepo, orderItemRepo, freightClient, productClient, logger)

	graphql, err := NewGraphQLHandler(svc)
	if err != nil {
		return nil, err
	}

	return &Module{
		Controller: controller.NewController(svc, logger),
		GraphQL:    graphql,
	}, nil
}
