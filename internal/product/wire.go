package product

import (
	"database/sql"
	"net/http"

	"go.uber.org/zap"

	"vitrine/internal/product/repository"
	"vitrine/internal/product/service"
)

type Module struct {
	Controller *Controller
	GraphQL    http.Handler
}

func NewModule(db *sql.DB, logger *zap.Logger) (*Module, error) {
	repo := repository.NewMySQLRepository(db)
	svc := service.NewService(repo)

	graphql, err := NewGraphQLHandler(svc)
	if err != nil {
		return nil, err
	}

	return &Module{
		Controller: NewController(svc, logger),
		GraphQL:    graphql,
	}, nil
}
