package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"vitrine/internal/freight"
	"vitrine/internal/order"
	"vitrine/internal/product"
)

func newRouter(logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))
	return r
}

func NewProductRouter(mod *product.Module, logger *zap.Logger) http.Handler {
	r := newRouter(logger)

	r.Route("/api/products", func(r chi.Router) {
		r.Post("/", mod.Controller.HandleCreate)
		r.Get("/", mod.Controller.HandleList)
		r.Get("/{id}", mod.Controller.HandleGetByID)
		r.Put("/{id}", mod.Controller.HandleUpdate)
		r.Delete("/{id}", mod.Controller.HandleDelete)
		r.Put("/{id}/decrease-stock", mod.Controller.HandleDecreaseStock)
		r.Put("/{id}/increase-stock", mod.Controller.HandleIncreaseStock)
	})

	r.Handle("/graphql", mod.GraphQL)

	return r
}

func NewOrderRouter(mod *order.Module, logger *zap.Logger) http.Handler {
	r := newRouter(logger)

	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", mod.Controller.HandleCreate)
		r.Get("/", mod.Controller.HandleList)
		r.Get("/{id}", mod.Controller.HandleGetByID)
		r.Put("/{id}/status", mod.Controller.HandleUpdateStatus)
	})

	r.Handle("/graphql", mod.GraphQL)

	return r
}

func NewFreightRouter(ctrl *freight.Controller, logger *zap.Logger) http.Handler {
	r := newRouter(logger)
	r.Post("/calculate", ctrl.HandleCalculate)
	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request handled",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
