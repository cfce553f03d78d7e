package product

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vitrine/internal/domain"
	apperrors "vitrine/internal/errors"
)

type mockCatalogService struct {
	CreateFunc        func(ctx context.Context, p domain.Product) (*domain.Product, error)
	ListFunc          func(ctx context.Context) ([]domain.Product, error)
	GetFunc           func(ctx context.Context, id int) (*domain.Product, error)
	UpdateFunc        func(ctx context.Context, id int, fields map[string]interface{}) (*domain.Product, error)
	DeleteFunc        func(ctx context.Context, id int) error
	DecreaseStockFunc func(ctx context.Context, id int, quantity int) (*domain.Product, error)
	IncreaseStockFunc func(ctx context.Context, id int, quantity int) (*domain.Product, error)
}

func (m *mockCatalogService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	return m.CreateFunc(ctx, p)
}

func (m *mockCatalogService) List(ctx context.Context) ([]domain.Product, error) {
	return m.ListFunc(ctx)
}

func (m *mockCatalogService) Get(ctx context.Context, id int) (*domain.Product, error) {
	return m.GetFunc(ctx, id)
}

func (m *mockCatalogService) Update(ctx context.Context, id int, fields map[string]interface{}) (*domain.Product, error) {
	return m.UpdateFunc(ctx, id, fields)
}

func (m *mockCatalogService) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockCatalogService) DecreaseStock(ctx context.Context, id int, quantity int) (*domain.Product, error) {
	return m.DecreaseStockFunc(ctx, id, quantity)
}

func (m *mockCatalogService) IncreaseStock(ctx context.Context, id int, quantity int) (*domain.Product, error) {
	return m.IncreaseStockFunc(ctx, id, quantity)
}

func newTestRouter(svc CatalogService) http.Handler {
	ctrl := NewController(svc, zap.NewNop())

	r := chi.NewRouter()
	r.Post("/api/products", ctrl.HandleCreate)
	r.Get("/api/products", ctrl.HandleList)
	r.Get("/api/products/{id}", ctrl.HandleGetByID)
	r.Put("/api/products/{id}", ctrl.HandleUpdate)
	r.Delete("/api/products/{id}", ctrl.HandleDelete)
	r.Put("/api/products/{id}/decrease-stock", ctrl.HandleDecreaseStock)
	r.Put("/api/products/{id}/increase-stock", ctrl.HandleIncreaseStock)
	return r
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestCreate_MissingFields(t *testing.T) {
	router := newTestRouter(&mockCatalogService{})

	rr := doRequest(t, router, http.MethodPost, "/api/products", `{"name":"Notebook","price":4500}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "all fields are required", resp.Error)
	fields := make([]string, len(resp.Details))
	for i, d := range resp.Details {
		fields[i] = d.Field
	}
	assert.ElementsMatch(t, []string{"description", "stock"}, fields)
}

// Walks the catalog scenario end to end at the HTTP boundary: create,
// decrement within stock, then a decrement past the remaining stock.
func TestProductStockScenario(t *testing.T) {
	stock := 10
	svc := &mockCatalogService{
		CreateFunc: func(ctx context.Context, p domain.Product) (*domain.Product, error) {
			p.ID = 1
			p.Stock = stock
			return &p, nil
		},
		DecreaseStockFunc: func(ctx context.Context, id int, quantity int) (*domain.Product, error) {
			if quantity > stock {
				return nil, apperrors.NewInsufficientStockError("insufficient stock", id)
			}
			stock -= quantity
			return &domain.Product{ID: id, Name: "Notebook", Description: "Dell", Price: 4500, Stock: stock}, nil
		},
	}
	router := newTestRouter(svc)

	rr := doRequest(t, router, http.MethodPost, "/api/products", `{"name":"Notebook","description":"Dell","price":4500,"stock":10}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created ProductResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, 1, created.ID)

	rr = doRequest(t, router, http.MethodPut, "/api/products/1/decrease-stock", `{"quantity":3}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var decreased ProductResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &decreased))
	assert.Equal(t, 7, decreased.Stock)

	rr = doRequest(t, router, http.MethodPut, "/api/products/1/decrease-stock", `{"quantity":20}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "insufficient stock", resp.Error)
	assert.Equal(t, 7, stock)
}

func TestDecreaseStock_MissingQuantity(t *testing.T) {
	router := newTestRouter(&mockCatalogService{})

	rr := doRequest(t, router, http.MethodPut, "/api/products/1/decrease-stock", `{}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDecreaseStock_NotFound(t *testing.T) {
	svc := &mockCatalogService{
		DecreaseStockFunc: func(ctx context.Context, id int, quantity int) (*domain.Product, error) {
			return nil, apperrors.NewNotFoundError("product with id 99 not found")
		},
	}
	router := newTestRouter(svc)

	rr := doRequest(t, router, http.MethodPut, "/api/products/99/decrease-stock", `{"quantity":1}`)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := &mockCatalogService{
		GetFunc: func(ctx context.Context, id int) (*domain.Product, error) {
			return nil, apperrors.NewNotFoundError("product with id 5 not found")
		},
	}
	router := newTestRouter(svc)

	rr := doRequest(t, router, http.MethodGet, "/api/products/5", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetByID_InvalidID(t *testing.T) {
	router := newTestRouter(&mockCatalogService{})

	rr := doRequest(t, router, http.MethodGet, "/api/products/abc", "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDelete_Success(t *testing.T) {
	svc := &mockCatalogService{
		DeleteFunc: func(ctx context.Context, id int) error { return nil },
	}
	router := newTestRouter(svc)

	rr := doRequest(t, router, http.MethodDelete, "/api/products/1", "")

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestList_Success(t *testing.T) {
	svc := &mockCatalogService{
		ListFunc: func(ctx context.Context) ([]domain.Product, error) {
			return []domain.Product{
				{ID: 1, Name: "Notebook", Description: "Dell", Price: 4500, Stock: 10},
				{ID: 2, Name: "Mouse", Description: "Wireless", Price: 120.5, Stock: 50},
			}, nil
		},
	}
	router := newTestRouter(svc)

	rr := doRequest(t, router, http.MethodGet, "/api/products", "")

	require.Equal(t, http.StatusOK, rr.Code)

	var products []ProductResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &products))
	assert.Len(t, products, 2)
}
