package product

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrine/internal/domain"
	apperrors "vitrine/internal/errors"
)

func TestGraphQL_ProductQuery(t *testing.T) {
	svc := &mockCatalogService{
		GetFunc: func(ctx context.Context, id int) (*domain.Product, error) {
			require.Equal(t, 1, id)
			return &domain.Product{ID: 1, Name: "Notebook", Description: "Dell", Price: 4500, Stock: 10}, nil
		},
	}

	h, err := NewGraphQLHandler(svc)
	require.NoError(t, err)

	body := `{"query":"{ product(id: \"1\") { id name price stock } }"}`
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data struct {
			Product struct {
				Name  string  `json:"name"`
				Price float64 `json:"price"`
				Stock int     `json:"stock"`
			} `json:"product"`
		} `json:"data"`
		Errors []interface{} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Empty(t, resp.Errors)
	assert.Equal(t, "Notebook", resp.Data.Product.Name)
	assert.Equal(t, 4500.0, resp.Data.Product.Price)
	assert.Equal(t, 10, resp.Data.Product.Stock)
}

func TestGraphQL_ProductsQuery(t *testing.T) {
	svc := &mockCatalogService{
		ListFunc: func(ctx context.Context) ([]domain.Product, error) {
			return []domain.Product{
				{ID: 1, Name: "Notebook", Description: "Dell", Price: 4500, Stock: 10},
				{ID: 2, Name: "Mouse", Description: "Wireless", Price: 120.5, Stock: 50},
			}, nil
		},
	}

	h, err := NewGraphQLHandler(svc)
	require.NoError(t, err)

	body := `{"query":"{ products { id name } }"}`
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data struct {
			Products []map[string]interface{} `json:"products"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Products, 2)
}

func TestGraphQL_ProductNotFound(t *testing.T) {
	svc := &mockCatalogService{
		GetFunc: func(ctx context.Context, id int) (*domain.Product, error) {
			return nil, apperrors.NewNotFoundError("product with id 9 not found")
		},
	}

	h, err := NewGraphQLHandler(svc)
	require.NoError(t, err)

	body := `{"query":"{ product(id: \"9\") { id } }"}`
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	var resp struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Errors)
	assert.Contains(t, resp.Errors[0].Message, "not found")
}
