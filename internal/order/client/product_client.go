package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "vitrine/internal/errors"
)

const productServiceName = "product-service"

type ProductClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewProductClient(baseURL string, timeout time.Duration) *ProductClient {
	return &ProductClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type stockRequest struct {
	Quantity int `json:"quantity"`
}

type stockErrorResponse struct {
	Error string `json:"error"`
}

func (c *ProductClient) DecreaseStock(ctx context.Context, productID, quantity int) error {
	return c.changeStock(ctx, productID, quantity, "decrease-stock")
}

func (c *ProductClient) IncreaseStock(ctx context.Context, productID, quantity int) error {
	return c.changeStock(ctx, productID, quantity, "increase-stock")
}

func (c *ProductClient) changeStock(ctx context.Context, productID, quantity int, action string) error {
	body, err := json.Marshal(stockRequest{Quantity: quantity})
	if err != nil {
		return apperrors.NewDownstreamError(productServiceName, "encoding stock request", err)
	}

	url := fmt.Sprintf("%s/api/products/%d/%s", c.baseURL, productID, action)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return apperrors.NewDownstreamError(productServiceName, "building stock request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewDownstreamError(productServiceName, "stock call failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	var result stockErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&result)
	message := result.Error
	if message == "" {
		message = fmt.Sprintf("unexpected status %d", resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return apperrors.NewNotFoundError(message)
	case http.StatusBadRequest:
		return apperrors.NewInsufficientStockError(message, productID)
	default:
		return apperrors.NewDownstreamError(productServiceName, message, nil)
	}
}
