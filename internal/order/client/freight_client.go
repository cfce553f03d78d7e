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

const freightServiceName = "freight-service"

type FreightClient struct {
	baseURL       string
	originZipcode string
	httpClient    *http.Client
}

func NewFreightClient(baseURL, originZipcode string, timeout time.Duration) *FreightClient {
	return &FreightClient{
		baseURL:       baseURL,
		originZipcode: originZipcode,
		httpClient:    &http.Client{Timeout: timeout},
	}
}

type calculateRequest struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Weight      float64 `json:"weight"`
}

type calculateResponse struct {
	Price float64 `json:"price"`
	Error string  `json:"error"`
}

// Quote prices shipping to a destination zipcode. Weight is fixed at one
// unit, as the rating stub ignores it anyway.
func (c *FreightClient) Quote(ctx context.Context, destination string) (float64, error) {
	body, err := json.Marshal(calculateRequest{
		Origin:      c.originZipcode,
		Destination: destination,
		Weight:      1,
	})
	if err != nil {
		return 0, apperrors.NewDownstreamError(freightServiceName, "encoding calculate request", err)
	}

	url := c.baseURL + "/calculate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, apperrors.NewDownstreamError(freightServiceName, "building calculate request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, apperrors.NewDownstreamError(freightServiceName, "calculate call failed", err)
	}
	defer resp.Body.Close()

	var result calculateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, apperrors.NewDownstreamError(freightServiceName, "decoding calculate response", err)
	}

	if resp.StatusCode != http.StatusOK {
		message := result.Error
		if message == "" {
			message = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		}
		return 0, apperrors.NewDownstreamError(freightServiceName, message, nil)
	}

	return result.Price, nil
}
