package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"foodtrack/internal/model"
)

var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response carrying the server's message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("unexpected status: %d, message: %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

type Client struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type Restaurant struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type PlaceOrderRequest struct {
	RestaurantID int64             `json:"restaurantId"`
	Items        []json.RawMessage `json:"items"`
	Total        float64           `json:"total"`
}

type PlaceOrderResponse struct {
	Message string       `json:"message"`
	OrderID int64        `json:"orderId"`
	Status  model.Status `json:"status"`
}

type OrderStatus struct {
	ID     int64        `json:"id"`
	Status model.Status `json:"status"`
	Total  float64      `json:"total"`
}

type AdvanceResponse struct {
	ID        int64        `json:"id"`
	NewStatus model.Status `json:"newStatus"`
}

func (c *Client) ListRestaurants(ctx context.Context) ([]Restaurant, error) {
	var out []Restaurant
	err := c.do(ctx, http.MethodGet, "/api/restaurants", nil, http.StatusOK, &out)
	return out, err
}

func (c *Client) GetMenu(ctx context.Context, restaurantID int64) ([]model.MenuItem, error) {
	var out []model.MenuItem
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/restaurants/%d/menu", restaurantID), nil, http.StatusOK, &out)
	return out, err
}

func (c *Client) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResponse, error) {
	var out PlaceOrderResponse
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetOrder(ctx context.Context, id int64) (*OrderStatus, error) {
	var out OrderStatus
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/orders/%d", id), nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdvanceStatus(ctx context.Context, id int64) (*AdvanceResponse, error) {
	var out AdvanceResponse
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/orders/%d/update-status", id), nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, want int, dst any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var msg struct {
			Message string `json:"message"`
		}
		raw, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(raw, &msg) == nil && msg.Message != "" {
			apiErr.Message = msg.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
