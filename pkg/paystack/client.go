package paystack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Transaction is the subset of the verify response the reconciler
// needs. Amount is in minor currency units.
type Transaction struct {
	Reference string         `json:"reference"`
	Status    string         `json:"status"`
	Amount    int64          `json:"amount"`
	Currency  string         `json:"currency"`
	PaidAt    time.Time      `json:"paid_at"`
	Metadata  map[string]any `json:"metadata"`
}

// Client calls the Paystack REST API with the account secret key.
type Client struct {
	config Config
	http   *http.Client
}

// NewClient creates a Paystack client. Returns an error on missing
// credentials so misconfiguration surfaces at startup.
func NewClient(config Config) (*Client, error) {
	if config.SecretKey == "" {
		return nil, errors.New("paystack secret key is required")
	}
	if config.BaseURL == "" {
		config.BaseURL = "https://api.paystack.co"
	}
	return &Client{
		config: config,
		http:   &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// VerifyTransaction fetches the transaction for a payment reference
// and confirms it succeeded. Used to re-check a payment out of band of
// the webhook.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*Transaction, error) {
	endpoint := c.config.BaseURL + "/transaction/verify/" + url.PathEscape(reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build paystack request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.SecretKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call paystack: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrTransactionNotFound
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)
	}

	var body struct {
		Status  bool        `json:"status"`
		Message string      `json:"message"`
		Data    Transaction `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode paystack response: %w", err)
	}
	if !body.Status {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatusCode, body.Message)
	}
	if body.Data.Status != "success" {
		return nil, fmt.Errorf("%w: %s", ErrTransactionUnsuccessful, body.Data.Status)
	}
	return &body.Data, nil
}
