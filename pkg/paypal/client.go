package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Order is a created or captured PayPal order.
type Order struct {
	ID     string `json:"id"`
	Status string `json:"status"`

	// ApproveURL is where the buyer is sent to approve a created
	// order. Empty after capture.
	ApproveURL string `json:"-"`
}

// Client calls the PayPal Orders v2 API. Access tokens from the
// client-credentials grant are cached until shortly before expiry.
type Client struct {
	config  Config
	baseURL string
	http    *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a PayPal client. Returns an error on missing
// credentials or an unknown environment.
func NewClient(config Config) (*Client, error) {
	if config.ClientID == "" {
		return nil, errors.New("paypal client ID is required")
	}
	if config.ClientSecret == "" {
		return nil, errors.New("paypal client secret is required")
	}

	var baseURL string
	switch strings.ToLower(config.Environment) {
	case "sandbox", "":
		baseURL = sandboxBaseURL
	case "live", "production":
		baseURL = liveBaseURL
	default:
		return nil, fmt.Errorf("invalid paypal environment: %s", config.Environment)
	}

	return &Client{
		config:  config,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// WithBaseURL overrides the API host. Intended for tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.SetBasicAuth(c.config.ClientID, c.config.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch paypal token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrAuthFailed, resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if body.AccessToken == "" {
		return "", ErrAuthFailed
	}

	c.accessToken = body.AccessToken
	// Refresh a minute early so in-flight requests never carry a
	// token that expires mid-call.
	c.tokenExpiry = time.Now().Add(time.Duration(body.ExpiresIn)*time.Second - time.Minute)
	return c.accessToken, nil
}

type orderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []struct {
		Href string `json:"href"`
		Rel  string `json:"rel"`
	} `json:"links"`
}

func (r *orderResponse) toOrder() *Order {
	o := &Order{ID: r.ID, Status: r.Status}
	for _, l := range r.Links {
		if l.Rel == "approve" {
			o.ApproveURL = l.Href
		}
	}
	return o
}

// CreateOrder opens an order for the amount. Amount is in minor
// currency units; PayPal wants a decimal string.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency string) (*Order, error) {
	payload := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{{
			"amount": map[string]string{
				"currency_code": currency,
				"value":         fmt.Sprintf("%d.%02d", amount/100, amount%100),
			},
		}},
	}

	var res orderResponse
	if err := c.do(ctx, http.MethodPost, "/v2/checkout/orders", payload, &res); err != nil {
		return nil, err
	}
	return res.toOrder(), nil
}

// CaptureOrder captures an approved order. Returns
// ErrOrderNotCompleted when PayPal reports any status other than
// COMPLETED.
func (c *Client) CaptureOrder(ctx context.Context, orderID string) (*Order, error) {
	var res orderResponse
	path := "/v2/checkout/orders/" + url.PathEscape(orderID) + "/capture"
	if err := c.do(ctx, http.MethodPost, path, nil, &res); err != nil {
		return nil, err
	}
	if res.Status != "COMPLETED" {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotCompleted, res.Status)
	}
	return res.toOrder(), nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	tok, err := c.token(ctx)
	if err != nil {
		return err
	}

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode paypal payload: %w", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build paypal request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call paypal: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusNotFound:
		return ErrOrderNotFound
	default:
		return fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
