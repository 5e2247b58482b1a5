package paypal_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrikit/agrikit/pkg/paypal"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "cid", user)
		assert.Equal(t, "secret", pass)
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok_123", "expires_in": 3600})
	})
	mux.HandleFunc("/", handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, srv *httptest.Server) *paypal.Client {
	t.Helper()
	client, err := paypal.NewClient(paypal.Config{ClientID: "cid", ClientSecret: "secret"})
	require.NoError(t, err)
	return client.WithBaseURL(srv.URL)
}

func TestCreateOrder(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/checkout/orders", r.URL.Path)
		assert.Equal(t, "Bearer tok_123", r.Header.Get("Authorization"))

		var payload struct {
			Intent        string `json:"intent"`
			PurchaseUnits []struct {
				Amount struct {
					CurrencyCode string `json:"currency_code"`
					Value        string `json:"value"`
				} `json:"amount"`
			} `json:"purchase_units"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "CAPTURE", payload.Intent)
		require.Len(t, payload.PurchaseUnits, 1)
		assert.Equal(t, "2500.00", payload.PurchaseUnits[0].Amount.Value)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "ORDER1",
			"status": "CREATED",
			"links": []map[string]string{
				{"rel": "approve", "href": "https://paypal.test/approve/ORDER1"},
			},
		})
	})

	order, err := newTestClient(t, srv).CreateOrder(context.Background(), 250000, "USD")
	require.NoError(t, err)
	assert.Equal(t, "ORDER1", order.ID)
	assert.Equal(t, "https://paypal.test/approve/ORDER1", order.ApproveURL)
}

func TestCaptureOrder(t *testing.T) {
	t.Parallel()

	t.Run("completed", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v2/checkout/orders/ORDER1/capture", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]string{"id": "ORDER1", "status": "COMPLETED"})
		})

		order, err := newTestClient(t, srv).CaptureOrder(context.Background(), "ORDER1")
		require.NoError(t, err)
		assert.Equal(t, "COMPLETED", order.Status)
	})

	t.Run("declined", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"id": "ORDER2", "status": "DECLINED"})
		})

		_, err := newTestClient(t, srv).CaptureOrder(context.Background(), "ORDER2")
		assert.ErrorIs(t, err, paypal.ErrOrderNotCompleted)
	})

	t.Run("unknown order", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := newTestClient(t, srv).CaptureOrder(context.Background(), "NOPE")
		assert.ErrorIs(t, err, paypal.ErrOrderNotFound)
	})
}

func TestNewClientValidation(t *testing.T) {
	t.Parallel()

	_, err := paypal.NewClient(paypal.Config{ClientSecret: "secret"})
	assert.Error(t, err)

	_, err = paypal.NewClient(paypal.Config{ClientID: "cid", ClientSecret: "secret", Environment: "staging"})
	assert.Error(t, err)
}
