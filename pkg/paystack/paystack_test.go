package paystack_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrikit/agrikit/pkg/paystack"
)

func TestVerifySignature(t *testing.T) {
	t.Parallel()

	secret := "sk_test_secret"
	body := []byte(`{"event":"charge.success"}`)

	t.Run("valid signature", func(t *testing.T) {
		t.Parallel()
		sig := paystack.Sign(secret, body)
		assert.NoError(t, paystack.VerifySignature(secret, body, sig))
	})

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()
		sig := paystack.Sign("sk_other", body)
		assert.ErrorIs(t, paystack.VerifySignature(secret, body, sig), paystack.ErrSignatureMismatch)
	})

	t.Run("tampered body", func(t *testing.T) {
		t.Parallel()
		sig := paystack.Sign(secret, body)
		err := paystack.VerifySignature(secret, []byte(`{"event":"charge.failed"}`), sig)
		assert.ErrorIs(t, err, paystack.ErrSignatureMismatch)
	})

	t.Run("empty signature", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, paystack.VerifySignature(secret, body, ""), paystack.ErrSignatureMismatch)
	})
}

func TestVerifyTransaction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("successful transaction", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/transaction/verify/ref_001", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":true,"message":"Verification successful","data":{"reference":"ref_001","status":"success","amount":250000,"currency":"NGN"}}`))
		}))
		defer srv.Close()

		client, err := paystack.NewClient(paystack.Config{SecretKey: "sk_test_secret", BaseURL: srv.URL})
		require.NoError(t, err)

		tx, err := client.VerifyTransaction(ctx, "ref_001")
		require.NoError(t, err)
		assert.Equal(t, "ref_001", tx.Reference)
		assert.Equal(t, int64(250000), tx.Amount)
	})

	t.Run("failed transaction", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":true,"data":{"reference":"ref_002","status":"failed"}}`))
		}))
		defer srv.Close()

		client, err := paystack.NewClient(paystack.Config{SecretKey: "sk", BaseURL: srv.URL})
		require.NoError(t, err)

		_, err = client.VerifyTransaction(ctx, "ref_002")
		assert.ErrorIs(t, err, paystack.ErrTransactionUnsuccessful)
	})

	t.Run("unknown reference", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client, err := paystack.NewClient(paystack.Config{SecretKey: "sk", BaseURL: srv.URL})
		require.NoError(t, err)

		_, err = client.VerifyTransaction(ctx, "nope")
		assert.ErrorIs(t, err, paystack.ErrTransactionNotFound)
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Parallel()
		_, err := paystack.NewClient(paystack.Config{})
		assert.Error(t, err)
	})
}
