package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestCreateOrder(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotReq createOrderRequest

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/orders", r.URL.Path)

			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "key_id", user)
			assert.Equal(t, "key_secret", pass)

			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

			json.NewEncoder(w).Encode(Order{
				ID:       "order_123",
				Amount:   gotReq.Amount,
				Currency: gotReq.Currency,
				Receipt:  gotReq.Receipt,
				Status:   "created",
			})
		}))
		defer server.Close()

		client := NewClient(server.URL, "key_id", "key_secret", 5*time.Second, nopLogger{})

		order, err := client.CreateOrder(context.Background(), 80000, "INR")
		require.NoError(t, err)
		assert.Equal(t, "order_123", order.ID)
		assert.Equal(t, int64(80000), order.Amount)
		assert.Equal(t, "INR", order.Currency)

		assert.Equal(t, int64(80000), gotReq.Amount)
		assert.Equal(t, "INR", gotReq.Currency)
		assert.True(t, strings.HasPrefix(gotReq.Receipt, "bk_"))
	})

	t.Run("rejected with description", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount too small"}}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "key_id", "key_secret", 5*time.Second, nopLogger{})

		_, err := client.CreateOrder(context.Background(), 1, "INR")
		require.ErrorIs(t, err, ErrOrderRejected)
		assert.Contains(t, err.Error(), "amount too small")
	})

	t.Run("unauthorized", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","description":"bad key"}}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "key_id", "wrong", 5*time.Second, nopLogger{})

		_, err := client.CreateOrder(context.Background(), 80000, "INR")
		assert.ErrorIs(t, err, ErrOrderRejected)
	})

	t.Run("unexpected status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClient(server.URL, "key_id", "key_secret", 5*time.Second, nopLogger{})

		_, err := client.CreateOrder(context.Background(), 80000, "INR")
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("empty order id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "key_id", "key_secret", 5*time.Second, nopLogger{})

		_, err := client.CreateOrder(context.Background(), 80000, "INR")
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})
}

func TestVerifySignature(t *testing.T) {
	const secret = "key_secret"
	client := NewClient("http://unused", "key_id", secret, time.Second, nopLogger{})

	sign := func(orderID, paymentID string) string {
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write([]byte(orderID + "|" + paymentID))
		return hex.EncodeToString(mac.Sum(nil))
	}

	t.Run("valid signature", func(t *testing.T) {
		assert.True(t, client.VerifySignature("order_1", "pay_1", sign("order_1", "pay_1")))
	})

	t.Run("signature for other payment", func(t *testing.T) {
		assert.False(t, client.VerifySignature("order_1", "pay_1", sign("order_1", "pay_2")))
	})

	t.Run("tampered signature", func(t *testing.T) {
		assert.False(t, client.VerifySignature("order_1", "pay_1", "deadbeef"))
	})

	t.Run("empty signature", func(t *testing.T) {
		assert.False(t, client.VerifySignature("order_1", "pay_1", ""))
	})

	t.Run("wrong secret", func(t *testing.T) {
		mac := hmac.New(sha256.New, []byte("other_secret"))
		mac.Write([]byte("order_1|pay_1"))
		forged := hex.EncodeToString(mac.Sum(nil))
		assert.False(t, client.VerifySignature("order_1", "pay_1", forged))
	})
}
