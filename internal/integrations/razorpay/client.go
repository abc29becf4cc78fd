package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client клиент Razorpay Orders API.
// Использует Basic-аутентификацию (key_id:key_secret); подпись платежа
// проверяется локально через HMAC, без обращения к шлюзу.
type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента Razorpay
func NewClient(baseURL, keyID, keySecret string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreateOrder создает заказ на оплату указанной суммы (в минимальных единицах валюты).
// Receipt генерируется на нашей стороне; шлюз не гарантирует идемпотентность
// этого вызова, поэтому повторный initiate даёт новый заказ.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency string) (*Order, error) {
	receipt := "bk_" + uuid.NewString()

	payload, err := json.Marshal(createOrderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal order request: %v", ErrInternal, err)
	}

	url := c.baseURL + "/v1/orders"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest, http.StatusUnauthorized:
		var gwErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&gwErr); err == nil && gwErr.Error.Description != "" {
			c.log.Warn("Razorpay rejected order: code=%s, description=%s", gwErr.Error.Code, gwErr.Error.Description)
			return nil, fmt.Errorf("%w: %s", ErrOrderRejected, gwErr.Error.Description)
		}
		return nil, ErrOrderRejected
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("%w: empty order id", ErrInvalidResponse)
	}

	c.log.Info("Razorpay order created: order_id=%s, amount=%d %s, receipt=%s",
		order.ID, order.Amount, order.Currency, receipt)
	return &order, nil
}

// VerifySignature проверяет подпись завершенного платежа.
// Razorpay подписывает строку "<order_id>|<payment_id>" секретным ключом
// (HMAC-SHA256, hex). Сравнение в константном времени.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
