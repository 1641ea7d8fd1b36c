package toss

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hyun090116/vortex-game-explorer/pkg/config"
	pkgerrors "github.com/hyun090116/vortex-game-explorer/pkg/errors"
	"github.com/hyun090116/vortex-game-explorer/pkg/logger"
)

const confirmPath = "/v1/payments/confirm"

var (
	errSecretKeyRequired = errors.New("toss secret key is required")
	errLoggerRequired    = errors.New("toss logger is required")
)

// Confirmer is the surface the checkout flow needs from the payment provider.
type Confirmer interface {
	ConfirmPayment(ctx context.Context, req ConfirmRequest) (*Payment, error)
}

// ConfirmRequest carries the redirect parameters back to the provider for
// final settlement.
type ConfirmRequest struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
}

// Payment is the subset of the provider's payment object the storefront uses.
type Payment struct {
	PaymentKey  string    `json:"paymentKey"`
	OrderID     string    `json:"orderId"`
	OrderName   string    `json:"orderName"`
	Status      string    `json:"status"`
	Method      string    `json:"method"`
	TotalAmount int64     `json:"totalAmount"`
	ApprovedAt  time.Time `json:"approvedAt"`
}

type providerError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Client is a thin REST wrapper over the Toss Payments API. The provider has
// no official Go SDK, so requests are issued directly with Basic auth derived
// from the secret key.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authHeader string
	logger     *logger.Logger
}

// NewClient initializes the Toss wrapper and validates the credentials.
func NewClient(cfg config.TossConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	secret := strings.TrimSpace(cfg.SecretKey)
	if secret == "" {
		return nil, errSecretKeyRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		authHeader: "Basic " + base64.StdEncoding.EncodeToString([]byte(secret+":")),
		logger:     logg,
	}, nil
}

// ConfirmPayment settles an approved payment. A 2xx response means the money
// moved; any provider-rejected confirmation surfaces as a payment error with
// the provider code attached.
func (c *Client) ConfirmPayment(ctx context.Context, req ConfirmRequest) (*Payment, error) {
	if req.PaymentKey == "" || req.OrderID == "" || req.Amount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment key, order id, and amount are required")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding confirm request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+confirmPath, bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building confirm request")
	}
	httpReq.Header.Set("Authorization", c.authHeader)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "calling payment provider")
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading provider response")
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var payment Payment
		if err := json.Unmarshal(payload, &payment); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding provider response")
		}
		return &payment, nil
	}

	var provErr providerError
	if err := json.Unmarshal(payload, &provErr); err != nil || provErr.Code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("payment provider returned status %d", resp.StatusCode))
	}

	if resp.StatusCode >= 500 {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, provErr.Message).
			WithDetails(map[string]string{"provider_code": provErr.Code})
	}

	return nil, pkgerrors.New(pkgerrors.CodePayment, provErr.Message).
		WithDetails(map[string]string{"provider_code": provErr.Code})
}
