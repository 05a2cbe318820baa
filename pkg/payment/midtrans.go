package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	productionBaseURL = "https://app.midtrans.com/snap/v1"
	sandboxBaseURL    = "https://app.sandbox.midtrans.com/snap/v1"

	// Sandbox server keys are issued with this prefix; it selects the
	// sandbox endpoint so one env var drives both environments.
	sandboxKeyPrefix = "SB-"
)

// ErrNotConfigured means the server key is missing. It is distinct from
// provider errors so callers can fail closed before any network I/O.
var ErrNotConfigured = errors.New("payment gateway server key is not configured")

type Client struct {
	httpClient *http.Client
	baseURL    string
	serverKey  string
}

func NewClient(serverKey string) *Client {
	baseURL := productionBaseURL
	if strings.HasPrefix(serverKey, sandboxKeyPrefix) {
		baseURL = sandboxBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:   baseURL,
		serverKey: serverKey,
	}
}

type TransactionRequest struct {
	OrderID     string
	GrossAmount int64
	Email       string
	FullName    string
}

type TransactionResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// CreateTransaction requests a checkout token for the hosted widget.
// Auth is Basic with base64(serverKey + ":"); the key never leaves the
// server side.
func (c *Client) CreateTransaction(ctx context.Context, txn TransactionRequest) (*TransactionResponse, error) {
	if c.serverKey == "" {
		return nil, ErrNotConfigured
	}

	payload := map[string]interface{}{
		"transaction_details": map[string]interface{}{
			"order_id":     txn.OrderID,
			"gross_amount": txn.GrossAmount,
		},
		"customer_details": map[string]string{
			"email":      txn.Email,
			"first_name": txn.FullName,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal transaction payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/transactions", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("build transaction request: %w", err)
	}
	auth := base64.StdEncoding.EncodeToString([]byte(c.serverKey + ":"))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			ErrorMessages []string `json:"error_messages"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return nil, fmt.Errorf("payment gateway error %d: %s",
			resp.StatusCode, strings.Join(apiErr.ErrorMessages, "; "))
	}

	var result TransactionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}
	if result.Token == "" {
		return nil, errors.New("payment gateway returned an empty token")
	}
	return &result, nil
}
