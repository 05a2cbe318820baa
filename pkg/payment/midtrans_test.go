package payment

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewClient_EndpointSelection(t *testing.T) {
	if c := NewClient("SB-Mid-server-x"); c.baseURL != sandboxBaseURL {
		t.Fatalf("SB- key selected %q, want sandbox", c.baseURL)
	}
	if c := NewClient("Mid-server-x"); c.baseURL != productionBaseURL {
		t.Fatalf("production key selected %q, want production", c.baseURL)
	}
}

func TestCreateTransaction_MissingKeyFailsClosed(t *testing.T) {
	c := NewClient("")
	_, err := c.CreateTransaction(context.Background(), TransactionRequest{OrderID: "SS-1"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestCreateTransaction_Success(t *testing.T) {
	const serverKey = "SB-Mid-server-x"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transactions" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte(serverKey+":"))
		if got := r.Header.Get("Authorization"); got != wantAuth {
			t.Fatalf("Authorization = %q, want %q", got, wantAuth)
		}

		var payload struct {
			TransactionDetails struct {
				OrderID     string `json:"order_id"`
				GrossAmount int64  `json:"gross_amount"`
			} `json:"transaction_details"`
			CustomerDetails struct {
				Email     string `json:"email"`
				FirstName string `json:"first_name"`
			} `json:"customer_details"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if payload.TransactionDetails.OrderID != "SS-1" || payload.TransactionDetails.GrossAmount != 249000 {
			t.Fatalf("unexpected transaction details: %+v", payload.TransactionDetails)
		}
		if payload.CustomerDetails.Email != "a@x.com" {
			t.Fatalf("unexpected customer email %q", payload.CustomerDetails.Email)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"token":        "snap-token",
			"redirect_url": "https://app.sandbox.midtrans.com/snap/v2/vtweb/snap-token",
		})
	}))
	defer server.Close()

	c := NewClient(serverKey)
	c.baseURL = server.URL

	resp, err := c.CreateTransaction(context.Background(), TransactionRequest{
		OrderID:     "SS-1",
		GrossAmount: 249000,
		Email:       "a@x.com",
		FullName:    "Test Member",
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if resp.Token != "snap-token" {
		t.Fatalf("token = %q", resp.Token)
	}
	if resp.RedirectURL == "" {
		t.Fatal("expected redirect url")
	}
}

func TestCreateTransaction_RelaysProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string][]string{
			"error_messages": {"Access denied due to unauthorized transaction"},
		})
	}))
	defer server.Close()

	c := NewClient("SB-Mid-server-x")
	c.baseURL = server.URL

	_, err := c.CreateTransaction(context.Background(), TransactionRequest{OrderID: "SS-1"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "401") || !strings.Contains(err.Error(), "unauthorized") {
		t.Fatalf("error should relay provider status and message, got %v", err)
	}
}

func TestCreateTransaction_EmptyToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"token": ""})
	}))
	defer server.Close()

	c := NewClient("SB-Mid-server-x")
	c.baseURL = server.URL

	if _, err := c.CreateTransaction(context.Background(), TransactionRequest{OrderID: "SS-1"}); err == nil {
		t.Fatal("expected error on empty token")
	}
}
