package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Notifier delivers out-of-band operator notifications. Delivery is
// best effort everywhere it is used; the caller's response to the
// payment provider never depends on it.
type Notifier interface {
	Send(ctx context.Context, message string) error
}

type NoOp struct{}

func (NoOp) Send(ctx context.Context, message string) error {
	return nil
}

const telegramAPIBaseURL = "https://api.telegram.org"

type TelegramNotifier struct {
	httpClient *http.Client
	baseURL    string
	botToken   string
	chatID     string
}

// New returns a Telegram notifier, or a NoOp when the bot is not
// configured.
func New(botToken, chatID string) Notifier {
	if botToken == "" || chatID == "" {
		return NoOp{}
	}
	return &TelegramNotifier{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL:  telegramAPIBaseURL,
		botToken: botToken,
		chatID:   chatID,
	}
}

func (n *TelegramNotifier) Send(ctx context.Context, message string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id": n.chatID,
		"text":    message,
	})
	if err != nil {
		return fmt.Errorf("marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram error %d", resp.StatusCode)
	}
	return nil
}
