package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"svitlo/internal/domain/orders"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramAdapter relays order summaries to one or more manager chats
// through the Telegram Bot API. It is also used by the bot webhook to answer
// incoming /start messages.
type TelegramAdapter struct {
	client   *http.Client
	apiBase  string
	botToken string
	chatIDs  []string
}

func NewTelegramAdapter(botToken string, managerChatIDs []string) *TelegramAdapter {
	return NewTelegramAdapterAt(telegramAPIBase, botToken, managerChatIDs)
}

// NewTelegramAdapterAt points the adapter at an alternate API base URL.
func NewTelegramAdapterAt(apiBase, botToken string, managerChatIDs []string) *TelegramAdapter {
	return &TelegramAdapter{
		client:   &http.Client{Timeout: 10 * time.Second},
		apiBase:  apiBase,
		botToken: botToken,
		chatIDs:  managerChatIDs,
	}
}

// SplitRecipients splits a comma-separated recipient list (chat ids or
// email addresses), dropping empties.
func SplitRecipients(s string) []string {
	var out []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}

// NotifyOrderPlaced sends the order summary to every manager chat. All chats
// are attempted; per-chat failures are joined into one error so the caller
// can log them without losing successful deliveries.
func (a *TelegramAdapter) NotifyOrderPlaced(ctx context.Context, o *orders.Order) error {
	if len(a.chatIDs) == 0 {
		return errors.New("no manager chat ids configured")
	}

	text := FormatOrderMessage(o)

	var errs []error
	for _, chatID := range a.chatIDs {
		if err := a.SendMessage(ctx, chatID, text); err != nil {
			errs = append(errs, fmt.Errorf("chat %s: %w", chatID, err))
		}
	}
	return errors.Join(errs...)
}

// SendMessage posts one Markdown message to a chat.
func (a *TelegramAdapter) SendMessage(ctx context.Context, chatID, text string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "Markdown",
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", a.apiBase, a.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram api status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// FormatOrderMessage builds the manager-facing order summary: short order
// ref, customer block, one line per item, total.
func FormatOrderMessage(o *orders.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*New order #%s!*\n\n", orders.ShortRef(o.OrderNumber))
	fmt.Fprintf(&b, "*Customer:*\nName: %s\nPhone: %s\nCity: %s\n\n", o.Customer.Name, o.Customer.Phone, o.Customer.City)

	b.WriteString("*Order details:*\n")
	for _, li := range o.Items {
		fmt.Fprintf(&b, "  - %s (%d pcs) - %s/pc\n", li.Name, li.Quantity, formatUAH(li.UnitPriceCents))
	}

	fmt.Fprintf(&b, "\n*Total:* %s", formatUAH(o.TotalCents))
	return b.String()
}

func formatUAH(cents int64) string {
	return fmt.Sprintf("%d.%02d UAH", cents/100, cents%100)
}
