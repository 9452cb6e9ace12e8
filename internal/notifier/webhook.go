package notifier

import (
	"context"
	"fmt"
)

// Webhook POSTs every notification as JSON to a fixed URL.
type Webhook struct {
	url    string
	secret string
}

func NewWebhook(url, secret string) *Webhook {
	return &Webhook{url: url, secret: secret}
}

func (w *Webhook) Notify(ctx context.Context, ownerID string, n Notification) error {
	n.OwnerID = ownerID
	if err := postJSON(ctx, w.url, w.secret, n); err != nil {
		return fmt.Errorf("webhook: %w", err)
	}
	return nil
}
