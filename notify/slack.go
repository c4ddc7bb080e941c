package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/slack-go/slack"
)

// Slack posts notifications to a Slack incoming webhook.
type Slack struct {
	webhookURL string
	channel    string
}

// NewSlack creates a [Slack] notifier. channel may be empty to use the
// webhook's default channel.
func NewSlack(webhookURL, channel string) (*Slack, error) {
	if webhookURL == "" {
		return nil, errors.New("slack webhook URL cannot be empty")
	}
	return &Slack{webhookURL: webhookURL, channel: channel}, nil
}

// Notify implements [Notifier].
func (s *Slack) Notify(ctx context.Context, n Notification) error {
	msg := &slack.WebhookMessage{
		Channel: s.channel,
		Text:    fmt.Sprintf("*%s*\n%s", n.Title, n.Message),
	}
	if err := slack.PostWebhookContext(ctx, s.webhookURL, msg); err != nil {
		return fmt.Errorf("failed to post slack notification: %w", err)
	}
	return nil
}
