package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"medidex/internal/config"
	"medidex/internal/models"
)

// Channel is one outbound notification integration. Send failures stay
// inside the fan-out; they are logged and never reach the order flow.
type Channel interface {
	Name() string
	Send(ctx context.Context, order models.Order) error
}

// Notifier fans new-order events out to every configured channel.
type Notifier struct {
	channels []Channel
	timeout  time.Duration
	wg       sync.WaitGroup
}

func New(channels ...Channel) *Notifier {
	return &Notifier{channels: channels, timeout: 10 * time.Second}
}

// FromConfig builds a notifier with every channel the environment
// configures. No configuration at all yields an empty, valid notifier.
func FromConfig(cfg config.Config) *Notifier {
	var channels []Channel

	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
		channels = append(channels, NewTelegramChannel(cfg.TelegramBotToken, cfg.TelegramChatID))
	}
	if cfg.DiscordWebhookURL != "" {
		channels = append(channels, NewDiscordChannel(cfg.DiscordWebhookURL))
	}
	if cfg.SlackWebhookURL != "" {
		channels = append(channels, NewSlackChannel(cfg.SlackWebhookURL))
	}
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := NewKafkaChannel(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Println("[NOTIFY] [ERROR] kafka channel disabled:", err)
		} else {
			channels = append(channels, kafka)
		}
	}

	for _, ch := range channels {
		log.Println("[NOTIFY] [INFO] channel enabled:", ch.Name())
	}
	return New(channels...)
}

// Dispatch returns immediately. A detached goroutine delivers to all
// channels concurrently and swallows every failure.
func (n *Notifier) Dispatch(order models.Order) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		var inner sync.WaitGroup
		for _, ch := range n.channels {
			inner.Add(1)
			go func(ch Channel) {
				defer inner.Done()
				ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
				defer cancel()
				if err := ch.Send(ctx, order); err != nil {
					log.Printf("[NOTIFY] [ERROR] %s delivery failed for order %s: %v", ch.Name(), order.ID.Hex(), err)
				}
			}(ch)
		}
		inner.Wait()
	}()
}

// Flush blocks until all in-flight dispatches have finished.
func (n *Notifier) Flush() {
	n.wg.Wait()
}

// FormatOrderText renders the owner-facing order summary.
func FormatOrderText(order models.Order) string {
	items := make([]string, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, fmt.Sprintf("• %s x%d — $%.2f", it.Name, it.Quantity, it.Price))
	}

	recommended := "No"
	if order.DoctorRecommended {
		recommended = "Yes"
	}

	lines := []string{
		fmt.Sprintf("New order: %s", order.ID.Hex()),
		fmt.Sprintf("Name: %s", order.Name),
		fmt.Sprintf("Phone: %s", order.Phone),
		fmt.Sprintf("Location: %s", order.Location),
		fmt.Sprintf("Doctor recommended: %s", recommended),
		fmt.Sprintf("Total: $%.2f", order.Total),
		fmt.Sprintf("Items:\n%s", strings.Join(items, "\n")),
		fmt.Sprintf("Created: %s", order.CreatedAt.Format("Jan 2, 2006 3:04:05 PM")),
	}
	return strings.Join(lines, "\n")
}

// TelegramChannel posts the summary via the bot sendMessage API.
type TelegramChannel struct {
	token   string
	chatID  string
	apiBase string
	client  *http.Client
}

func NewTelegramChannel(token, chatID string) *TelegramChannel {
	return &TelegramChannel{
		token:   token,
		chatID:  chatID,
		apiBase: "https://api.telegram.org",
		client:  &http.Client{},
	}
}

func (c *TelegramChannel) Name() string { return "telegram" }

func (c *TelegramChannel) Send(ctx context.Context, order models.Order) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", c.apiBase, c.token)
	return postJSON(ctx, c.client, url, map[string]string{
		"chat_id": c.chatID,
		"text":    FormatOrderText(order),
	})
}

// DiscordChannel posts the summary to a webhook, code-fenced so the layout
// survives Discord's markdown rendering.
type DiscordChannel struct {
	url    string
	client *http.Client
}

func NewDiscordChannel(url string) *DiscordChannel {
	return &DiscordChannel{url: url, client: &http.Client{}}
}

func (c *DiscordChannel) Name() string { return "discord" }

func (c *DiscordChannel) Send(ctx context.Context, order models.Order) error {
	return postJSON(ctx, c.client, c.url, map[string]string{
		"content": "```" + FormatOrderText(order) + "```",
	})
}

// SlackChannel posts the summary to an incoming webhook.
type SlackChannel struct {
	url    string
	client *http.Client
}

func NewSlackChannel(url string) *SlackChannel {
	return &SlackChannel{url: url, client: &http.Client{}}
}

func (c *SlackChannel) Name() string { return "slack" }

func (c *SlackChannel) Send(ctx context.Context, order models.Order) error {
	return postJSON(ctx, c.client, c.url, map[string]string{
		"text": FormatOrderText(order),
	})
}

func postJSON(ctx context.Context, client *http.Client, url string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
