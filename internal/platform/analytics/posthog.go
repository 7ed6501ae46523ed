// Package analytics forwards product events to PostHog when an API key is configured.
package analytics

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// Client wraps posthog.Client so callers need not care whether analytics is enabled.
// The zero value and a nil *Client drop every event.
type Client struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

// New returns a Client sending to endpoint. An empty apiKey yields a disabled client.
func New(apiKey, endpoint string, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		logger.Info("PostHog API key is empty, analytics disabled")
		return &Client{}, nil
	}
	pc, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		return nil, err
	}
	logger.Info("PostHog analytics enabled", slog.String("endpoint", endpoint))
	return &Client{posthogClient: pc, logger: logger}, nil
}

// IsEnabled reports whether events are sent anywhere.
func (c *Client) IsEnabled() bool {
	return c != nil && c.posthogClient != nil
}

// Enqueue queues one event. Delivery is asynchronous and failures are only logged.
func (c *Client) Enqueue(distinctID, event string, properties map[string]any) {
	if !c.IsEnabled() {
		return
	}
	err := c.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
	if err != nil {
		c.logger.Warn("Failed to enqueue analytics event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes queued events.
func (c *Client) Close() {
	if !c.IsEnabled() {
		return
	}
	if err := c.posthogClient.Close(); err != nil {
		c.logger.Warn("Failed to close analytics client", slog.String("error", err.Error()))
	}
}
