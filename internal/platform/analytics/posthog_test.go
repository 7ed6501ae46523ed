package analytics

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WithoutKeyIsDisabled(t *testing.T) {
	c, err := New("", "https://eu.i.posthog.com", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	assert.False(t, c.IsEnabled())

	// dropped silently
	c.Enqueue("alice", "api_v1_entities", map[string]any{"status_code": 201})
	c.Close()
}

func TestNilClientIsDisabled(t *testing.T) {
	var c *Client
	assert.False(t, c.IsEnabled())
	c.Enqueue("alice", "event", nil)
	c.Close()
}
