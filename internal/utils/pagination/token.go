package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// Cursor is the position after the last journal entry of a page. Entries are listed by
// timestamp descending, then id descending.
type Cursor struct {
	Timestamp      time.Time
	JournalEntryID string
}

// EncodeToken creates a base64 encoded token from a journal entry timestamp and id.
func EncodeToken(timestamp time.Time, journalEntryID string) string {
	tokenStr := fmt.Sprintf("%s|%s", timestamp.UTC().Format(timeFormat), journalEntryID)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into a Cursor. An empty token
// yields a nil cursor (first page).
func DecodeToken(token string) (*Cursor, error) {
	if token == "" {
		return nil, nil
	}
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return nil, fmt.Errorf("invalid pagination token format (split)")
	}

	ts, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (timestamp parse): %w", err)
	}
	return &Cursor{Timestamp: ts, JournalEntryID: parts[1]}, nil
}

// Before reports whether an entry sorts after the cursor in descending order, i.e.
// belongs to the next page.
func (c *Cursor) Before(timestamp time.Time, journalEntryID string) bool {
	if c == nil {
		return true
	}
	if !timestamp.Equal(c.Timestamp) {
		return timestamp.Before(c.Timestamp)
	}
	return journalEntryID < c.JournalEntryID
}
