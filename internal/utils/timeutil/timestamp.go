// Package timeutil parses and normalizes timestamps used by posting and digest calls.
package timeutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateTime,
}

// ParseIOTimestamp parses a date or date-time string. A bare date maps to midnight UTC
// and date-times without a zone are taken as UTC.
func ParseIOTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", domain.ErrInvalidTimestamp)
	}
	if d, err := time.Parse(time.DateOnly, s); err == nil {
		return d.UTC(), nil
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: could not parse %q", domain.ErrInvalidTimestamp, s)
}

// ParseOptionalDate parses an optional query date, returning nil for an empty string.
func ParseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseIOTimestamp(s)
	if err != nil {
		return nil, err
	}
	d := domain.DateOf(t)
	return &d, nil
}

// NormalizeTimestamp rejects the zero time and converts to UTC.
func NormalizeTimestamp(t time.Time) (time.Time, error) {
	if t.IsZero() {
		return time.Time{}, fmt.Errorf("%w: timestamp is required", domain.ErrInvalidTimestamp)
	}
	return t.UTC(), nil
}
