package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Layouts PostgREST and the portal forms are known to emit. RFC3339 covers
// timestamptz columns; the rest show up from plain timestamp columns and
// hand-entered dates.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Timestamp is a leniently decoded point in time. A value that is missing or
// cannot be parsed decodes to an invalid Timestamp instead of failing the
// whole row; Raw keeps the unparseable text so a present-but-broken value can
// be told apart from an absent one.
type Timestamp struct {
	Time  time.Time
	Valid bool
	Raw   string
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t, Valid: true}
}

func ParseTimestamp(s string) Timestamp {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t, Valid: true}
		}
	}
	return Timestamp{Raw: s}
}

// IsSet reports whether a value was supplied at all, parseable or not.
func (ts Timestamp) IsSet() bool {
	return ts.Valid || ts.Raw != ""
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*ts = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// numbers, objects and the like are unparseable, not fatal
		*ts = Timestamp{Raw: string(data)}
		return nil
	}
	*ts = ParseTimestamp(s)
	return nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if !ts.Valid {
		if ts.Raw != "" {
			return json.Marshal(ts.Raw)
		}
		return []byte("null"), nil
	}
	return json.Marshal(ts.Time.UTC().Format(time.RFC3339Nano))
}

// Compare orders valid timestamps chronologically. Invalid timestamps are
// equal to each other and older than every valid one, so a newest-first
// ordering puts them last.
func (ts Timestamp) Compare(other Timestamp) int {
	switch {
	case !ts.Valid && !other.Valid:
		return 0
	case !ts.Valid:
		return -1
	case !other.Valid:
		return 1
	}
	return ts.Time.Compare(other.Time)
}
