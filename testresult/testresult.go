package testresult

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// Status ...
type Status string

// Test result statuses ...
const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
)

// TestRun is the decoded form of the GameTest result artifact.
// The aggregate counters are reported by the server and are never recomputed.
type TestRun struct {
	Unique           int      `json:"unique"`
	Passed           int      `json:"passed"`
	Failed           int      `json:"failed"`
	TotalRun         int      `json:"totalRun"`
	CurrentIteration int      `json:"current_iteration"`
	Results          []Result `json:"results"`
}

// Result is a single (test, iteration) execution.
type Result struct {
	Name      string    `json:"name"`
	Iteration int       `json:"iteration"`
	Result    Status    `json:"result"`
	StartTime Timestamp `json:"startTime"`
	EndTime   Timestamp `json:"endTime"`
	Error     *string   `json:"error,omitempty"`
}

// Duration returns the wall-clock length of the execution, or zero if a bound is missing.
func (r Result) Duration() time.Duration {
	if r.StartTime.IsZero() || r.EndTime.IsZero() {
		return 0
	}
	return r.EndTime.Sub(r.StartTime.Time)
}

// ErrorMessage ...
func (r Result) ErrorMessage() string {
	if r.Error == nil {
		return ""
	}
	return *r.Error
}

// GroupKey splits a composite test name on its first colon.
// A name without a colon is its own group with an empty test id.
func GroupKey(name string) (group, testID string) {
	group, testID, _ = strings.Cut(name, ":")
	return group, testID
}

// Timestamp accepts an RFC 3339 string, a zone-less local date time or epoch milliseconds.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON ...
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			t.Time = time.Time{}
			return nil
		}
		t.Time = parseTimestamp(s)
		return nil
	}

	var millis float64
	if err := json.Unmarshal(data, &millis); err != nil {
		return fmt.Errorf("invalid timestamp (%s): %w", data, err)
	}
	whole, frac := math.Modf(millis)
	t.Time = time.UnixMilli(int64(whole)).Add(time.Duration(frac * float64(time.Millisecond))).UTC()
	return nil
}

// timestampLayouts are tried in order. Zone-less layouts are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// parseTimestamp returns the zero time when no layout matches.
func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

// MarshalJSON ...
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}
