// Package store holds the alarm list: validation, normalization, the CSV
// persistence format, and the non-volatile key/value backend.
package store

import (
	"sort"
	"strings"
)

// Persistence location in the key/value backend.
const (
	Namespace = "alarms"
	Key       = "alarm_csv"
)

// MaxAlarms bounds the stored alarm list.
const MaxAlarms = 20

// Store persists the alarm list.
type Store interface {
	// Load returns the persisted alarms. Invalid tokens are silently
	// dropped; at most MaxAlarms entries are returned. An absent key
	// yields an empty list.
	Load() ([]string, error)

	// Save normalizes the list (valid only, sorted, deduped, truncated to
	// MaxAlarms) and writes it as CSV. An empty normalized list removes
	// the key entirely.
	Save(alarms []string) error

	// Clear removes the persisted key. Idempotent.
	Clear() error

	// Close releases backend resources.
	Close() error
}

// Valid reports whether s is a well-formed HH:MM alarm: exactly 5 bytes,
// ':' at index 2, hour < 24, minute < 60, zero-padded digits.
func Valid(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	h, ok := twoDigits(s[0], s[1])
	if !ok || h > 23 {
		return false
	}
	m, ok := twoDigits(s[3], s[4])
	if !ok || m > 59 {
		return false
	}
	return true
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// Normalize filters out invalid tokens, sorts ascending, removes duplicates,
// and truncates to MaxAlarms. Lexicographic order coincides with
// chronological order because of the fixed-width zero-padded encoding.
func Normalize(alarms []string) []string {
	out := make([]string, 0, len(alarms))
	for _, a := range alarms {
		if Valid(a) {
			out = append(out, a)
		}
	}
	sort.Strings(out)

	dedup := out[:0]
	for i, a := range out {
		if i == 0 || a != out[i-1] {
			dedup = append(dedup, a)
		}
	}
	if len(dedup) > MaxAlarms {
		dedup = dedup[:MaxAlarms]
	}
	return dedup
}

// EncodeCSV joins alarms with commas, no trailing comma.
func EncodeCSV(alarms []string) string {
	return strings.Join(alarms, ",")
}

// ParseCSV splits a persisted blob into alarms, tolerating garbage: tokens
// are trimmed, invalid ones discarded, and at most MaxAlarms valid entries
// are kept, in the order they appear. The next save repairs a malformed or
// unsorted blob.
func ParseCSV(csv string) []string {
	if csv == "" {
		return nil
	}
	var out []string
	for _, tok := range strings.Split(csv, ",") {
		tok = strings.TrimSpace(tok)
		if Valid(tok) {
			out = append(out, tok)
			if len(out) >= MaxAlarms {
				break
			}
		}
	}
	return out
}
