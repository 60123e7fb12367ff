// Package normalize canonicalizes order and cart payloads that arrive
// in any of the legacy backend shapes. Field names are resolved through
// alias tables; numeric fields are coerced with a zero default; records
// without a usable identifier are logged and dropped, never surfaced as
// errors.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// firstString resolves the first alias present with a non-empty string
// or stringable value.
func firstString(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			if s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64)
		case int:
			return strconv.Itoa(s)
		case bool:
			return strconv.FormatBool(s)
		}
	}
	return ""
}

// firstNumber resolves the first alias that coerces to a number.
// Missing and malformed values yield 0 rather than an error.
func firstNumber(m map[string]interface{}, keys ...string) float64 {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		case string:
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return parsed
			}
		}
	}
	return 0
}

// firstInt is firstNumber truncated, with a caller-supplied default for
// the all-missing case (quantities default to 1, not 0).
func firstInt(m map[string]interface{}, def int, keys ...string) int {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		case string:
			if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
				return parsed
			}
		}
	}
	return def
}

// childObject returns the first alias holding a JSON object.
func childObject(m map[string]interface{}, keys ...string) map[string]interface{} {
	for _, k := range keys {
		if obj, ok := m[k].(map[string]interface{}); ok {
			return obj
		}
	}
	return nil
}

// childList returns the first alias holding a list of JSON objects.
func childList(m map[string]interface{}, keys ...string) []map[string]interface{} {
	for _, k := range keys {
		raw, ok := m[k].([]interface{})
		if !ok {
			continue
		}
		items := make([]map[string]interface{}, 0, len(raw))
		for _, entry := range raw {
			if obj, ok := entry.(map[string]interface{}); ok {
				items = append(items, obj)
			}
		}
		return items
	}
	return nil
}

// firstTime resolves the first alias that parses as a timestamp.
// Accepts RFC3339 with or without fractional seconds and plain dates.
func firstTime(m map[string]interface{}, keys ...string) time.Time {
	layouts := []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}
	for _, k := range keys {
		raw, ok := m[k].(string)
		if !ok || raw == "" {
			continue
		}
		for _, layout := range layouts {
			if ts, err := time.Parse(layout, raw); err == nil {
				return ts
			}
		}
	}
	return time.Time{}
}

// resolveImage resolves an image reference lacking a scheme against the
// configured media base. Absolute references pass through unchanged.
func resolveImage(base, ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if base == "" {
		return ref
	}
	return fmt.Sprintf("%s/%s", strings.TrimRight(base, "/"), strings.TrimLeft(ref, "/"))
}
