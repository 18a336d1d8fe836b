// Package normalize turns raw API records into canonical models. The API is
// inconsistent about field names (_id vs id, Members vs members, name vs
// title); every fallback chain lives here so nothing above the stores ever
// reads a raw field name.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/yukikurage/taskboard-client/internal/models"
)

// IDKeys is the fallback chain for an entity identity.
var IDKeys = []string{"_id", "id", "ID", "Id"}

// ID returns the canonical identity of rec, or "".
func ID(rec models.Record) string {
	return String(rec, IDKeys...)
}

// String returns the first non-empty value among keys, formatted as a string.
func String(rec models.Record, keys ...string) string {
	for _, k := range keys {
		if s := toString(rec[k]); s != "" {
			return s
		}
	}
	return ""
}

// Has reports whether any of keys is present in rec.
func Has(rec models.Record, keys ...string) bool {
	for _, k := range keys {
		if _, ok := rec[k]; ok {
			return true
		}
	}
	return false
}

// Int returns the first numeric value among keys.
func Int(rec models.Record, keys ...string) (int, bool) {
	for _, k := range keys {
		switch v := rec[k].(type) {
		case float64:
			return int(math.Round(v)), true
		case int:
			return v, true
		case int64:
			return int(v), true
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// Time returns the first parseable timestamp among keys.
func Time(rec models.Record, keys ...string) (*time.Time, bool) {
	for _, k := range keys {
		s, ok := rec[k].(string)
		if !ok || s == "" {
			continue
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return &t, true
			}
		}
	}
	return nil, false
}

// Records projects a payload onto a list of records. The payload may be the
// list itself or an object holding it under one of keys. Anything else
// yields an empty, non-nil slice.
func Records(payload any, keys ...string) []models.Record {
	switch v := payload.(type) {
	case []any:
		out := make([]models.Record, 0, len(v))
		for _, item := range v {
			if rec, ok := asRecord(item); ok {
				out = append(out, rec)
			}
		}
		return out
	case []models.Record:
		return v
	case map[string]any:
		for _, k := range keys {
			if inner, ok := v[k]; ok && inner != nil {
				return Records(inner)
			}
		}
	case models.Record:
		return Records(map[string]any(v), keys...)
	}
	return []models.Record{}
}

// Unwrap returns the object stored under the first present key, or rec
// itself when none is.
func Unwrap(rec models.Record, keys ...string) models.Record {
	for _, k := range keys {
		if inner, ok := asRecord(rec[k]); ok {
			return inner
		}
	}
	return rec
}

func asRecord(v any) (models.Record, bool) {
	switch r := v.(type) {
	case map[string]any:
		return models.Record(r), true
	case models.Record:
		return r, true
	}
	return nil, false
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprint(s)
	}
}

// extras copies every key of rec not listed in known into base.
func extras(base, rec models.Record, known map[string]bool) models.Record {
	out := base.Clone()
	for k, v := range rec {
		if known[k] {
			continue
		}
		if out == nil {
			out = models.Record{}
		}
		out[k] = v
	}
	return out
}

func keySet(groups ...[]string) map[string]bool {
	out := map[string]bool{}
	for _, g := range groups {
		for _, k := range g {
			out[k] = true
		}
	}
	return out
}
