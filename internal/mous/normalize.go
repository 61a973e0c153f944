package mous

import (
	"fmt"
	"strings"

	"github.com/fxelysrism/a-map-of-us-bot/internal/core/domain"
)

// Defaults for canonical record fields. Canonicalize never returns an
// empty field; absence in the payload yields one of these instead.
const (
	DefaultID       = "unknown-id"
	DefaultCategory = "mous"
	DefaultDate     = "Unknown date"
	DefaultAuthor   = "Unknown"
	DefaultText     = "*No text found.*"
)

// maxUnwrapDepth bounds the "data" descent so malformed or
// self-referential payloads cannot loop.
const maxUnwrapDepth = 6

// Candidate keys per canonical field, in priority order.
var (
	authorKeys   = []string{"username", "user", "author", "display_name", "name"}
	dateKeys     = []string{"memory_date", "memoryDate", "date"}
	createdKeys  = []string{"created_at", "createdAt"}
	categoryKeys = []string{"category", "type"}
	idKeys       = []string{"id", "ID"}
	textKeys     = []string{"text", "message", "content", "body"}
	transKeys    = []string{"text", "value", "content"}
	langKeys     = []string{"language", "lang"}
)

// Unwrap peels wrapper layers off a payload: a "data" key holding an
// object descends into it, a "data" key holding a non-empty list of
// objects descends into the first element. At most maxUnwrapDepth steps;
// anything that never resolves to an object becomes an empty map.
func Unwrap(payload any) map[string]any {
	cur := payload
	for i := 0; i < maxUnwrapDepth; i++ {
		m, ok := cur.(map[string]any)
		if !ok {
			break
		}
		next, ok := m["data"]
		if !ok {
			break
		}
		if nm, ok := next.(map[string]any); ok {
			cur = nm
			continue
		}
		if list, ok := next.([]any); ok && len(list) > 0 {
			if first, ok := list[0].(map[string]any); ok {
				cur = first
				continue
			}
		}
		break
	}
	if m, ok := cur.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// firstPresent returns the value of the first key that is present and not
// a blank string. Non-string values count as present.
func firstPresent(m map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

// stringify renders a resolved field value. The API is loose enough to
// hand back numbers where strings are expected.
func stringify(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return fmt.Sprint(v)
}

func resolve(m map[string]any, keys []string, fallback string) string {
	if v, ok := firstPresent(m, keys); ok {
		return stringify(v)
	}
	return fallback
}

// pickText resolves the body text, falling back to the translations map
// keyed by the record's language when no direct text key is present.
func pickText(m map[string]any) string {
	if v, ok := firstPresent(m, textKeys); ok {
		if s, isStr := v.(string); isStr {
			return strings.TrimSpace(s)
		}
		return stringify(v)
	}

	lang := resolve(m, langKeys, "")
	translations, _ := m["translations"].(map[string]any)
	if translations != nil && lang != "" {
		switch tv := translations[lang].(type) {
		case string:
			if strings.TrimSpace(tv) != "" {
				return strings.TrimSpace(tv)
			}
		case map[string]any:
			if v, ok := firstPresent(tv, transKeys); ok {
				if s, isStr := v.(string); isStr && strings.TrimSpace(s) != "" {
					return strings.TrimSpace(s)
				}
			}
		}
	}

	return DefaultText
}

// Canonicalize unwraps a payload and builds the canonical record,
// applying field defaults at construction.
func Canonicalize(payload any) domain.Record {
	data := Unwrap(payload)

	date := resolve(data, dateKeys, DefaultDate)
	if date == DefaultDate {
		if v, ok := firstPresent(data, createdKeys); ok {
			date = stringify(v)
		}
	}

	return domain.Record{
		ID:         resolve(data, idKeys, DefaultID),
		Category:   resolve(data, categoryKeys, DefaultCategory),
		MemoryDate: date,
		Author:     resolve(data, authorKeys, DefaultAuthor),
		Text:       pickText(data),
	}
}
