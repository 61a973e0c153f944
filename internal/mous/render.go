package mous

import "github.com/fxelysrism/a-map-of-us-bot/internal/core/domain"

const (
	// maxBodyChars is the Discord embed description ceiling.
	maxBodyChars = 4096

	// ViewBaseURL deep-links a memory on the public map.
	ViewBaseURL = "https://amapof.us/map?mou="
)

// Render maps a canonical record onto a display document. Pure; the
// record's defaults guarantee every output field except Link.
func Render(r domain.Record) domain.Document {
	doc := domain.Document{
		Title:      r.Category + " • " + r.MemoryDate,
		Body:       truncate(r.Text, maxBodyChars),
		AuthorLine: r.Author,
		Footer:     "ID: " + r.ID,
	}
	if r.ID != DefaultID {
		doc.Link = ViewBaseURL + r.ID
	}
	return doc
}

// truncate hard-cuts s to at most n characters. No ellipsis: the ceiling
// is a platform limit, not a presentation choice.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
