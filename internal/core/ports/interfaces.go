package ports

import (
	"context"

	"github.com/fxelysrism/a-map-of-us-bot/internal/core/domain"
)

// Source fetches memory payloads from the upstream API. Payloads are
// returned as decoded JSON (any); the normalizer owns shape handling.
type Source interface {
	// Random resolves a full random record, following the id-only
	// indirection of the random endpoint when necessary.
	Random(ctx context.Context) (any, error)
	// ByID fetches the record with the given id.
	ByID(ctx context.Context, id string) (any, error)
	// RandomRaw fetches the random endpoint without resolution.
	RandomRaw(ctx context.Context) (any, error)
}

// Storage persists the daily-post marker: the most recent calendar date
// (ISO, in the configured zone) on which the automated post succeeded.
// An empty date means no post has ever been recorded.
type Storage interface {
	LastPostDate(ctx context.Context) (string, error)
	SetLastPostDate(ctx context.Context, date string) error
}

// Publisher delivers a rendered document to the daily-post destination.
type Publisher interface {
	Publish(ctx context.Context, doc domain.Document) error
}
