package builder

import (
	"context"

	"github.com/cinmou/singbox-rules/internal/rules/domain"
)

// Fetcher resolves a source URL to its raw text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FallbackStore holds the last good copy of each feed. The builder
// consults it when a fetch fails and refreshes it after every success.
type FallbackStore interface {
	Get(url string) (body string, fetchedAt int64, ok bool, err error)
	Put(url, body string, fetchedAt int64) error
}

// Sink persists generated artifacts. WriteRuleSet returns the path it
// wrote so the summary can reference it.
type Sink interface {
	WriteRuleSet(group string, rs domain.RuleSet) (string, error)
	WriteIndex(summary domain.Summary) error
}
