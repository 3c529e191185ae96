package fetch

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	logpkg "github.com/cinmou/singbox-rules/internal/rules/common/log"
)

// memoized caches successful fetches by URL for the lifetime of a run,
// so a feed shared by several groups is downloaded once. Failures are
// not cached; a retried URL hits the network again.
type memoized struct {
	next   Fetcher
	cache  *lru.Cache[string, string]
	logger logpkg.Logger
}

// NewMemoized wraps next with an LRU memo of the given size. A size of
// zero or less disables memoization and returns next unchanged.
func NewMemoized(next Fetcher, size int, logger logpkg.Logger) (Fetcher, error) {
	if size <= 0 {
		return next, nil
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &memoized{next: next, cache: cache, logger: logger}, nil
}

func (m *memoized) Fetch(ctx context.Context, url string) (string, error) {
	if body, ok := m.cache.Get(url); ok {
		m.logger.Debug(map[string]any{"url": url}, "fetch_memo_hit")
		return body, nil
	}
	body, err := m.next.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	m.cache.Add(url, body)
	return body, nil
}
