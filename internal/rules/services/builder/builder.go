// Package builder orchestrates a full run: fetch every source of every
// group, classify, merge, and write the per-group rulesets plus the
// summary index. Groups are independent, so they build in parallel;
// within a group each source is fetched and classified into its own
// partial rule set and the partials are merged single-threaded.
package builder

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/cinmou/singbox-rules/internal/rules/aggregate"
	"github.com/cinmou/singbox-rules/internal/rules/common/clock"
	logpkg "github.com/cinmou/singbox-rules/internal/rules/common/log"
	"github.com/cinmou/singbox-rules/internal/rules/domain"
	"github.com/cinmou/singbox-rules/internal/rules/parsers"
	"github.com/cinmou/singbox-rules/internal/rules/repos/sources"
)

const defaultConcurrency = 4

// Options configures a Builder. Fallback may be nil to disable the
// last-good feed cache; Clock defaults to the real clock.
type Options struct {
	Fetcher     Fetcher
	Fallback    FallbackStore
	Sink        Sink
	Clock       clock.Clock
	Logger      logpkg.Logger
	Concurrency int
}

type Builder struct {
	fetcher     Fetcher
	fallback    FallbackStore
	sink        Sink
	clock       clock.Clock
	logger      logpkg.Logger
	concurrency int
}

func New(opts Options) *Builder {
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = logpkg.NewNoopLogger()
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	return &Builder{
		fetcher:     opts.Fetcher,
		fallback:    opts.Fallback,
		sink:        opts.Sink,
		clock:       opts.Clock,
		logger:      opts.Logger,
		concurrency: opts.Concurrency,
	}
}

// Run builds every group and writes the summary index. It returns the
// summary it wrote. A group whose sources all fail still produces an
// empty ruleset file; only I/O on the output side fails the run.
func (b *Builder) Run(ctx context.Context, groups []sources.Group) (domain.Summary, error) {
	summary := domain.Summary{Sets: make(map[string]domain.SetSummary, len(groups))}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for _, grp := range groups {
		g.Go(func() error {
			set, err := b.buildGroup(gctx, grp)
			if err != nil {
				return err
			}
			mu.Lock()
			summary.Sets[grp.Name] = set
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Summary{}, err
	}

	summary.GeneratedAt = b.clock.Now().Unix()
	if err := b.sink.WriteIndex(summary); err != nil {
		return domain.Summary{}, err
	}
	return summary, nil
}

// buildGroup fetches and classifies every source of one group into
// indexed partials, merges them, and writes the group's ruleset.
func (b *Builder) buildGroup(ctx context.Context, grp sources.Group) (domain.SetSummary, error) {
	partials := make([]domain.RuleSet, len(grp.URLs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i, url := range grp.URLs {
		g.Go(func() error {
			text, err := b.sourceText(gctx, url)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				b.logger.Warn(map[string]any{
					"group": grp.Name,
					"url":   url,
					"error": err.Error(),
				}, "source_skipped")
				return nil
			}
			partials[i] = parsers.ParseSource(text, url, b.logger)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.SetSummary{}, err
	}

	agg := aggregate.New()
	for _, p := range partials {
		agg.Add(p)
	}
	rs := agg.Finalize()

	path, err := b.sink.WriteRuleSet(grp.Name, rs)
	if err != nil {
		return domain.SetSummary{}, fmt.Errorf("writing ruleset for %s: %w", grp.Name, err)
	}

	b.logger.Info(map[string]any{
		"group":         grp.Name,
		"domain":        len(rs.Domains),
		"domain_suffix": len(rs.Suffixes),
		"ip_cidr":       len(rs.Networks),
	}, "ruleset_written")

	return domain.SetSummary{
		JSON:         path,
		Domain:       len(rs.Domains),
		DomainSuffix: len(rs.Suffixes),
		IPCIDR:       len(rs.Networks),
		Sources:      grp.URLs,
	}, nil
}

// sourceText fetches one feed, refreshing the fallback store on success
// and falling back to the last good copy on failure.
func (b *Builder) sourceText(ctx context.Context, url string) (string, error) {
	text, err := b.fetcher.Fetch(ctx, url)
	if err == nil {
		if b.fallback != nil {
			if perr := b.fallback.Put(url, text, b.clock.Now().Unix()); perr != nil {
				b.logger.Warn(map[string]any{"url": url, "error": perr.Error()}, "feed_cache_put_failed")
			}
		}
		return text, nil
	}
	if b.fallback != nil {
		body, fetchedAt, ok, gerr := b.fallback.Get(url)
		if gerr != nil {
			b.logger.Warn(map[string]any{"url": url, "error": gerr.Error()}, "feed_cache_get_failed")
		} else if ok {
			b.logger.Warn(map[string]any{
				"url":        url,
				"fetched_at": fetchedAt,
				"error":      err.Error(),
			}, "using_cached_feed")
			return body, nil
		}
	}
	return "", err
}
