// Package sources loads the group configuration: a YAML mapping of group
// name to the ordered list of feed URLs that build it.
package sources

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	logpkg "github.com/cinmou/singbox-rules/internal/rules/common/log"
)

// Group names one ruleset and the feeds whose combined output forms it.
type Group struct {
	Name string
	URLs []string
}

// Fetcher is the subset of the HTTP gateway needed to pull the remote
// sources document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Resolve loads the group configuration, preferring the remote document
// and falling back to the local file when the fetch fails. url may be
// empty to skip the remote attempt entirely.
func Resolve(ctx context.Context, fetcher Fetcher, url, path string, logger logpkg.Logger) ([]Group, error) {
	if url != "" {
		text, err := fetcher.Fetch(ctx, url)
		if err == nil {
			groups, perr := Parse([]byte(text), logger)
			if perr == nil {
				logger.Info(map[string]any{"url": url, "groups": len(groups)}, "sources_loaded_remote")
				return groups, nil
			}
			err = perr
		}
		logger.Warn(map[string]any{"url": url, "fallback": path, "error": err.Error()}, "remote_sources_unavailable")
	}

	groups, err := LoadFile(path, logger)
	if err != nil {
		return nil, err
	}
	logger.Info(map[string]any{"path": path, "groups": len(groups)}, "sources_loaded_local")
	return groups, nil
}

// LoadFile reads and parses a sources document from disk.
func LoadFile(path string, logger logpkg.Logger) ([]Group, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load sources file %s: %w", path, err)
	}
	return groupsFromRaw(k.Raw(), logger)
}

// Parse parses a sources document held in memory.
func Parse(raw []byte, logger logpkg.Logger) ([]Group, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(raw), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("invalid sources document: %w", err)
	}
	return groupsFromRaw(k.Raw(), logger)
}

// groupsFromRaw walks the top-level mapping. Keys whose value is not a
// non-empty list are skipped, not treated as errors. Groups come back
// name-sorted so the run order is deterministic.
func groupsFromRaw(raw map[string]any, logger logpkg.Logger) ([]Group, error) {
	groups := make([]Group, 0, len(raw))
	for name, val := range raw {
		urls := urlValues(val)
		if len(urls) == 0 {
			logger.Warn(map[string]any{"group": name}, "skip_invalid_group")
			continue
		}
		groups = append(groups, Group{Name: name, URLs: urls})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups, nil
}

// urlValues coerces a raw koanf-parsed value into a slice of non-empty
// strings. Non-list values and empty elements yield nil, which the
// caller treats as "skip this group".
func urlValues(val any) []string {
	list, ok := val.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, elem := range list {
		var s string
		switch v := elem.(type) {
		case nil:
			continue
		case string:
			s = v
		default:
			s = fmt.Sprint(v)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
