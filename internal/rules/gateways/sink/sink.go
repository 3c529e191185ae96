// Package sink serializes rulesets and the run summary to disk in the
// sing-box source ruleset layout: <dir>/json/<group>.json per group and
// <dir>/index.json for the whole run.
package sink

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/google/renameio/v2"

	logpkg "github.com/cinmou/singbox-rules/internal/rules/common/log"
	"github.com/cinmou/singbox-rules/internal/rules/domain"
)

// rulesetVersion is the sing-box source format version this tool emits.
const rulesetVersion = 3

// ruleEntry is one category object inside the "rules" array. Each
// category gets its own object so empty categories can be omitted
// entirely while the domain, domain_suffix, ip_cidr order is preserved.
type ruleEntry struct {
	Domain       []string `json:"domain,omitempty"`
	DomainSuffix []string `json:"domain_suffix,omitempty"`
	IPCIDR       []string `json:"ip_cidr,omitempty"`
}

type rulesetFile struct {
	Version int         `json:"version"`
	Rules   []ruleEntry `json:"rules"`
}

// JSONSink writes artifacts under a single output directory. Files are
// replaced atomically so a crashed run never leaves truncated JSON.
type JSONSink struct {
	dir    string
	logger logpkg.Logger
}

func New(dir string, logger logpkg.Logger) *JSONSink {
	return &JSONSink{dir: dir, logger: logger}
}

// WriteRuleSet writes the canonical ruleset file for group and returns
// the artifact path recorded in the summary index: relative to the
// output root's parent and slash-separated ("output/json/ads.json"), so
// the published index reads the same wherever the tree was built. An
// all-empty RuleSet still produces a file with an empty rules array.
func (s *JSONSink) WriteRuleSet(group string, rs domain.RuleSet) (string, error) {
	f := rulesetFile{Version: rulesetVersion, Rules: []ruleEntry{}}
	if len(rs.Domains) > 0 {
		f.Rules = append(f.Rules, ruleEntry{Domain: rs.Domains})
	}
	if len(rs.Suffixes) > 0 {
		f.Rules = append(f.Rules, ruleEntry{DomainSuffix: rs.Suffixes})
	}
	if len(rs.Networks) > 0 {
		f.Rules = append(f.Rules, ruleEntry{IPCIDR: rs.Networks})
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding ruleset for %s: %w", group, err)
	}

	jsonDir := filepath.Join(s.dir, "json")
	if err := os.MkdirAll(jsonDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	filePath := filepath.Join(jsonDir, group+".json")
	if err := renameio.WriteFile(filePath, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", filePath, err)
	}

	s.logger.Debug(map[string]any{"group": group, "path": filePath, "bytes": len(data)}, "ruleset_file_written")
	return path.Join(filepath.Base(s.dir), "json", group+".json"), nil
}

// WriteIndex writes the run summary to <dir>/index.json.
func (s *JSONSink) WriteIndex(summary domain.Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(s.dir, "index.json")
	if err := renameio.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
