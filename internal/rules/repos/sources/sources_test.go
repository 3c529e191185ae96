package sources

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinmou/singbox-rules/internal/rules/common/log"
)

const sampleDoc = `
ads:
  - https://example.com/ads.txt
  - https://example.com/ads.yaml
direct-cn:
  - https://example.com/cn.txt
empty-group: []
not-a-list: https://example.com/oops.txt
`

func TestParse(t *testing.T) {
	groups, err := Parse([]byte(sampleDoc), log.NewNoopLogger())
	require.NoError(t, err)

	// Invalid groups skipped, remainder name-sorted.
	require.Len(t, groups, 2)
	assert.Equal(t, "ads", groups[0].Name)
	assert.Equal(t, []string{"https://example.com/ads.txt", "https://example.com/ads.yaml"}, groups[0].URLs)
	assert.Equal(t, "direct-cn", groups[1].Name)
	assert.Equal(t, []string{"https://example.com/cn.txt"}, groups[1].URLs)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("\t: broken"), log.NewNoopLogger())
	assert.Error(t, err)
}

func TestParse_NotAMapping(t *testing.T) {
	_, err := Parse([]byte("- just\n- a\n- list\n"), log.NewNoopLogger())
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "source.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

	groups, err := LoadFile(path, log.NewNoopLogger())
	require.NoError(t, err)
	assert.Len(t, groups, 2)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yml"), log.NewNoopLogger())
	assert.Error(t, err)
}

type fakeFetcher struct {
	text string
	err  error
}

func (f fakeFetcher) Fetch(context.Context, string) (string, error) {
	return f.text, f.err
}

func TestResolve_RemoteFirst(t *testing.T) {
	groups, err := Resolve(context.Background(), fakeFetcher{text: sampleDoc}, "https://example.com/source.yml", "ignored", log.NewNoopLogger())
	require.NoError(t, err)
	assert.Len(t, groups, 2)
}

func TestResolve_FallsBackToLocal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "source.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

	groups, err := Resolve(context.Background(), fakeFetcher{err: errors.New("boom")}, "https://example.com/source.yml", path, log.NewNoopLogger())
	require.NoError(t, err)
	assert.Len(t, groups, 2)
}

func TestResolve_NoRemoteConfigured(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "source.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

	groups, err := Resolve(context.Background(), fakeFetcher{err: errors.New("must not be called")}, "", path, log.NewNoopLogger())
	require.NoError(t, err)
	assert.Len(t, groups, 2)
}

func TestResolve_BothUnavailable(t *testing.T) {
	_, err := Resolve(context.Background(), fakeFetcher{err: errors.New("boom")}, "https://example.com/source.yml", filepath.Join(t.TempDir(), "nope.yml"), log.NewNoopLogger())
	assert.Error(t, err)
}
