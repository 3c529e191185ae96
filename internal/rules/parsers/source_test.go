package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cinmou/singbox-rules/internal/rules/common/log"
)

func TestParseSource_PlainLines(t *testing.T) {
	text := `
# ad list
DOMAIN,example.com
DOMAIN-SUFFIX,ads.example.net # tracker
1.2.3.0/24
plain.example.org
DOMAIN-KEYWORD,foo
`
	rs := ParseSource(text, "test", log.NewNoopLogger())
	assert.Equal(t, []string{"example.com"}, rs.Domains)
	assert.Equal(t, []string{"ads.example.net", "plain.example.org"}, rs.Suffixes)
	assert.Equal(t, []string{"1.2.3.0/24"}, rs.Networks)
}

func TestParseSource_StructuredPayload(t *testing.T) {
	text := `payload:
  - DOMAIN,example.com
  - DOMAIN-SUFFIX,ads.example.net
  - 10.0.0.0/8
  - PROCESS-NAME,chrome.exe
`
	rs := ParseSource(text, "test", log.NewNoopLogger())
	assert.Equal(t, []string{"example.com"}, rs.Domains)
	assert.Equal(t, []string{"ads.example.net"}, rs.Suffixes)
	assert.Equal(t, []string{"10.0.0.0/8"}, rs.Networks)
}

func TestParseSource_MalformedStructuredFallsBack(t *testing.T) {
	// Broken YAML must never abort the run; the text is read line by line.
	text := "payload:\n\t- broken\nplain.example.org\n"
	rs := ParseSource(text, "test", log.NewNoopLogger())
	assert.Empty(t, rs.Domains)
	assert.Equal(t, []string{"plain.example.org"}, rs.Suffixes)
	assert.Empty(t, rs.Networks)
}

func TestParseSource_EmptyText(t *testing.T) {
	rs := ParseSource("", "test", log.NewNoopLogger())
	assert.True(t, rs.Empty())
}

func TestParseSource_DuplicatesKeptPerSource(t *testing.T) {
	// Dedup is the aggregator's job; per-source output keeps repeats.
	text := "example.com\nexample.com\n"
	rs := ParseSource(text, "test", log.NewNoopLogger())
	assert.Equal(t, []string{"example.com", "example.com"}, rs.Suffixes)
}
