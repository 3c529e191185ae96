package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayloadEntries_RuleProviderDocument(t *testing.T) {
	text := `
payload:
  - DOMAIN-SUFFIX,ads.example.net
  - "  example.com  "
  - 1.2.3.0/24
  - 80
  - ""
`
	entries, ok := PayloadEntries(text)
	assert.True(t, ok)
	assert.Equal(t, []string{"DOMAIN-SUFFIX,ads.example.net", "example.com", "1.2.3.0/24", "80"}, entries)
}

func TestPayloadEntries_EmptyPayloadList(t *testing.T) {
	entries, ok := PayloadEntries("payload: []\n")
	assert.True(t, ok)
	assert.Empty(t, entries)
}

func TestPayloadEntries_NotStructured(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"plain list", "example.com\nfoo.example.org\n"},
		{"rule lines", "DOMAIN,example.com\nDOMAIN-SUFFIX,ads.example.net\n"},
		{"mapping without payload", "rules:\n  - example.com\n"},
		{"payload not a list", "payload: example.com\n"},
		{"payload null", "payload:\n"},
		{"malformed yaml", "payload:\n  - a\n -b\n\t:::\n"},
		{"empty text", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entries, ok := PayloadEntries(tc.in)
			assert.False(t, ok, "expected fallback to line-oriented parsing")
			assert.Nil(t, entries)
		})
	}
}
