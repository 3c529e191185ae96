package parsers

import (
	"fmt"
	"strings"

	kyaml "github.com/knadh/koanf/parsers/yaml"
)

// payloadKey is the conventional field under which Clash rule providers
// embed their entry list.
const payloadKey = "payload"

// PayloadEntries tries to interpret text as a structured rule-provider
// document: a YAML mapping whose "payload" key holds a list. On success
// it returns the list elements coerced to trimmed strings. Any parse
// failure, a non-mapping document, or a missing/non-list payload field
// means "not structured" and the caller splits the raw text by lines
// instead. Errors are never propagated.
func PayloadEntries(text string) ([]string, bool) {
	m, err := kyaml.Parser().Unmarshal([]byte(text))
	if err != nil || m == nil {
		return nil, false
	}
	raw, ok := m[payloadKey]
	if !ok {
		return nil, false
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	entries := make([]string, 0, len(list))
	for _, elem := range list {
		var s string
		switch v := elem.(type) {
		case nil:
			continue
		case string:
			s = v
		default:
			// Numbers and booleans occasionally show up in hand-written
			// payload lists; keep their textual form.
			s = fmt.Sprint(v)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		entries = append(entries, s)
	}
	return entries, true
}
