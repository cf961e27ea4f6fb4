package metadata

import (
	"strings"

	"github.com/vvka-141/pgfix/pkg/pgfix"
)

// Values extracts item.Values, trimmed, with blank entries dropped.
// Declaration order is preserved.
var Values pgfix.ValueExtractor = pgfix.ValueExtractorFunc(func(item pgfix.MetadataItem) []string {
	return compact(item.Values)
})

// AttributeList extracts a comma-separated list stored under an attribute
// key, for annotations whose file names live in a named member rather
// than in the default value.
func AttributeList(key string) pgfix.ValueExtractor {
	return pgfix.ValueExtractorFunc(func(item pgfix.MetadataItem) []string {
		raw, ok := item.Attributes[key]
		if !ok {
			return nil
		}
		return compact(strings.Split(raw, ","))
	})
}

func compact(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
