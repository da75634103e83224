package schema

import (
	"encoding/json"
	"strings"

	"github.com/rankwise/semgraph/pkg/common"
)

const jsonldContext = "https://schema.org"

// JSONLD renders an entity's schema annotation as a JSON-LD document.
// Empty property values are dropped; values that parse as JSON objects
// or arrays are embedded as nested structures rather than strings.
// Entities without a schema type yield nil.
func JSONLD(entity common.Entity) map[string]any {
	if entity.SchemaType == "" {
		return nil
	}

	doc := map[string]any{
		"@context": jsonldContext,
		"@type":    entity.SchemaType,
	}
	for name, value := range entity.SchemaProperties {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		doc[name] = parseValue(trimmed)
	}
	return doc
}

func parseValue(value string) any {
	if !strings.HasPrefix(value, "{") && !strings.HasPrefix(value, "[") {
		return value
	}
	var nested any
	if err := json.Unmarshal([]byte(value), &nested); err != nil {
		return value
	}
	switch nested.(type) {
	case map[string]any, []any:
		return nested
	default:
		return value
	}
}
