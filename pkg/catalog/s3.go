package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rankwise/semgraph/internal/storage"
	"github.com/rankwise/semgraph/pkg/schema"
	"github.com/rankwise/semgraph/pkg/template"
)

// LoadS3 reads a catalog from the configured bucket. Types live at
// <prefix>/schema_types.json; every other .json object under the
// prefix is treated as one niche template.
func LoadS3(ctx context.Context, prefix string) (*Catalog, error) {
	client, err := storage.NewS3Client(ctx)
	if err != nil {
		return nil, err
	}
	prefix = strings.TrimSuffix(prefix, "/")

	typesRaw, err := storage.GetFile(ctx, client, prefix+"/"+schemaTypesFile)
	if err != nil {
		return nil, err
	}
	var types []schema.TypeDef
	if err := json.Unmarshal(typesRaw, &types); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", schemaTypesFile, err)
	}

	keys, err := storage.ListFilesWithPrefix(ctx, client, prefix+"/templates/")
	if err != nil {
		return nil, err
	}
	var templates []template.NicheTemplate
	for _, key := range keys {
		if !strings.HasSuffix(key, ".json") {
			continue
		}
		raw, err := storage.GetFile(ctx, client, key)
		if err != nil {
			return nil, err
		}
		var tpl template.NicheTemplate
		if err := json.Unmarshal(raw, &tpl); err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", key, err)
		}
		templates = append(templates, tpl)
	}
	if len(templates) == 0 {
		templates = template.BuiltinTemplates()
	}

	return Build(types, templates)
}
