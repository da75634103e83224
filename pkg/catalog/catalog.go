// Package catalog loads the read-only reference data the graph engine
// queries: the Schema.org type definitions and the niche templates.
// Definitions live as JSON either in a local directory or in the
// configured S3 bucket; when neither is configured the built-in
// defaults are used.
package catalog

import (
	"context"
	"fmt"

	"github.com/rankwise/semgraph/internal/util"
	"github.com/rankwise/semgraph/pkg/logger"
	"github.com/rankwise/semgraph/pkg/schema"
	"github.com/rankwise/semgraph/pkg/template"
)

type Catalog struct {
	Index     *schema.Index
	Templates []template.NicheTemplate
}

// Build validates raw definitions into a usable catalog. A broken
// hierarchy or an invalid template rejects the whole catalog version.
func Build(types []schema.TypeDef, templates []template.NicheTemplate) (*Catalog, error) {
	index, err := schema.BuildIndex(types)
	if err != nil {
		return nil, err
	}
	for _, tpl := range templates {
		if err := tpl.Validate(); err != nil {
			return nil, fmt.Errorf("template %s: %w", tpl.ID, err)
		}
	}
	return &Catalog{Index: index, Templates: templates}, nil
}

// Default builds a catalog from the compiled-in definitions.
func Default() *Catalog {
	cat, err := Build(schema.DefaultCatalog(), template.BuiltinTemplates())
	if err != nil {
		// The compiled-in definitions are covered by tests.
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return cat
}

// Template finds a niche template by id.
func (c *Catalog) Template(id string) (template.NicheTemplate, bool) {
	if tpl := template.FindTemplate(c.Templates, id); tpl != nil {
		return *tpl, true
	}
	return template.NicheTemplate{}, false
}

// Load resolves the catalog source from the environment. CATALOG_DIR
// takes precedence, then the S3 bucket, then the built-in defaults.
// Loader errors fall back to the defaults so the engine always starts.
func Load(ctx context.Context) *Catalog {
	if dir := util.GetEnv("CATALOG_DIR"); dir != "" {
		cat, err := LoadDir(dir)
		if err == nil {
			logger.Info("[Catalog] Loaded catalog from directory", "dir", dir, "types", cat.Index.Len(), "templates", len(cat.Templates))
			return cat
		}
		logger.Error("[Catalog] Failed to load catalog directory, using defaults", "dir", dir, "err", err)
	} else if util.GetEnv("AWS_BUCKET") != "" {
		cat, err := LoadS3(ctx, util.GetEnvString("CATALOG_PREFIX", "catalog"))
		if err == nil {
			logger.Info("[Catalog] Loaded catalog from S3", "types", cat.Index.Len(), "templates", len(cat.Templates))
			return cat
		}
		logger.Error("[Catalog] Failed to load catalog from S3, using defaults", "err", err)
	}
	return Default()
}
