package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rankwise/semgraph/pkg/schema"
	"github.com/rankwise/semgraph/pkg/template"
)

const (
	schemaTypesFile = "schema_types.json"
	templatesFile   = "templates.json"
)

// LoadDir reads a catalog from a local directory holding
// schema_types.json and templates.json. A missing templates file is
// tolerated; a missing type file is not, since the hierarchy is the
// backbone of the catalog.
func LoadDir(dir string) (*Catalog, error) {
	typesRaw, err := os.ReadFile(filepath.Join(dir, schemaTypesFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", schemaTypesFile, err)
	}
	var types []schema.TypeDef
	if err := json.Unmarshal(typesRaw, &types); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", schemaTypesFile, err)
	}

	templates := template.BuiltinTemplates()
	templatesRaw, err := os.ReadFile(filepath.Join(dir, templatesFile))
	if err == nil {
		templates = nil
		if err := json.Unmarshal(templatesRaw, &templates); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", templatesFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", templatesFile, err)
	}

	return Build(types, templates)
}
