package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rankwise/semgraph/pkg/common"
	"github.com/rankwise/semgraph/pkg/schema"
	"github.com/rankwise/semgraph/pkg/template"
)

func TestDefaultCatalog(t *testing.T) {
	cat := Default()
	if cat.Index.Find("Thing") == nil {
		t.Error("default catalog missing the Thing root")
	}
	if len(cat.Templates) == 0 {
		t.Error("default catalog has no templates")
	}
	if _, ok := cat.Template(cat.Templates[0].ID); !ok {
		t.Error("Template lookup by id failed")
	}
	if _, ok := cat.Template("niche_missing"); ok {
		t.Error("Template lookup for unknown id should fail")
	}
}

func TestBuildRejectsBrokenHierarchy(t *testing.T) {
	_, err := Build([]schema.TypeDef{
		{Name: "Thing"},
		{Name: "Orphan", Parent: "Ghost"},
	}, nil)
	var integrityErr *common.HierarchyIntegrityError
	if !errors.As(err, &integrityErr) {
		t.Fatalf("expected HierarchyIntegrityError, got %v", err)
	}
}

func TestBuildRejectsInvalidTemplate(t *testing.T) {
	_, err := Build(schema.DefaultCatalog(), []template.NicheTemplate{
		{
			ID:       "niche_broken",
			Name:     "Broken",
			Entities: []template.EntityStub{{Name: "A", Type: common.EntityTypeBusiness}},
			Relations: []template.RelationStub{
				{SubjectIndex: 0, ObjectIndex: 5, Predicate: "offers"},
			},
		},
	})
	var validationErr *common.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	types := `[
		{"name": "Thing", "properties": [{"name": "name", "required": true}]},
		{"name": "Organization", "parent": "Thing"}
	]`
	if err := os.WriteFile(filepath.Join(dir, "schema_types.json"), []byte(types), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if cat.Index.Len() != 2 {
		t.Errorf("expected 2 types, got %d", cat.Index.Len())
	}
	// No templates file present, so the built-ins are used.
	if len(cat.Templates) != len(template.BuiltinTemplates()) {
		t.Errorf("expected builtin templates as fallback, got %d", len(cat.Templates))
	}
}

func TestLoadDirMissingTypes(t *testing.T) {
	if _, err := LoadDir(t.TempDir()); err == nil {
		t.Fatal("expected error for a directory without schema_types.json")
	}
}
