package template

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/rankwise/semgraph/pkg/common"
)

func tenEntityTemplate() *NicheTemplate {
	entities := make([]EntityStub, 10)
	for i := range entities {
		entities[i] = EntityStub{Name: string(rune('A' + i)), Type: common.EntityTypeContent}
	}
	return &NicheTemplate{
		ID:       "test",
		Name:     "Test",
		Entities: entities,
		Relations: []RelationStub{
			{SubjectIndex: 0, ObjectIndex: 1, Predicate: "offers"},
			{SubjectIndex: 1, ObjectIndex: 2, Predicate: "owns"},
			{SubjectIndex: 3, ObjectIndex: 9, Predicate: "located_in"},
			{SubjectIndex: 9, ObjectIndex: 5, Predicate: "reviews"},
			{SubjectIndex: 7, ObjectIndex: 8, Predicate: "publishes"},
		},
		ScopeQuestions: []ScopeQuestion{
			{Key: "optional_nodes", Default: true, EntityIndices: []int{6, 9}},
		},
		DataQuestions: []DataQuestion{
			{Key: "first_name", EntityIndex: 0, Field: FieldName},
		},
	}
}

func TestInstantiateScopeRemoval(t *testing.T) {
	tpl := tenEntityTemplate()

	res, err := Instantiate(tpl, map[string]bool{"optional_nodes": false}, nil)
	if err != nil {
		t.Fatalf("Instantiate() error = %v", err)
	}

	if len(res.Entities) != 8 {
		t.Fatalf("got %d entities, want 8", len(res.Entities))
	}
	// Both relations touching index 9 are dropped.
	if len(res.Relations) != 3 {
		t.Fatalf("got %d relations, want 3", len(res.Relations))
	}
	for i, rel := range res.Relations {
		if rel.SubjectIndex < 0 || rel.SubjectIndex >= len(res.Entities) {
			t.Errorf("relations[%d].SubjectIndex = %d, out of range", i, rel.SubjectIndex)
		}
		if rel.ObjectIndex < 0 || rel.ObjectIndex >= len(res.Entities) {
			t.Errorf("relations[%d].ObjectIndex = %d, out of range", i, rel.ObjectIndex)
		}
	}
	// Index 7→8 survives with both endpoints shifted down past the
	// removed index 6.
	last := res.Relations[2]
	if res.Entities[last.SubjectIndex].Name != "H" || res.Entities[last.ObjectIndex].Name != "I" {
		t.Errorf("remapped relation connects %s→%s, want H→I",
			res.Entities[last.SubjectIndex].Name, res.Entities[last.ObjectIndex].Name)
	}
}

func TestInstantiateDefaults(t *testing.T) {
	tpl := tenEntityTemplate()
	tpl.ScopeQuestions[0].Default = false

	// Unanswered question falls back to the default "no".
	res, err := Instantiate(tpl, nil, nil)
	if err != nil {
		t.Fatalf("Instantiate() error = %v", err)
	}
	if len(res.Entities) != 8 {
		t.Errorf("got %d entities, want 8", len(res.Entities))
	}

	// An explicit "yes" overrides the default.
	res, err = Instantiate(tpl, map[string]bool{"optional_nodes": true}, nil)
	if err != nil {
		t.Fatalf("Instantiate() error = %v", err)
	}
	if len(res.Entities) != 10 {
		t.Errorf("got %d entities, want 10", len(res.Entities))
	}
}

func TestInstantiateDataAnswers(t *testing.T) {
	tpl := tenEntityTemplate()

	tests := []struct {
		name    string
		answers map[string]string
		want    string
	}{
		{"answer applied trimmed", map[string]string{"first_name": "  Mario's  "}, "Mario's"},
		{"blank answer skipped", map[string]string{"first_name": "   "}, "A"},
		{"missing answer keeps stub value", nil, "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Instantiate(tpl, nil, tt.answers)
			if err != nil {
				t.Fatalf("Instantiate() error = %v", err)
			}
			if res.Entities[0].Name != tt.want {
				t.Errorf("entity[0].Name = %q, want %q", res.Entities[0].Name, tt.want)
			}
		})
	}
}

func TestInstantiateDeterministic(t *testing.T) {
	tpl := tenEntityTemplate()
	answers := map[string]bool{"optional_nodes": false}
	data := map[string]string{"first_name": "Mario's"}

	first, err := Instantiate(tpl, answers, data)
	if err != nil {
		t.Fatalf("Instantiate() error = %v", err)
	}
	second, err := Instantiate(tpl, answers, data)
	if err != nil {
		t.Fatalf("Instantiate() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two instantiations with the same answers differ")
	}

	// The template itself must be untouched.
	if tpl.Entities[0].Name != "A" {
		t.Errorf("template mutated: entity[0].Name = %q", tpl.Entities[0].Name)
	}
}

func TestInstantiateCircleLayout(t *testing.T) {
	tpl := tenEntityTemplate()
	res, err := Instantiate(tpl, nil, nil)
	if err != nil {
		t.Fatalf("Instantiate() error = %v", err)
	}

	for i, ent := range res.Entities {
		radius := math.Hypot(ent.Position.X, ent.Position.Y)
		if math.Abs(radius-layoutRadius) > 1e-9 {
			t.Errorf("entity[%d] radius = %f, want %f", i, radius, layoutRadius)
		}
	}
	// First entity sits at angle zero.
	if math.Abs(res.Entities[0].Position.Y) > 1e-9 {
		t.Errorf("entity[0].Y = %f, want 0", res.Entities[0].Position.Y)
	}
}

func TestValidateRejectsBadIndices(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*NicheTemplate)
	}{
		{"relation subject out of range", func(tpl *NicheTemplate) {
			tpl.Relations[0].SubjectIndex = 99
		}},
		{"relation object negative", func(tpl *NicheTemplate) {
			tpl.Relations[0].ObjectIndex = -1
		}},
		{"empty predicate", func(tpl *NicheTemplate) {
			tpl.Relations[0].Predicate = ""
		}},
		{"scope question index out of range", func(tpl *NicheTemplate) {
			tpl.ScopeQuestions[0].EntityIndices = []int{42}
		}},
		{"data question index out of range", func(tpl *NicheTemplate) {
			tpl.DataQuestions[0].EntityIndex = 10
		}},
		{"data question unknown field", func(tpl *NicheTemplate) {
			tpl.DataQuestions[0].Field = "color"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := tenEntityTemplate()
			tt.mutate(tpl)
			_, err := Instantiate(tpl, nil, nil)
			var verr *common.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Instantiate() error = %v, want ValidationError", err)
			}
		})
	}
}

func TestCompile(t *testing.T) {
	tpl := tenEntityTemplate()
	res, err := Instantiate(tpl, nil, nil)
	if err != nil {
		t.Fatalf("Instantiate() error = %v", err)
	}

	ids := make([]string, len(res.Entities))
	for i := range ids {
		ids[i] = string(rune('a' + i))
	}

	relations, err := res.Compile("proj1", ids)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if len(relations) != len(res.Relations) {
		t.Fatalf("got %d relations, want %d", len(relations), len(res.Relations))
	}
	if relations[0].SubjectID != "a" || relations[0].ObjectID != "b" || relations[0].Predicate != "offers" {
		t.Errorf("relations[0] = %+v, want a→offers→b", relations[0])
	}

	if _, err := res.Compile("proj1", ids[:2]); err == nil {
		t.Error("Compile() accepted a short id list")
	}
}

func TestBuiltinTemplatesValid(t *testing.T) {
	for _, tpl := range BuiltinTemplates() {
		t.Run(tpl.ID, func(t *testing.T) {
			if err := tpl.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}

	if FindTemplate(BuiltinTemplates(), "restaurant") == nil {
		t.Error("FindTemplate(restaurant) = nil")
	}
	if FindTemplate(BuiltinTemplates(), "nope") != nil {
		t.Error("FindTemplate(nope) should be nil")
	}
}
