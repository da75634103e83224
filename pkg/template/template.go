package template

import (
	"fmt"

	"github.com/rankwise/semgraph/pkg/common"
)

// EntityStub is one entity slot in a niche template. Stubs are
// addressed by their position in the template's Entities list; names
// may be blank placeholders that data questions fill in.
type EntityStub struct {
	Name        string            `json:"name"`
	Type        common.EntityType `json:"type"`
	SchemaType  string            `json:"schema_type,omitempty"`
	Description string            `json:"description,omitempty"`
}

// RelationStub is a template edge between two entity slots, by index.
type RelationStub struct {
	SubjectIndex int    `json:"subject_index"`
	ObjectIndex  int    `json:"object_index"`
	Predicate    string `json:"predicate"`
}

// ScopeQuestion is a yes/no wizard question. A "no" answer removes the
// listed entity indices (and every relation touching them) from the
// instantiated graph; unanswered questions fall back to Default.
type ScopeQuestion struct {
	Key           string `json:"key"`
	Prompt        string `json:"prompt,omitempty"`
	Default       bool   `json:"default"`
	EntityIndices []int  `json:"entity_indices"`
}

// DataQuestion is a free-text wizard question whose trimmed answer
// overwrites one field of one entity stub.
type DataQuestion struct {
	Key         string `json:"key"`
	Prompt      string `json:"prompt,omitempty"`
	EntityIndex int    `json:"entity_index"`
	Field       Field  `json:"field"`
}

// Field names an EntityStub field a data question may overwrite.
type Field string

const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldSchemaType  Field = "schema_type"
)

// NicheTemplate is a reusable graph skeleton for a business archetype.
// Templates are static reference data and must never be mutated by
// instantiation.
type NicheTemplate struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Entities       []EntityStub    `json:"entities"`
	Relations      []RelationStub  `json:"relations"`
	ScopeQuestions []ScopeQuestion `json:"scope_questions,omitempty"`
	DataQuestions  []DataQuestion  `json:"data_questions,omitempty"`
}

// Validate checks authoring-time invariants: every relation and
// question index must resolve to an entity slot. An out-of-range index
// is a template defect and fails loudly rather than being dropped.
func (t *NicheTemplate) Validate() error {
	n := len(t.Entities)
	for i, rel := range t.Relations {
		if rel.SubjectIndex < 0 || rel.SubjectIndex >= n {
			return common.NewValidationError(
				fmt.Sprintf("relations[%d].subject_index", i),
				fmt.Sprintf("index %d out of range for %d entities", rel.SubjectIndex, n),
			)
		}
		if rel.ObjectIndex < 0 || rel.ObjectIndex >= n {
			return common.NewValidationError(
				fmt.Sprintf("relations[%d].object_index", i),
				fmt.Sprintf("index %d out of range for %d entities", rel.ObjectIndex, n),
			)
		}
		if rel.Predicate == "" {
			return common.NewValidationError(
				fmt.Sprintf("relations[%d].predicate", i), "predicate is empty",
			)
		}
	}
	for i, q := range t.ScopeQuestions {
		for _, idx := range q.EntityIndices {
			if idx < 0 || idx >= n {
				return common.NewValidationError(
					fmt.Sprintf("scope_questions[%d]", i),
					fmt.Sprintf("entity index %d out of range for %d entities", idx, n),
				)
			}
		}
	}
	for i, q := range t.DataQuestions {
		if q.EntityIndex < 0 || q.EntityIndex >= n {
			return common.NewValidationError(
				fmt.Sprintf("data_questions[%d].entity_index", i),
				fmt.Sprintf("index %d out of range for %d entities", q.EntityIndex, n),
			)
		}
		switch q.Field {
		case FieldName, FieldDescription, FieldSchemaType:
		default:
			return common.NewValidationError(
				fmt.Sprintf("data_questions[%d].field", i),
				fmt.Sprintf("unknown field %q", q.Field),
			)
		}
	}
	return nil
}

// clone deep-copies the template so instantiation never touches the
// original.
func (t *NicheTemplate) clone() *NicheTemplate {
	copied := &NicheTemplate{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
	}
	copied.Entities = append([]EntityStub(nil), t.Entities...)
	copied.Relations = append([]RelationStub(nil), t.Relations...)
	copied.ScopeQuestions = make([]ScopeQuestion, len(t.ScopeQuestions))
	for i, q := range t.ScopeQuestions {
		q.EntityIndices = append([]int(nil), q.EntityIndices...)
		copied.ScopeQuestions[i] = q
	}
	copied.DataQuestions = append([]DataQuestion(nil), t.DataQuestions...)
	return copied
}
