package template

import (
	"math"
	"strings"

	"github.com/rankwise/semgraph/pkg/common"
)

// layoutRadius is the radius of the circle bulk-generated entities are
// placed on so a fresh graph is legible without manual layout.
const layoutRadius = 320.0

// EntityDraft is an instantiated entity slot, ready for persistence
// once the caller assigns a real id.
type EntityDraft struct {
	Name        string            `json:"name"`
	Type        common.EntityType `json:"type"`
	SchemaType  string            `json:"schema_type,omitempty"`
	Description string            `json:"description,omitempty"`
	Position    common.Position   `json:"position"`
}

// Result is the output of Instantiate. Relations still reference
// entities by index into Entities; Compile resolves them to ids after
// the entities have been persisted.
type Result struct {
	Entities  []EntityDraft  `json:"entities"`
	Relations []RelationStub `json:"relations"`
}

// Instantiate applies wizard answers to a niche template and produces
// the concrete entity and relation set. The template itself is never
// mutated; two instantiations with the same answers produce identical
// results.
//
// Scope answers given as explicit "no" (or defaulting to no when
// unanswered) remove their entity indices; relations touching a removed
// entity are dropped and the surviving relations are rewritten against
// the filtered entity list, so the result never holds a dangling index.
func Instantiate(tpl *NicheTemplate, scopeAnswers map[string]bool, dataAnswers map[string]string) (*Result, error) {
	if err := tpl.Validate(); err != nil {
		return nil, err
	}
	work := tpl.clone()

	for _, q := range work.DataQuestions {
		answer, ok := dataAnswers[q.Key]
		if !ok {
			continue
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			continue
		}
		stub := &work.Entities[q.EntityIndex]
		switch q.Field {
		case FieldName:
			stub.Name = answer
		case FieldDescription:
			stub.Description = answer
		case FieldSchemaType:
			stub.SchemaType = answer
		}
	}

	removed := make(map[int]bool)
	for _, q := range work.ScopeQuestions {
		include := q.Default
		if answer, ok := scopeAnswers[q.Key]; ok {
			include = answer
		}
		if include {
			continue
		}
		for _, idx := range q.EntityIndices {
			removed[idx] = true
		}
	}

	remap := make(map[int]int, len(work.Entities))
	next := 0
	for i := range work.Entities {
		if removed[i] {
			continue
		}
		remap[i] = next
		next++
	}

	survivors := make([]EntityStub, 0, next)
	for i, stub := range work.Entities {
		if removed[i] {
			continue
		}
		survivors = append(survivors, stub)
	}

	relations := make([]RelationStub, 0, len(work.Relations))
	for _, rel := range work.Relations {
		subj, sok := remap[rel.SubjectIndex]
		obj, ook := remap[rel.ObjectIndex]
		if !sok || !ook {
			continue
		}
		relations = append(relations, RelationStub{
			SubjectIndex: subj,
			ObjectIndex:  obj,
			Predicate:    rel.Predicate,
		})
	}

	entities := make([]EntityDraft, len(survivors))
	for i, stub := range survivors {
		entities[i] = EntityDraft{
			Name:        stub.Name,
			Type:        stub.Type,
			SchemaType:  stub.SchemaType,
			Description: stub.Description,
			Position:    circlePosition(i, len(survivors)),
		}
	}

	return &Result{Entities: entities, Relations: relations}, nil
}

// Compile resolves the result's index-addressed relations against the
// ids assigned during entity persistence. ids must be parallel to
// Entities.
func (r *Result) Compile(projectID string, ids []string) ([]common.Relation, error) {
	if len(ids) != len(r.Entities) {
		return nil, common.NewValidationError("ids",
			"id count does not match instantiated entity count")
	}
	relations := make([]common.Relation, len(r.Relations))
	for i, rel := range r.Relations {
		relations[i] = common.Relation{
			ProjectID: projectID,
			SubjectID: ids[rel.SubjectIndex],
			ObjectID:  ids[rel.ObjectIndex],
			Predicate: rel.Predicate,
		}
	}
	return relations, nil
}

func circlePosition(i, n int) common.Position {
	if n == 0 {
		return common.Position{}
	}
	angle := 2 * math.Pi * float64(i) / float64(n)
	return common.Position{
		X: layoutRadius * math.Cos(angle),
		Y: layoutRadius * math.Sin(angle),
	}
}
