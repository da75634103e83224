package graph

import (
	"testing"

	"github.com/rankwise/semgraph/pkg/common"
	"github.com/rankwise/semgraph/pkg/schema"
)

func kindsByEntity(recs []Recommendation, entityID string) map[RecommendationKind]bool {
	kinds := make(map[RecommendationKind]bool)
	for _, rec := range recs {
		if rec.EntityID == entityID {
			kinds[rec.Kind] = true
		}
	}
	return kinds
}

func countKind(recs []Recommendation, kind RecommendationKind) int {
	n := 0
	for _, rec := range recs {
		if rec.Kind == kind {
			n++
		}
	}
	return n
}

func testIndex(t *testing.T) *schema.Index {
	t.Helper()
	index, err := schema.BuildIndex(schema.DefaultCatalog())
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	return index
}

func TestRecommendRuleGuarantees(t *testing.T) {
	g := common.Graph{
		ProjectID: "proj_test",
		Entities: []common.Entity{
			{ID: "ent_a", Name: "Lonely", Type: common.EntityTypeBusiness},
			{ID: "ent_b", Name: "Typed", Type: common.EntityTypeProduct, SchemaType: "Product", Description: "a widget"},
			{ID: "ent_c", Name: "Shop", Type: common.EntityTypeBusiness, SchemaType: "LocalBusiness", Description: "the shop"},
		},
		Relations: []common.Relation{
			{ID: "rel_1", SubjectID: "ent_c", ObjectID: "ent_b", Predicate: "offers"},
		},
	}

	recs := Recommend(g, testIndex(t))

	lonely := kindsByEntity(recs, "ent_a")
	if !lonely[KindDisconnected] || !lonely[KindMissingSchema] || !lonely[KindMissingDescription] {
		t.Errorf("expected disconnected, missing_schema, missing_description for ent_a, got %v", lonely)
	}

	// A connected, typed entity never triggers those two rules.
	typed := kindsByEntity(recs, "ent_b")
	if typed[KindDisconnected] {
		t.Error("disconnected emitted for an entity with a relation")
	}
	if typed[KindMissingSchema] {
		t.Error("missing_schema emitted for an entity with a schema type")
	}
	if !typed[KindLowRelations] {
		t.Error("expected low_relations for an entity with exactly one relation")
	}
}

func TestRecommendPriorityOrdering(t *testing.T) {
	g := common.Graph{
		Entities: []common.Entity{
			{ID: "ent_a", Name: "A", Type: common.EntityTypeBusiness},
			{ID: "ent_b", Name: "B", Type: common.EntityTypeProduct},
		},
		Relations: []common.Relation{
			{ID: "rel_1", SubjectID: "ent_a", ObjectID: "ent_b", Predicate: "offers"},
		},
	}

	recs := Recommend(g, testIndex(t))
	if len(recs) == 0 {
		t.Fatal("expected recommendations")
	}
	lastRank := -1
	for _, rec := range recs {
		rank, ok := priorityRank[rec.Priority]
		if !ok {
			t.Fatalf("unknown priority %q", rec.Priority)
		}
		if rank < lastRank {
			t.Fatalf("priority order violated: %s after rank %d", rec.Priority, lastRank)
		}
		lastRank = rank
	}
}

func TestSuggestedEntityEmittedOncePerMissingType(t *testing.T) {
	g := common.Graph{
		Entities: []common.Entity{
			{ID: "ent_a", Name: "Shop A", Type: common.EntityTypeBusiness, SchemaType: "LocalBusiness", Description: "x"},
			{ID: "ent_b", Name: "Shop B", Type: common.EntityTypeBusiness, SchemaType: "LocalBusiness", Description: "y"},
		},
	}

	recs := Recommend(g, testIndex(t))

	// Both businesses suggest the same missing companions; each missing
	// type appears once.
	seen := make(map[string]int)
	for _, rec := range recs {
		if rec.Kind == KindSuggestedEntity {
			seen[rec.Action]++
		}
	}
	for action, n := range seen {
		if n > 1 {
			t.Errorf("companion suggestion emitted %d times: %s", n, action)
		}
	}
	if len(seen) == 0 {
		t.Error("expected companion suggestions for a business-only graph")
	}
}

func TestSuggestedRelation(t *testing.T) {
	base := []common.Entity{
		{ID: "ent_a", Name: "Shop", Type: common.EntityTypeBusiness, SchemaType: "LocalBusiness", Description: "x"},
		{ID: "ent_b", Name: "Widget", Type: common.EntityTypeProduct, SchemaType: "Product", Description: "y"},
	}

	tests := []struct {
		name      string
		relations []common.Relation
		want      bool
	}{
		{"both types, no offers relation", nil, true},
		{"offers relation present", []common.Relation{
			{ID: "rel_1", SubjectID: "ent_a", ObjectID: "ent_b", Predicate: "offers"},
		}, false},
		{"same pair, different predicate", []common.Relation{
			{ID: "rel_1", SubjectID: "ent_a", ObjectID: "ent_b", Predicate: "made_by"},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := Recommend(common.Graph{Entities: base, Relations: tt.relations}, testIndex(t))
			found := false
			for _, rec := range recs {
				if rec.Kind == KindSuggestedRelation && rec.Action == `Create a "offers" relation from a business to a product` {
					found = true
				}
			}
			if found != tt.want {
				t.Errorf("offers suggestion present = %v, want %v", found, tt.want)
			}
		})
	}
}

func TestSelfReferenceRecommendation(t *testing.T) {
	g := common.Graph{
		Entities: []common.Entity{
			{ID: "ent_a", Name: "Ouroboros", Type: common.EntityTypeContent, SchemaType: "Article", Description: "x"},
		},
		Relations: []common.Relation{
			{ID: "rel_1", SubjectID: "ent_a", ObjectID: "ent_a", Predicate: "references"},
		},
	}

	recs := Recommend(g, testIndex(t))
	if countKind(recs, KindSelfReference) != 1 {
		t.Errorf("expected one self_reference recommendation, got %d", countKind(recs, KindSelfReference))
	}
	if countKind(recs, KindDisconnected) != 0 {
		t.Error("self-loop entity must not be reported as disconnected")
	}
}
