package graph

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rankwise/semgraph/pkg/common"
	"github.com/rankwise/semgraph/pkg/notify"
	"github.com/rankwise/semgraph/pkg/schema"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var priorityRank = map[Priority]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

type RecommendationKind string

const (
	KindMissingSchema      RecommendationKind = "missing_schema"
	KindDisconnected       RecommendationKind = "disconnected"
	KindMissingDescription RecommendationKind = "missing_description"
	KindLowRelations       RecommendationKind = "low_relations"
	KindSuggestedEntity    RecommendationKind = "suggested_entity"
	KindSuggestedRelation  RecommendationKind = "suggested_relation"
	KindSelfReference      RecommendationKind = "self_reference"
)

// Recommendation is one actionable suggestion derived from the graph.
// Tab names a semantic tab the host UI should switch to when the user
// picks up the action.
type Recommendation struct {
	Kind     RecommendationKind `json:"kind"`
	Priority Priority           `json:"priority"`
	EntityID string             `json:"entity_id,omitempty"`
	Title    string             `json:"title"`
	Action   string             `json:"action"`
	Tab      string             `json:"tab,omitempty"`
}

const (
	tabGraph  = "graph"
	tabSchema = "schema"
)

// companionSuggestions maps a present entity type to companion types a
// well-formed graph of that kind usually has.
var companionSuggestions = map[common.EntityType][]common.EntityType{
	common.EntityTypeBusiness: {
		common.EntityTypeProduct,
		common.EntityTypeService,
		common.EntityTypePlace,
		common.EntityTypeWebsite,
	},
	common.EntityTypeProduct: {common.EntityTypeReview},
	common.EntityTypeService: {common.EntityTypeReview},
	common.EntityTypeWebsite: {common.EntityTypeContent},
	common.EntityTypePerson:  {common.EntityTypeBusiness},
}

type relationSuggestion struct {
	SubjectType common.EntityType
	ObjectType  common.EntityType
	Predicate   string
}

var relationSuggestions = []relationSuggestion{
	{common.EntityTypeBusiness, common.EntityTypeProduct, "offers"},
	{common.EntityTypeBusiness, common.EntityTypeService, "offers"},
	{common.EntityTypeBusiness, common.EntityTypePlace, "located_in"},
	{common.EntityTypePerson, common.EntityTypeBusiness, "owns"},
	{common.EntityTypeWebsite, common.EntityTypeBusiness, "about"},
	{common.EntityTypeReview, common.EntityTypeProduct, "reviews"},
	{common.EntityTypeListingProfile, common.EntityTypeBusiness, "lists"},
}

// Recommend derives prioritized suggestions from a snapshot. Rules are
// evaluated independently, so one entity may produce several entries.
// The result is ordered high before medium before low, keeping
// discovery order within each tier.
func Recommend(g common.Graph, index *schema.Index) []Recommendation {
	metrics := Analyze(g)
	var recs []Recommendation

	for _, entity := range g.Entities {
		if !metrics.Connected(entity.ID) {
			recs = append(recs, Recommendation{
				Kind:     KindDisconnected,
				Priority: PriorityHigh,
				EntityID: entity.ID,
				Title:    fmt.Sprintf("%q is not connected to anything", entity.Name),
				Action:   "Drag a connection from this entity to another one",
				Tab:      tabGraph,
			})
		}
	}

	for _, entity := range g.Entities {
		if strings.TrimSpace(entity.SchemaType) == "" {
			recs = append(recs, Recommendation{
				Kind:     KindMissingSchema,
				Priority: PriorityHigh,
				EntityID: entity.ID,
				Title:    fmt.Sprintf("%q has no schema.org type", entity.Name),
				Action:   "Assign a schema.org type so search engines can interpret this entity",
				Tab:      tabSchema,
			})
		} else if index != nil && index.Find(entity.SchemaType) == nil {
			recs = append(recs, Recommendation{
				Kind:     KindMissingSchema,
				Priority: PriorityHigh,
				EntityID: entity.ID,
				Title:    fmt.Sprintf("%q uses the unknown schema type %q", entity.Name, entity.SchemaType),
				Action:   "Pick a type from the schema catalog",
				Tab:      tabSchema,
			})
		}
	}

	for _, entity := range g.Entities {
		if strings.TrimSpace(entity.Description) == "" {
			recs = append(recs, Recommendation{
				Kind:     KindMissingDescription,
				Priority: PriorityMedium,
				EntityID: entity.ID,
				Title:    fmt.Sprintf("%q has no description", entity.Name),
				Action:   "Add a short description of what this entity is",
			})
		}
	}

	for _, entity := range g.Entities {
		if metrics.Connected(entity.ID) && metrics.RelationCountByEntity[entity.ID] == 1 {
			recs = append(recs, Recommendation{
				Kind:     KindLowRelations,
				Priority: PriorityLow,
				EntityID: entity.ID,
				Title:    fmt.Sprintf("%q has only one connection", entity.Name),
				Action:   "Connect this entity to more of the graph",
				Tab:      tabGraph,
			})
		}
	}

	for _, relation := range g.Relations {
		if !relation.SelfLoop() {
			continue
		}
		name := relation.SubjectID
		if entity, ok := findEntity(g, relation.SubjectID); ok {
			name = entity.Name
		}
		recs = append(recs, Recommendation{
			Kind:     KindSelfReference,
			Priority: PriorityLow,
			EntityID: relation.SubjectID,
			Title:    fmt.Sprintf("%q is connected to itself via %q", name, relation.Predicate),
			Action:   "Check whether this self-reference is intentional",
			Tab:      tabGraph,
		})
	}

	recs = append(recs, suggestEntities(g, metrics)...)
	recs = append(recs, suggestRelations(g)...)

	sort.SliceStable(recs, func(i, j int) bool {
		return priorityRank[recs[i].Priority] < priorityRank[recs[j].Priority]
	})
	return recs
}

func findEntity(g common.Graph, id string) (common.Entity, bool) {
	for _, entity := range g.Entities {
		if entity.ID == id {
			return entity, true
		}
	}
	return common.Entity{}, false
}

// suggestEntities emits one suggestion per companion type missing from
// the graph, no matter how many present entities would suggest it.
func suggestEntities(g common.Graph, metrics Metrics) []Recommendation {
	var recs []Recommendation
	suggested := make(map[common.EntityType]bool)

	for _, entity := range g.Entities {
		for _, companion := range companionSuggestions[entity.Type] {
			if metrics.TypeDistribution[companion] > 0 || suggested[companion] {
				continue
			}
			suggested[companion] = true
			recs = append(recs, Recommendation{
				Kind:     KindSuggestedEntity,
				Priority: PriorityMedium,
				Title:    fmt.Sprintf("Your graph has a %s but no %s entity", entity.Type, companion),
				Action:   fmt.Sprintf("Add a %s entity to strengthen the graph", companion),
				Tab:      tabGraph,
			})
		}
	}
	return recs
}

// suggestRelations emits a suggestion for every vocabulary triple whose
// entity types both exist but which no relation with that predicate
// connects yet.
func suggestRelations(g common.Graph) []Recommendation {
	typesByID := make(map[string]common.EntityType, len(g.Entities))
	present := make(map[common.EntityType]bool)
	for _, entity := range g.Entities {
		typesByID[entity.ID] = entity.Type
		present[entity.Type] = true
	}

	existing := make(map[relationSuggestion]bool)
	for _, relation := range g.Relations {
		existing[relationSuggestion{
			SubjectType: typesByID[relation.SubjectID],
			ObjectType:  typesByID[relation.ObjectID],
			Predicate:   relation.Predicate,
		}] = true
	}

	var recs []Recommendation
	for _, suggestion := range relationSuggestions {
		if !present[suggestion.SubjectType] || !present[suggestion.ObjectType] {
			continue
		}
		if existing[suggestion] {
			continue
		}
		recs = append(recs, Recommendation{
			Kind:     KindSuggestedRelation,
			Priority: PriorityLow,
			Title:    fmt.Sprintf("Connect your %s to your %s", suggestion.SubjectType, suggestion.ObjectType),
			Action:   fmt.Sprintf("Create a %q relation from a %s to a %s", suggestion.Predicate, suggestion.SubjectType, suggestion.ObjectType),
			Tab:      tabGraph,
		})
	}
	return recs
}

// ApplyAction emits the cross-tab signal for a recommendation the user
// picked up. Recommendations without a target tab are a no-op.
func ApplyAction(ctx context.Context, sink notify.Sink, projectID string, rec Recommendation) {
	if rec.Tab == "" {
		return
	}
	sink.SwitchTab(ctx, projectID, rec.Tab)
}
