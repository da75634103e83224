package common

// Graph is a snapshot of one project's semantic graph: the entities the
// user has modeled and the directed, predicate-labeled relations between
// them. Derived views (metrics, recommendations) are computed from a
// Graph snapshot, never from the persistence layer directly.
type Graph struct {
	ProjectID string     `json:"project_id"`
	Entities  []Entity   `json:"entities"`
	Relations []Relation `json:"relations"`
}

// EntityType classifies an entity within the semantic graph. The set is
// fixed; templates additionally use the auxiliary types (equipment,
// specialty, content) for supporting nodes.
type EntityType string

const (
	EntityTypeBusiness       EntityType = "business"
	EntityTypeProduct        EntityType = "product"
	EntityTypeService        EntityType = "service"
	EntityTypePlace          EntityType = "place"
	EntityTypePerson         EntityType = "person"
	EntityTypeWebsite        EntityType = "website"
	EntityTypeListingProfile EntityType = "listing-profile"
	EntityTypeReview         EntityType = "review"
	EntityTypeEquipment      EntityType = "equipment"
	EntityTypeSpecialty      EntityType = "specialty"
	EntityTypeContent        EntityType = "content"
)

// EntityTypes lists every valid entity type.
var EntityTypes = []EntityType{
	EntityTypeBusiness,
	EntityTypeProduct,
	EntityTypeService,
	EntityTypePlace,
	EntityTypePerson,
	EntityTypeWebsite,
	EntityTypeListingProfile,
	EntityTypeReview,
	EntityTypeEquipment,
	EntityTypeSpecialty,
	EntityTypeContent,
}

// Valid reports whether t is one of the known entity types.
func (t EntityType) Valid() bool {
	for _, known := range EntityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Position is a 2D layout coordinate. It only affects where a node is
// drawn on the canvas and carries no graph semantics.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Entity is a node in the semantic graph. SchemaType names a node in
// the Schema.org hierarchy and is empty until the user assigns one.
// SchemaProperties maps Schema.org property names to string values and
// is conventionally populated only once SchemaType is set, though the
// two are independent.
type Entity struct {
	ID               string            `json:"id"`
	ProjectID        string            `json:"project_id"`
	Name             string            `json:"name"`
	Type             EntityType        `json:"entity_type"`
	SchemaType       string            `json:"schema_type,omitempty"`
	Description      string            `json:"description,omitempty"`
	SchemaProperties map[string]string `json:"schema_properties,omitempty"`
	Position         Position          `json:"position"`
}

// Relation is a directed, labeled edge between two entities in
// subject-predicate-object form. Confidence is an optional weight that
// is persisted but not consumed by any algorithm.
type Relation struct {
	ID         string   `json:"id"`
	ProjectID  string   `json:"project_id"`
	SubjectID  string   `json:"subject_id"`
	ObjectID   string   `json:"object_id"`
	Predicate  string   `json:"predicate"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// SelfLoop reports whether the relation connects an entity to itself.
// Self-loops are structurally valid but flagged by the recommendation
// engine.
func (r Relation) SelfLoop() bool {
	return r.SubjectID == r.ObjectID
}

// PositionUpdate is a pending layout change for one entity, used by the
// debounced position saver and the bulk position endpoint.
type PositionUpdate struct {
	EntityID string   `json:"entity_id"`
	Position Position `json:"position"`
}
