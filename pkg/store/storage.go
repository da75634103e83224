package store

import (
	"context"

	"github.com/rankwise/semgraph/pkg/common"
)

// GraphStorage is the persistence collaborator for one or more
// projects' semantic graphs. The graph store validates mutations before
// calling in here; implementations only deal with durable records.
//
// Entity deletion is a two-step cascade driven by the caller: relations
// touching the entity are removed first (DeleteRelationsTouching), then
// the entity itself, so no stored relation ever references a missing
// entity.
type GraphStorage interface {
	ListEntities(ctx context.Context, projectID string) ([]common.Entity, error)
	ListRelations(ctx context.Context, projectID string) ([]common.Relation, error)

	InsertEntity(ctx context.Context, entity common.Entity) error
	InsertEntities(ctx context.Context, entities []common.Entity) error
	UpdateEntity(ctx context.Context, entity common.Entity) error
	UpdatePositions(ctx context.Context, projectID string, updates []common.PositionUpdate) error
	DeleteEntity(ctx context.Context, projectID, entityID string) error

	InsertRelation(ctx context.Context, relation common.Relation) error
	InsertRelations(ctx context.Context, relations []common.Relation) error
	DeleteRelation(ctx context.Context, projectID, relationID string) error
	DeleteRelationsTouching(ctx context.Context, projectID, entityID string) error
}
