package memory

import (
	"context"
	"sync"

	"github.com/rankwise/semgraph/pkg/common"
)

// GraphMemStorage keeps graph records in process memory. It backs unit
// tests and local development; semantics mirror the Postgres
// implementation, including idempotent deletes and the relation cascade
// operation.
type GraphMemStorage struct {
	mu        sync.Mutex
	entities  map[string][]common.Entity
	relations map[string][]common.Relation
}

// NewGraphMemStorage creates an empty in-memory storage.
func NewGraphMemStorage() *GraphMemStorage {
	return &GraphMemStorage{
		entities:  make(map[string][]common.Entity),
		relations: make(map[string][]common.Relation),
	}
}

func (s *GraphMemStorage) ListEntities(ctx context.Context, projectID string) ([]common.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]common.Entity(nil), s.entities[projectID]...), nil
}

func (s *GraphMemStorage) ListRelations(ctx context.Context, projectID string) ([]common.Relation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]common.Relation(nil), s.relations[projectID]...), nil
}

func (s *GraphMemStorage) InsertEntity(ctx context.Context, entity common.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entities[entity.ProjectID] = append(s.entities[entity.ProjectID], entity)
	return nil
}

func (s *GraphMemStorage) InsertEntities(ctx context.Context, entities []common.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entity := range entities {
		s.entities[entity.ProjectID] = append(s.entities[entity.ProjectID], entity)
	}
	return nil
}

func (s *GraphMemStorage) UpdateEntity(ctx context.Context, entity common.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.entities[entity.ProjectID]
	for i := range list {
		if list[i].ID == entity.ID {
			list[i] = entity
			return nil
		}
	}
	return &common.NotFoundError{Kind: "entity", ID: entity.ID}
}

func (s *GraphMemStorage) UpdatePositions(ctx context.Context, projectID string, updates []common.PositionUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.entities[projectID]
	for _, update := range updates {
		for i := range list {
			if list[i].ID == update.EntityID {
				list[i].Position = update.Position
				break
			}
		}
	}
	return nil
}

func (s *GraphMemStorage) DeleteEntity(ctx context.Context, projectID, entityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.entities[projectID]
	for i := range list {
		if list[i].ID == entityID {
			s.entities[projectID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *GraphMemStorage) InsertRelation(ctx context.Context, relation common.Relation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.relations[relation.ProjectID] = append(s.relations[relation.ProjectID], relation)
	return nil
}

func (s *GraphMemStorage) InsertRelations(ctx context.Context, relations []common.Relation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, relation := range relations {
		s.relations[relation.ProjectID] = append(s.relations[relation.ProjectID], relation)
	}
	return nil
}

func (s *GraphMemStorage) DeleteRelation(ctx context.Context, projectID, relationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.relations[projectID]
	for i := range list {
		if list[i].ID == relationID {
			s.relations[projectID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *GraphMemStorage) DeleteRelationsTouching(ctx context.Context, projectID, entityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.relations[projectID]
	kept := list[:0]
	for _, rel := range list {
		if rel.SubjectID == entityID || rel.ObjectID == entityID {
			continue
		}
		kept = append(kept, rel)
	}
	s.relations[projectID] = kept
	return nil
}
