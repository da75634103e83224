package graph

import (
	"context"
	"strings"
	"sync"

	"github.com/rankwise/semgraph/internal/util"
	"github.com/rankwise/semgraph/pkg/common"
	"github.com/rankwise/semgraph/pkg/logger"
	"github.com/rankwise/semgraph/pkg/notify"
	"github.com/rankwise/semgraph/pkg/store"

	"golang.org/x/sync/errgroup"
)

// Store holds the semantic graph of one project. Mutations are written
// to the persistence layer first and applied to the in-memory snapshot
// only after the write succeeded, so derived views never show state
// that failed to persist.
type Store struct {
	projectID string
	storage   store.GraphStorage
	notifier  notify.Sink

	mu        sync.RWMutex
	entities  []common.Entity
	relations []common.Relation
	entityIdx map[string]int
}

type StoreParams struct {
	ProjectID string
	Storage   store.GraphStorage
	Notifier  notify.Sink
}

// NewStore hydrates a project store from the persistence layer.
func NewStore(ctx context.Context, params StoreParams) (*Store, error) {
	if params.ProjectID == "" {
		return nil, common.NewValidationError("project_id", "must not be empty")
	}
	var entities []common.Entity
	var relations []common.Relation
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entities, err = params.Storage.ListEntities(gctx, params.ProjectID)
		return err
	})
	g.Go(func() error {
		var err error
		relations, err = params.Storage.ListRelations(gctx, params.ProjectID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	notifier := params.Notifier
	if notifier == nil {
		notifier = notify.NewMemorySink()
	}
	s := &Store{
		projectID: params.ProjectID,
		storage:   params.Storage,
		notifier:  notifier,
		entities:  entities,
		relations: relations,
		entityIdx: make(map[string]int, len(entities)),
	}
	for i, entity := range entities {
		s.entityIdx[entity.ID] = i
	}
	return s, nil
}

func (s *Store) ProjectID() string {
	return s.projectID
}

// Snapshot returns a copy of the current graph. Callers may hold it
// across further mutations without seeing them.
func (s *Store) Snapshot() common.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entities := make([]common.Entity, len(s.entities))
	copy(entities, s.entities)
	relations := make([]common.Relation, len(s.relations))
	copy(relations, s.relations)
	return common.Graph{
		ProjectID: s.projectID,
		Entities:  entities,
		Relations: relations,
	}
}

type EntityDraft struct {
	Name             string
	Type             common.EntityType
	SchemaType       string
	Description      string
	SchemaProperties map[string]string
	Position         common.Position
}

func (d EntityDraft) validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return common.NewValidationError("name", "must not be empty")
	}
	if !d.Type.Valid() {
		return common.NewValidationError("entity_type", "unknown entity type "+string(d.Type))
	}
	return nil
}

// CreateEntity validates the draft, persists it and adds it to the
// snapshot. The assigned entity id is returned with the entity.
func (s *Store) CreateEntity(ctx context.Context, draft EntityDraft) (common.Entity, error) {
	if err := draft.validate(); err != nil {
		return common.Entity{}, err
	}

	entity := common.Entity{
		ID:               util.NewEntityID(),
		ProjectID:        s.projectID,
		Name:             strings.TrimSpace(draft.Name),
		Type:             draft.Type,
		SchemaType:       draft.SchemaType,
		Description:      draft.Description,
		SchemaProperties: draft.SchemaProperties,
		Position:         draft.Position,
	}

	if err := s.storage.InsertEntity(ctx, entity); err != nil {
		logger.Error("[Graph] Failed to persist entity", "project", s.projectID, "err", err)
		s.notifier.Toast(ctx, s.projectID, notify.Toast{
			Title:       "Could not create entity",
			Description: entity.Name,
			Variant:     notify.VariantDestructive,
		})
		return common.Entity{}, err
	}

	s.mu.Lock()
	s.entityIdx[entity.ID] = len(s.entities)
	s.entities = append(s.entities, entity)
	s.mu.Unlock()

	return entity, nil
}

// EntityPatch carries the fields an update may change. Nil pointers
// leave the current value untouched.
type EntityPatch struct {
	Name             *string
	Type             *common.EntityType
	SchemaType       *string
	Description      *string
	SchemaProperties map[string]string
}

// UpdateEntity applies a patch to an existing entity. Unknown ids are
// reported as NotFoundError.
func (s *Store) UpdateEntity(ctx context.Context, id string, patch EntityPatch) (common.Entity, error) {
	s.mu.RLock()
	idx, ok := s.entityIdx[id]
	var updated common.Entity
	if ok {
		updated = s.entities[idx]
	}
	s.mu.RUnlock()
	if !ok {
		return common.Entity{}, &common.NotFoundError{Kind: "entity", ID: id}
	}

	if patch.Name != nil {
		updated.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Type != nil {
		updated.Type = *patch.Type
	}
	if patch.SchemaType != nil {
		updated.SchemaType = *patch.SchemaType
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	if patch.SchemaProperties != nil {
		updated.SchemaProperties = patch.SchemaProperties
	}
	if err := (EntityDraft{Name: updated.Name, Type: updated.Type}).validate(); err != nil {
		return common.Entity{}, err
	}

	if err := s.storage.UpdateEntity(ctx, updated); err != nil {
		logger.Error("[Graph] Failed to update entity", "entity", id, "err", err)
		s.notifier.Toast(ctx, s.projectID, notify.Toast{
			Title:       "Could not update entity",
			Description: updated.Name,
			Variant:     notify.VariantDestructive,
		})
		return common.Entity{}, err
	}

	s.mu.Lock()
	if idx, ok := s.entityIdx[id]; ok {
		s.entities[idx] = updated
	}
	s.mu.Unlock()

	return updated, nil
}

// DeleteEntity removes an entity and every relation touching it.
// Deleting an unknown id is a no-op.
func (s *Store) DeleteEntity(ctx context.Context, id string) error {
	s.mu.RLock()
	_, ok := s.entityIdx[id]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	if err := s.storage.DeleteRelationsTouching(ctx, s.projectID, id); err != nil {
		logger.Error("[Graph] Failed to delete relations of entity", "entity", id, "err", err)
		s.notifier.Toast(ctx, s.projectID, notify.Toast{
			Title:   "Could not delete entity",
			Variant: notify.VariantDestructive,
		})
		return err
	}
	if err := s.storage.DeleteEntity(ctx, s.projectID, id); err != nil {
		logger.Error("[Graph] Failed to delete entity", "entity", id, "err", err)
		s.notifier.Toast(ctx, s.projectID, notify.Toast{
			Title:   "Could not delete entity",
			Variant: notify.VariantDestructive,
		})
		return err
	}

	s.mu.Lock()
	s.removeEntityLocked(id)
	s.mu.Unlock()

	return nil
}

// removeEntityLocked drops the entity and every incident relation from
// the snapshot. Caller holds the write lock.
func (s *Store) removeEntityLocked(id string) {
	idx, ok := s.entityIdx[id]
	if !ok {
		return
	}
	s.entities = append(s.entities[:idx], s.entities[idx+1:]...)
	delete(s.entityIdx, id)
	for i := idx; i < len(s.entities); i++ {
		s.entityIdx[s.entities[i].ID] = i
	}

	kept := s.relations[:0]
	for _, relation := range s.relations {
		if relation.SubjectID == id || relation.ObjectID == id {
			continue
		}
		kept = append(kept, relation)
	}
	s.relations = kept
}

// CreateRelation persists a new triple. Both endpoints must exist in
// the project. Duplicate triples are allowed and self-loops are
// accepted; both are surfaced by the recommendation engine instead of
// being rejected here.
func (s *Store) CreateRelation(ctx context.Context, subjectID, objectID, predicate string, confidence *float64) (common.Relation, error) {
	if strings.TrimSpace(predicate) == "" {
		return common.Relation{}, common.NewValidationError("predicate", "must not be empty")
	}
	s.mu.RLock()
	_, subjectOK := s.entityIdx[subjectID]
	_, objectOK := s.entityIdx[objectID]
	s.mu.RUnlock()
	if !subjectOK {
		return common.Relation{}, common.NewValidationError("subject_id", "unknown entity "+subjectID)
	}
	if !objectOK {
		return common.Relation{}, common.NewValidationError("object_id", "unknown entity "+objectID)
	}

	relation := common.Relation{
		ID:         util.NewRelationID(),
		ProjectID:  s.projectID,
		SubjectID:  subjectID,
		ObjectID:   objectID,
		Predicate:  strings.TrimSpace(predicate),
		Confidence: confidence,
	}

	if err := s.storage.InsertRelation(ctx, relation); err != nil {
		logger.Error("[Graph] Failed to persist relation", "project", s.projectID, "err", err)
		s.notifier.Toast(ctx, s.projectID, notify.Toast{
			Title:       "Could not create connection",
			Description: relation.Predicate,
			Variant:     notify.VariantDestructive,
		})
		return common.Relation{}, err
	}

	s.mu.Lock()
	s.relations = append(s.relations, relation)
	s.mu.Unlock()

	return relation, nil
}

// DeleteRelation removes a single relation. Unknown ids are a no-op.
func (s *Store) DeleteRelation(ctx context.Context, id string) error {
	if err := s.storage.DeleteRelation(ctx, s.projectID, id); err != nil {
		logger.Error("[Graph] Failed to delete relation", "relation", id, "err", err)
		s.notifier.Toast(ctx, s.projectID, notify.Toast{
			Title:   "Could not delete connection",
			Variant: notify.VariantDestructive,
		})
		return err
	}

	s.mu.Lock()
	for i, relation := range s.relations {
		if relation.ID == id {
			s.relations = append(s.relations[:i], s.relations[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	return nil
}

// BulkInsert persists a generated entity set followed by its relations.
// Entities are written first since relations reference their ids. When
// the relation step fails after entities were written, the entities are
// kept and the error is wrapped as a PartialFailure so the caller can
// tell "nothing happened" from "some of it happened".
func (s *Store) BulkInsert(ctx context.Context, entities []common.Entity, relations []common.Relation) error {
	if len(entities) > 0 {
		if err := s.storage.InsertEntities(ctx, entities); err != nil {
			logger.Error("[Graph] Bulk entity insert failed", "project", s.projectID, "count", len(entities), "err", err)
			return err
		}
		s.mu.Lock()
		for _, entity := range entities {
			s.entityIdx[entity.ID] = len(s.entities)
			s.entities = append(s.entities, entity)
		}
		s.mu.Unlock()
	}

	if len(relations) > 0 {
		if err := s.storage.InsertRelations(ctx, relations); err != nil {
			logger.Error("[Graph] Bulk relation insert failed after entities persisted", "project", s.projectID, "err", err)
			return &common.PartialFailure{
				Op:        "bulk insert",
				Succeeded: len(entities),
				Failed:    len(relations),
				Step:      "relations",
				Err:       err,
			}
		}
		s.mu.Lock()
		s.relations = append(s.relations, relations...)
		s.mu.Unlock()
	}

	return nil
}

// Entity looks up a single entity by id.
func (s *Store) Entity(id string) (common.Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.entityIdx[id]
	if !ok {
		return common.Entity{}, false
	}
	return s.entities[idx], true
}

// UpdatePositions writes a batch of layout coordinates. Unknown ids in
// the batch are skipped.
func (s *Store) UpdatePositions(ctx context.Context, updates []common.PositionUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	if err := s.storage.UpdatePositions(ctx, s.projectID, updates); err != nil {
		logger.Error("[Graph] Failed to save positions", "project", s.projectID, "count", len(updates), "err", err)
		return err
	}

	s.mu.Lock()
	for _, update := range updates {
		if idx, ok := s.entityIdx[update.EntityID]; ok {
			s.entities[idx].Position = update.Position
		}
	}
	s.mu.Unlock()

	return nil
}
