package pgx

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rankwise/semgraph/internal/util"
	"github.com/rankwise/semgraph/pkg/common"
)

const entityColumns = `public_id, project_id, name, entity_type, schema_type, description, schema_properties, position_x, position_y`

func (s *GraphDBStorage) ListEntities(ctx context.Context, projectID string) ([]common.Entity, error) {
	rows, err := s.conn.Query(ctx,
		`SELECT `+entityColumns+` FROM graph_entities WHERE project_id = $1 ORDER BY id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	defer rows.Close()

	var entities []common.Entity
	for rows.Next() {
		var ent common.Entity
		var props []byte
		err := rows.Scan(
			&ent.ID, &ent.ProjectID, &ent.Name, &ent.Type, &ent.SchemaType,
			&ent.Description, &props, &ent.Position.X, &ent.Position.Y,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		if len(props) > 0 {
			if err := json.Unmarshal(props, &ent.SchemaProperties); err != nil {
				return nil, fmt.Errorf("failed to decode schema properties for %s: %w", ent.ID, err)
			}
		}
		entities = append(entities, ent)
	}
	return entities, rows.Err()
}

func (s *GraphDBStorage) InsertEntity(ctx context.Context, entity common.Entity) error {
	props, err := encodeProperties(entity.SchemaProperties)
	if err != nil {
		return err
	}
	_, err = s.conn.Exec(ctx,
		`INSERT INTO graph_entities (`+entityColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entity.ID,
		entity.ProjectID,
		util.SanitizePostgresText(entity.Name),
		entity.Type,
		entity.SchemaType,
		util.SanitizePostgresText(entity.Description),
		props,
		entity.Position.X,
		entity.Position.Y,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entity %s: %w", entity.ID, err)
	}
	return nil
}

// InsertEntities persists a batch of entities in one transaction. A
// failure anywhere in the batch leaves nothing committed, so callers
// can safely retry the whole batch with fresh ids.
func (s *GraphDBStorage) InsertEntities(ctx context.Context, entities []common.Entity) error {
	if len(entities) == 0 {
		return nil
	}

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, entity := range entities {
		props, err := encodeProperties(entity.SchemaProperties)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO graph_entities (`+entityColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			entity.ID,
			entity.ProjectID,
			util.SanitizePostgresText(entity.Name),
			entity.Type,
			entity.SchemaType,
			util.SanitizePostgresText(entity.Description),
			props,
			entity.Position.X,
			entity.Position.Y,
		)
		if err != nil {
			return fmt.Errorf("failed to insert entity %s: %w", entity.ID, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *GraphDBStorage) UpdateEntity(ctx context.Context, entity common.Entity) error {
	props, err := encodeProperties(entity.SchemaProperties)
	if err != nil {
		return err
	}
	tag, err := s.conn.Exec(ctx,
		`UPDATE graph_entities
		 SET name = $3, entity_type = $4, schema_type = $5, description = $6,
		     schema_properties = $7, position_x = $8, position_y = $9
		 WHERE project_id = $2 AND public_id = $1`,
		entity.ID,
		entity.ProjectID,
		util.SanitizePostgresText(entity.Name),
		entity.Type,
		entity.SchemaType,
		util.SanitizePostgresText(entity.Description),
		props,
		entity.Position.X,
		entity.Position.Y,
	)
	if err != nil {
		return fmt.Errorf("failed to update entity %s: %w", entity.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return &common.NotFoundError{Kind: "entity", ID: entity.ID}
	}
	return nil
}

// UpdatePositions coalesced layout writes for a project in one
// transaction. Unknown entity ids are skipped (the entity may have been
// deleted while the update was pending).
func (s *GraphDBStorage) UpdatePositions(ctx context.Context, projectID string, updates []common.PositionUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, update := range updates {
		_, err := tx.Exec(ctx,
			`UPDATE graph_entities SET position_x = $3, position_y = $4
			 WHERE project_id = $1 AND public_id = $2`,
			projectID, update.EntityID, update.Position.X, update.Position.Y,
		)
		if err != nil {
			return fmt.Errorf("failed to update position for %s: %w", update.EntityID, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *GraphDBStorage) DeleteEntity(ctx context.Context, projectID, entityID string) error {
	_, err := s.conn.Exec(ctx,
		`DELETE FROM graph_entities WHERE project_id = $1 AND public_id = $2`,
		projectID, entityID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete entity %s: %w", entityID, err)
	}
	return nil
}

// encodeProperties never returns nil: the schema_properties column is
// NOT NULL, and pgx would bind a nil slice as SQL NULL.
func encodeProperties(props map[string]string) ([]byte, error) {
	if len(props) == 0 {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(props)
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema properties: %w", err)
	}
	return data, nil
}
