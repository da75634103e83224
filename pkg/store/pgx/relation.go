package pgx

import (
	"context"
	"fmt"

	"github.com/rankwise/semgraph/internal/util"
	"github.com/rankwise/semgraph/pkg/common"
)

const relationColumns = `public_id, project_id, subject_id, object_id, predicate, confidence`

func (s *GraphDBStorage) ListRelations(ctx context.Context, projectID string) ([]common.Relation, error) {
	rows, err := s.conn.Query(ctx,
		`SELECT `+relationColumns+` FROM graph_relations WHERE project_id = $1 ORDER BY id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list relations: %w", err)
	}
	defer rows.Close()

	var relations []common.Relation
	for rows.Next() {
		var rel common.Relation
		err := rows.Scan(
			&rel.ID, &rel.ProjectID, &rel.SubjectID, &rel.ObjectID,
			&rel.Predicate, &rel.Confidence,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan relation: %w", err)
		}
		relations = append(relations, rel)
	}
	return relations, rows.Err()
}

func (s *GraphDBStorage) InsertRelation(ctx context.Context, relation common.Relation) error {
	_, err := s.conn.Exec(ctx,
		`INSERT INTO graph_relations (`+relationColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		relation.ID,
		relation.ProjectID,
		relation.SubjectID,
		relation.ObjectID,
		util.SanitizePostgresText(relation.Predicate),
		relation.Confidence,
	)
	if err != nil {
		return fmt.Errorf("failed to insert relation %s: %w", relation.ID, err)
	}
	return nil
}

// InsertRelations persists a batch of relations in one transaction.
// Callers must have persisted the referenced entities first.
func (s *GraphDBStorage) InsertRelations(ctx context.Context, relations []common.Relation) error {
	if len(relations) == 0 {
		return nil
	}

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, relation := range relations {
		_, err := tx.Exec(ctx,
			`INSERT INTO graph_relations (`+relationColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
			relation.ID,
			relation.ProjectID,
			relation.SubjectID,
			relation.ObjectID,
			util.SanitizePostgresText(relation.Predicate),
			relation.Confidence,
		)
		if err != nil {
			return fmt.Errorf("failed to insert relation %s: %w", relation.ID, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *GraphDBStorage) DeleteRelation(ctx context.Context, projectID, relationID string) error {
	_, err := s.conn.Exec(ctx,
		`DELETE FROM graph_relations WHERE project_id = $1 AND public_id = $2`,
		projectID, relationID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete relation %s: %w", relationID, err)
	}
	return nil
}

// DeleteRelationsTouching removes every relation where the entity
// appears as subject or object. Used as the first step of the entity
// delete cascade.
func (s *GraphDBStorage) DeleteRelationsTouching(ctx context.Context, projectID, entityID string) error {
	_, err := s.conn.Exec(ctx,
		`DELETE FROM graph_relations
		 WHERE project_id = $1 AND (subject_id = $2 OR object_id = $2)`,
		projectID, entityID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete relations touching %s: %w", entityID, err)
	}
	return nil
}
