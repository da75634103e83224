package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"time"

	"github.com/rankwise/semgraph/internal/util"
	"github.com/rankwise/semgraph/pkg/catalog"
	"github.com/rankwise/semgraph/pkg/common"
	"github.com/rankwise/semgraph/pkg/leaselock"
	"github.com/rankwise/semgraph/pkg/logger"
	"github.com/rankwise/semgraph/pkg/notify"
	graphstorage "github.com/rankwise/semgraph/pkg/store/pgx"
	"github.com/rankwise/semgraph/pkg/template"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rabbitmq/amqp091-go"
)

// InstantiateMsg is the payload queued for a template instantiation
// job.
type InstantiateMsg struct {
	JobID        string            `json:"job_id"`
	ProjectID    string            `json:"project_id"`
	TemplateID   string            `json:"template_id"`
	ScopeAnswers map[string]bool   `json:"scope_answers,omitempty"`
	DataAnswers  map[string]string `json:"data_answers,omitempty"`
}

// ProcessInstantiateMessage instantiates a niche template into a
// project graph. Entities are persisted before relations since the
// relations reference generated entity ids. A relation failure after
// the entities were written is reported to the user as a partial
// result and the message is not retried, so retries cannot duplicate
// the entity set.
func ProcessInstantiateMessage(
	ctx context.Context,
	ch *amqp091.Channel,
	conn *pgxpool.Pool,
	cat *catalog.Catalog,
	msg string,
) error {
	data := new(InstantiateMsg)
	if err := json.Unmarshal([]byte(msg), data); err != nil {
		return err
	}

	sink := notify.NewQueueSink(NewClient(ch))

	tpl, ok := cat.Template(data.TemplateID)
	if !ok {
		logger.Warn("[Queue] Unknown template requested", "job_id", data.JobID, "template_id", data.TemplateID)
		sink.Toast(ctx, data.ProjectID, notify.Toast{
			Title:       "Template not found",
			Description: data.TemplateID,
			Variant:     notify.VariantDestructive,
		})
		return nil
	}

	result, err := template.Instantiate(&tpl, data.ScopeAnswers, data.DataAnswers)
	if err != nil {
		// Authoring defect, retrying cannot fix it.
		logger.Error("[Queue] Template instantiation failed", "job_id", data.JobID, "template_id", data.TemplateID, "err", err)
		sink.Toast(ctx, data.ProjectID, notify.Toast{
			Title:       "Could not apply template",
			Description: tpl.Name,
			Variant:     notify.VariantDestructive,
		})
		return nil
	}

	ids := make([]string, len(result.Entities))
	entities := make([]common.Entity, len(result.Entities))
	for i, draft := range result.Entities {
		ids[i] = util.NewEntityID()
		entities[i] = common.Entity{
			ID:          ids[i],
			ProjectID:   data.ProjectID,
			Name:        draft.Name,
			Type:        draft.Type,
			SchemaType:  draft.SchemaType,
			Description: draft.Description,
			Position:    draft.Position,
		}
	}

	relations, err := result.Compile(data.ProjectID, ids)
	if err != nil {
		return err
	}
	for i := range relations {
		relations[i].ID = util.NewRelationID()
	}

	// Bulk generation for one project must not interleave with another
	// job for the same project.
	locks := leaselock.New(conn)
	lockKey := "instantiate:" + data.ProjectID
	var relationErr error
	err = locks.WithLease(ctx, lockKey, leaselock.Options{TTL: 2 * time.Minute, Wait: true}, func(ctx context.Context) error {
		storage := graphstorage.NewGraphDBStorage(conn)
		if err := storage.InsertEntities(ctx, entities); err != nil {
			// The batch insert is a single transaction, so nothing was
			// applied and the whole job is safe to retry.
			return fmt.Errorf("failed to insert template entities: %w", err)
		}
		relationErr = storage.InsertRelations(ctx, relations)
		return nil
	})
	if err != nil {
		return err
	}

	if relationErr != nil {
		partial := &common.PartialFailure{
			Op:        "template instantiation",
			Succeeded: len(entities),
			Failed:    len(relations),
			Step:      "relations",
			Err:       relationErr,
		}
		logger.Error("[Queue] Template relations failed after entities persisted",
			"job_id", data.JobID, "project_id", data.ProjectID, "entities", len(entities), "err", partial)
		sink.Toast(ctx, data.ProjectID, notify.Toast{
			Title:       "Template partially applied",
			Description: fmt.Sprintf("%d entities were created but their connections failed", len(entities)),
			Variant:     notify.VariantDestructive,
		})
		return nil
	}

	logger.Info("[Queue] Template instantiated",
		"job_id", data.JobID, "project_id", data.ProjectID, "template_id", data.TemplateID,
		"entities", len(entities), "relations", len(relations))
	sink.Toast(ctx, data.ProjectID, notify.Toast{
		Title:       "Template applied",
		Description: tpl.Name,
		Variant:     notify.VariantSuccess,
	})
	sink.SwitchTab(ctx, data.ProjectID, "graph")

	return nil
}
