package graph

import (
	"context"

	"github.com/rankwise/semgraph/pkg/common"
)

// ConnectState is the phase of a drag-to-connect gesture.
type ConnectState string

const (
	// StateIdle means no drag is in progress.
	StateIdle ConnectState = "idle"
	// StateConnecting means the user is dragging from a source handle.
	StateConnecting ConnectState = "connecting"
	// StateConnected means the drag was released on a target entity and
	// a predicate is being prompted for.
	StateConnected ConnectState = "connected"
	// StateCreatingCompanion means the drag was released on empty
	// canvas and a new entity plus predicate are being prompted for.
	StateCreatingCompanion ConnectState = "creating-companion"
)

// Connector drives the drag-to-connect-or-create gesture against a
// project store. It is owned by a single UI session and is not safe
// for concurrent use.
type Connector struct {
	store    *Store
	state    ConnectState
	sourceID string
	targetID string
	dropPos  common.Position
}

func NewConnector(store *Store) *Connector {
	return &Connector{store: store, state: StateIdle}
}

func (c *Connector) State() ConnectState {
	return c.state
}

// Begin starts a drag from the given source entity's handle.
func (c *Connector) Begin(sourceID string) error {
	if c.state != StateIdle {
		return common.NewValidationError("state", "a connection gesture is already in progress")
	}
	if _, ok := c.store.Entity(sourceID); !ok {
		return &common.NotFoundError{Kind: "entity", ID: sourceID}
	}
	c.state = StateConnecting
	c.sourceID = sourceID
	return nil
}

// ReleaseOnEntity records a release over another entity's handle. The
// relation is not created until ConfirmConnect.
func (c *Connector) ReleaseOnEntity(targetID string) error {
	if c.state != StateConnecting {
		return common.NewValidationError("state", "no connection gesture in progress")
	}
	if _, ok := c.store.Entity(targetID); !ok {
		c.reset()
		return &common.NotFoundError{Kind: "entity", ID: targetID}
	}
	c.state = StateConnected
	c.targetID = targetID
	return nil
}

// ReleaseOnCanvas records a release over empty canvas at the given
// coordinate, starting the create-then-connect flow.
func (c *Connector) ReleaseOnCanvas(pos common.Position) error {
	if c.state != StateConnecting {
		return common.NewValidationError("state", "no connection gesture in progress")
	}
	c.state = StateCreatingCompanion
	c.dropPos = pos
	return nil
}

// ConfirmConnect creates the relation for a release-on-entity gesture.
// On failure the gesture returns to idle without mutating the graph.
func (c *Connector) ConfirmConnect(ctx context.Context, predicate string) (common.Relation, error) {
	if c.state != StateConnected {
		return common.Relation{}, common.NewValidationError("state", "no pending connection to confirm")
	}
	subjectID, objectID := c.sourceID, c.targetID
	c.reset()
	return c.store.CreateRelation(ctx, subjectID, objectID, predicate, nil)
}

// ConfirmCompanion creates the new entity at the drop coordinate and
// then connects the source to it. When the entity was created but the
// relation failed, the entity is kept and the error reports the
// partial success.
func (c *Connector) ConfirmCompanion(ctx context.Context, predicate string, draft EntityDraft) (common.Entity, common.Relation, error) {
	if c.state != StateCreatingCompanion {
		return common.Entity{}, common.Relation{}, common.NewValidationError("state", "no pending companion creation to confirm")
	}
	sourceID := c.sourceID
	dropPos := c.dropPos
	c.reset()

	draft.Position = dropPos
	entity, err := c.store.CreateEntity(ctx, draft)
	if err != nil {
		return common.Entity{}, common.Relation{}, err
	}

	relation, err := c.store.CreateRelation(ctx, sourceID, entity.ID, predicate, nil)
	if err != nil {
		return entity, common.Relation{}, &common.PartialFailure{
			Op:        "create companion",
			Succeeded: 1,
			Failed:    1,
			Step:      "relation",
			Err:       err,
		}
	}
	return entity, relation, nil
}

// Cancel aborts the gesture at any point with no side effects.
func (c *Connector) Cancel() {
	c.reset()
}

func (c *Connector) reset() {
	c.state = StateIdle
	c.sourceID = ""
	c.targetID = ""
	c.dropPos = common.Position{}
}
