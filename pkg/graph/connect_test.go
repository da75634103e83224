package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/rankwise/semgraph/pkg/common"
	"github.com/rankwise/semgraph/pkg/notify"
	"github.com/rankwise/semgraph/pkg/store/memory"
)

func TestConnectorDirectConnect(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()
	source := mustCreateEntity(t, store, "Shop", common.EntityTypeBusiness)
	target := mustCreateEntity(t, store, "Widget", common.EntityTypeProduct)

	connector := NewConnector(store)
	if err := connector.Begin(source.ID); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if connector.State() != StateConnecting {
		t.Fatalf("state = %s, want connecting", connector.State())
	}
	if err := connector.ReleaseOnEntity(target.ID); err != nil {
		t.Fatalf("ReleaseOnEntity: %v", err)
	}
	if connector.State() != StateConnected {
		t.Fatalf("state = %s, want connected", connector.State())
	}

	relation, err := connector.ConfirmConnect(ctx, "offers")
	if err != nil {
		t.Fatalf("ConfirmConnect: %v", err)
	}
	if relation.SubjectID != source.ID || relation.ObjectID != target.ID || relation.Predicate != "offers" {
		t.Errorf("unexpected relation: %+v", relation)
	}
	if connector.State() != StateIdle {
		t.Errorf("state after confirm = %s, want idle", connector.State())
	}
	if got := len(store.Snapshot().Relations); got != 1 {
		t.Errorf("expected 1 relation, got %d", got)
	}
}

func TestConnectorCancelHasNoSideEffects(t *testing.T) {
	store, _, _ := newTestStore(t)
	source := mustCreateEntity(t, store, "Shop", common.EntityTypeBusiness)

	connector := NewConnector(store)
	if err := connector.Begin(source.ID); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := connector.ReleaseOnCanvas(common.Position{X: 100, Y: 50}); err != nil {
		t.Fatalf("ReleaseOnCanvas: %v", err)
	}
	connector.Cancel()

	if connector.State() != StateIdle {
		t.Errorf("state after cancel = %s, want idle", connector.State())
	}
	snapshot := store.Snapshot()
	if len(snapshot.Entities) != 1 || len(snapshot.Relations) != 0 {
		t.Errorf("cancel mutated the graph: %d entities, %d relations", len(snapshot.Entities), len(snapshot.Relations))
	}
}

func TestConnectorCompanionFlow(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()
	source := mustCreateEntity(t, store, "Shop", common.EntityTypeBusiness)

	connector := NewConnector(store)
	if err := connector.Begin(source.ID); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	drop := common.Position{X: 420, Y: -80}
	if err := connector.ReleaseOnCanvas(drop); err != nil {
		t.Fatalf("ReleaseOnCanvas: %v", err)
	}
	if connector.State() != StateCreatingCompanion {
		t.Fatalf("state = %s, want creating-companion", connector.State())
	}

	entity, relation, err := connector.ConfirmCompanion(ctx, "offers", EntityDraft{
		Name: "Widget",
		Type: common.EntityTypeProduct,
	})
	if err != nil {
		t.Fatalf("ConfirmCompanion: %v", err)
	}
	if entity.Position != drop {
		t.Errorf("companion placed at %+v, want drop coordinate %+v", entity.Position, drop)
	}
	if relation.SubjectID != source.ID || relation.ObjectID != entity.ID {
		t.Errorf("relation direction wrong: %+v", relation)
	}

	snapshot := store.Snapshot()
	if len(snapshot.Entities) != 2 || len(snapshot.Relations) != 1 {
		t.Errorf("expected exactly one new entity and one relation, got %d/%d", len(snapshot.Entities), len(snapshot.Relations))
	}
}

func TestConnectorCompanionPartialFailure(t *testing.T) {
	storage := &failingRelationStorage{memory.NewGraphMemStorage()}
	store, err := NewStore(context.Background(), StoreParams{
		ProjectID: "proj_test",
		Storage:   storage,
		Notifier:  notify.NewMemorySink(),
	})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	source := mustCreateEntity(t, store, "Shop", common.EntityTypeBusiness)

	connector := NewConnector(store)
	if err := connector.Begin(source.ID); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := connector.ReleaseOnCanvas(common.Position{X: 10, Y: 10}); err != nil {
		t.Fatalf("ReleaseOnCanvas: %v", err)
	}

	entity, _, err := connector.ConfirmCompanion(context.Background(), "offers", EntityDraft{
		Name: "Widget",
		Type: common.EntityTypeProduct,
	})
	var partial *common.PartialFailure
	if !errors.As(err, &partial) {
		t.Fatalf("expected PartialFailure, got %v", err)
	}
	if partial.Step != "relation" {
		t.Errorf("failed step = %s, want relation", partial.Step)
	}

	// The companion entity must survive the failed relation.
	if _, ok := store.Entity(entity.ID); !ok {
		t.Error("companion entity missing after partial failure")
	}
	if got := len(store.Snapshot().Relations); got != 0 {
		t.Errorf("expected no relations, got %d", got)
	}
}

func TestConnectorBeginUnknownSource(t *testing.T) {
	store, _, _ := newTestStore(t)
	connector := NewConnector(store)

	err := connector.Begin("ent_missing")
	var notFound *common.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if connector.State() != StateIdle {
		t.Errorf("state = %s, want idle", connector.State())
	}
}
