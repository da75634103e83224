package graph

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rankwise/semgraph/pkg/common"
	"github.com/rankwise/semgraph/pkg/notify"
	"github.com/rankwise/semgraph/pkg/store/memory"
)

var errPositionWrite = errors.New("position write refused")

// failingPositionStorage refuses the next `failures` position writes,
// then behaves normally.
type failingPositionStorage struct {
	*memory.GraphMemStorage
	failures int
	writes   int
}

func (s *failingPositionStorage) UpdatePositions(ctx context.Context, projectID string, updates []common.PositionUpdate) error {
	s.writes++
	if s.failures > 0 {
		s.failures--
		return errPositionWrite
	}
	return s.GraphMemStorage.UpdatePositions(ctx, projectID, updates)
}

func TestPositionSaverCoalesces(t *testing.T) {
	store, storage, _ := newTestStore(t)
	entity := mustCreateEntity(t, store, "Shop", common.EntityTypeBusiness)

	// Interval long enough that the timer never fires during the test;
	// flushing happens manually.
	saver := NewPositionSaver(store, time.Hour)
	saver.Queue(entity.ID, common.Position{X: 1, Y: 1})
	saver.Queue(entity.ID, common.Position{X: 2, Y: 2})
	saver.Queue(entity.ID, common.Position{X: 3, Y: 4})

	if err := saver.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	got, ok := store.Entity(entity.ID)
	if !ok {
		t.Fatal("entity missing")
	}
	want := common.Position{X: 3, Y: 4}
	if got.Position != want {
		t.Errorf("position = %+v, want latest value %+v", got.Position, want)
	}

	persisted, err := storage.ListEntities(context.Background(), "proj_test")
	if err != nil {
		t.Fatalf("ListEntities: %v", err)
	}
	if persisted[0].Position != want {
		t.Errorf("persisted position = %+v, want %+v", persisted[0].Position, want)
	}
}

func TestPositionSaverFlushesOnQuietPeriod(t *testing.T) {
	store, _, _ := newTestStore(t)
	entity := mustCreateEntity(t, store, "Shop", common.EntityTypeBusiness)

	saver := NewPositionSaver(store, 10*time.Millisecond)
	saver.Queue(entity.ID, common.Position{X: 7, Y: 7})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		got, _ := store.Entity(entity.ID)
		if got.Position == (common.Position{X: 7, Y: 7}) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timer flush never applied the queued position")
}

func TestPositionSaverSkipsUnknownIDs(t *testing.T) {
	store, _, _ := newTestStore(t)
	entity := mustCreateEntity(t, store, "Shop", common.EntityTypeBusiness)

	saver := NewPositionSaver(store, time.Hour)
	saver.Queue(entity.ID, common.Position{X: 5, Y: 5})
	saver.Queue("ent_ghost", common.Position{X: 9, Y: 9})

	if err := saver.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	got, _ := store.Entity(entity.ID)
	if got.Position != (common.Position{X: 5, Y: 5}) {
		t.Errorf("known entity position not applied: %+v", got.Position)
	}
}

func TestPositionSaverCloseFlushesAndStops(t *testing.T) {
	store, _, _ := newTestStore(t)
	entity := mustCreateEntity(t, store, "Shop", common.EntityTypeBusiness)

	saver := NewPositionSaver(store, time.Hour)
	saver.Queue(entity.ID, common.Position{X: 2, Y: 8})
	if err := saver.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, _ := store.Entity(entity.ID)
	if got.Position != (common.Position{X: 2, Y: 8}) {
		t.Errorf("Close did not flush: %+v", got.Position)
	}

	// Updates after Close are dropped.
	saver.Queue(entity.ID, common.Position{X: 99, Y: 99})
	if err := saver.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	got, _ = store.Entity(entity.ID)
	if got.Position != (common.Position{X: 2, Y: 8}) {
		t.Errorf("update accepted after Close: %+v", got.Position)
	}
}

func TestPositionSaverCloseReportsAndDropsFailedBatch(t *testing.T) {
	storage := &failingPositionStorage{GraphMemStorage: memory.NewGraphMemStorage(), failures: 1}
	store, err := NewStore(context.Background(), StoreParams{
		ProjectID: "proj_test",
		Storage:   storage,
		Notifier:  notify.NewMemorySink(),
	})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	entity := mustCreateEntity(t, store, "Shop", common.EntityTypeBusiness)

	saver := NewPositionSaver(store, time.Hour)
	saver.Queue(entity.ID, common.Position{X: 2, Y: 2})

	if err := saver.Close(context.Background()); !errors.Is(err, errPositionWrite) {
		t.Fatalf("expected failed flush error from Close, got %v", err)
	}
	writesAfterClose := storage.writes

	// The batch is gone, not stranded: a later flush has nothing to
	// write even though the storage works again.
	if err := saver.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if storage.writes != writesAfterClose {
		t.Errorf("dropped batch was written after close")
	}
}
