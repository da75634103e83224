package graph

import (
	"context"
	"sync"
	"time"

	"github.com/rankwise/semgraph/pkg/common"
	"github.com/rankwise/semgraph/pkg/logger"
)

// DefaultSaveInterval is the quiet period before queued position
// updates are flushed.
const DefaultSaveInterval = 800 * time.Millisecond

// PositionSaver batches rapid position updates into a single write
// after a quiet period. Multiple updates to the same entity coalesce
// into the latest value, so dragging a node costs one write instead of
// one per pixel of movement.
type PositionSaver struct {
	store    *Store
	interval time.Duration

	mu      sync.Mutex
	pending map[string]common.Position
	timer   *time.Timer
	closed  bool
}

func NewPositionSaver(store *Store, interval time.Duration) *PositionSaver {
	if interval <= 0 {
		interval = DefaultSaveInterval
	}
	return &PositionSaver{
		store:    store,
		interval: interval,
		pending:  make(map[string]common.Position),
	}
}

// Queue records a position update and restarts the quiet-period timer.
func (s *PositionSaver) Queue(entityID string, pos common.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending[entityID] = pos
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.interval, func() {
		if err := s.Flush(context.Background()); err != nil {
			logger.Error("[Graph] Position auto-save failed", "project", s.store.ProjectID(), "err", err)
		}
	})
}

// Flush writes all pending updates immediately. On failure the batch
// is requeued so the next flush retries it.
func (s *PositionSaver) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if len(s.pending) == 0 {
		s.mu.Unlock()
		return nil
	}
	batch := s.pending
	s.pending = make(map[string]common.Position)
	s.mu.Unlock()

	updates := make([]common.PositionUpdate, 0, len(batch))
	for id, pos := range batch {
		updates = append(updates, common.PositionUpdate{EntityID: id, Position: pos})
	}

	if err := s.store.UpdatePositions(ctx, updates); err != nil {
		s.mu.Lock()
		for id, pos := range batch {
			if _, overwritten := s.pending[id]; !overwritten {
				s.pending[id] = pos
			}
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// Close flushes remaining updates and stops the timer. The saver
// accepts no further updates afterwards. A failed final flush is
// logged and dropped: nothing can retry it after close, so retaining
// the batch would only hide the loss.
func (s *PositionSaver) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	if err := s.Flush(ctx); err != nil {
		s.mu.Lock()
		dropped := len(s.pending)
		s.pending = make(map[string]common.Position)
		s.mu.Unlock()
		logger.Error("[Graph] Dropping unsaved positions on close",
			"project", s.store.ProjectID(), "count", dropped, "err", err)
		return err
	}
	return nil
}
