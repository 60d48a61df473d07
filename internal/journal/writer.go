package journal

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kasunkula/middys-assignment/internal/core/aggregation"
	"github.com/kasunkula/middys-assignment/internal/core/storage"
	"github.com/kasunkula/middys-assignment/internal/metrics"
)

const (
	defaultBatchSize     = 500
	defaultWorkerCount   = 2
	defaultBufferSize    = 10_000
	defaultFlushInterval = time.Second

	shutdownDrainTimeout = 30 * time.Second
)

// Options tunes the writer's buffering and batching.
type Options struct {
	BatchSize     int
	WorkerCount   int
	BufferSize    int
	FlushInterval time.Duration
}

func (o Options) normalized() Options {
	n := o
	if n.BatchSize <= 0 {
		n.BatchSize = defaultBatchSize
	}
	if n.WorkerCount <= 0 {
		n.WorkerCount = defaultWorkerCount
	}
	if n.BufferSize <= 0 {
		n.BufferSize = defaultBufferSize
	}
	if n.FlushInterval <= 0 {
		n.FlushInterval = defaultFlushInterval
	}
	return n
}

// Writer appends accepted orders and clears to a JournalStore off the request path.
//
// Record calls never block: when the buffer is full, or once Start has begun
// its final drain, the entry is dropped and counted. Workers flush a batch when it reaches BatchSize or when
// FlushInterval elapses, whichever comes first. The journal is an audit
// trail only; the statistics window never reads from it.
type Writer struct {
	store   storage.JournalStore
	opts    Options
	entries chan *storage.JournalEntry
	newID   func() string

	// stopped is set under mu before the final drain so no entry can be
	// queued behind it.
	mu      sync.RWMutex
	stopped bool
}

// NewWriter creates a writer. Call Start to begin flushing.
func NewWriter(store storage.JournalStore, opts Options) *Writer {
	if store == nil {
		panic("journal: store must not be nil")
	}
	opts = opts.normalized()
	return &Writer{
		store:   store,
		opts:    opts,
		entries: make(chan *storage.JournalEntry, opts.BufferSize),
		newID:   uuid.NewString,
	}
}

// RecordOrder queues an accepted order.
func (w *Writer) RecordOrder(o aggregation.Order, acceptedAt time.Time) bool {
	return w.enqueue(&storage.JournalEntry{
		ID:             w.newID(),
		Kind:           storage.EntryOrder,
		Amount:         o.Amount,
		OrderTimestamp: time.UnixMilli(o.Timestamp).UTC(),
		RecordedAt:     acceptedAt.UTC(),
	})
}

// RecordClear queues a delete-all marker.
func (w *Writer) RecordClear(at time.Time) bool {
	return w.enqueue(&storage.JournalEntry{
		ID:         w.newID(),
		Kind:       storage.EntryClear,
		RecordedAt: at.UTC(),
	})
}

func (w *Writer) enqueue(e *storage.JournalEntry) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.stopped {
		metrics.JournalDropped.Inc()
		slog.Warn("[Journal] Writer stopped, dropping entry", "kind", e.Kind)
		return false
	}

	select {
	case w.entries <- e:
		return true
	default:
		metrics.JournalDropped.Inc()
		slog.Warn("[Journal] Buffer full, dropping entry", "kind", e.Kind, "buffer_size", w.opts.BufferSize)
		return false
	}
}

// Start runs the flush workers until ctx is cancelled, then stops accepting
// entries and drains what is still buffered with a bounded timeout.
func (w *Writer) Start(ctx context.Context) error {
	slog.Info("[Journal] Starting writer",
		"batch_size", w.opts.BatchSize,
		"workers", w.opts.WorkerCount,
		"buffer_size", w.opts.BufferSize,
		"flush_interval", w.opts.FlushInterval,
	)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < w.opts.WorkerCount; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			w.runWorker(ctx, stop, id)
		}(i)
	}

	<-ctx.Done()
	w.mu.Lock()
	w.stopped = true
	w.mu.Unlock()
	close(stop)
	wg.Wait()

	slog.Info("[Journal] Writer stopped")
	return nil
}

func (w *Writer) runWorker(ctx context.Context, stop <-chan struct{}, id int) {
	ticker := time.NewTicker(w.opts.FlushInterval)
	defer ticker.Stop()

	batch := w.newBatch()
	for {
		select {
		case e := <-w.entries:
			batch = append(batch, e)
			if len(batch) >= w.opts.BatchSize {
				batch = w.flush(ctx, id, batch)
			}
		case <-ticker.C:
			batch = w.flush(ctx, id, batch)
		case <-stop:
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownDrainTimeout)
			defer cancel()

			slog.Info("[Journal] Running final drain before shutdown...", "worker", id)
			w.drain(shutdownCtx, id, batch)
			return
		}
	}
}

// drain flushes batch plus everything left in the buffer.
func (w *Writer) drain(ctx context.Context, id int, batch []*storage.JournalEntry) {
	for {
		select {
		case e := <-w.entries:
			batch = append(batch, e)
			if len(batch) >= w.opts.BatchSize {
				batch = w.flush(ctx, id, batch)
			}
		default:
			w.flush(ctx, id, batch)
			return
		}
	}
}

// flush writes batch and returns a fresh one. A failed batch is logged and
// counted, not retried.
func (w *Writer) flush(ctx context.Context, id int, batch []*storage.JournalEntry) []*storage.JournalEntry {
	if len(batch) == 0 {
		return batch
	}

	if err := w.store.SaveEntries(ctx, batch); err != nil {
		metrics.JournalEntries.WithLabelValues("error").Add(float64(len(batch)))
		slog.Error("[Journal] Flush failed",
			"error", err,
			"worker", id,
			"entries", len(batch),
		)
		return w.newBatch()
	}

	metrics.JournalEntries.WithLabelValues("ok").Add(float64(len(batch)))
	slog.Debug("[Journal] Flushed", "worker", id, "entries", len(batch))
	return w.newBatch()
}

func (w *Writer) newBatch() []*storage.JournalEntry {
	return make([]*storage.JournalEntry, 0, w.opts.BatchSize)
}
