package aggregation

import "sync"

// SynchronousBucket guards its state with a mutex held only for the duration
// of one in-place update or copy. The zero value is ready to use.
type SynchronousBucket struct {
	mu    sync.Mutex
	state Snapshot
}

// NewSynchronousBucket returns an empty mutex-guarded bucket.
func NewSynchronousBucket() *SynchronousBucket {
	return &SynchronousBucket{}
}

func (b *SynchronousBucket) Add(o Order) {
	b.mu.Lock()
	next, evicted := b.state.add(o)
	b.state = next
	b.mu.Unlock()

	if evicted != 0 {
		logEviction(evicted, o.Timestamp)
	}
}

func (b *SynchronousBucket) Reset() {
	b.mu.Lock()
	b.state = Snapshot{}
	b.mu.Unlock()
}

func (b *SynchronousBucket) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
