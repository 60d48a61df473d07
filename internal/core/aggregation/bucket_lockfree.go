package aggregation

import "sync/atomic"

// LockFreeBucket publishes its state as an immutable *Snapshot and updates it
// with an optimistic read-compute-CAS loop. A nil pointer is the empty state,
// so the zero value is ready to use.
//
// Readers never block: Snapshot is a single atomic load. Writers retry only
// when another writer replaced the snapshot between their load and their CAS.
// When two writers race with different timestamps, the last successful CAS
// wins and every add sequenced after it is folded on top of it.
type LockFreeBucket struct {
	state atomic.Pointer[Snapshot]
}

// NewLockFreeBucket returns an empty lock-free bucket.
func NewLockFreeBucket() *LockFreeBucket {
	return &LockFreeBucket{}
}

func (b *LockFreeBucket) Add(o Order) {
	for {
		cur := b.state.Load()
		var base Snapshot
		if cur != nil {
			base = *cur
		}

		next, evicted := base.add(o)
		if b.state.CompareAndSwap(cur, &next) {
			if evicted != 0 {
				logEviction(evicted, o.Timestamp)
			}
			return
		}
	}
}

func (b *LockFreeBucket) Reset() {
	b.state.Store(nil)
}

func (b *LockFreeBucket) Snapshot() Snapshot {
	if cur := b.state.Load(); cur != nil {
		return *cur
	}
	return Snapshot{}
}
