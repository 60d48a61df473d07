package aggregation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func eachModel(t *testing.T, fn func(t *testing.T, newBucket NewBucketFunc)) {
	t.Helper()
	for _, name := range ConcurrencyModels() {
		newBucket, err := BucketFactory(ConcurrencyModel(name))
		require.NoError(t, err)
		t.Run(name, func(t *testing.T) {
			fn(t, newBucket)
		})
	}
}

func order(amount string, ts int64) Order {
	return Order{Amount: decimal.RequireFromString(amount), Timestamp: ts}
}

func requireSnapshot(t *testing.T, s Snapshot, owner, count int64, sum, min, max string) {
	t.Helper()
	require.Equal(t, owner, s.Owner, "owner")
	require.Equal(t, count, s.Count, "count")
	require.True(t, decimal.RequireFromString(sum).Equal(s.Sum), "sum want=%s got=%s", sum, s.Sum)
	require.True(t, decimal.RequireFromString(min).Equal(s.Min), "min want=%s got=%s", min, s.Min)
	require.True(t, decimal.RequireFromString(max).Equal(s.Max), "max want=%s got=%s", max, s.Max)
}

func TestBucket_EmptySnapshot(t *testing.T) {
	eachModel(t, func(t *testing.T, newBucket NewBucketFunc) {
		s := newBucket().Snapshot()
		require.True(t, s.Empty())
		require.Equal(t, int64(0), s.Owner)
	})
}

func TestBucket_FoldsSameTimestamp(t *testing.T) {
	eachModel(t, func(t *testing.T, newBucket NewBucketFunc) {
		b := newBucket()
		b.Add(order("100.00", 1000))
		b.Add(order("200.00", 1000))
		b.Add(order("50.00", 1000))

		requireSnapshot(t, b.Snapshot(), 1000, 3, "350", "50", "200")
	})
}

func TestBucket_ReplacesStaleOwner(t *testing.T) {
	eachModel(t, func(t *testing.T, newBucket NewBucketFunc) {
		b := newBucket()
		b.Add(order("100.00", 1000))
		b.Add(order("300.00", 1000))
		b.Add(order("7.25", 61000))

		requireSnapshot(t, b.Snapshot(), 61000, 1, "7.25", "7.25", "7.25")
	})
}

func TestBucket_ResetRestoresEmptyState(t *testing.T) {
	eachModel(t, func(t *testing.T, newBucket NewBucketFunc) {
		b := newBucket()
		b.Add(order("100.00", 1000))
		b.Reset()
		require.True(t, b.Snapshot().Empty())
		require.Equal(t, int64(0), b.Snapshot().Owner)

		// A reset must not leave a zero min/max behind: the next order defines both.
		b.Add(order("-5.00", 2000))
		b.Add(order("-1.00", 2000))
		requireSnapshot(t, b.Snapshot(), 2000, 2, "-6", "-5", "-1")
	})
}

func TestBucket_ResetWhenEmptyIsNoop(t *testing.T) {
	eachModel(t, func(t *testing.T, newBucket NewBucketFunc) {
		b := newBucket()
		b.Reset()
		b.Reset()
		require.True(t, b.Snapshot().Empty())
	})
}

func TestBucket_SnapshotIsACopy(t *testing.T) {
	eachModel(t, func(t *testing.T, newBucket NewBucketFunc) {
		b := newBucket()
		b.Add(order("10.00", 1000))
		before := b.Snapshot()

		b.Add(order("20.00", 1000))
		requireSnapshot(t, before, 1000, 1, "10", "10", "10")
		requireSnapshot(t, b.Snapshot(), 1000, 2, "30", "10", "20")
	})
}

func TestBucket_ZeroValuesAreUsable(t *testing.T) {
	var lf LockFreeBucket
	lf.Add(order("1.50", 5))
	requireSnapshot(t, lf.Snapshot(), 5, 1, "1.5", "1.5", "1.5")

	var locked SynchronousBucket
	locked.Add(order("1.50", 5))
	requireSnapshot(t, locked.Snapshot(), 5, 1, "1.5", "1.5", "1.5")
}

func TestBucketFactory(t *testing.T) {
	_, err := BucketFactory(LockFree)
	require.NoError(t, err)
	_, err = BucketFactory(Synchronous)
	require.NoError(t, err)

	_, err = BucketFactory("optimistic")
	require.ErrorIs(t, err, ErrUnknownConcurrencyModel)

	require.True(t, ValidConcurrencyModel("lock-free"))
	require.True(t, ValidConcurrencyModel("synchronous"))
	require.False(t, ValidConcurrencyModel(""))
	require.Equal(t, []string{"lock-free", "synchronous"}, ConcurrencyModels())
}
