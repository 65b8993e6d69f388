package publisher

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medtrust/internal/audit"
	"medtrust/internal/audit/store/memory"
)

type blockingSink struct {
	release chan struct{}
	store   *memory.InMemoryStore
}

func (b *blockingSink) Append(ctx context.Context, e audit.Entry) error {
	<-b.release
	return b.store.Append(ctx, e)
}

type failingSink struct{}

func (failingSink) Append(context.Context, audit.Entry) error {
	return errors.New("sink down")
}

func TestPublisher_SyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	err := pub.Emit(context.Background(), audit.Entry{Actor: "Dr. X", Action: audit.ActionNormalInNetwork, Status: audit.StatusGranted})
	require.NoError(t, err)

	entries, err := pub.List(context.Background(), "Dr. X")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.ActionNormalInNetwork, entries[0].Action)
	assert.NotEqual(t, uuid.Nil, entries[0].ID)
}

func TestPublisher_SyncModeReturnsSinkError(t *testing.T) {
	pub := NewPublisher(failingSink{})
	defer pub.Close()

	err := pub.Emit(context.Background(), audit.Entry{Actor: "Dr. X"})
	assert.EqualError(t, err, "sink down")

	_, err = pub.List(context.Background(), "Dr. X")
	assert.Error(t, err, "failing sink is not queryable")
}

func TestPublisher_AsyncDrainsOnClose(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(100))

	for range 10 {
		require.NoError(t, pub.Emit(context.Background(), audit.Entry{Actor: "Dr. X", Action: audit.ActionEmergency}))
	}
	pub.Close()

	entries, err := store.ListByActor(context.Background(), "Dr. X")
	require.NoError(t, err)
	assert.Len(t, entries, 10, "all entries should be drained on close")

	assert.ErrorIs(t, pub.Emit(context.Background(), audit.Entry{Actor: "Dr. X"}), ErrClosed)
	pub.Close()
}

func TestPublisher_BufferFull(t *testing.T) {
	sink := &blockingSink{release: make(chan struct{}), store: memory.NewInMemoryStore()}
	pub := NewPublisher(sink, WithAsyncBuffer(1))

	ctx := context.Background()
	// The worker takes the first entry and blocks; the second fills the buffer.
	require.NoError(t, pub.Emit(ctx, audit.Entry{Actor: "a"}))
	require.Eventually(t, func() bool {
		return pub.Emit(ctx, audit.Entry{Actor: "b"}) == nil
	}, time.Second, 5*time.Millisecond)

	err := pub.Emit(ctx, audit.Entry{Actor: "c"})
	assert.ErrorIs(t, err, ErrBufferFull)
	assert.EqualError(t, err, "audit buffer full")

	close(sink.release)
	pub.Close()
}

func TestPublisher_ConcurrentEmit(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(64))

	var wg sync.WaitGroup
	for range 32 {
		wg.Go(func() {
			_ = pub.Emit(context.Background(), audit.Entry{Actor: "Dr. X"})
		})
	}
	wg.Wait()
	pub.Close()

	entries, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 32)
}

func TestPublisher_SetsTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	fixed := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	pub := NewPublisher(store, WithClock(func() time.Time { return fixed }))
	defer pub.Close()

	require.NoError(t, pub.Emit(context.Background(), audit.Entry{Actor: "Dr. X"}))

	custom := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, pub.Emit(context.Background(), audit.Entry{Actor: "Dr. X", Timestamp: custom}))

	entries, err := pub.List(context.Background(), "Dr. X")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, fixed, entries[0].Timestamp)
	assert.Equal(t, custom, entries[1].Timestamp)
}

func TestPublisher_SealsJustification(t *testing.T) {
	sealer, err := audit.NewSealer(bytes.Repeat([]byte{1}, 32))
	require.NoError(t, err)

	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithSealer(sealer))
	defer pub.Close()

	require.NoError(t, pub.Emit(context.Background(), audit.Entry{Actor: "Dr. X", Justification: "patient in shock"}))
	require.NoError(t, pub.Emit(context.Background(), audit.Entry{Actor: "Dr. X"}))

	entries, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.True(t, entries[0].Sealed)
	assert.NotContains(t, entries[0].Justification, "shock")
	plain, err := sealer.Open(entries[0].Justification, entries[0].ID.String())
	require.NoError(t, err)
	assert.Equal(t, "patient in shock", plain)

	assert.False(t, entries[1].Sealed, "nothing to seal")
}

func TestPublisher_AsyncSinkErrorIsLogged(t *testing.T) {
	var logs bytes.Buffer
	pub := NewPublisher(failingSink{}, WithAsyncBuffer(4), WithLogger(newTestLogger(&logs)))

	require.NoError(t, pub.Emit(context.Background(), audit.Entry{Actor: "Dr. X", Action: audit.ActionEmergency}))
	pub.Close()

	assert.Contains(t, logs.String(), "audit entry dropped")
}
