package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/krainode/rpcbot/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSink struct {
	data    []byte
	removed int
	err     error
}

func (s *memSink) SaveRecent(_ context.Context, data []byte) error {
	if s.err != nil {
		return s.err
	}
	s.data = append([]byte(nil), data...)
	return nil
}

func (s *memSink) RemoveRecent(_ context.Context) error {
	s.removed++
	s.data = nil
	return s.err
}

func record(i int) model.DispatchRecord {
	return model.DispatchRecord{
		EndpointURL: "https://rpc.example",
		Method:      fmt.Sprintf("m%d", i),
		Timestamp:   int64(i),
		OK:          i%2 == 0,
	}
}

func TestRecordBoundAndOrder(t *testing.T) {
	sink := &memSink{}
	l := New(sink, nil)
	ctx := context.Background()

	for i := 0; i < 40; i++ {
		require.True(t, l.Record(ctx, record(i)))
		assert.LessOrEqual(t, l.Len(), Capacity)
		assert.Equal(t, fmt.Sprintf("m%d", i), l.Entries()[0].Method)
	}

	entries := l.Entries()
	require.Len(t, entries, Capacity)
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].Timestamp, entries[i].Timestamp)
	}
	assert.Equal(t, "m15", entries[Capacity-1].Method)

	persisted := Rehydrate(sink.data)
	assert.Equal(t, entries, persisted)
}

func TestRecordSkipsMissingEndpoint(t *testing.T) {
	l := New(nil, nil)
	assert.False(t, l.Record(context.Background(), model.DispatchRecord{Method: "eth_chainId"}))
	assert.Zero(t, l.Len())
}

func TestEntriesAreCopies(t *testing.T) {
	l := New(nil, nil)
	l.Record(context.Background(), record(1))
	got := l.Entries()
	got[0].Method = "changed"
	assert.Equal(t, "m1", l.Entries()[0].Method)
}

func TestClearRemovesPersistedKey(t *testing.T) {
	sink := &memSink{}
	l := New(sink, nil)
	l.Record(context.Background(), record(1))
	require.NotNil(t, sink.data)

	l.Clear(context.Background())
	assert.Zero(t, l.Len())
	assert.Equal(t, 1, sink.removed)
	assert.Nil(t, sink.data)
}

func TestPersistFailureIsNotFatal(t *testing.T) {
	sink := &memSink{err: errors.New("down")}
	l := New(sink, nil)
	assert.True(t, l.Record(context.Background(), record(1)))
	assert.Equal(t, 1, l.Len())
	l.Clear(context.Background())
	assert.Zero(t, l.Len())
}

func TestRehydrate(t *testing.T) {
	assert.Nil(t, Rehydrate(nil))
	assert.Nil(t, Rehydrate([]byte("{not json")))
	assert.Nil(t, Rehydrate([]byte(`{"endpointUrl":"x"}`)))
	assert.Nil(t, Rehydrate([]byte(`[1,2]`)))

	many := make([]model.DispatchRecord, 30)
	for i := range many {
		many[i] = record(i)
	}
	data, err := json.Marshal(many)
	require.NoError(t, err)
	got := Rehydrate(data)
	require.Len(t, got, Capacity)
	assert.Equal(t, "m0", got[0].Method)

	l := New(nil, data)
	assert.Equal(t, Capacity, l.Len())
}

func TestNewRecord(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	r := NewRecord("https://x", "eth_chainId", true, 1500*time.Millisecond, at)
	assert.Equal(t, model.DispatchRecord{EndpointURL: "https://x", Method: "eth_chainId", Timestamp: 1700000000000, OK: true, LatencyMs: 1500}, r)

	r = NewRecord("https://x", "m", false, -time.Second, at)
	assert.Zero(t, r.LatencyMs)
}

func TestRecordJSONShape(t *testing.T) {
	data, err := json.Marshal(NewRecord("https://x", "m", true, 12*time.Millisecond, time.UnixMilli(5)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"endpointUrl":"https://x","method":"m","timestamp":5,"ok":true,"latency":12}`, string(data))
}

// slowSink holds the first save until release is closed.
type slowSink struct {
	mu      sync.Mutex
	saves   int
	data    []byte
	started chan struct{}
	release chan struct{}
}

func (s *slowSink) SaveRecent(_ context.Context, data []byte) error {
	s.mu.Lock()
	s.saves++
	first := s.saves == 1
	s.mu.Unlock()
	if first {
		close(s.started)
		<-s.release
	}
	s.mu.Lock()
	s.data = append([]byte(nil), data...)
	s.mu.Unlock()
	return nil
}

func (s *slowSink) RemoveRecent(_ context.Context) error { return nil }

func TestConcurrentRecordsPersistNewest(t *testing.T) {
	sink := &slowSink{started: make(chan struct{}), release: make(chan struct{})}
	l := New(sink, nil)

	a := record(1)
	a.EndpointURL = "https://a"
	b := record(2)
	b.EndpointURL = "https://b"

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		l.Record(context.Background(), a)
	}()
	<-sink.started
	go func() {
		defer wg.Done()
		l.Record(context.Background(), b)
	}()
	time.Sleep(20 * time.Millisecond)
	close(sink.release)
	wg.Wait()

	sink.mu.Lock()
	stored := Rehydrate(sink.data)
	sink.mu.Unlock()
	require.Len(t, stored, 2)
	assert.Equal(t, "https://b", stored[0].EndpointURL)
	assert.Equal(t, "https://a", stored[1].EndpointURL)
	assert.Equal(t, l.Entries(), stored)
}
