package history

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/krainode/rpcbot/logger"
	"github.com/krainode/rpcbot/model"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// Capacity bounds the recent-activity log.
const Capacity = 25

// Sink persists the serialized log.
type Sink interface {
	SaveRecent(ctx context.Context, data []byte) error
	RemoveRecent(ctx context.Context) error
}

// Log is the newest-first list of dispatch attempts. Entries are never
// mutated once recorded.
type Log struct {
	mu      sync.RWMutex
	entries []model.DispatchRecord
	sink    Sink
}

// New builds a log seeded from previously persisted data. Malformed data is
// ignored.
func New(sink Sink, persisted []byte) *Log {
	return &Log{entries: Rehydrate(persisted), sink: sink}
}

// Rehydrate decodes a persisted log, truncated to Capacity. Anything that is
// not a JSON array of records yields an empty log.
func Rehydrate(data []byte) []model.DispatchRecord {
	if len(data) == 0 || !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsArray() {
		return nil
	}
	entries, err := model.UnmarshalDispatchRecords(data)
	if err != nil {
		log.Warn().Err(err).Msg("failed to parse stored recents")
		return nil
	}
	if len(entries) > Capacity {
		entries = entries[:Capacity]
	}
	return entries
}

// NewRecord stamps an attempt with the wall clock. Negative latencies are
// clamped to zero.
func NewRecord(endpointURL, method string, ok bool, latency time.Duration, at time.Time) model.DispatchRecord {
	ms := latency.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	return model.DispatchRecord{
		EndpointURL: endpointURL,
		Method:      method,
		Timestamp:   at.UnixMilli(),
		OK:          ok,
		LatencyMs:   ms,
	}
}

// Record prepends entry and drops the oldest beyond Capacity. Entries with
// no endpoint are not recorded. The sink is written under the lock so the
// stored copy always matches the newest in-memory list.
func (l *Log) Record(ctx context.Context, entry model.DispatchRecord) bool {
	if entry.EndpointURL == "" {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	next := make([]model.DispatchRecord, 0, min(len(l.entries)+1, Capacity))
	next = append(next, entry)
	next = append(next, l.entries...)
	if len(next) > Capacity {
		next = next[:Capacity]
	}
	l.entries = next
	data, err := json.Marshal(next)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode recents")
		return true
	}
	l.persist(ctx, data)
	return true
}

// Entries returns a copy, newest first.
func (l *Log) Entries() []model.DispatchRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.DispatchRecord, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Clear empties the log and removes the persisted copy.
func (l *Log) Clear(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil

	if l.sink == nil {
		return
	}
	if err := l.sink.RemoveRecent(ctx); err != nil {
		log.Error().Func(logger.WithCategory(logger.CategoryStore)).Err(err).Msg("failed to remove recents")
	}
}

func (l *Log) persist(ctx context.Context, data []byte) {
	if l.sink == nil {
		return
	}
	if err := l.sink.SaveRecent(ctx, data); err != nil {
		log.Error().Func(logger.WithCategory(logger.CategoryStore)).Err(err).Msg("failed to save recents")
	}
}
