package store

import (
	"sort"
	"time"

	"github.com/i474232898/weatherman/internal/weather"
)

// MemoryStore groups daily readings by (year, month). It is immutable once
// built, so any number of goroutines may query it without locking.
type MemoryStore struct {
	// key: year/month, value: readings in insertion order
	data map[weather.MonthKey][]weather.Reading
}

var (
	_ weather.Store       = (*MemoryStore)(nil)
	_ weather.MonthLister = (*MemoryStore)(nil)
)

// Get returns a copy of the readings stored for year/month. The second value
// is false when no source contributed that month.
func (s *MemoryStore) Get(year int, month time.Month) ([]weather.Reading, bool) {
	readings, ok := s.data[weather.MonthKey{Year: year, Month: month}]
	if !ok {
		return nil, false
	}
	out := make([]weather.Reading, len(readings))
	copy(out, readings)
	return out, true
}

// Len returns the number of months held.
func (s *MemoryStore) Len() int {
	return len(s.data)
}

// Keys returns every stored month in chronological order.
func (s *MemoryStore) Keys() []weather.MonthKey {
	keys := make([]weather.MonthKey, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys
}

// Builder accumulates readings and produces a MemoryStore. A Builder is not
// safe for concurrent use.
type Builder struct {
	data map[weather.MonthKey][]weather.Reading
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{data: make(map[weather.MonthKey][]weather.Reading)}
}

// Add appends a dated reading to its month. Undated readings are rejected
// with false since they carry no key.
func (b *Builder) Add(r weather.Reading) bool {
	key, ok := r.Key()
	if !ok {
		return false
	}
	b.data[key] = append(b.data[key], r)
	return true
}

// AddMonth appends readings to key regardless of their own dates.
func (b *Builder) AddMonth(key weather.MonthKey, readings ...weather.Reading) {
	b.data[key] = append(b.data[key], readings...)
}

// Build returns the store. The Builder must not be used afterwards.
func (b *Builder) Build() *MemoryStore {
	s := &MemoryStore{data: b.data}
	b.data = nil
	return s
}
