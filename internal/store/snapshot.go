// Package store holds the working record set. There is deliberately no
// persistence: each load fully replaces the previous snapshot and a failed
// load must never leave a partial one behind.
package store

import (
	"sync"
	"time"

	"ados/internal"
)

type Snapshot struct {
	mu       sync.RWMutex
	records  []internal.DocumentRecord
	source   string
	loadedAt time.Time
}

func New() *Snapshot {
	return &Snapshot{}
}

// Replace installs a new record set. Callers only invoke it after a fully
// successful load, so overlapping loads resolve to last-write-wins.
func (s *Snapshot) Replace(records []internal.DocumentRecord, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	s.source = source
	s.loadedAt = time.Now()
}

// Records returns the current set. The slice is shared; records are treated
// as immutable once loaded.
func (s *Snapshot) Records() []internal.DocumentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

type Info struct {
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loadedAt"`
	Count    int       `json:"count"`
}

func (s *Snapshot) Info() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Info{Source: s.source, LoadedAt: s.loadedAt, Count: len(s.records)}
}
