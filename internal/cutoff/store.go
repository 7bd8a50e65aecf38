package cutoff

import (
	"sync"
	"sync/atomic"
)

// Store is the single-writer/many-reader handle to the active generation.
// Swap installs a wholly built index in one atomic pointer store; readers
// that already obtained the previous generation keep a consistent snapshot.
type Store struct {
	active atomic.Pointer[Index]

	mu  sync.Mutex
	gen uint64
}

func NewStore() *Store {
	return &Store{}
}

// Swap makes idx the active generation and returns its generation number.
func (s *Store) Swap(idx *Index) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.active.Store(idx)
	return s.gen
}

// Current returns the active generation, or ErrNotReady before the first
// successful build.
func (s *Store) Current() (*Index, error) {
	idx := s.active.Load()
	if idx == nil {
		return nil, ErrNotReady
	}
	return idx, nil
}

func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}
