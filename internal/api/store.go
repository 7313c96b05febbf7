package api

import (
	"sync"

	"github.com/kumarlokesh/prefix-tree/internal/trie"
)

// Store guards a trie for use by concurrent HTTP handlers.
type Store struct {
	mu sync.RWMutex
	t  *trie.Trie
}

// Stats describes the shape of the stored trie
type Stats struct {
	Words    int `json:"words"`
	Nodes    int `json:"nodes"`
	MaxDepth int `json:"max_depth"`
}

// NewStore creates a store over a fresh trie seeded with words
func NewStore(words ...string) (*Store, error) {
	t := trie.New()
	if err := t.InsertAll(words...); err != nil {
		return nil, err
	}
	return &Store{t: t}, nil
}

// Insert adds word, reporting false once the store is closed
func (s *Store) Insert(word string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.Insert(word)
}

// InsertAll adds words in order
func (s *Store) InsertAll(words ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.InsertAll(words...)
}

// Lookup returns the sorted words starting with prefix
func (s *Store) Lookup(prefix string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.t.KeysWithPrefix(prefix)
}

// Contains reports whether word is stored
func (s *Store) Contains(word string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.t.Contains(word)
}

// HasPrefix reports whether prefix resolves to a path in the trie
func (s *Store) HasPrefix(prefix string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.t.HasPrefix(prefix)
}

// Stats returns word and node counts
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Words:    s.t.Len(),
		Nodes:    s.t.NodeCount(),
		MaxDepth: s.t.MaxDepth(),
	}
}

// Close destroys the underlying trie
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.t.Destroy()
}
