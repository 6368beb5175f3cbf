package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// LRUStore is a Backend holding a fixed number of entries, evicting the
// least recently used. It is safe for concurrent use.
type LRUStore struct {
	lru *lru.Cache[string, interface{}]
}

var _ Backend = (*LRUStore)(nil)

// NewLRUStore creates a store for size entries.
func NewLRUStore(size int) (*LRUStore, error) {
	c, err := lru.New[string, interface{}](size)
	if err != nil {
		return nil, err
	}
	return &LRUStore{lru: c}, nil
}

// Has is part of interface Backend.
func (s *LRUStore) Has(key string) bool {
	return s.lru.Contains(key)
}

// Get is part of interface Backend.
func (s *LRUStore) Get(key string) (interface{}, bool) {
	return s.lru.Get(key)
}

// Set is part of interface Backend.
func (s *LRUStore) Set(key string, value interface{}) error {
	if s.lru.Add(key, value) {
		tracer().Debugf("LRU store evicted an entry for %q", key)
	}
	return nil
}

// Len returns the number of entries.
func (s *LRUStore) Len() int {
	return s.lru.Len()
}

// --- Expression cache ------------------------------------------------------

// Expressions caches parse results for input strings. It implements
// lalr1.ExpressionCache.
type Expressions struct {
	store *LRUStore
}

// NewExpressions creates an expression cache for size inputs.
func NewExpressions(size int) (*Expressions, error) {
	s, err := NewLRUStore(size)
	if err != nil {
		return nil, err
	}
	return &Expressions{store: s}, nil
}

// Has reports if a result for input is cached.
func (e *Expressions) Has(input string) bool {
	return e.store.Has(input)
}

// Get returns the cached result for input.
func (e *Expressions) Get(input string) (interface{}, bool) {
	return e.store.Get(input)
}

// Set caches the result for input.
func (e *Expressions) Set(input string, value interface{}) {
	_ = e.store.Set(input, value)
}
