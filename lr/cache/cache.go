/*
Package cache provides caches for the results of grammar analysis and for
the results of parsing expressions.

Four kinds of analysis caches are provided:

■ Memory memoizes results in a map.

■ Null never stores anything and reports every key as absent.

■ Void never stores anything and treats every retrieval as a programming error.

■ Store delegates to a backing store, e.g. an LRU store.

Keys are computed by the analyzer (see lr.KeyFunc). During development it is
useful to include the modification time of a grammar's source file in the key,
see SourceKey.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cache

import (
	"errors"
	"fmt"
	"sync"

	"github.com/npillmayer/lalr/lr"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lalr.cache'.
func tracer() tracing.Trace {
	return tracing.Select("lalr.cache")
}

// ErrNotCached is returned when retrieving a key which is not present.
var ErrNotCached = errors.New("analysis result is not cached")

// ErrVoidCache is returned when retrieving from a Void cache.
var ErrVoidCache = errors.New("void cache does not store anything")

var (
	_ lr.AnalysisCache = (*Memory)(nil)
	_ lr.AnalysisCache = Null{}
	_ lr.AnalysisCache = Void{}
	_ lr.AnalysisCache = (*Store)(nil)
)

// --- Memory ----------------------------------------------------------------

// Memory is a memoizing in-memory cache. It is safe for concurrent use.
type Memory struct {
	mx      sync.RWMutex
	results map[string]*lr.AnalysisResult
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{results: make(map[string]*lr.AnalysisResult)}
}

// Has is part of interface lr.AnalysisCache.
func (m *Memory) Has(key string) bool {
	m.mx.RLock()
	defer m.mx.RUnlock()
	_, ok := m.results[key]
	return ok
}

// Get is part of interface lr.AnalysisCache.
func (m *Memory) Get(key string) (*lr.AnalysisResult, error) {
	m.mx.RLock()
	defer m.mx.RUnlock()
	r, ok := m.results[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotCached, key)
	}
	return r, nil
}

// Set is part of interface lr.AnalysisCache.
func (m *Memory) Set(key string, result *lr.AnalysisResult) error {
	m.mx.Lock()
	defer m.mx.Unlock()
	m.results[key] = result
	return nil
}

// Clear removes the entries for keys, or all entries if no key is given.
func (m *Memory) Clear(keys ...string) {
	m.mx.Lock()
	defer m.mx.Unlock()
	if len(keys) == 0 {
		m.results = make(map[string]*lr.AnalysisResult)
		return
	}
	for _, key := range keys {
		delete(m.results, key)
	}
}

// --- Null ------------------------------------------------------------------

// Null is a cache which never stores anything. Every key is absent.
type Null struct{}

// Has always returns false.
func (Null) Has(string) bool { return false }

// Get always fails with ErrNotCached.
func (Null) Get(key string) (*lr.AnalysisResult, error) {
	return nil, fmt.Errorf("%w: %s", ErrNotCached, key)
}

// Set does nothing.
func (Null) Set(string, *lr.AnalysisResult) error { return nil }

// --- Void ------------------------------------------------------------------

// Void is a cache which never stores anything. Other than Null, retrieving
// an entry is considered a usage error.
type Void struct{}

// Has always returns false.
func (Void) Has(string) bool { return false }

// Get always fails with ErrVoidCache.
func (Void) Get(string) (*lr.AnalysisResult, error) {
	tracer().Errorf("void cache queried")
	return nil, ErrVoidCache
}

// Set does nothing.
func (Void) Set(string, *lr.AnalysisResult) error { return nil }

// --- Store -----------------------------------------------------------------

// Backend is a general purpose key/value store.
type Backend interface {
	Has(key string) bool
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}) error
}

// Store is an analysis cache delegating to a backing store.
type Store struct {
	backend Backend
	prefix  string
}

// NewStore creates an analysis cache on top of a backing store. Keys are
// prefixed by prefix, which allows several caches to share a backend.
func NewStore(backend Backend, prefix string) *Store {
	return &Store{backend: backend, prefix: prefix}
}

// Has is part of interface lr.AnalysisCache.
func (s *Store) Has(key string) bool {
	return s.backend.Has(s.prefix + key)
}

// Get is part of interface lr.AnalysisCache. It fails if the key is absent or
// if the stored value is not an analysis result.
func (s *Store) Get(key string) (*lr.AnalysisResult, error) {
	v, ok := s.backend.Get(s.prefix + key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotCached, key)
	}
	r, ok := v.(*lr.AnalysisResult)
	if !ok {
		return nil, fmt.Errorf("%w: value for %s is of type %T", ErrNotCached, key, v)
	}
	return r, nil
}

// Set is part of interface lr.AnalysisCache.
func (s *Store) Set(key string, result *lr.AnalysisResult) error {
	return s.backend.Set(s.prefix+key, result)
}
