package lr

import (
	"sync"
)

// AnalysisResult is the outcome of analyzing a grammar: the LALR(1) automaton,
// the parse table and the conflicts which have been resolved by the
// grammar's conflict mode. Results are immutable and may be shared.
type AnalysisResult struct {
	automaton *Automaton
	table     *ParseTable
	conflicts []Conflict
}

// NewAnalysisResult bundles an automaton, a parse table and a list of resolved conflicts.
func NewAnalysisResult(A *Automaton, T *ParseTable, conflicts []Conflict) *AnalysisResult {
	return &AnalysisResult{automaton: A, table: T, conflicts: conflicts}
}

// Automaton returns the LALR(1) automaton.
func (r *AnalysisResult) Automaton() *Automaton {
	return r.automaton
}

// ParseTable returns the ACTION and GOTO tables.
func (r *AnalysisResult) ParseTable() *ParseTable {
	return r.table
}

// Conflicts returns the resolved conflicts, in the order they were detected.
func (r *AnalysisResult) Conflicts() []Conflict {
	return r.conflicts
}

// AnalysisCache is a cache for analysis results, keyed by grammar identity.
// Package lr/cache provides implementations.
type AnalysisCache interface {
	Has(key string) bool
	Get(key string) (*AnalysisResult, error)
	Set(key string, result *AnalysisResult) error
}

// KeyFunc computes the cache key for a grammar.
type KeyFunc func(*Grammar) (string, error)

// IdentityKey is the default KeyFunc, using Grammar.Identity.
func IdentityKey(g *Grammar) (string, error) {
	return g.Identity(), nil
}

// Analyzer analyzes grammars, i.e. builds the LALR(1) automaton and the parse
// table. An analyzer may be shared between goroutines; a grammar will be
// analyzed at most once at a time, concurrent requests for the same grammar
// wait for the running analysis and share its result.
type Analyzer struct {
	cache    AnalysisCache
	keyFunc  KeyFunc
	mx       sync.Mutex
	inflight map[string]*analysisCall
}

// analysisCall is an analysis in progress.
type analysisCall struct {
	done   chan struct{}
	result *AnalysisResult
	err    error
}

// AnalyzerOption configures an analyzer.
type AnalyzerOption func(*Analyzer)

// WithCache sets a cache for analysis results.
func WithCache(c AnalysisCache) AnalyzerOption {
	return func(a *Analyzer) {
		a.cache = c
	}
}

// WithKeyFunc sets the function computing cache keys for grammars.
func WithKeyFunc(f KeyFunc) AnalyzerOption {
	return func(a *Analyzer) {
		if f != nil {
			a.keyFunc = f
		}
	}
}

// NewAnalyzer creates an analyzer. Without a cache option, results are not cached.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		keyFunc:  IdentityKey,
		inflight: make(map[string]*analysisCall),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze returns the analysis result for g, either from the cache or by
// analyzing g. Results of failed analyses are never cached.
func (a *Analyzer) Analyze(g *Grammar) (*AnalysisResult, error) {
	key, err := a.keyFunc(g)
	if err != nil {
		return nil, err
	}
	a.mx.Lock()
	if a.cache != nil && a.cache.Has(key) {
		result, err := a.cache.Get(key)
		if err == nil {
			a.mx.Unlock()
			tracer().Debugf("analysis of %s found in cache", g.Name)
			return result, nil
		}
		tracer().Debugf("cache entry for %s vanished: %v", g.Name, err)
	}
	if call, ok := a.inflight[key]; ok {
		a.mx.Unlock()
		tracer().Debugf("waiting for running analysis of %s", g.Name)
		<-call.done
		return call.result, call.err
	}
	call := &analysisCall{done: make(chan struct{})}
	a.inflight[key] = call
	a.mx.Unlock()
	//
	call.result, call.err = Analyze(g)
	//
	a.mx.Lock()
	if call.err == nil && a.cache != nil {
		if err := a.cache.Set(key, call.result); err != nil {
			tracer().Errorf("cannot cache analysis of %s: %v", g.Name, err)
		}
	}
	delete(a.inflight, key)
	a.mx.Unlock()
	close(call.done)
	return call.result, call.err
}

// Analyze builds the LALR(1) automaton and the parse table for g, without
// caching.
func Analyze(g *Grammar) (*AnalysisResult, error) {
	tracer().Debugf("=== analyze %s ===================================", g.Name)
	A := buildAutomaton(g)
	T, conflicts, err := buildParseTable(A, g)
	if err != nil {
		tracer().Errorf("analysis of %s failed: %v", g.Name, err)
		return nil, err
	}
	return NewAnalysisResult(A, T, conflicts), nil
}
