// Package cache is a keyed cache of remote query results. Views read through
// it instead of refetching, and mutations propagate by invalidating the keys
// whose data they could have changed. Invalidation only marks entries stale -
// it never fetches - which decouples write coordination from fetch timing.
package cache

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Kind is the resource kind half of a cache key.
type Kind string

const (
	KindProduct        Kind = "product"
	KindProducts       Kind = "products"
	KindLatestProducts Kind = "latest-products"
	KindHomeProducts   Kind = "home-products"
	KindMyImports      Kind = "my-imports"
	KindMyExports      Kind = "my-exports"
)

// Key identifies one logical query: a resource kind plus its parameter, e.g.
// {product, <id>} or {products, <search term>}. Parameterless queries leave
// Arg empty.
type Key struct {
	Kind Kind
	Arg  string
}

func (k Key) String() string {
	if k.Arg == "" {
		return string(k.Kind)
	}
	return string(k.Kind) + "/" + k.Arg
}

// State is the freshness of a cache entry.
type State int

const (
	// StateLoading means a fetch for this key is in flight. The last-known
	// value, if any, is still readable.
	StateLoading State = iota
	// StateFresh means the value reflects the last completed fetch and no
	// invalidation has happened since.
	StateFresh
	// StateStale means the value may no longer reflect server state and a
	// refetch is needed before trusting it.
	StateStale
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateFresh:
		return "fresh"
	case StateStale:
		return "stale"
	default:
		return "unknown"
	}
}

// Entry is a read-only snapshot of a cache slot: the last-known result, its
// freshness, and the last fetch error if any.
type Entry struct {
	Value any
	State State
	Err   error
}

type record struct {
	value any
	state State
	err   error
	// issued counts fetches started for this key; a completing fetch applies
	// its result only if it is still the latest issue, so a slow stale
	// response can never clobber fresher data.
	issued uint64
}

// Store owns all cache entries. Views never mutate entries directly; they
// read, subscribe, and request invalidations.
type Store struct {
	mu      sync.Mutex
	entries map[Key]*record
	subs    map[Key]map[int]func(Entry)
	nextSub int
	group   singleflight.Group
}

func NewStore() *Store {
	return &Store{
		entries: make(map[Key]*record),
		subs:    make(map[Key]map[int]func(Entry)),
	}
}

// Get returns the current entry for key, or ok=false when nothing has ever
// been cached under it.
func (s *Store) Get(key Key) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.entries[key]
	if !ok {
		return Entry{}, false
	}
	return Entry{Value: rec.value, State: rec.state, Err: rec.err}, true
}

// Set stores a fresh result out-of-band, superseding any fetch in flight.
func (s *Store) Set(key Key, value any) {
	s.mu.Lock()
	rec := s.record(key)
	rec.issued++
	rec.value = value
	rec.err = nil
	rec.state = StateFresh
	entry := Entry{Value: rec.value, State: rec.state}
	subs := s.subscribers(key)
	s.mu.Unlock()
	notify(subs, entry)
}

// Invalidate marks the entry for key stale, so dependent views know to
// refetch before trusting it. It never fetches, and repeating it has the
// same effect as doing it once. Unknown keys are a no-op.
func (s *Store) Invalidate(key Key) {
	s.mu.Lock()
	rec, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		return
	}
	// Drop any shared in-flight fetch so the next Resolve starts over
	// instead of joining a pre-invalidation flight, and bump the generation
	// so a fetch already in flight cannot apply its pre-invalidation result.
	s.group.Forget(key.String())
	rec.issued++
	changed := rec.state != StateStale
	rec.state = StateStale
	entry := Entry{Value: rec.value, State: rec.state, Err: rec.err}
	var subs []func(Entry)
	if changed {
		subs = s.subscribers(key)
	}
	s.mu.Unlock()
	notify(subs, entry)
}

// InvalidateKind invalidates every cached entry of the given kind, e.g. all
// (products, <search>) entries regardless of search term.
func (s *Store) InvalidateKind(kind Kind) {
	s.mu.Lock()
	keys := make([]Key, 0, len(s.entries))
	for key := range s.entries {
		if key.Kind == kind {
			keys = append(keys, key)
		}
	}
	s.mu.Unlock()
	for _, key := range keys {
		s.Invalidate(key)
	}
}

// Subscribe registers interest in a key. fn is called with the new entry on
// every state change until the returned cancel function runs. Cancelling
// stops the callbacks; it does not cancel any underlying fetch.
func (s *Store) Subscribe(key Key, fn func(Entry)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	if s.subs[key] == nil {
		s.subs[key] = make(map[int]func(Entry))
	}
	s.subs[key][id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[key], id)
	}
}

// begin marks a new fetch issue for key and returns its generation.
func (s *Store) begin(key Key) uint64 {
	s.mu.Lock()
	rec := s.record(key)
	rec.issued++
	gen := rec.issued
	rec.state = StateLoading
	entry := Entry{Value: rec.value, State: rec.state, Err: rec.err}
	subs := s.subscribers(key)
	s.mu.Unlock()
	notify(subs, entry)
	return gen
}

// finish applies a fetch result, unless a later-issued fetch for the same key
// has superseded this one.
func (s *Store) finish(key Key, gen uint64, value any, err error) {
	s.mu.Lock()
	rec, ok := s.entries[key]
	if !ok || rec.issued != gen {
		s.mu.Unlock()
		return
	}
	if err != nil {
		rec.err = err
		rec.state = StateStale
	} else {
		rec.value = value
		rec.err = nil
		rec.state = StateFresh
	}
	entry := Entry{Value: rec.value, State: rec.state, Err: rec.err}
	subs := s.subscribers(key)
	s.mu.Unlock()
	notify(subs, entry)
}

// record returns the slot for key, creating it if needed. Caller holds s.mu.
func (s *Store) record(key Key) *record {
	rec, ok := s.entries[key]
	if !ok {
		rec = &record{}
		s.entries[key] = rec
	}
	return rec
}

// subscribers snapshots the callbacks for key. Caller holds s.mu; callbacks
// run after the lock is released.
func (s *Store) subscribers(key Key) []func(Entry) {
	set := s.subs[key]
	if len(set) == 0 {
		return nil
	}
	out := make([]func(Entry), 0, len(set))
	for _, fn := range set {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(Entry), entry Entry) {
	for _, fn := range subs {
		fn(entry)
	}
}

// Resolve reads key through the cache: a fresh entry is returned as-is, and
// anything else triggers fetch. Concurrent resolves for the same key share
// one fetch; a fetch that has been superseded by a later issue (or an
// invalidation) returns its value to its own callers but does not overwrite
// the cache.
func Resolve[T any](ctx context.Context, s *Store, key Key, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	if entry, ok := s.Get(key); ok && entry.State == StateFresh {
		if value, ok := entry.Value.(T); ok {
			return value, nil
		}
	}

	v, err, _ := s.group.Do(key.String(), func() (any, error) {
		gen := s.begin(key)
		value, err := fetch(ctx)
		s.finish(key, gen, value, err)
		return value, err
	})
	if err != nil {
		return zero, err
	}
	return castResult[T](key, v)
}

// castResult converts a shared fetch result to the caller's type. A mismatch
// means two callers resolved the same key as different types, which is a
// programming error and must surface, not read as an empty success.
func castResult[T any](key Key, v any) (T, error) {
	value, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache entry %s holds %T, not %T", key, v, zero)
	}
	return value, nil
}
