package floor

import (
	"sync/atomic"
)

// snapshot pairs a published Config with the Params it was bound from and
// its generation number.
type snapshot struct {
	cfg    *Config
	params Params
	gen    uint64
}

// Store publishes Config snapshots to concurrent readers.
//
// A published Config is never modified; Publish and Update replace it
// wholesale and Load hands out copies, so a reader that calls Load once per
// frame sees one consistent configuration for the whole frame.
//
// Thread safety: Store is safe for concurrent use. The zero value is not
// usable; create stores with NewStore.
type Store struct {
	cur atomic.Pointer[snapshot]
}

// NewStore creates a store holding Bind(p).
func NewStore(p Params) *Store {
	s := &Store{}
	s.cur.Store(&snapshot{cfg: Bind(p), params: p, gen: 1})
	return s
}

// Load returns a copy of the current configuration snapshot. Writes to the
// copy are not seen by other readers or by later Loads.
func (s *Store) Load() *Config {
	c := *s.cur.Load().cfg
	return &c
}

// Params returns the tunables the current snapshot was bound from.
func (s *Store) Params() Params {
	return s.cur.Load().params
}

// Generation returns a counter that increases with every publication.
func (s *Store) Generation() uint64 {
	return s.cur.Load().gen
}

// Publish binds p and makes it the current snapshot.
// It returns the new generation.
func (s *Store) Publish(p Params) uint64 {
	return s.Update(func(Params) Params { return p })
}

// Update applies fn to the current tunables and publishes the bound result.
// fn may be called more than once when updates race; it must not have side
// effects. Update returns the new generation.
func (s *Store) Update(fn func(Params) Params) uint64 {
	for {
		old := s.cur.Load()
		p := fn(old.params)
		next := &snapshot{cfg: Bind(p), params: p, gen: old.gen + 1}
		if s.cur.CompareAndSwap(old, next) {
			Logger().Info("floor: configuration published", "generation", next.gen)
			return next.gen
		}
	}
}
