package sim

import (
	"fmt"

	"github.com/vovakirdan/shatter/internal/core"
)

// Projectile is a moving circle with a unit direction.
type Projectile struct {
	Pos   core.Vec
	Dir   core.Vec
	Alive bool
}

// GrowthPolicy selects how the projectile store manages its capacity.
type GrowthPolicy int

const (
	// GrowExact keeps capacity equal to length after every fire and every
	// compaction. Split spawns inside a resolve pass grow by append and are
	// trimmed by the next compaction.
	GrowExact GrowthPolicy = iota
	// GrowAmortized uses append growth and compacts in place.
	GrowAmortized
)

// String returns the config name of the policy.
func (p GrowthPolicy) String() string {
	switch p {
	case GrowExact:
		return "exact"
	case GrowAmortized:
		return "amortized"
	default:
		return "unknown"
	}
}

// StoreOptions configures a ProjectileStore.
type StoreOptions struct {
	Growth GrowthPolicy
	// Max bounds the number of stored entries, dead ones included.
	// Zero means unlimited.
	Max int
}

// ProjectileStore is the ordered, growable list of projectiles.
type ProjectileStore struct {
	items []Projectile
	opts  StoreOptions
}

// NewProjectileStore creates an empty store.
func NewProjectileStore(opts StoreOptions) *ProjectileStore {
	return &ProjectileStore{opts: opts}
}

// Spawn appends a live projectile at origin heading toward aim.
func (s *ProjectileStore) Spawn(origin, aim core.Vec) error {
	delta := aim.Sub(origin)
	if delta.Len() == 0 {
		return ErrDegenerateAim
	}
	return s.push(Projectile{Pos: origin, Dir: delta.Normalize(), Alive: true})
}

func (s *ProjectileStore) push(p Projectile) error {
	if err := s.checkRoom(); err != nil {
		return err
	}

	if s.opts.Growth == GrowExact {
		grown := make([]Projectile, len(s.items)+1)
		copy(grown, s.items)
		grown[len(s.items)] = p
		s.items = grown
		return nil
	}

	s.items = append(s.items, p)
	return nil
}

// pushSplit appends with append growth under either policy. Compact
// restores exact fit: every split comes from a hit, and every hit leaves
// a dead entry to remove.
func (s *ProjectileStore) pushSplit(p Projectile) error {
	if err := s.checkRoom(); err != nil {
		return err
	}
	s.items = append(s.items, p)
	return nil
}

func (s *ProjectileStore) checkRoom() error {
	if s.opts.Max > 0 && len(s.items) >= s.opts.Max {
		return fmt.Errorf("grow to %d: %w", len(s.items)+1, ErrStoreFull)
	}
	return nil
}

// Compact removes dead projectiles, keeping survivors in their original
// order, and returns how many were removed. Nothing happens when no entry
// is dead.
func (s *ProjectileStore) Compact() int {
	live := 0
	for i := range s.items {
		if s.items[i].Alive {
			s.items[live] = s.items[i]
			live++
		}
	}

	removed := len(s.items) - live
	if removed == 0 {
		return 0
	}

	switch {
	case live == 0:
		s.items = nil
	case s.opts.Growth == GrowExact:
		shrunk := make([]Projectile, live)
		copy(shrunk, s.items[:live])
		s.items = shrunk
	default:
		s.items = s.items[:live]
	}
	return removed
}

// Clear empties the store and releases its storage.
func (s *ProjectileStore) Clear() {
	s.items = nil
}

// Projectiles returns the backing slice in store order, dead entries
// included. Callers must not modify it.
func (s *ProjectileStore) Projectiles() []Projectile {
	return s.items
}

// At returns the projectile at index i.
func (s *ProjectileStore) At(i int) Projectile {
	return s.items[i]
}

// Len returns the number of stored entries, dead ones included.
func (s *ProjectileStore) Len() int {
	return len(s.items)
}

// Cap returns the capacity of the backing storage.
func (s *ProjectileStore) Cap() int {
	return cap(s.items)
}

// LiveCount counts the projectiles that are still alive.
func (s *ProjectileStore) LiveCount() int {
	n := 0
	for i := range s.items {
		if s.items[i].Alive {
			n++
		}
	}
	return n
}
