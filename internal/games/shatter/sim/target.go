package sim

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/shatter/internal/core"
)

// Target is a stationary destructible circle.
type Target struct {
	Pos   core.Vec
	Alive bool
}

// TargetField is the fixed-size set of targets for a round.
// Only Resolve kills targets; everything else is read-only.
type TargetField struct {
	targets []Target
	count   int
	radius  float64
	rng     *rand.Rand
}

// NewTargetField creates an empty field that places count targets of the
// given radius on Initialize.
func NewTargetField(count int, radius float64, rng *rand.Rand) *TargetField {
	return &TargetField{
		count:  count,
		radius: radius,
		rng:    rng,
	}
}

// Initialize allocates the target set and places every target uniformly at
// random inside [0,width) x [0,height), all alive.
func (f *TargetField) Initialize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("place %d targets in %dx%d: %w", f.count, width, height, ErrInvalidViewport)
	}

	f.targets = make([]Target, f.count)
	for i := range f.targets {
		f.targets[i] = Target{
			Pos:   core.V(f.rng.Float64()*float64(width), f.rng.Float64()*float64(height)),
			Alive: true,
		}
	}
	return nil
}

// Reset discards the current set and initializes a fresh one.
func (f *TargetField) Reset(width, height int) error {
	f.targets = nil
	return f.Initialize(width, height)
}

// Targets returns the backing slice in storage order.
// Callers must not modify it.
func (f *TargetField) Targets() []Target {
	return f.targets
}

// Len returns the number of targets, alive or dead.
func (f *TargetField) Len() int {
	return len(f.targets)
}

// Radius returns the collision radius shared by all targets.
func (f *TargetField) Radius() float64 {
	return f.radius
}

// AliveCount counts the targets that are still alive.
func (f *TargetField) AliveCount() int {
	n := 0
	for _, t := range f.targets {
		if t.Alive {
			n++
		}
	}
	return n
}

func (f *TargetField) kill(i int) {
	f.targets[i].Alive = false
}
