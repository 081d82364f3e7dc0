package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/shatter/internal/core"
)

// ResolveParams holds the projectile-side constants of collision resolution.
type ResolveParams struct {
	ProjectileRadius float64
	SplitCount       int
}

// Hit records one projectile destroying one target.
type Hit struct {
	Projectile int // index in the store at the time of the hit
	Target     int
	At         core.Vec
}

// ResolveResult summarizes a collision pass.
type ResolveResult struct {
	Hits    []Hit
	Spawned int
	Dropped int // split projectiles that could not be stored
}

// Resolve tests every live projectile against every live target.
//
// Projectiles are visited in store order and targets in storage order. The
// first target closer than the combined radius wins: both die and
// SplitCount projectiles spawn from the target position at uniform random
// angles. A projectile hits at most one target per pass. Projectiles
// spawned during the pass are not tested until the next one.
//
// When a split spawn fails the remaining splits of the pass are still
// attempted; the returned error wraps ErrStoreFull and the result reports
// the dropped count.
func Resolve(store *ProjectileStore, field *TargetField, params ResolveParams, rng *rand.Rand) (ResolveResult, error) {
	var res ResolveResult
	var spawnErr error

	combined := field.radius + params.ProjectileRadius
	n := len(store.items)

	for i := 0; i < n; i++ {
		if !store.items[i].Alive {
			continue
		}
		pos := store.items[i].Pos

		for j := range field.targets {
			target := field.targets[j]
			if !target.Alive {
				continue
			}
			if pos.Distance(target.Pos) >= combined {
				continue
			}

			// Spawns may reallocate the backing array, so write through
			// the index rather than a held pointer.
			store.items[i].Alive = false
			field.kill(j)
			res.Hits = append(res.Hits, Hit{Projectile: i, Target: j, At: target.Pos})

			for k := 0; k < params.SplitCount; k++ {
				angle := rng.Float64() * 2 * math.Pi
				if err := store.pushSplit(Projectile{Pos: target.Pos, Dir: core.FromAngle(angle), Alive: true}); err != nil {
					res.Dropped++
					spawnErr = err
					continue
				}
				res.Spawned++
			}
			break
		}
	}

	if spawnErr != nil {
		return res, fmt.Errorf("resolve: dropped %d split projectiles: %w", res.Dropped, spawnErr)
	}
	return res, nil
}
