package sim

// Bounds is the viewport size in world units.
type Bounds struct {
	W, H float64
}

// Contains reports whether x and y are inside [0,W] x [0,H]. Points exactly
// on an edge are inside.
func (b Bounds) Contains(x, y float64) bool {
	return !(x < 0 || x > b.W || y < 0 || y > b.H)
}

// Integrate moves every live projectile by dir*speed*dt and kills the ones
// that left the viewport. Directions are never renormalized here.
func Integrate(store *ProjectileStore, speed, dt float64, bounds Bounds) (exited int) {
	step := speed * dt
	for i := range store.items {
		p := &store.items[i]
		if !p.Alive {
			continue
		}
		p.Pos = p.Pos.Add(p.Dir.Scale(step))
		if !bounds.Contains(p.Pos.X, p.Pos.Y) {
			p.Alive = false
			exited++
		}
	}
	return exited
}
