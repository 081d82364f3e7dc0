package sim

import "errors"

var (
	// ErrStoreFull is returned when a spawn would grow the projectile
	// store past its configured maximum.
	ErrStoreFull = errors.New("sim: projectile store full")

	// ErrDegenerateAim is returned when a projectile is fired at its own
	// origin and has no direction.
	ErrDegenerateAim = errors.New("sim: aim point equals origin")

	// ErrInvalidViewport is returned when targets are placed into a
	// viewport with no area.
	ErrInvalidViewport = errors.New("sim: viewport must have positive size")
)
