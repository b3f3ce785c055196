package host

import "math/rand/v2"

// defaultRandomSource backs Math.random with math/rand/v2's package-level
// generator (auto-seeded since Go 1.20), matching the teacher's own
// preference for the v2 rand API over manually seeding math/rand.
func defaultRandomSource() float64 {
	return rand.Float64()
}
