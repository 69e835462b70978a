// Package dice provides the randomness abstraction shared by floor
// generation, trap and treasure rolls, and combat.
package dice

// Source is the randomness provider for every roll in the engine.
//
// A Source is owned by exactly one exploration session. The order in which
// a session draws from it is significant: a fixed seed plus a fixed action
// sequence must reproduce identical outcomes.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// probabilityResolution is the denominator used to turn probabilities into
// integer draws. All probabilities in the engine are multiples of 1/10000.
const probabilityResolution = 10_000

// Between returns a uniformly distributed int in the closed range [lo, hi].
// When hi <= lo it returns lo without drawing.
func Between(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}

// Chance reports whether an event with probability p happens. It always
// consumes exactly one draw so call order stays stable regardless of p.
//
// Postcondition: p <= 0 never succeeds; p >= 1 always succeeds.
func Chance(src Source, p float64) bool {
	return src.Intn(probabilityResolution) < int(p*probabilityResolution+0.5)
}

// Pick returns a uniformly chosen index in [0, n).
//
// Precondition: n > 0.
func Pick(src Source, n int) int {
	return src.Intn(n)
}
