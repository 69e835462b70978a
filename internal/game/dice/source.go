package dice

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"
)

// cryptoSource implements Source using crypto/rand.
//
// Invariant: values are uniformly distributed in [0, n) for any n > 0.
type cryptoSource struct{}

// NewCryptoSource returns a non-reproducible Source backed by crypto/rand.
// It is used to draw seeds when none is configured.
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics if n <= 0 or crypto/rand fails.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	val, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// SeededSource is a deterministic Source. Two SeededSources created with the
// same seed produce the same sequence.
//
// SeededSource is not safe for concurrent use.
type SeededSource struct {
	seed int64
	rng  *rand.Rand
}

// NewSeededSource returns a deterministic Source for seed.
//
// Postcondition: Seed() == seed.
func NewSeededSource(seed int64) *SeededSource {
	return &SeededSource{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

// Intn returns a pseudo-random int in [0, n).
//
// Precondition: n > 0. Panics if n <= 0.
func (s *SeededSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	return s.rng.Intn(n)
}

// Seed returns the seed the source was created with.
func (s *SeededSource) Seed() int64 {
	return s.seed
}

// RandomSeed draws a fresh non-zero seed from crypto/rand.
func RandomSeed() int64 {
	seed := int64(NewCryptoSource().Intn(1<<62)) + 1
	return seed
}
