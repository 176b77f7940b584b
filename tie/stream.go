// Package tie - the seeded pseudorandom word stream.
//
// This file centralizes deterministic random generation for tie draws.
//
// Goals:
//   - Determinism: same seed ⇒ identical word sequence on every platform.
//   - Auditability: every consumed word has a 1-based index reported in
//     the audit log.
//   - No hidden sources: the seed is an explicit non-negative integer;
//     OS entropy and time are never consulted.
//
// The stream is counter-based: word i is a SplitMix64 finalizer applied
// to seed + i·golden-gamma, so draws can be replayed from the seed and a
// word index alone.
//
// Concurrency: a Stream is NOT goroutine-safe. It is one shared logical
// sequence; callers consume it sequentially in a fixed order.
package tie

import "math/bits"

// SplitMix64 constants (Vigna 2014): the golden-gamma increment and the
// two finalizer multipliers. Small input changes produce large,
// well-distributed output changes.
const (
	splitmixGamma = 0x9e3779b97f4a7c15
	splitmixMulA  = 0xbf58476d1ce4e5b9
	splitmixMulB  = 0x94d049bb133111eb
)

// Stream is a counter-based deterministic word generator. The zero value
// is not usable; construct via NewStream.
type Stream struct {
	seed    int64
	counter uint64
	draws   uint64
}

// NewStream returns a Stream seeded from the explicit non-negative seed.
// Negative seeds are a configuration error (ErrBadSeed).
//
// Complexity: O(1).
func NewStream(seed int64) (*Stream, error) {
	if seed < 0 {
		return nil, ErrBadSeed
	}
	return &Stream{seed: seed}, nil
}

// Seed returns the seed the stream was constructed with.
func (s *Stream) Seed() int64 { return s.seed }

// Draws returns the total number of words consumed so far. The value
// after a draw is the 1-based index of the last consumed word.
func (s *Stream) Draws() uint64 { return s.draws }

// Word consumes and returns the next pseudorandom 64-bit word.
//
// Complexity: O(1).
func (s *Stream) Word() uint64 {
	s.counter++
	s.draws++
	x := uint64(s.seed) + s.counter*splitmixGamma
	x = (x ^ (x >> 30)) * splitmixMulA
	x = (x ^ (x >> 27)) * splitmixMulB
	return x ^ (x >> 31)
}

// Uintn returns a uniformly distributed value in [0, n), consuming one
// or more words (rejection sampling keeps the draw unbiased). n must be
// positive; n == 0 violates the caller contract and is reported as
// ErrNoCandidates by Resolver before reaching here.
//
// Complexity: O(1) expected.
func (s *Stream) Uintn(n uint64) uint64 {
	if n == 0 {
		panic("tie: Uintn(0)")
	}
	if n&(n-1) == 0 { // power of two, mask is exact
		return s.Word() & (n - 1)
	}
	// Reject the low non-multiple-of-n slice of the word range.
	threshold := -n % n
	for {
		w := s.Word()
		if w >= threshold {
			return w % n
		}
	}
}

// Shuffle performs an in-place Fisher–Yates shuffle over n elements,
// calling swap(i, j) for each exchange. Part of the shared substrate for
// any component needing a full random permutation.
//
// Complexity: O(n) time, O(1) extra space.
func (s *Stream) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := int(s.Uintn(uint64(i + 1)))
		swap(i, j)
	}
}

// CompareRatios compares a1/b1 against a2/b2 by 128-bit
// cross-multiplication: the result is the sign of a1·b2 − a2·b1.
// Inputs must be non-negative; denominators of zero compare as +∞ when
// the numerator is positive and as 0 when it is zero.
//
// Complexity: O(1).
func CompareRatios(a1, b1, a2, b2 uint64) int {
	hiL, loL := bits.Mul64(a1, b2)
	hiR, loR := bits.Mul64(a2, b1)
	switch {
	case hiL != hiR:
		if hiL < hiR {
			return -1
		}
		return 1
	case loL != loR:
		if loL < loR {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// ArgmaxTies scans indices 0..n-1 in order and returns every index whose
// key equals the current best under cmp (cmp(i, j) > 0 means i beats j).
// The scan collects all maxima, not just the first, so callers can
// detect exact ties.
//
// Complexity: O(n) comparisons.
func ArgmaxTies(n int, cmp func(i, j int) int) []int {
	if n == 0 {
		return nil
	}
	best := []int{0}
	for i := 1; i < n; i++ {
		switch c := cmp(i, best[0]); {
		case c > 0:
			best = best[:1]
			best[0] = i
		case c == 0:
			best = append(best, i)
		}
	}
	return best
}
