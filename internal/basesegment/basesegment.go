// Package basesegment builds the pre-sieved iZm5/iZm7 base patterns that the
// sieve and VX kernels tile across a larger range. A base segment of size vx
// has every composite of each small prime dividing vx already marked, so
// that extending coverage to k*vx only requires duplicating the pattern k
// times and sieving the handful of primes that do not divide vx.
package basesegment

import (
	"github.com/memes-izprime/izprime/internal/bitarray"
	"go.uber.org/zap"
)

var logger = zap.NewNop()

// SetLogger changes the logger instance used by this package.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

var smallPrimes = []uint64{5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

// minSegmentSize is 5*7, the smallest base pattern: composites of 5 and 7
// folded into the Xp-Wheel directly, with no duplication step needed.
const minSegmentSize = 35

// Build returns a pair of bit arrays of size vx+1 (index 0 unused; indices
// 1..vx address the x coordinate directly) with every multiple of each
// small prime dividing vx, the prime itself included, marked in x5 (the
// iZm5 matrix) and x7 (the iZm7 matrix). vx must be 5*7 times a product of
// a (possibly empty) prefix of {11, 13, 17, ...}.
func Build(vx uint64) (x5, x7 *bitarray.BitArray) {
	x5 = bitarray.New(vx + 1)
	x7 = bitarray.New(vx + 1)

	constructWheel(x5, x7)

	currentSize := uint64(minSegmentSize)
	idx := 2 // skip 5, 7: already folded into the wheel.
	for idx < len(smallPrimes) && vx%smallPrimes[idx] == 0 {
		p := smallPrimes[idx]
		idx++

		x5.DuplicateSegment(1, currentSize, p)
		x7.DuplicateSegment(1, currentSize, p)
		currentSize *= p

		x := (p + 1) / 6
		if p%6 > 1 {
			// p sits in iZ-: clear its own mark in x5, then its
			// composites in x5 (iZ-) and x7 (iZ+).
			x5.Clear(x)
			x5.ClearStride(p, p*x+x, currentSize+1)
			x7.ClearStride(p, p*x-x, currentSize+1)
		} else {
			// p sits in iZ+: clear its own mark in x7, then its
			// composites in x5 (iZ-) and x7 (iZ+).
			x7.Clear(x)
			x5.ClearStride(p, p*x-x, currentSize+1)
			x7.ClearStride(p, p*x+x, currentSize+1)
		}
	}

	l := logger.With(zap.Uint64("vx", vx), zap.Uint64("built_size", currentSize))
	l.Debug("Build: base segment constructed")
	return x5, x7
}

// constructWheel marks the Xp-Wheel directly into indices [1, 35] of x5 and
// x7: the composites of 5 and 7 that cannot be reached by duplication since
// 35 is the starting segment size itself.
func constructWheel(x5, x7 *bitarray.BitArray) {
	for i := uint64(1); i <= minSegmentSize; i++ {
		if (i-1)%5 != 0 && (i+1)%7 != 0 {
			x5.Set(i)
		}
		if (i+1)%5 != 0 && (i-1)%7 != 0 {
			x7.Set(i)
		}
	}
}
