// Package sieve implements the classic and segmented Sieve-iZ algorithms —
// both built on the Xp-Wheel over the iZ5/iZ7 matrices rather than a flat
// boolean array over every integer — plus a handful of textbook oracle
// sieves used only by this package's tests to cross-validate output.
package sieve

import (
	"math"

	"github.com/memes-izprime/izprime/internal/basesegment"
	"github.com/memes-izprime/izprime/internal/bitarray"
	"github.com/memes-izprime/izprime/internal/iz"
	"github.com/memes-izprime/izprime/internal/izerr"
	"go.uber.org/zap"
)

var logger = zap.NewNop()

// SetLogger changes the logger instance used by this package.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// smallPrimes is the prefix of small primes eligible for segment pre-sieving.
var smallPrimes = []uint64{5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47}

// SieveIZ runs the classic, non-segmented Sieve-iZ over [5, n]: it builds
// the full x5/x7 candidate bitmaps up front and sieves every root prime
// below sqrt(n) against them directly. Memory use is O(n): prefer SieveIZm
// for n beyond a few hundred million.
func SieveIZ(n uint64) ([]uint64, error) {
	if n < 10 {
		return nil, izerr.ErrTooSmall
	}
	primes := make([]uint64, 0, estimatePiN(n)*3/2)
	primes = append(primes, 2, 3)

	xN := n/6 + 1
	x5 := bitarray.New(xN + 1)
	x7 := bitarray.New(xN + 1)
	x5.SetAll()
	x7.SetAll()

	nSqrt := uint64(math.Sqrt(float64(n))) + 1

	for x := uint64(1); x < xN; x++ {
		if x5.Get(x) {
			p := iz.IZ(x, -1)
			primes = append(primes, p)
			if p < nSqrt {
				x5.ClearStride(p, p*x+x, xN)
				x7.ClearStride(p, p*x-x, xN)
			}
		}
		if x7.Get(x) {
			p := iz.IZ(x, 1)
			primes = append(primes, p)
			if p < nSqrt {
				x5.ClearStride(p, p*x-x, xN)
				x7.ClearStride(p, p*x+x, xN)
			}
		}
	}

	if primes[len(primes)-1] > n {
		primes = primes[:len(primes)-1]
	}
	l := logger.With(zap.Uint64("n", n), zap.Int("count", len(primes)))
	l.Debug("SieveIZ: complete")
	return primes, nil
}

// SieveIZm runs the segmented Sieve-iZm over [5, n]: a pre-sieved base
// segment of size vx (a product of a handful of small primes) is cloned
// into successive windows of the range, each only needing composites of
// root primes larger than those folded into vx marked directly. Space use
// is bounded by vx regardless of n. Falls back to SieveIZ below n=1000,
// where segmenting has no benefit.
func SieveIZm(n uint64) ([]uint64, error) {
	if n < 1000 {
		return SieveIZ(n)
	}

	xN := n/6 + 1
	primes := make([]uint64, 0, estimatePiN(n)*3/2)
	primes = append(primes, 2, 3)

	const vxLimit = 6
	vx := iz.ComputeLimitedVx(xN, vxLimit)

	startI := 2
	for i := 0; i < vxLimit; i++ {
		if vx%smallPrimes[i] == 0 {
			primes = append(primes, smallPrimes[i])
			startI++
		} else {
			break
		}
	}

	baseX5, baseX7 := basesegment.Build(vx)

	x5 := baseX5.Clone()
	x7 := baseX7.Clone()

	for x := uint64(2); x <= vx; x++ {
		if x5.Get(x) {
			p := iz.IZ(x, -1)
			primes = append(primes, p)
			if (p*p)/6 < vx {
				x5.ClearStride(p, p*x+x, vx+1)
				x7.ClearStride(p, p*x-x, vx+1)
			}
		}
		if x7.Get(x) {
			p := iz.IZ(x, 1)
			primes = append(primes, p)
			if (p*p)/6 < vx {
				x5.ClearStride(p, p*x-x, vx+1)
				x7.ClearStride(p, p*x+x, vx+1)
			}
		}
	}

	maxY := xN / vx
	limit := vx
	yvx := vx

	for y := uint64(1); y <= maxY; y++ {
		x5 = baseX5.Clone()
		x7 = baseX7.Clone()

		if y == maxY {
			limit = xN % vx
		}

		for i := startI; i < len(primes); i++ {
			p := primes[i]
			if (p*p)/6 > yvx+limit {
				break
			}
			x5.ClearStride(p, iz.SolveForX(-1, p, vx, y), limit+1)
			x7.ClearStride(p, iz.SolveForX(1, p, vx, y), limit+1)
		}

		for x := uint64(2); x <= limit; x++ {
			if x5.Get(x) {
				primes = append(primes, iz.IZ(x+yvx, -1))
			}
			if x7.Get(x) {
				primes = append(primes, iz.IZ(x+yvx, 1))
			}
		}

		yvx += vx
	}

	for primes[len(primes)-1] > n {
		primes = primes[:len(primes)-1]
	}
	l := logger.With(zap.Uint64("n", n), zap.Uint64("vx", vx), zap.Int("count", len(primes)))
	l.Debug("SieveIZm: complete")
	return primes, nil
}

// estimatePiN is a coarse overestimate of the prime-counting function,
// used only to size the output slice's initial capacity.
func estimatePiN(n uint64) int {
	if n < 20 {
		return 8
	}
	f := float64(n)
	return int(f/math.Log(f)) + 10
}

// SpaceStats summarizes the density of primes and prime constellations
// within a pre-sieved segment of size vx.
type SpaceStats struct {
	VX          uint64
	IZm5Count   int
	IZm7Count   int
	PrimesCount int
	TwinCount   int
	CousinCount int
	SexyCount   int
}

// AnalyzePrimeSpace reports candidate and constellation counts over the base
// segment of size vx: potential primes surviving the Xp-Wheel at this vx
// (actual primality is not tested — these are sieve survivors), and how
// many of the twin (gap 2), cousin (gap 4) and sexy (gap 6) constellations
// they form. It is a diagnostic over the sieve's search space, not a
// primality-verified count.
func AnalyzePrimeSpace(vx uint64) SpaceStats {
	x5, x7 := basesegment.Build(vx)

	stats := SpaceStats{VX: vx}
	for x := uint64(1); x <= vx; x++ {
		if x5.Get(x) {
			stats.IZm5Count++
		}
		if x7.Get(x) {
			stats.IZm7Count++
		}
	}
	stats.PrimesCount = stats.IZm5Count + stats.IZm7Count

	// x5 and x7 interleave in increasing order since iZ(x,-1) < iZ(x,1)
	// for the same x, and x itself increases monotonically.
	sorted := make([]uint64, 0, stats.PrimesCount)
	for x := uint64(1); x <= vx; x++ {
		if x5.Get(x) {
			sorted = append(sorted, iz.IZ(x, -1))
		}
		if x7.Get(x) {
			sorted = append(sorted, iz.IZ(x, 1))
		}
	}
	for i := 1; i < len(sorted); i++ {
		switch sorted[i] - sorted[i-1] {
		case 2:
			stats.TwinCount++
		case 4:
			stats.CousinCount++
		case 6:
			stats.SexyCount++
		}
	}

	l := logger.With(zap.Uint64("vx", vx), zap.Int("candidates", stats.PrimesCount))
	l.Debug("AnalyzePrimeSpace: complete")
	return stats
}
