// Package vxkernel implements the Sieve-VX algorithm: a fixed-size segment
// (vx, a product of small primes such as 5*7*11*13*17*19) is sieved at an
// arbitrary, arbitrary-precision offset y, combining deterministic marking
// of composites of primes below vx with a Miller-Rabin pass over the
// survivors once the segment's largest candidate exceeds vx^2 — the point
// past which the deterministic root-prime list can no longer certify
// primality on its own. Results are emitted as prime gaps, not absolute
// values, to keep memory proportional to segment density rather than
// magnitude.
package vxkernel

import (
	"math/big"

	"github.com/memes-izprime/izprime/internal/basesegment"
	"github.com/memes-izprime/izprime/internal/bitarray"
	"github.com/memes-izprime/izprime/internal/container"
	"github.com/memes-izprime/izprime/internal/iz"
	"github.com/memes-izprime/izprime/internal/rootprimes"
	"go.uber.org/zap"
)

var logger = zap.NewNop()

// SetLogger changes the logger instance used by this package.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// TestRounds is the number of Miller-Rabin rounds run against survivors
// once a segment enters large mode.
const TestRounds = 25

// Assets bundles the reusable, y-independent state for sieving many
// segments of the same size vx: the root primes below vx and the base
// iZm5/iZm7 patterns pre-sieved for vx's own factors. Build once per vx and
// share across every SieveVX call at that size.
type Assets struct {
	VX         uint64
	RootPrimes []uint64
	BaseX5     *bitarray.BitArray
	BaseX7     *bitarray.BitArray
}

// NewAssets builds the Assets for segment size vx.
func NewAssets(vx uint64) (*Assets, error) {
	rp, err := rootprimes.Provide(vx)
	if err != nil {
		return nil, err
	}
	baseX5, baseX7 := basesegment.Build(vx)
	return &Assets{VX: vx, RootPrimes: rp, BaseX5: baseX5, BaseX7: baseX7}, nil
}

var big1 = big.NewInt(1)

// SieveVX sieves the segment of size vx starting at offset y (i.e. the
// range of iZ values with x in [y*vx+1, (y+1)*vx]), returning the prime
// gaps found. assets must have been built for the same vx.
func SieveVX(vx uint64, y *big.Int, assets *Assets) (*container.GapList, error) {
	x5 := assets.BaseX5.Clone()
	x7 := assets.BaseX7.Clone()

	yvx := new(big.Int).Mul(y, new(big.Int).SetUint64(vx))

	rootLimit := new(big.Int).Add(yvx, new(big.Int).SetUint64(vx))
	rootLimit = iz.IZBig(rootLimit, 1)
	rootLimit.Sqrt(rootLimit)

	isLargeLimit := rootLimit.Cmp(new(big.Int).SetUint64(vx)) > 0

	gl := container.NewGapList(vx, y)

	for i := 2; i < len(assets.RootPrimes); i++ {
		p := assets.RootPrimes[i]
		if vx%p == 0 {
			continue
		}
		if !isLargeLimit && rootLimit.Cmp(new(big.Int).SetUint64(p)) < 0 {
			break
		}
		x5.ClearStride(p, iz.SolveForXBig(-1, p, vx, y), vx+1)
		x7.ClearStride(p, iz.SolveForXBig(1, p, vx, y), vx+1)
		gl.BitOps += (2 * vx) / p
	}

	if y.Sign() == 0 {
		// The first segment holds the root primes themselves: Build and the
		// marking above clear their own bits, so set them again.
		for _, p := range assets.RootPrimes[2:] {
			if p%6 == 5 {
				x5.Set((p + 1) / 6)
			} else {
				x7.Set((p + 1) / 6)
			}
		}
	}

	xP := new(big.Int)
	gap := 0
	for x := uint64(1); x <= vx; x++ {
		gap += 4
		if x5.Get(x) {
			isPrime := true
			if isLargeLimit {
				xP.Add(yvx, new(big.Int).SetUint64(x))
				p := iz.IZBig(xP, -1)
				isPrime = p.ProbablyPrime(TestRounds)
				gl.PTestOps++
			}
			if isPrime {
				gl.Append(uint16(gap))
				gap = 0
			}
		}

		gap += 2
		if x7.Get(x) {
			isPrime := true
			if isLargeLimit {
				xP.Add(yvx, new(big.Int).SetUint64(x))
				p := iz.IZBig(xP, 1)
				isPrime = p.ProbablyPrime(TestRounds)
				gl.PTestOps++
			}
			if isPrime {
				gl.Append(uint16(gap))
				gap = 0
			}
		}
	}

	l := logger.With(zap.Uint64("vx", vx), zap.String("y", y.String()), zap.Bool("large_mode", isLargeLimit), zap.Int("gaps", len(gl.Gaps)))
	l.Debug("SieveVX: complete")
	return gl, nil
}

// SieveRange sieves range_y consecutive segments of size vx, starting at
// y=startY, reusing a single Assets across all of them.
func SieveRange(vx uint64, startY *big.Int, rangeY int, assets *Assets) ([]*container.GapList, error) {
	out := make([]*container.GapList, 0, rangeY)
	y := new(big.Int).Set(startY)
	for i := 0; i < rangeY; i++ {
		gl, err := SieveVX(vx, y, assets)
		if err != nil {
			return nil, err
		}
		out = append(out, gl)
		y.Add(y, big1)
	}
	return out, nil
}

// MarkRootPrimes clears, in x5 and x7, every composite of a root prime in
// rootPrimes (skipping those dividing vx) at offset y. It applies the same
// marking as SieveVX's deterministic pass, but over every prime in
// rootPrimes (no root-limit cut-off, no operation counting), for callers
// needing only the deterministic marking (no gap collection, no primality
// testing).
func MarkRootPrimes(vx uint64, y *big.Int, rootPrimes []uint64, x5, x7 *bitarray.BitArray) {
	for i := 2; i < len(rootPrimes); i++ {
		p := rootPrimes[i]
		if vx%p == 0 {
			continue
		}
		s5 := iz.SolveForXBig(-1, p, vx, y)
		s7 := iz.SolveForXBig(1, p, vx, y)
		if y.Sign() == 0 {
			// At y=0 the first index in p's own matrix is p itself.
			if iz.SignOf(p) < 0 {
				s5 += p
			} else {
				s7 += p
			}
		}
		x5.ClearStride(p, s5, vx+1)
		x7.ClearStride(p, s7, vx+1)
	}
}
