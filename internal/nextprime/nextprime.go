// Package nextprime walks forward or backward from an arbitrary base to the
// nearest iZ-form prime, using a fixed-size pre-sieved segment (vx = 5005 =
// 5*7*11*13) to skip most composites before falling back to Miller-Rabin on
// survivors. When base+1 or base+2 (forward) or base-1 or base-2 (backward)
// shares its x coordinate with base itself or with a candidate on the other
// side of base, a fast path tests it first, so that the segment walk can
// start at a coordinate whose candidates all lie strictly beyond base.
package nextprime

import (
	"crypto/rand"
	"math/big"

	"github.com/memes-izprime/izprime/internal/basesegment"
	"github.com/memes-izprime/izprime/internal/bitarray"
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

// TestRounds is the number of Miller-Rabin rounds run against each
// candidate.
const TestRounds = 25

// vx is the fixed segment size used by Next: small enough to build cheaply
// per call, large enough (a range of 6*vx = 30030) to find a prime within a
// handful of segments for any base.
const vx uint64 = 5 * 7 * 11 * 13

// maxSegments caps the walk distance from base: beyond this, Next gives up
// rather than searching indefinitely.
const maxSegments = 1000

var (
	big2 = big.NewInt(2)
	big6 = big.NewInt(6)
)

// Next returns the nearest iZ-form prime to base: the smallest prime
// greater than base if forward is true, or the largest prime less than
// base otherwise. Returns izerr.ErrNotFound if none is found within
// maxSegments pre-sieved segments of the walk.
func Next(base *big.Int, forward bool) (*big.Int, error) {
	tmp := new(big.Int).Set(base)

	mod6 := new(big.Int).Mod(tmp, big6).Int64()
	if forward && (mod6 == 5 || mod6 == 0) {
		tmp.Add(tmp, big.NewInt((7-mod6)%6)) // base+2, or base+1 when base%6 == 0
		if tmp.ProbablyPrime(TestRounds) {
			return tmp, nil
		}
	} else if !forward && (mod6 == 1 || mod6 == 0) {
		tmp.Sub(tmp, big.NewInt(mod6+1)) // base-2, or base-1 when base%6 == 0
		if tmp.ProbablyPrime(TestRounds) {
			return tmp, nil
		}
	}

	x5, x7 := basesegment.Build(vx)
	// Build also clears 5, 7, 11 and 13, which divide vx; set them again so
	// the first segment can return them. In every later segment these four
	// positions hold multiples of those primes, which fail the primality test.
	x5.Set(1)
	x7.Set(1)
	x5.Set(2)
	x7.Set(2)

	vxBig := new(big.Int).SetUint64(vx)
	xP := new(big.Int).Div(tmp, big6)
	y := new(big.Int).Div(xP, vxBig)
	yvx := new(big.Int).Mul(y, vxBig)

	// Forward, the walk starts one coordinate past tmp's; backward, at tmp's
	// own coordinate, whose two candidates both lie below base.
	startX := new(big.Int).Mod(xP, vxBig).Int64()
	if forward {
		startX++
	}
	var endX int64
	if forward {
		endX = int64(vx) + 1
	} else {
		endX = 0
	}

	found := false
	var result *big.Int

	for i := 0; i < maxSegments && !found; i++ {
		if i > 0 {
			if forward {
				startX = 1
			} else {
				startX = int64(vx)
			}
		}

		if forward {
			result, found = scanForward(startX, endX, x5, x7, yvx)
			yvx.Add(yvx, vxBig)
		} else {
			result, found = scanBackward(startX, endX, x5, x7, yvx)
			yvx.Sub(yvx, vxBig)
		}
	}

	if !found {
		l := logger.With(zap.String("base", base.String()), zap.Bool("forward", forward))
		l.Debug("Next: no prime found within segment cap")
		return nil, izerr.ErrNotFound
	}
	return result, nil
}

func scanForward(startX, endX int64, x5, x7 *bitarray.BitArray, yvx *big.Int) (*big.Int, bool) {
	for x := startX; x < endX; x++ {
		if x5.Get(uint64(x)) {
			if p, ok := testCandidate(yvx, x, -1); ok {
				return p, true
			}
		}
		if x7.Get(uint64(x)) {
			if p, ok := testCandidate(yvx, x, 1); ok {
				return p, true
			}
		}
	}
	return nil, false
}

func scanBackward(startX, endX int64, x5, x7 *bitarray.BitArray, yvx *big.Int) (*big.Int, bool) {
	for x := startX; x > endX; x-- {
		if x7.Get(uint64(x)) {
			if p, ok := testCandidate(yvx, x, 1); ok {
				return p, true
			}
		}
		if x5.Get(uint64(x)) {
			if p, ok := testCandidate(yvx, x, -1); ok {
				return p, true
			}
		}
	}
	return nil, false
}

func testCandidate(yvx *big.Int, x int64, residue int64) (*big.Int, bool) {
	xP := new(big.Int).Add(yvx, big.NewInt(x))
	p := new(big.Int).Mul(xP, big6)
	p.Add(p, big.NewInt(residue))
	if p.ProbablyPrime(TestRounds) {
		return p, true
	}
	return nil, false
}

// RandomNext returns a random prime of approximately bitSize bits, found by
// drawing a random base of that many bits and walking forward from it with
// Next. bitSize below 10 is raised to 10.
func RandomNext(bitSize int) (*big.Int, error) {
	if bitSize < 10 {
		bitSize = 10
	}
	base, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), uint(bitSize)))
	if err != nil {
		return nil, err
	}
	base.SetBit(base, bitSize-1, 1)
	return Next(base, true)
}
