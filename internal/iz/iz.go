// Package iz implements the iZ decomposition: every natural number n >= 5
// with n mod 6 in {1, 5} can be written as n = 6x + i for x >= 1 and
// i in {-1, +1}. This package provides the residue algebra built on that
// decomposition — iZ itself, the vx-sizing helpers, and the modular
// solve-for-x/solve-for-y routines used by the base-segment builder, the
// sieves, and the VX kernel to locate the first composite mark of a root
// prime within an arbitrary slab.
package iz

import (
	"math/big"

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

var (
	smallPrimes = []uint64{5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47}
	big6        = big.NewInt(6)
	big1        = big.NewInt(1)
)

// checkI panics unless i is -1 or +1; this mirrors the hard assert() in
// the original iZ() — a violation here is a programming error, not a
// runtime condition a caller should be expected to recover from.
func checkI(i int) {
	if i != -1 && i != 1 {
		panic("iz: i must be -1 or 1")
	}
}

// IZ computes 6x + i. Preconditions x >= 1 and i in {-1, +1} are hard
// asserts: violating them is a programming error.
func IZ(x uint64, i int) uint64 {
	checkI(i)
	if x == 0 {
		panic("iz: x must be greater than 0")
	}
	return 6*x + uint64(i)
}

// IZBig computes 6x + i for an arbitrary-precision x.
func IZBig(x *big.Int, i int) *big.Int {
	checkI(i)
	if x.Sign() <= 0 {
		panic("iz: x must be greater than 0")
	}
	z := new(big.Int).Mul(x, big6)
	return z.Add(z, big.NewInt(int64(i)))
}

// SignOf returns the residue class (+1 or -1) of p, i.e. its iZ matrix id.
func SignOf(p uint64) int {
	if p%6 == 1 {
		return 1
	}
	return -1
}

// ComputeLimitedVx starts from 35 and multiplies in further small primes
// from {11, 13, 17, ...} while the running product stays <= xN/2 and at
// most k-2 extra primes are consumed. Returns the final product.
func ComputeLimitedVx(xN uint64, k int) uint64 {
	vx := uint64(35)
	i := 2 // skip 5, 7 already folded into the seed 35
	for i < k && vx*smallPrimes[i] <= xN/2 {
		vx *= smallPrimes[i]
		i++
	}
	l := logger.With(zap.Uint64("x_n", xN), zap.Int("k", k), zap.Uint64("vx", vx))
	l.Debug("ComputeLimitedVx: computed")
	return vx
}

// ComputeMaxVxBig returns the largest primorial p3*p4*...*pk (starting at
// 5) whose bit length does not exceed bitSize.
func ComputeMaxVxBig(bitSize int) *big.Int {
	vx := big.NewInt(int64(smallPrimes[0]))
	i := 0
	for vx.BitLen() <= bitSize {
		i++
		if i >= len(smallPrimes) {
			// Extend the small-prime table by trial division; bit
			// sizes beyond the hard-coded table are a rare path
			// (multi-thousand-bit requests) so a simple search here
			// is adequate.
			next := nextPrimeAfter(smallPrimes[len(smallPrimes)-1])
			smallPrimes = append(smallPrimes, next)
		}
		vx.Mul(vx, big.NewInt(int64(smallPrimes[i])))
	}
	vx.Div(vx, big.NewInt(int64(smallPrimes[i])))
	return vx
}

func nextPrimeAfter(n uint64) uint64 {
	candidate := n + 2
	for {
		if big.NewInt(int64(candidate)).ProbablyPrime(25) {
			return candidate
		}
		candidate += 2
	}
}

// normalizedXp returns x_p normalized for matrixID: if p's own residue
// class equals matrixID, x_p is kept; otherwise it is reflected to p-x_p.
func normalizedXp(matrixID int, p uint64) uint64 {
	xp := (p + 1) / 6
	if matrixID == SignOf(p) {
		return xp
	}
	return p - xp
}

// SolveForX returns the smallest x in [1, p] such that iZ(y*vx+x, matrixID)
// is divisible by p.
func SolveForX(matrixID int, p uint64, vx uint64, y uint64) uint64 {
	checkI(matrixID)
	xp := normalizedXp(matrixID, p)
	yvx := vx * y
	return p - (yvx%p+p-xp)%p
}

// SolveForXBig is the arbitrary-precision y counterpart of SolveForX.
func SolveForXBig(matrixID int, p uint64, vx uint64, y *big.Int) uint64 {
	checkI(matrixID)
	xp := normalizedXp(matrixID, p)
	tmp := new(big.Int).Mul(y, new(big.Int).SetUint64(vx))
	tmp.Sub(tmp, new(big.Int).SetUint64(xp))
	tmp.Mod(tmp, new(big.Int).SetUint64(p))
	return p - tmp.Uint64()
}

// SolveForY returns the smallest y satisfying (x + vx*y) = x_p (mod p). It
// fails with izerr.ErrNotCoprime when p divides vx.
func SolveForY(matrixID int, p uint64, vx uint64, x uint64) (uint64, error) {
	checkI(matrixID)
	if vx%p == 0 {
		return 0, izerr.ErrNotCoprime
	}
	xp := normalizedXp(matrixID, p)
	if x%p == xp {
		return 0, nil
	}
	delta := (int64(xp) - int64(x)) % int64(p)
	if delta < 0 {
		delta += int64(p)
	}
	vxInv, err := ModularInverse(int64(vx), int64(p))
	if err != nil {
		return 0, err
	}
	return uint64(delta*vxInv) % p, nil
}

// ModularInverse computes the multiplicative inverse of a modulo m using
// the Extended Euclidean Algorithm. Fails with izerr.ErrNotCoprime when
// gcd(a, m) != 1.
func ModularInverse(a, m int64) (int64, error) {
	if m == 1 {
		return 0, nil
	}
	if gcd(a, m) != 1 {
		return 0, izerr.ErrNotCoprime
	}
	m0, x0, x1 := m, int64(0), int64(1)
	aa := a
	mm := m
	for aa > 1 {
		q := aa / mm
		t := mm
		mm = aa % mm
		aa = t
		t = x0
		x0 = x1 - q*x0
		x1 = t
	}
	if x1 < 0 {
		x1 += m0
	}
	return x1, nil
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

// ModularInverseBig is the arbitrary-precision counterpart of
// ModularInverse.
func ModularInverseBig(a, m *big.Int) (*big.Int, error) {
	g := new(big.Int)
	x := new(big.Int)
	g.GCD(x, nil, a, m)
	if g.Cmp(big1) != 0 {
		return nil, izerr.ErrNotCoprime
	}
	x.Mod(x, m)
	if x.Sign() < 0 {
		x.Add(x, m)
	}
	return x, nil
}
