// Package izprime is the public entry point to the iZ prime toolkit: a
// deterministic and segmented Sieve-iZ, a gap-encoded VX-kernel sieve for
// cryptographic-scale ranges, next-prime and random-prime search, and the
// file formats that carry their results to disk. Most of the work lives in
// internal/ packages organized one per algorithmic component; this package
// itself holds only the shared Miller-Rabin round count and an
// arbitrary-precision primality check, and re-exports none of them.
package izprime

import (
	"math/big"

	"go.uber.org/zap"
)

var logger = zap.NewNop()

// SetLogger changes the logger instance used by this package only; each
// internal/ subpackage has its own SetLogger. Call once during startup,
// typically from cmd/izprime.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// TestRounds is the number of Miller-Rabin rounds used throughout the
// toolkit wherever a deterministic sieve hands off to a probabilistic
// primality check.
const TestRounds = 25

// ProbablyPrime reports whether n passes TestRounds rounds of Miller-Rabin
// (via math/big, which additionally runs a Baillie-PSW check first).
func ProbablyPrime(n *big.Int) bool {
	l := logger.With(zap.String("n", n.String()))
	l.Debug("ProbablyPrime: entered")
	result := n.ProbablyPrime(TestRounds)
	l.Debug("ProbablyPrime: exit", zap.Bool("result", result))
	return result
}

// ProbablyPrimeUint64 is the uint64 convenience form of ProbablyPrime.
func ProbablyPrimeUint64(n uint64) bool {
	return ProbablyPrime(new(big.Int).SetUint64(n))
}
