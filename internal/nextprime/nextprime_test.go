package nextprime

import (
	"crypto/rand"
	"math/big"
	"testing"
)

// oracleNext is a reference next-prime implementation with no relation to
// Next's pre-sieved segment walk: it simply increments (or decrements) by
// one and tests each candidate with ProbablyPrime. Used only to cross-check
// Next's result, never to produce output.
func oracleNext(base *big.Int, forward bool) *big.Int {
	step := big.NewInt(1)
	if !forward {
		step = big.NewInt(-1)
	}
	candidate := new(big.Int).Add(base, step)
	for !candidate.ProbablyPrime(TestRounds) {
		candidate.Add(candidate, step)
	}
	return candidate
}

// TestNextAgreesWithOracleAcrossRandomTrials locks in testable property 8:
// repeated trials against an independent reference next-prime
// implementation must agree with Next on the same base.
func TestNextAgreesWithOracleAcrossRandomTrials(t *testing.T) {
	limit := new(big.Int).Lsh(big.NewInt(1), 48)
	for trial := 0; trial < 50; trial++ {
		base, err := rand.Int(rand.Reader, limit)
		if err != nil {
			t.Fatalf("rand.Int error: %v", err)
		}
		if base.Sign() == 0 {
			base.SetInt64(1)
		}
		forward := trial%2 == 0

		got, err := Next(base, forward)
		if err != nil {
			t.Fatalf("Next(%s, forward=%v) error: %v", base.String(), forward, err)
		}
		want := oracleNext(base, forward)
		if got.Cmp(want) != 0 {
			t.Errorf("Next(%s, forward=%v) = %s, oracle says %s", base.String(), forward, got.String(), want.String())
		}
	}
}

func TestNextForwardFindsKnownPrimes(t *testing.T) {
	cases := []struct {
		base int64
		want int64
	}{
		{10, 11},
		{11, 13},
		{90, 97},
		{100, 101},
	}
	for _, c := range cases {
		got, err := Next(big.NewInt(c.base), true)
		if err != nil {
			t.Fatalf("Next(%d, forward) error: %v", c.base, err)
		}
		if got.Int64() != c.want {
			t.Errorf("Next(%d, forward) = %d, want %d", c.base, got.Int64(), c.want)
		}
	}
}

func TestNextBackwardFindsKnownPrimes(t *testing.T) {
	cases := []struct {
		base int64
		want int64
	}{
		{100, 97},
		{98, 97},
		{14, 13},
		{12, 11},
	}
	for _, c := range cases {
		got, err := Next(big.NewInt(c.base), false)
		if err != nil {
			t.Fatalf("Next(%d, backward) error: %v", c.base, err)
		}
		if got.Int64() != c.want {
			t.Errorf("Next(%d, backward) = %d, want %d", c.base, got.Int64(), c.want)
		}
	}
}

func TestNextResultIsPrime(t *testing.T) {
	for _, base := range []int64{1000, 100000, 999999} {
		got, err := Next(big.NewInt(base), true)
		if err != nil {
			t.Fatalf("Next(%d) error: %v", base, err)
		}
		if !got.ProbablyPrime(25) {
			t.Errorf("Next(%d) = %s is not prime", base, got.String())
		}
		if got.Cmp(big.NewInt(base)) <= 0 {
			t.Errorf("Next(%d, forward) = %s should be strictly greater", base, got.String())
		}
	}
}

func TestRandomNextReturnsPrimeOfRequestedMagnitude(t *testing.T) {
	p, err := RandomNext(64)
	if err != nil {
		t.Fatalf("RandomNext error: %v", err)
	}
	if !p.ProbablyPrime(25) {
		t.Errorf("RandomNext(64) = %s is not prime", p.String())
	}
	if p.BitLen() < 60 {
		t.Errorf("RandomNext(64) = %s has unexpectedly small bit length %d", p.String(), p.BitLen())
	}
}

func TestRandomNextRaisesSmallBitSize(t *testing.T) {
	p, err := RandomNext(2)
	if err != nil {
		t.Fatalf("RandomNext(2) error: %v", err)
	}
	if p.BitLen() < 10 {
		t.Errorf("RandomNext(2) = %s has bit length %d, want >= 10 after raising bitSize", p.String(), p.BitLen())
	}
}
