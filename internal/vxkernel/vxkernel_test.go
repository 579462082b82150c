package vxkernel

import (
	"math/big"
	"testing"

	"github.com/memes-izprime/izprime/internal/sieve"
)

func TestSieveVXAgreesWithSieveIZ(t *testing.T) {
	vx := uint64(5005) // 5*7*11*13
	assets, err := NewAssets(vx)
	if err != nil {
		t.Fatalf("NewAssets error: %v", err)
	}

	for _, y := range []int64{0, 1, 2, 5} {
		gl, err := SieveVX(vx, big.NewInt(y), assets)
		if err != nil {
			t.Fatalf("SieveVX(y=%d) error: %v", y, err)
		}
		got, err := gl.Primes()
		if err != nil {
			if len(gl.Gaps) == 0 {
				continue // no primes in this tiny segment; acceptable.
			}
			t.Fatalf("Primes() error: %v", err)
		}

		hi := 6*uint64(y+1)*vx + 1
		lo := 6*uint64(y)*vx + 5
		want, err := sieve.SieveIZ(hi + 6)
		if err != nil {
			t.Fatalf("SieveIZ error: %v", err)
		}
		var filtered []uint64
		for _, p := range want {
			if p >= lo && p <= hi {
				filtered = append(filtered, p)
			}
		}
		if len(got) != len(filtered) {
			t.Fatalf("y=%d: SieveVX found %d primes, oracle found %d\ngot:  %v\nwant: %v", y, len(got), len(filtered), got, filtered)
		}
		for i := range got {
			if got[i] != filtered[i] {
				t.Errorf("y=%d index %d: got %d, want %d", y, i, got[i], filtered[i])
			}
		}
	}
}

func TestSieveVXLargeModeUsesPrimalityTest(t *testing.T) {
	vx := uint64(35) // tiny vx so y quickly pushes candidates past vx^2
	assets, err := NewAssets(vx)
	if err != nil {
		t.Fatalf("NewAssets error: %v", err)
	}
	gl, err := SieveVX(vx, big.NewInt(1000), assets)
	if err != nil {
		t.Fatalf("SieveVX error: %v", err)
	}
	if gl.PTestOps == 0 {
		t.Error("expected large-mode segment to record primality test operations")
	}
}
