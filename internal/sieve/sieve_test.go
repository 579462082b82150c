package sieve

import (
	"reflect"
	"sort"
	"testing"
)

func sortedCopy(in []uint64) []uint64 {
	out := make([]uint64, len(in))
	copy(out, in)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestSieveIZTooSmall(t *testing.T) {
	if _, err := SieveIZ(9); err == nil {
		t.Error("expected error for n < 10")
	}
}

func TestSieveIZAgreesWithOracles(t *testing.T) {
	for _, n := range []uint64{10, 100, 1000, 10000} {
		got, err := SieveIZ(n)
		if err != nil {
			t.Fatalf("SieveIZ(%d) error: %v", n, err)
		}
		want := oracleEratosthenes(n)
		if !reflect.DeepEqual(sortedCopy(got), want) {
			t.Errorf("SieveIZ(%d) disagrees with oracleEratosthenes:\ngot  %v\nwant %v", n, sortedCopy(got), want)
		}
	}
}

func TestSieveIZmAgreesWithSieveIZ(t *testing.T) {
	for _, n := range []uint64{1000, 5000, 50000} {
		a, err := SieveIZ(n)
		if err != nil {
			t.Fatalf("SieveIZ(%d) error: %v", n, err)
		}
		b, err := SieveIZm(n)
		if err != nil {
			t.Fatalf("SieveIZm(%d) error: %v", n, err)
		}
		if !reflect.DeepEqual(sortedCopy(a), sortedCopy(b)) {
			t.Errorf("SieveIZ(%d) and SieveIZm(%d) disagree:\nIZ  %v\nIZm %v", n, n, sortedCopy(a), sortedCopy(b))
		}
	}
}

func TestSieveIZmAgreesWithSegmentedOracle(t *testing.T) {
	n := uint64(20000)
	got, err := SieveIZm(n)
	if err != nil {
		t.Fatalf("SieveIZm error: %v", err)
	}
	want := oracleSegmented(n, 997)
	if !reflect.DeepEqual(sortedCopy(got), want) {
		t.Errorf("SieveIZm disagrees with oracleSegmented")
	}
}

func TestSieveIZAgreesWithAtkin(t *testing.T) {
	n := uint64(5000)
	got, err := SieveIZ(n)
	if err != nil {
		t.Fatalf("SieveIZ error: %v", err)
	}
	want := oracleAtkin(n)
	if !reflect.DeepEqual(sortedCopy(got), want) {
		t.Errorf("SieveIZ disagrees with oracleAtkin")
	}
}

func TestSieveIZmFallsBackBelow1000(t *testing.T) {
	a, err := SieveIZ(500)
	if err != nil {
		t.Fatal(err)
	}
	b, err := SieveIZm(500)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(sortedCopy(a), sortedCopy(b)) {
		t.Error("SieveIZm should fall back to SieveIZ below n=1000")
	}
}

func TestAnalyzePrimeSpace(t *testing.T) {
	stats := AnalyzePrimeSpace(385) // 5*7*11
	if stats.PrimesCount != stats.IZm5Count+stats.IZm7Count {
		t.Error("PrimesCount should equal the sum of the two matrix counts")
	}
	if stats.TwinCount == 0 {
		t.Error("expected at least one twin-gap candidate in a segment this size")
	}
}

func BenchmarkSieveIZ(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = SieveIZ(100000)
	}
}

func BenchmarkSieveIZm(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = SieveIZm(100000)
	}
}
