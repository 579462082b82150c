package store

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/memes-izprime/izprime/internal/bitarray"
	"github.com/memes-izprime/izprime/internal/container"
)

func tempPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

func TestPrimeListRoundTrip(t *testing.T) {
	path := tempPath(t, "a")
	pl := container.NewPrimeList([]uint64{2, 3, 5, 7, 11, 13, 17, 19})
	if err := WritePrimeList(path, pl); err != nil {
		t.Fatalf("WritePrimeList error: %v", err)
	}
	got, err := ReadPrimeList(path)
	if err != nil {
		t.Fatalf("ReadPrimeList error: %v", err)
	}
	if len(got.Primes) != len(pl.Primes) {
		t.Fatalf("got %d primes, want %d", len(got.Primes), len(pl.Primes))
	}
	for i := range pl.Primes {
		if got.Primes[i] != pl.Primes[i] {
			t.Errorf("primes[%d] = %d, want %d", i, got.Primes[i], pl.Primes[i])
		}
	}
}

func TestPrimeListTamperDetection(t *testing.T) {
	path := tempPath(t, "b")
	pl := container.NewPrimeList([]uint64{2, 3, 5, 7})
	if err := WritePrimeList(path, pl); err != nil {
		t.Fatalf("WritePrimeList error: %v", err)
	}

	raw, err := os.ReadFile(withExt(path, PrimeListExt))
	if err != nil {
		t.Fatal(err)
	}
	raw[4] ^= 0xFF // flip a byte in the first prime's encoding
	if err := os.WriteFile(withExt(path, PrimeListExt), raw, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadPrimeList(path); err == nil {
		t.Error("expected integrity error after tampering")
	}
}

func TestGapListRoundTrip(t *testing.T) {
	path := tempPath(t, "c")
	gl := container.NewGapList(5005, big.NewInt(42))
	gl.Append(4)
	gl.Append(2)
	gl.Append(6)
	gl.BitOps = 17
	gl.PTestOps = 3

	if err := WriteGapList(path, gl); err != nil {
		t.Fatalf("WriteGapList error: %v", err)
	}
	got, err := ReadGapList(path)
	if err != nil {
		t.Fatalf("ReadGapList error: %v", err)
	}
	if got.VX != gl.VX || got.Y.Cmp(gl.Y) != 0 {
		t.Errorf("got vx=%d y=%s, want vx=%d y=%s", got.VX, got.Y, gl.VX, gl.Y)
	}
	if len(got.Gaps) != len(gl.Gaps) {
		t.Fatalf("got %d gaps, want %d", len(got.Gaps), len(gl.Gaps))
	}
	for i := range gl.Gaps {
		if got.Gaps[i] != gl.Gaps[i] {
			t.Errorf("gaps[%d] = %d, want %d", i, got.Gaps[i], gl.Gaps[i])
		}
	}
}

// TestGapListReadSizesBufferFromStoredCount locks in the fix for the
// pre-allocated-buffer overflow: a gap list with far more entries than any
// small initial estimate would provide for must still read back correctly,
// because the gaps slice is sized from the count read off disk, not from
// any estimate made before the read.
func TestGapListReadSizesBufferFromStoredCount(t *testing.T) {
	path := tempPath(t, "d")
	gl := container.NewGapList(35, big.NewInt(0)) // an estimate keyed to vx=35 would be tiny
	for i := 0; i < 5000; i++ {
		gl.Append(uint16(4 + (i % 3)))
	}
	if err := WriteGapList(path, gl); err != nil {
		t.Fatalf("WriteGapList error: %v", err)
	}
	got, err := ReadGapList(path)
	if err != nil {
		t.Fatalf("ReadGapList error: %v", err)
	}
	if len(got.Gaps) != 5000 {
		t.Errorf("got %d gaps, want 5000", len(got.Gaps))
	}
}

func TestGapListTamperDetection(t *testing.T) {
	path := tempPath(t, "e")
	gl := container.NewGapList(5005, big.NewInt(1))
	gl.Append(4)
	gl.Append(2)
	if err := WriteGapList(path, gl); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(withExt(path, GapListExt))
	if err != nil {
		t.Fatal(err)
	}
	raw[len(raw)-1] ^= 0xFF // flip a byte in the trailer
	if err := os.WriteFile(withExt(path, GapListExt), raw, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadGapList(path); err == nil {
		t.Error("expected integrity error after tampering")
	}
}

func TestBitmapRoundTrip(t *testing.T) {
	path := tempPath(t, "f")
	b := bitarray.New(100)
	b.Set(3)
	b.Set(97)
	if err := WriteBitmap(path, b); err != nil {
		t.Fatalf("WriteBitmap error: %v", err)
	}
	got, err := ReadBitmap(path)
	if err != nil {
		t.Fatalf("ReadBitmap error: %v", err)
	}
	if got.Size() != b.Size() {
		t.Fatalf("got size %d, want %d", got.Size(), b.Size())
	}
	for i := uint64(0); i < 100; i++ {
		if got.Get(i) != b.Get(i) {
			t.Errorf("bit %d mismatch", i)
		}
	}
}

func TestEnsureOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "path")
	if err := EnsureOutputDir(dir); err != nil {
		t.Fatalf("EnsureOutputDir error: %v", err)
	}
	if stat, err := os.Stat(dir); err != nil || !stat.IsDir() {
		t.Errorf("expected dir to exist at %s", dir)
	}
}
