// Package container holds the two result containers that cross the
// sieve/store boundary: PrimeList, a flat list of primes with a content
// hash, and GapList, the compact gap-encoded result of a VX-kernel segment
// sieve. Both compute their own SHA-256 digest so the store package can
// detect corruption on read without re-deriving the data.
package container

import (
	"crypto/sha256"
	"encoding/binary"
	"math/big"

	"github.com/memes-izprime/izprime/internal/izerr"
)

var big1 = big.NewInt(1)

// PrimeList is a flat, ascending list of primes produced by sieve_iZ or
// sieve_iZm.
type PrimeList struct {
	Primes []uint64
}

// NewPrimeList wraps primes in a PrimeList. The slice is not copied: callers
// should treat it as transferred once passed in.
func NewPrimeList(primes []uint64) *PrimeList {
	return &PrimeList{Primes: primes}
}

// Hash returns the SHA-256 digest of the prime list's big-endian uint64
// encoding, matching the trailer format written to prime-list files.
func (pl *PrimeList) Hash() [32]byte {
	h := sha256.New()
	buf := make([]byte, 8)
	for _, p := range pl.Primes {
		binary.BigEndian.PutUint64(buf, p)
		h.Write(buf)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// ValidateHash reports whether expected matches the digest of the current
// contents.
func (pl *PrimeList) ValidateHash(expected [32]byte) bool {
	return pl.Hash() == expected
}

// GapList is the result of sieving a single VX-kernel segment: the gaps
// between consecutive primes found in the iZ-matrices at y, encoded as
// 16-bit deltas, plus the operation counters collected along the way.
type GapList struct {
	VX       uint64
	Y        *big.Int
	Gaps     []uint16
	BitOps   uint64
	PTestOps uint64
}

// NewGapList creates an empty GapList for the segment of size vx at y. y is
// copied: the returned GapList owns its own value and is unaffected by
// later mutation of the caller's big.Int.
func NewGapList(vx uint64, y *big.Int) *GapList {
	return &GapList{
		VX: vx,
		Y:  new(big.Int).Set(y),
	}
}

// Append records a gap value, incrementing the running count.
func (gl *GapList) Append(gap uint16) {
	gl.Gaps = append(gl.Gaps, gap)
}

// Hash returns the SHA-256 digest of the gap list's big-endian uint16
// encoding, matching the trailer format written to VX files.
func (gl *GapList) Hash() [32]byte {
	h := sha256.New()
	buf := make([]byte, 2)
	for _, g := range gl.Gaps {
		binary.BigEndian.PutUint16(buf, g)
		h.Write(buf)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// ValidateHash reports whether expected matches the digest of the current
// contents.
func (gl *GapList) ValidateHash(expected [32]byte) bool {
	return gl.Hash() == expected
}

// Primes reconstructs the absolute prime values represented by this gap
// list: the first prime is 6*vx*y + 1 (iZ(vx*y, +1)) plus the first gap;
// every subsequent prime is the previous plus its gap.
// Returns izerr.ErrInvalidArgument if the list is empty.
func (gl *GapList) Primes() ([]uint64, error) {
	if len(gl.Gaps) == 0 {
		return nil, izerr.ErrInvalidArgument
	}
	// Baseline is the virtual point iZ(yvx, +1) = 6*yvx + 1, immediately
	// preceding x=1 in this segment; the first recorded gap (always >= 4)
	// advances from there to the first surviving candidate.
	yvx := new(big.Int).Mul(gl.Y, new(big.Int).SetUint64(gl.VX))
	cursor := new(big.Int).Mul(yvx, big.NewInt(6))
	cursor.Add(cursor, big1)

	out := make([]uint64, 0, len(gl.Gaps))
	for _, g := range gl.Gaps {
		cursor.Add(cursor, new(big.Int).SetUint64(uint64(g)))
		if !cursor.IsUint64() {
			return nil, izerr.ErrInvalidArgument
		}
		out = append(out, cursor.Uint64())
	}
	return out, nil
}
