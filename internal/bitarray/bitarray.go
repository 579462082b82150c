// Package bitarray implements a fixed-capacity packed bit array tailored to
// the sieve kernels in internal/sieve, internal/basesegment and
// internal/vxkernel: whole-array set/clear, single-bit access, a
// stride-clear used as the hot composite-marking loop, and segment
// duplication used to tile a pre-sieved base pattern across a larger range.
package bitarray

import (
	"crypto/sha256"

	"go.uber.org/zap"
)

var logger = zap.NewNop()

// SetLogger changes the logger instance used by this package.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// BitArray is a packed sequence of bits of fixed capacity. Capacity does
// not change after creation.
type BitArray struct {
	size uint64
	data []byte
}

// New creates a BitArray with room for size bits, all cleared.
func New(size uint64) *BitArray {
	return &BitArray{
		size: size,
		data: make([]byte, (size+7)/8),
	}
}

// Size returns the number of addressable bits.
func (b *BitArray) Size() uint64 {
	return b.size
}

// SetAll sets every bit to 1.
func (b *BitArray) SetAll() {
	for i := range b.data {
		b.data[i] = 0xFF
	}
}

// ClearAll sets every bit to 0.
func (b *BitArray) ClearAll() {
	for i := range b.data {
		b.data[i] = 0
	}
}

// Get returns the value of the bit at idx.
func (b *BitArray) Get(idx uint64) bool {
	return b.data[idx/8]&(1<<(idx%8)) != 0
}

// Set sets the bit at idx to 1.
func (b *BitArray) Set(idx uint64) {
	b.data[idx/8] |= 1 << (idx % 8)
}

// Clear sets the bit at idx to 0.
func (b *BitArray) Clear(idx uint64) {
	b.data[idx/8] &^= 1 << (idx % 8)
}

// Flip inverts the bit at idx.
func (b *BitArray) Flip(idx uint64) {
	b.data[idx/8] ^= 1 << (idx % 8)
}

// ClearStride clears indices start, start+p, start+2p, ... while < limit.
// This is the performance-critical inner loop of every sieve kernel: it is
// deliberately a flat loop with no abstraction between it and the backing
// byte slice.
func (b *BitArray) ClearStride(p uint64, start uint64, limit uint64) {
	for i := start; i < limit; i += p {
		b.data[i/8] &^= 1 << (i % 8)
	}
}

// Bytes returns the packed byte backing of the array, for serialization.
// The returned slice aliases b's storage: callers must not mutate it.
func (b *BitArray) Bytes() []byte {
	return b.data
}

// FromBytes reconstructs a BitArray of size bits from a packed byte slice
// previously obtained from Bytes.
func FromBytes(size uint64, data []byte) *BitArray {
	b := New(size)
	copy(b.data, data)
	return b
}

// Clone returns a deep copy of b.
func (b *BitArray) Clone() *BitArray {
	data := make([]byte, len(b.data))
	copy(data, b.data)
	return &BitArray{size: b.size, data: data}
}

// CopyRange copies length bits from src starting at srcOff into dst
// starting at dstOff.
func CopyRange(dst *BitArray, dstOff uint64, src *BitArray, srcOff uint64, length uint64) {
	for i := uint64(0); i < length; i++ {
		if src.Get(srcOff + i) {
			dst.Set(dstOff + i)
		} else {
			dst.Clear(dstOff + i)
		}
	}
}

// DuplicateSegment replicates the range [start, start+segSize) across k-1
// further copies, so that after the call, for every j in [1, k-1], the
// range [start+j*segSize, start+(j+1)*segSize) is a bitwise copy of
// [start, start+segSize). b must hold at least start+k*segSize bits. Used
// to tile a pre-sieved base pattern across a larger vx as each further
// small prime is folded in.
func (b *BitArray) DuplicateSegment(start uint64, segSize uint64, k uint64) {
	for j := uint64(1); j < k; j++ {
		CopyRange(b, start+j*segSize, b, start, segSize)
	}
}

// Hash computes the SHA-256 digest of the packed byte backing of the array.
func (b *BitArray) Hash() [32]byte {
	l := logger.With(zap.Uint64("size", b.size))
	l.Debug("Hash: computing")
	return sha256.Sum256(b.data)
}

// ValidateHash reports whether expected matches the digest of the current
// contents.
func (b *BitArray) ValidateHash(expected [32]byte) bool {
	return b.Hash() == expected
}
