// Package store implements the binary file formats for the toolkit's
// result containers: a flat prime list, a VX-segment gap list, and a raw
// bitmap. All three formats end with a SHA-256 trailer computed over the
// payload, checked on every read.
package store

import (
	"bufio"
	"encoding/binary"
	"io"
	"math/big"
	"os"
	"path/filepath"

	"github.com/memes-izprime/izprime/internal/bitarray"
	"github.com/memes-izprime/izprime/internal/container"
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

// PrimeListExt is the file extension WritePrimeList appends when absent.
const PrimeListExt = ".primes"

// GapListExt is the file extension WriteGapList appends when absent.
const GapListExt = ".vx"

// BitmapExt is the file extension WriteBitmap appends when absent.
const BitmapExt = ".bitmap"

// EnsureOutputDir creates dir (and any missing parents) if it does not
// already exist.
func EnsureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errIO(err)
	}
	return nil
}

func errIO(err error) error {
	return &wrappedErr{kind: izerr.ErrIOFailed, cause: err}
}

type wrappedErr struct {
	kind  error
	cause error
}

func (e *wrappedErr) Error() string { return e.kind.Error() + ": " + e.cause.Error() }
func (e *wrappedErr) Unwrap() error { return e.kind }

func withExt(path, ext string) string {
	if filepath.Ext(path) == ext {
		return path
	}
	return path + ext
}

// WritePrimeList writes pl's primes, big-endian uint64, followed by a
// SHA-256 trailer computed over that payload, to path (ext PrimeListExt
// appended if absent).
func WritePrimeList(path string, pl *container.PrimeList) error {
	path = withExt(path, PrimeListExt)
	f, err := os.Create(path)
	if err != nil {
		return errIO(err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	var hdr [4]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(len(pl.Primes)))
	if _, err := w.Write(hdr[:]); err != nil {
		return errIO(err)
	}

	buf := make([]byte, 8)
	for _, p := range pl.Primes {
		binary.BigEndian.PutUint64(buf, p)
		if _, err := w.Write(buf); err != nil {
			return errIO(err)
		}
	}

	hash := pl.Hash()
	if _, err := w.Write(hash[:]); err != nil {
		return errIO(err)
	}
	if err := w.Flush(); err != nil {
		return errIO(err)
	}
	l := logger.With(zap.String("path", path), zap.Int("count", len(pl.Primes)))
	l.Debug("WritePrimeList: complete")
	return nil
}

// ReadPrimeList reads a file written by WritePrimeList, verifying its
// trailer. The count is read before the prime array is allocated, so a
// corrupted count cannot cause an oversized or undersized allocation to be
// reused across calls.
func ReadPrimeList(path string) (*container.PrimeList, error) {
	path = withExt(path, PrimeListExt)
	f, err := os.Open(path)
	if err != nil {
		return nil, errIO(err)
	}
	defer f.Close()
	r := bufio.NewReader(f)

	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, errIO(err)
	}
	count := binary.BigEndian.Uint32(hdr[:])

	primes := make([]uint64, count)
	buf := make([]byte, 8)
	for i := range primes {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, errIO(err)
		}
		primes[i] = binary.BigEndian.Uint64(buf)
	}

	var storedHash [32]byte
	if _, err := io.ReadFull(r, storedHash[:]); err != nil {
		return nil, errIO(err)
	}

	pl := container.NewPrimeList(primes)
	if !pl.ValidateHash(storedHash) {
		return nil, izerr.ErrIntegrityFailed
	}
	return pl, nil
}

// WriteGapList writes gl's vx, y, and gaps (big-endian uint16), followed by
// a SHA-256 trailer computed over the gaps payload, to path (ext
// GapListExt appended if absent).
func WriteGapList(path string, gl *container.GapList) error {
	path = withExt(path, GapListExt)
	f, err := os.Create(path)
	if err != nil {
		return errIO(err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	var vxBuf [8]byte
	binary.BigEndian.PutUint64(vxBuf[:], gl.VX)
	if _, err := w.Write(vxBuf[:]); err != nil {
		return errIO(err)
	}

	yBytes := []byte(gl.Y.String())
	var yLenBuf [4]byte
	binary.BigEndian.PutUint32(yLenBuf[:], uint32(len(yBytes)))
	if _, err := w.Write(yLenBuf[:]); err != nil {
		return errIO(err)
	}
	if _, err := w.Write(yBytes); err != nil {
		return errIO(err)
	}

	var countBuf [4]byte
	binary.BigEndian.PutUint32(countBuf[:], uint32(len(gl.Gaps)))
	if _, err := w.Write(countBuf[:]); err != nil {
		return errIO(err)
	}

	buf := make([]byte, 2)
	for _, g := range gl.Gaps {
		binary.BigEndian.PutUint16(buf, g)
		if _, err := w.Write(buf); err != nil {
			return errIO(err)
		}
	}

	hash := gl.Hash()
	if _, err := w.Write(hash[:]); err != nil {
		return errIO(err)
	}
	if err := w.Flush(); err != nil {
		return errIO(err)
	}
	l := logger.With(zap.String("path", path), zap.Int("gaps", len(gl.Gaps)))
	l.Debug("WriteGapList: complete")
	return nil
}

// ReadGapList reads a file written by WriteGapList, verifying its trailer.
// The gap count is read from the file before the gaps slice is allocated —
// unlike the structure this package is modeled on, which pre-allocates the
// gaps buffer from an estimate at construction time and then reuses that
// same buffer on read, risking an overflow when the stored count exceeds
// the estimate.
func ReadGapList(path string) (*container.GapList, error) {
	path = withExt(path, GapListExt)
	f, err := os.Open(path)
	if err != nil {
		return nil, errIO(err)
	}
	defer f.Close()
	r := bufio.NewReader(f)

	var vxBuf [8]byte
	if _, err := io.ReadFull(r, vxBuf[:]); err != nil {
		return nil, errIO(err)
	}
	vx := binary.BigEndian.Uint64(vxBuf[:])

	var yLenBuf [4]byte
	if _, err := io.ReadFull(r, yLenBuf[:]); err != nil {
		return nil, errIO(err)
	}
	yLen := binary.BigEndian.Uint32(yLenBuf[:])
	yBytes := make([]byte, yLen)
	if _, err := io.ReadFull(r, yBytes); err != nil {
		return nil, errIO(err)
	}
	y, ok := new(big.Int).SetString(string(yBytes), 10)
	if !ok {
		return nil, izerr.ErrInvalidArgument
	}

	var countBuf [4]byte
	if _, err := io.ReadFull(r, countBuf[:]); err != nil {
		return nil, errIO(err)
	}
	count := binary.BigEndian.Uint32(countBuf[:])

	// Allocated only now, sized to the count just read: the fix for the
	// stale pre-allocated-buffer overflow in the structure this read path
	// is modeled on.
	gaps := make([]uint16, count)
	buf := make([]byte, 2)
	for i := range gaps {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, errIO(err)
		}
		gaps[i] = binary.BigEndian.Uint16(buf)
	}

	var storedHash [32]byte
	if _, err := io.ReadFull(r, storedHash[:]); err != nil {
		return nil, errIO(err)
	}

	gl := container.NewGapList(vx, y)
	gl.Gaps = gaps
	if !gl.ValidateHash(storedHash) {
		return nil, izerr.ErrIntegrityFailed
	}
	return gl, nil
}

// WriteBitmap writes b's bit count and packed byte backing, followed by a
// SHA-256 trailer over the packed bytes, to path (ext BitmapExt appended
// if absent).
func WriteBitmap(path string, b *bitarray.BitArray) error {
	path = withExt(path, BitmapExt)
	f, err := os.Create(path)
	if err != nil {
		return errIO(err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	var sizeBuf [8]byte
	binary.BigEndian.PutUint64(sizeBuf[:], b.Size())
	if _, err := w.Write(sizeBuf[:]); err != nil {
		return errIO(err)
	}
	if _, err := w.Write(b.Bytes()); err != nil {
		return errIO(err)
	}
	hash := b.Hash()
	if _, err := w.Write(hash[:]); err != nil {
		return errIO(err)
	}
	if err := w.Flush(); err != nil {
		return errIO(err)
	}
	l := logger.With(zap.String("path", path), zap.Uint64("size", b.Size()))
	l.Debug("WriteBitmap: complete")
	return nil
}

// ReadBitmap reads a file written by WriteBitmap, verifying its trailer.
// The bit count is read before the packed byte buffer is allocated.
func ReadBitmap(path string) (*bitarray.BitArray, error) {
	path = withExt(path, BitmapExt)
	f, err := os.Open(path)
	if err != nil {
		return nil, errIO(err)
	}
	defer f.Close()
	r := bufio.NewReader(f)

	var sizeBuf [8]byte
	if _, err := io.ReadFull(r, sizeBuf[:]); err != nil {
		return nil, errIO(err)
	}
	size := binary.BigEndian.Uint64(sizeBuf[:])

	packedLen := (size + 7) / 8
	data := make([]byte, packedLen)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, errIO(err)
	}

	var storedHash [32]byte
	if _, err := io.ReadFull(r, storedHash[:]); err != nil {
		return nil, errIO(err)
	}

	b := bitarray.FromBytes(size, data)
	if !b.ValidateHash(storedHash) {
		return nil, izerr.ErrIntegrityFailed
	}
	return b, nil
}
