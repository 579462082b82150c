// Package izerr defines the sentinel error kinds shared across the iZ
// prime toolkit's packages, per the error-handling policy: containers and
// I/O return one of these wrapped with context, residue-algebra
// precondition violations panic instead (they are programming errors, not
// runtime conditions).
package izerr

import "errors"

var (
	// ErrTooSmall is raised by sieve constructors when n (or a bit size)
	// is below the component's stated minimum.
	ErrTooSmall = errors.New("izprime: value below minimum")
	// ErrAllocationFailed is raised by containers when backing storage
	// could not be obtained.
	ErrAllocationFailed = errors.New("izprime: allocation failed")
	// ErrInvalidArgument is raised when parsing externally supplied data
	// (e.g. a numeric y string) fails; this is distinct from a residue
	// algebra precondition violation, which panics.
	ErrInvalidArgument = errors.New("izprime: invalid argument")
	// ErrNotCoprime is raised by modular inverse and solve-for-y when
	// gcd(a, m) != 1.
	ErrNotCoprime = errors.New("izprime: not coprime")
	// ErrNotFound is raised by search/next-prime routines when their
	// attempt cap is reached. Not fatal: callers may retry or widen
	// their search.
	ErrNotFound = errors.New("izprime: not found")
	// ErrIntegrityFailed is raised on file read when the stored hash
	// does not match the recomputed hash.
	ErrIntegrityFailed = errors.New("izprime: integrity check failed")
	// ErrIOFailed is raised on file read/write for underlying I/O
	// errors.
	ErrIOFailed = errors.New("izprime: I/O failed")
)
