// Package rootprimes is a thin façade over internal/sieve, providing the
// small-to-medium prime lists that the VX kernel needs as sieving roots:
// every prime below a segment size vx is a candidate root prime for
// composite-marking within that segment.
package rootprimes

import (
	"github.com/memes-izprime/izprime/internal/sieve"
)

// Provide returns every prime up to and including limit, suitable for use
// as the root-prime list of a VX-kernel segment of that size.
func Provide(limit uint64) ([]uint64, error) {
	if limit < 10 {
		return []uint64{2, 3, 5, 7}[:countBelow(limit)], nil
	}
	return sieve.SieveIZ(limit)
}

func countBelow(limit uint64) int {
	small := []uint64{2, 3, 5, 7}
	n := 0
	for _, p := range small {
		if p <= limit {
			n++
		}
	}
	return n
}
