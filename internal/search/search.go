// Package search implements the vertical prime search: starting from a
// random x coordinate coprime to a wide vx, walk through increasing y
// values along iZ(x + vx*y, p_id) testing each for primality. Random draws
// on a single worker across multiple goroutines, racing them and returning
// the first result, cancelling the rest.
package search

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/memes-izprime/izprime/internal/iz"
	"github.com/memes-izprime/izprime/internal/izerr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var logger = zap.NewNop()

// SetLogger changes the logger instance used by this package.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// TestRounds is the number of Miller-Rabin rounds run against each
// candidate.
const TestRounds = 25

// AttemptsLimit bounds how many y-values a single Vertical search will
// test before giving up. Enforced unconditionally: unlike the routine this
// package is modeled on, a search that exhausts its budget returns
// izerr.ErrNotFound rather than looping without bound.
const AttemptsLimit = 1000000

// MaxWorkers caps the number of goroutines Random will race.
const MaxWorkers = 16

var big1 = big.NewInt(1)
var big6 = big.NewInt(6)

// Vertical searches for a prime of the form iZ(x + vx*y, pID) for a random
// starting x coprime to vx and increasing y, up to AttemptsLimit tries. It
// returns izerr.ErrNotFound if the limit is reached, or ctx.Err() if ctx is
// cancelled first.
func Vertical(ctx context.Context, pID int, vx *big.Int) (*big.Int, error) {
	x0, err := rand.Int(rand.Reader, vx)
	if err != nil {
		return nil, err
	}
	tmp := iz.IZBig(addOneIfZero(x0), pID)

	g := new(big.Int)
	for {
		tmp.Add(tmp, big6)
		g.GCD(nil, nil, vx, tmp)
		if g.Cmp(big1) == 0 {
			break
		}
	}

	sixVx := new(big.Int).Mul(vx, big6)
	for attempts := 0; attempts < AttemptsLimit; attempts++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		tmp.Add(tmp, sixVx)
		if tmp.ProbablyPrime(TestRounds) {
			l := logger.With(zap.Int("p_id", pID), zap.Int("attempts", attempts))
			l.Debug("Vertical: prime found")
			return new(big.Int).Set(tmp), nil
		}
	}
	return nil, izerr.ErrNotFound
}

// addOneIfZero nudges a zero draw up to 1: iZ's x argument must be > 0.
func addOneIfZero(x *big.Int) *big.Int {
	if x.Sign() == 0 {
		return big1
	}
	return x
}

// Random races workers independent Vertical searches for a prime of
// approximately bitSize bits and residue class pID, returning the first
// one found and cancelling the rest. workers is clamped to [1, MaxWorkers].
func Random(ctx context.Context, pID int, bitSize int, workers int) (*big.Int, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}

	vx := iz.ComputeMaxVxBig(bitSize)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		p *big.Int
	}
	results := make(chan result, workers)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			p, err := Vertical(gctx, pID, vx)
			if err != nil {
				return nil // a losing or cancelled worker is not a group failure.
			}
			select {
			case results <- result{p}:
				cancel()
			case <-gctx.Done():
			}
			return nil
		})
	}

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	select {
	case r := <-results:
		return r.p, nil
	case err := <-done:
		if err != nil {
			return nil, err
		}
		select {
		case r := <-results:
			return r.p, nil
		default:
			return nil, izerr.ErrNotFound
		}
	}
}
