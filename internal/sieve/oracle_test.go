package sieve

// oracle sieves used only to cross-validate SieveIZ/SieveIZm output in
// tests. None of these are exposed outside the package.

// oracleEratosthenes is the textbook Sieve of Eratosthenes.
func oracleEratosthenes(n uint64) []uint64 {
	if n < 2 {
		return nil
	}
	isComposite := make([]bool, n+1)
	var primes []uint64
	for p := uint64(2); p <= n; p++ {
		if isComposite[p] {
			continue
		}
		primes = append(primes, p)
		for m := p * p; m <= n; m += p {
			isComposite[m] = true
		}
	}
	return primes
}

// oracleSegmented re-derives the same result in fixed-size windows, as a
// second, independently-structured classic reference.
func oracleSegmented(n uint64, segSize uint64) []uint64 {
	if n < 2 {
		return nil
	}
	root := uint64(1)
	for (root+1)*(root+1) <= n {
		root++
	}
	rootPrimes := oracleEratosthenes(root)

	var primes []uint64
	for low := uint64(2); low <= n; low += segSize {
		high := low + segSize - 1
		if high > n {
			high = n
		}
		composite := make([]bool, high-low+1)
		for _, p := range rootPrimes {
			start := p * p
			if start < low {
				rem := low % p
				start = low
				if rem != 0 {
					start += p - rem
				}
			}
			for m := start; m <= high; m += p {
				composite[m-low] = true
			}
		}
		for v := low; v <= high; v++ {
			if v < 2 {
				continue
			}
			if !composite[v-low] {
				primes = append(primes, v)
			}
		}
	}
	return primes
}

// oracleAtkin implements the Sieve of Atkin, a structurally unrelated
// algorithm, as a third cross-check.
func oracleAtkin(limit uint64) []uint64 {
	if limit < 2 {
		return nil
	}
	sieve := make([]bool, limit+1)
	for x := uint64(1); x*x <= limit; x++ {
		for y := uint64(1); y*y <= limit; y++ {
			n := 4*x*x + y*y
			if n <= limit && (n%12 == 1 || n%12 == 5) {
				sieve[n] = !sieve[n]
			}
			n = 3*x*x + y*y
			if n <= limit && n%12 == 7 {
				sieve[n] = !sieve[n]
			}
			if x > y {
				n = 3*x*x - y*y
				if n <= limit && n%12 == 11 {
					sieve[n] = !sieve[n]
				}
			}
		}
	}
	var primes []uint64
	if limit >= 2 {
		primes = append(primes, 2)
	}
	if limit >= 3 {
		primes = append(primes, 3)
	}
	for n := uint64(5); n*n <= limit; n++ {
		if sieve[n] {
			for k := n * n; k <= limit; k += n * n {
				sieve[k] = false
			}
		}
	}
	for n := uint64(5); n <= limit; n++ {
		if sieve[n] {
			primes = append(primes, n)
		}
	}
	return primes
}
