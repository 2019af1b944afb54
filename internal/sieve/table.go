package sieve

import "math"

// markingTable holds one flag per integer in [0, limit]. A true flag means
// the index is still a prime candidate. Indexes 0 and 1 are never read.
type markingTable []bool

func newTable(limit int) markingTable {
	t := make(markingTable, limit+1)
	for i := range t {
		t[i] = true
	}
	return t
}

func (t markingTable) limit() int {
	return len(t) - 1
}

// markMultiples clears p*2, p*3, ... up to the limit. p itself stays set.
func (t markingTable) markMultiples(p int) {
	limit := t.limit()
	if p > limit/2 {
		return
	}
	for m := 2 * p; ; m += p {
		t[m] = false
		if m > limit-p {
			return
		}
	}
}

// nextUnmarked scans upward from start for the first index still marked as
// a candidate.
func (t markingTable) nextUnmarked(start int) (int, bool) {
	for i := start; i < len(t); i++ {
		if t[i] {
			return i, true
		}
	}
	return 0, false
}

func (t markingTable) collect() []int {
	primes := make([]int, 0, estimateCount(t.limit()))
	for i := FirstPrime; i < len(t); i++ {
		if t[i] {
			primes = append(primes, i)
		}
	}
	return primes
}

// estimateCount sizes the result slice from the bound pi(n) < 1.26 n / ln n.
func estimateCount(limit int) int {
	if limit < 17 {
		return 6
	}
	return int(1.26*float64(limit)/math.Log(float64(limit))) + 1
}
