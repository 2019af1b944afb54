// Package sieve generates prime numbers with the sieve of Eratosthenes.
package sieve

import (
	"errors"
	"fmt"
	"math"
)

const (
	// FirstPrime is the first candidate the sieve marks from.
	FirstPrime = 2

	// MaxSupportedLimit bounds the marking table at limit+1 entries
	// regardless of configuration.
	MaxSupportedLimit = math.MaxInt32 - 1
)

var (
	// ErrNegativeLimit is returned by Validate for limits below zero.
	ErrNegativeLimit = errors.New("limit must not be negative")

	// ErrLimitTooLarge is returned by Validate for limits above the ceiling.
	ErrLimitTooLarge = errors.New("limit exceeds the maximum")
)

// Generate returns every prime p with 2 <= p <= limit in ascending order.
// A limit below 2 yields an empty slice.
func Generate(limit int) []int {
	if limit < FirstPrime {
		return []int{}
	}

	table := newTable(limit)

	for p, ok := FirstPrime, true; ok; p, ok = table.nextUnmarked(p+1) {
		table.markMultiples(p)
	}

	return table.collect()
}

// Count returns the number of primes <= limit.
func Count(limit int) int {
	return len(Generate(limit))
}

// Validate checks that limit is usable as sieve input. A maxLimit of zero or
// less disables the configured bound; MaxSupportedLimit always applies.
func Validate(limit, maxLimit int) error {
	if limit < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeLimit, limit)
	}
	if maxLimit <= 0 || maxLimit > MaxSupportedLimit {
		maxLimit = MaxSupportedLimit
	}
	if limit > maxLimit {
		return fmt.Errorf("%w: %d > %d", ErrLimitTooLarge, limit, maxLimit)
	}
	return nil
}
