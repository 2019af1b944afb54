// Package fibonacci computes Fibonacci numbers by plain recursion or with a
// per-call lookup table.
package fibonacci

import (
	"errors"
	"fmt"
	"math/big"
)

// Strategy selects how the n-th number is computed.
type Strategy string

const (
	StrategyNaive    Strategy = "naive"
	StrategyMemoized Strategy = "memoized"
)

// MaxNaiveN is the largest n whose F(n) fits in a uint64.
const MaxNaiveN = 93

var (
	ErrUnknownStrategy = errors.New("unknown fibonacci strategy")
	ErrInputTooLarge   = errors.New("input exceeds the configured maximum")
)

// ParseStrategy maps a configuration string to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyNaive, StrategyMemoized:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Naive returns F(n) by direct recursion. The result wraps past F(93).
func Naive(n uint) uint64 {
	switch n {
	case 0:
		return 0
	case 1, 2:
		return 1
	default:
		return Naive(n-1) + Naive(n-2)
	}
}

// Memoized returns F(n) with every intermediate value cached for the
// duration of the call.
func Memoized(n uint) *big.Int {
	cache := make(map[uint]*big.Int, n+1)
	return memoized(n, cache)
}

func memoized(n uint, cache map[uint]*big.Int) *big.Int {
	if v, ok := cache[n]; ok {
		return v
	}

	var result *big.Int
	switch n {
	case 0:
		result = big.NewInt(0)
	case 1, 2:
		result = big.NewInt(1)
	default:
		result = new(big.Int).Add(memoized(n-1, cache), memoized(n-2, cache))
	}

	cache[n] = result
	return result
}

// Compute returns F(n) using the given strategy.
func Compute(n uint, strategy Strategy) (*big.Int, error) {
	switch strategy {
	case StrategyNaive:
		return new(big.Int).SetUint64(Naive(n)), nil
	case StrategyMemoized:
		return Memoized(n), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// Limits bounds the accepted input per strategy. Zero disables a bound,
// except that the naive strategy never goes past MaxNaiveN.
type Limits struct {
	MaxN      uint
	NaiveMaxN uint
}

// Validate checks n against the bound for strategy.
func (l Limits) Validate(n uint, strategy Strategy) error {
	ceiling := l.MaxN
	if strategy == StrategyNaive {
		ceiling = l.NaiveMaxN
		if ceiling == 0 || ceiling > MaxNaiveN {
			ceiling = MaxNaiveN
		}
	}
	if ceiling > 0 && n > ceiling {
		return fmt.Errorf("%w: %d > %d for %s", ErrInputTooLarge, n, ceiling, strategy)
	}
	return nil
}
