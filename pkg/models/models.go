package models

import (
	"time"

	"github.com/google/uuid"
)

// Run represents one computation performed by the CLI
type Run struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Input      int64     `json:"input"`
	Strategy   string    `json:"strategy,omitempty"`
	Primes     []int     `json:"primes,omitempty"`
	Count      *int      `json:"count,omitempty"`
	Value      string    `json:"value,omitempty"`
	DurationMs float64   `json:"duration_ms"`
	StartedAt  time.Time `json:"started_at"`
}

// RunKind values
const (
	RunKindSieve     = "sieve"
	RunKindFibonacci = "fibonacci"
)

// OutputFormat values
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
)

// NewRun starts a run record of the given kind.
func NewRun(kind string, input int64) *Run {
	return &Run{
		ID:        uuid.New().String(),
		Kind:      kind,
		Input:     input,
		StartedAt: time.Now().UTC(),
	}
}

// NewSieveRun builds a finished sieve run.
func NewSieveRun(limit int, primes []int) *Run {
	r := NewRun(RunKindSieve, int64(limit))
	count := len(primes)
	r.Primes = primes
	r.Count = &count
	return r
}

// NewFibonacciRun builds a finished fibonacci run.
func NewFibonacciRun(n uint, strategy, value string) *Run {
	r := NewRun(RunKindFibonacci, int64(n))
	r.Strategy = strategy
	r.Value = value
	return r
}

// Finish records the elapsed time since StartedAt.
func (r *Run) Finish(elapsed time.Duration) {
	r.DurationMs = float64(elapsed) / float64(time.Millisecond)
}
