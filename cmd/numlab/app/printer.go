package app

import (
	"bufio"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/your-org/numlab/pkg/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Printer renders runs to stdout in table or JSON form.
type Printer struct {
	w      *bufio.Writer
	format string
}

// NewPrinter returns a buffered printer; call Flush when done.
func NewPrinter(w io.Writer, format string) *Printer {
	return &Printer{w: bufio.NewWriter(w), format: format}
}

// Sieve prints one sieve run. With countOnly the prime list is omitted.
func (p *Printer) Sieve(run *models.Run, countOnly bool) error {
	if p.format == models.OutputFormatJSON {
		if countOnly {
			trimmed := *run
			trimmed.Primes = nil
			run = &trimmed
		}
		return p.encode(run)
	}

	if !countOnly {
		for _, prime := range run.Primes {
			if _, err := fmt.Fprintf(p.w, "prime: %d\n", prime); err != nil {
				return err
			}
		}
	}

	count := len(run.Primes)
	if run.Count != nil {
		count = *run.Count
	}
	_, err := fmt.Fprintf(p.w, "total number of primes till %d: %d\n", run.Input, count)
	return err
}

// Fibonacci prints one fibonacci run.
func (p *Printer) Fibonacci(run *models.Run) error {
	if p.format == models.OutputFormatJSON {
		return p.encode(run)
	}
	_, err := fmt.Fprintf(p.w, "%dth fibonacci number is: %s\n", run.Input, run.Value)
	return err
}

func (p *Printer) encode(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if _, err := p.w.Write(data); err != nil {
		return err
	}
	return p.w.WriteByte('\n')
}

// Flush writes any buffered output.
func (p *Printer) Flush() error {
	return p.w.Flush()
}
