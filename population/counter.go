// Package population counts the cells alive on a given day of a model in
// which every cell is born, produces one offspring per day once it reaches
// a reproduction delay, and dies when it reaches its lifespan.
//
// All counts are reduced modulo Modulus.
package population

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStrategy is returned by ParseStrategy for names it does not know.
var ErrUnknownStrategy = errors.New("unknown counting strategy")

// Strategy selects how birth windows are summed.
type Strategy int

const (
	// PrefixSum keeps a running prefix sum over births. O(A).
	PrefixSum Strategy = iota

	// WindowScan re-adds every cohort of the window each day. O(A*C).
	WindowScan
)

func (s Strategy) String() string {
	switch s {
	case PrefixSum:
		return "prefix-sum"
	case WindowScan:
		return "window-scan"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy converts a strategy name back into a Strategy. The empty
// string selects PrefixSum.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "prefix-sum":
		return PrefixSum, nil
	case "window-scan":
		return WindowScan, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// CalculateCells returns the number of cells alive on day a when cells
// reproduce from age b and die at age c.
//
// The parameters are not validated. Combinations without a biological
// meaning, such as c <= b, yield whatever the recurrence produces, and a
// horizon below 1 yields 0.
func CalculateCells(a, b, c int) int64 {
	return NewStepper(Params{
		Horizon:           a,
		ReproductionDelay: b,
		Lifespan:          c,
	}).Finish()
}

// Option configures Count and Run.
type Option func(*options)

type options struct {
	strategy Strategy
}

// WithStrategy selects the window summation strategy.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// Count validates p and returns the number of cells alive on the horizon day.
func Count(p Params, opts ...Option) (int64, error) {
	t, err := Run(p, opts...)
	if err != nil {
		return 0, err
	}

	return t.Result(), nil
}

// Run validates p and returns the full born and total arrays.
func Run(p Params, opts ...Option) (*Trace, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	o := options{strategy: PrefixSum}
	for _, opt := range opts {
		opt(&o)
	}

	switch o.strategy {
	case PrefixSum:
		s := NewStepper(p)
		s.Finish()

		return s.Trace(), nil
	case WindowScan:
		return scan(p), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, o.strategy)
	}
}

// scan evaluates the recurrence by summing each birth window directly.
func scan(p Params) *Trace {
	t := &Trace{
		Params: p,
		Born:   make([]int64, p.Horizon+2),
		Total:  make([]int64, p.Horizon+2),
	}

	t.Born[1] = 1
	t.Total[1] = 1

	for day := 2; day <= p.Horizon; day++ {
		start, end := birthWindow(day, p)

		var sum int64
		for d := start; d <= end; d++ {
			sum = (sum + t.Born[d]) % Modulus
		}

		t.Born[day] = sum
		t.Total[day] = (t.Total[day-1] + t.Born[day]) % Modulus

		if dying := day - p.Lifespan; dying >= 1 && dying < len(t.Born) {
			t.Total[day] = (t.Total[day] - t.Born[dying] + Modulus) % Modulus
		}
	}

	return t
}
