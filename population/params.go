package population

import (
	"errors"
	"fmt"
)

// Modulus bounds every born and alive count.
const Modulus int64 = 1_000_000_007

// ErrInvalidParams is wrapped by every parameter validation failure.
var ErrInvalidParams = errors.New("invalid population parameters")

// Params describes one population model.
type Params struct {
	// Horizon is the day whose alive count is requested (A).
	Horizon int

	// ReproductionDelay is the minimum age, in days, at which a cell
	// produces one offspring per day (B).
	ReproductionDelay int

	// Lifespan is the age, in days, at which a cell dies (C).
	Lifespan int
}

// DefaultParams returns the demo model: day 5, delay 1, lifespan 5.
func DefaultParams() Params {
	return Params{
		Horizon:           5,
		ReproductionDelay: 1,
		Lifespan:          5,
	}
}

// Validate rejects parameters for which the recurrence has no meaning.
// A lifespan that does not exceed the reproduction delay is accepted; see
// Sterile.
func (p Params) Validate() error {
	if p.Horizon < 1 {
		return fmt.Errorf("%w: horizon %d must be at least 1",
			ErrInvalidParams, p.Horizon)
	}

	if p.ReproductionDelay < 0 {
		return fmt.Errorf("%w: reproduction delay %d must not be negative",
			ErrInvalidParams, p.ReproductionDelay)
	}

	if p.Lifespan < 1 {
		return fmt.Errorf("%w: lifespan %d must be at least 1",
			ErrInvalidParams, p.Lifespan)
	}

	return nil
}

// Sterile reports whether cells die before they are old enough to
// reproduce.
func (p Params) Sterile() bool {
	return p.Lifespan <= p.ReproductionDelay
}

func (p Params) String() string {
	return fmt.Sprintf("A=%d B=%d C=%d",
		p.Horizon, p.ReproductionDelay, p.Lifespan)
}
