package population

// A Stepper advances the population recurrence one day at a time.
//
// Besides the born and total arrays it keeps a running prefix sum over born,
// so each birth window costs O(1) and a full run costs O(A).
type Stepper struct {
	params Params
	day    int

	born   []int64
	total  []int64
	prefix []int64
}

// NewStepper creates a Stepper positioned on day 1, where the founding cell
// is alive. When the horizon is below 1 the Stepper starts and stays on
// day 0 with nothing alive.
func NewStepper(p Params) *Stepper {
	n := p.Horizon + 2
	if n < 2 {
		n = 2
	}

	s := &Stepper{
		params: p,
		born:   make([]int64, n),
		total:  make([]int64, n),
		prefix: make([]int64, n),
	}

	if p.Horizon >= 1 {
		s.born[1] = 1
		s.total[1] = 1
		s.prefix[1] = 1
		s.day = 1
	}

	return s
}

// Params returns the model the Stepper runs.
func (s *Stepper) Params() Params {
	return s.params
}

// Day returns the last computed day.
func (s *Stepper) Day() int {
	return s.day
}

// Done reports whether the horizon has been reached.
func (s *Stepper) Done() bool {
	return s.day >= s.params.Horizon
}

// Born returns the number of cells born on the given day, or 0 for a day
// that has not been computed.
func (s *Stepper) Born(day int) int64 {
	if day < 1 || day > s.day {
		return 0
	}

	return s.born[day]
}

// Total returns the number of cells alive on the given day, or 0 for a day
// that has not been computed.
func (s *Stepper) Total(day int) int64 {
	if day < 1 || day > s.day {
		return 0
	}

	return s.total[day]
}

// Alive returns the number of cells alive on the current day.
func (s *Stepper) Alive() int64 {
	return s.total[s.day]
}

// Advance computes the next day. It returns the births and the alive count
// of that day, or ok=false if the horizon has already been reached.
func (s *Stepper) Advance() (born, alive int64, ok bool) {
	if s.Done() {
		return 0, s.Alive(), false
	}

	day := s.day + 1

	s.born[day] = s.windowSum(day)
	s.prefix[day] = (s.prefix[day-1] + s.born[day]) % Modulus

	total := (s.total[day-1] + s.born[day]) % Modulus
	if dying := day - s.params.Lifespan; dying >= 1 {
		total = (total - s.bornOn(dying) + Modulus) % Modulus
	}

	s.total[day] = total
	s.day = day

	return s.born[day], total, true
}

// Finish advances to the horizon and returns the alive count on that day.
func (s *Stepper) Finish() int64 {
	for !s.Done() {
		s.Advance()
	}

	return s.Alive()
}

// Trace returns a copy of the arrays computed so far.
func (s *Stepper) Trace() *Trace {
	t := &Trace{
		Params: s.params,
		Born:   make([]int64, len(s.born)),
		Total:  make([]int64, len(s.total)),
	}

	copy(t.Born, s.born)
	copy(t.Total, s.total)

	return t
}

// windowSum adds up the cohorts that reproduce into day.
func (s *Stepper) windowSum(day int) int64 {
	start, end := birthWindow(day, s.params)
	if end < start {
		return 0
	}

	return (s.prefix[end] - s.prefix[start-1] + Modulus) % Modulus
}

func (s *Stepper) bornOn(day int) int64 {
	if day < 1 || day >= len(s.born) {
		return 0
	}

	return s.born[day]
}

// birthWindow returns the inclusive range of parent birth days for day.
// Days at or after day have no births yet, so the end never passes day-1.
func birthWindow(day int, p Params) (start, end int) {
	start = max(1, day-p.Lifespan+1)
	end = min(day-p.ReproductionDelay, day-1)

	return start, end
}
