package population

// A Trace holds the per-day arrays of one run. Both slices have Horizon+2
// entries; index 0 and index Horizon+1 are always zero.
type Trace struct {
	Params Params
	Born   []int64
	Total  []int64
}

// Result returns the alive count on the horizon day.
func (t *Trace) Result() int64 {
	if t.Params.Horizon < 1 {
		return 0
	}

	return t.Total[t.Params.Horizon]
}

// Days returns the number of simulated days.
func (t *Trace) Days() int {
	return max(t.Params.Horizon, 0)
}
