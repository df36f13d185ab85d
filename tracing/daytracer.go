// Package tracing records what a colony does, day by day, into a data
// recorder.
package tracing

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/sarchlab/cellpop/colony"
	"github.com/sarchlab/cellpop/datarecording"
	"github.com/sarchlab/cellpop/hooking"
	"github.com/sarchlab/cellpop/population"
)

// Table names used by DayTracer.
const (
	DayTableName = "population_days"
	RunTableName = "population_runs"
)

// DayRecord is one row of the day table.
type DayRecord struct {
	RunID string
	Day   int
	Born  int64
	Alive int64
}

// RunRecord is one row of the run table.
type RunRecord struct {
	RunID             string
	Horizon           int
	ReproductionDelay int
	Lifespan          int
	Days              int
	Result            int64
}

// DayTracer is a hook that stores every colony day report in a
// DataRecorder. Several tracers may share one recorder; rows are told apart
// by RunID.
type DayTracer struct {
	mu      sync.Mutex
	runID   string
	params  population.Params
	backend datarecording.DataRecorder

	days     int
	finished bool
}

// NewDayTracer creates a DayTracer and the tables it writes to, unless the
// recorder already has them.
func NewDayTracer(
	runID string,
	params population.Params,
	recorder datarecording.DataRecorder,
) *DayTracer {
	tables := recorder.ListTables()

	if !slices.Contains(tables, DayTableName) {
		recorder.CreateTable(DayTableName, DayRecord{})
	}

	if !slices.Contains(tables, RunTableName) {
		recorder.CreateTable(RunTableName, RunRecord{})
	}

	return &DayTracer{
		runID:   runID,
		params:  params,
		backend: recorder,
	}
}

// Func records day reports and ignores every other hook position.
func (t *DayTracer) Func(ctx hooking.HookCtx) {
	if ctx.Pos != colony.HookPosDayEnd {
		return
	}

	report, ok := ctx.Item.(colony.DayReport)
	if !ok {
		panic(fmt.Sprintf("day end hook carries %T, not a day report", ctx.Item))
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.InsertData(DayTableName, DayRecord{
		RunID: t.runID,
		Day:   report.Day,
		Born:  report.Born,
		Alive: report.Alive,
	})
	t.days++
}

// NumDays returns the number of days recorded so far.
func (t *DayTracer) NumDays() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.days
}

// Finish writes the run summary and flushes the recorder. Later calls do
// nothing.
func (t *DayTracer) Finish(result int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finished {
		return
	}

	t.backend.InsertData(RunTableName, RunRecord{
		RunID:             t.runID,
		Horizon:           t.params.Horizon,
		ReproductionDelay: t.params.ReproductionDelay,
		Lifespan:          t.params.Lifespan,
		Days:              t.days,
		Result:            result,
	})
	t.backend.Flush()
	t.finished = true
}

// LoadDays reads back the days of one run in day order.
func LoadDays(
	ctx context.Context,
	reader datarecording.DataReader,
	runID string,
) ([]DayRecord, error) {
	reader.MapTable(DayTableName, DayRecord{})

	results, _, err := reader.Query(ctx, DayTableName, datarecording.QueryParams{
		Where:   "RunID = ?",
		Args:    []any{runID},
		OrderBy: "Day ASC",
	})
	if err != nil {
		return nil, fmt.Errorf("loading days of run %s: %w", runID, err)
	}

	days := make([]DayRecord, 0, len(results))
	for _, r := range results {
		days = append(days, *r.(*DayRecord))
	}

	return days, nil
}

// LoadRuns reads back every run summary.
func LoadRuns(
	ctx context.Context,
	reader datarecording.DataReader,
) ([]RunRecord, error) {
	reader.MapTable(RunTableName, RunRecord{})

	results, _, err := reader.Query(ctx, RunTableName, datarecording.QueryParams{
		OrderBy: "RunID ASC",
	})
	if err != nil {
		return nil, fmt.Errorf("loading runs: %w", err)
	}

	runs := make([]RunRecord, 0, len(results))
	for _, r := range results {
		runs = append(runs, *r.(*RunRecord))
	}

	return runs, nil
}
