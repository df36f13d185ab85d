// Package colony runs the population recurrence as a simulated component:
// every day is an event on a timing engine, and every handled day is
// reported to hooks.
package colony

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/sarchlab/cellpop/hooking"
	"github.com/sarchlab/cellpop/population"
	"github.com/sarchlab/cellpop/timing"
)

// HookPosDayEnd fires after a day has been computed. Item is a DayReport.
var HookPosDayEnd = &hooking.HookPos{Name: "DayEnd"}

// DayEvent asks the colony to compute one day.
type DayEvent struct {
	Day timing.VTimeInDay
}

// DayReport summarizes one simulated day.
type DayReport struct {
	Day   int
	Born  int64
	Alive int64
}

// A Colony is a population of cells that lives on a timing engine.
type Colony struct {
	*hooking.HookableBase

	name    string
	engine  timing.EventScheduler
	stepper *population.Stepper
	logger  *slog.Logger

	reported int
}

// New creates a Colony. A nil logger discards output.
func New(
	name string,
	engine timing.EventScheduler,
	params population.Params,
	logger *slog.Logger,
) *Colony {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Colony{
		HookableBase: hooking.NewHookableBase(),
		name:         name,
		engine:       engine,
		stepper:      population.NewStepper(params),
		logger:       logger.With("colony", name),
	}
}

// Name returns the name of the colony.
func (c *Colony) Name() string {
	return c.name
}

// Params returns the model the colony follows.
func (c *Colony) Params() population.Params {
	return c.stepper.Params()
}

// Day returns the last simulated day.
func (c *Colony) Day() int {
	return c.stepper.Day()
}

// Alive returns the number of cells alive on the last simulated day.
func (c *Colony) Alive() int64 {
	return c.stepper.Alive()
}

// Start schedules the founding day. It does nothing when the horizon is
// below 1.
func (c *Colony) Start() {
	if c.stepper.Params().Horizon < 1 {
		return
	}

	c.engine.Schedule(timing.ScheduledEvent{
		Event:   &DayEvent{Day: 1},
		Time:    1,
		Handler: c,
	})
}

// Handle processes the events addressed to the colony.
func (c *Colony) Handle(event any) error {
	switch e := event.(type) {
	case *DayEvent:
		return c.handleDay(e)
	default:
		return fmt.Errorf("colony %s: unknown event type %T", c.name, event)
	}
}

func (c *Colony) handleDay(e *DayEvent) error {
	day := int(e.Day)

	if day != c.reported+1 {
		return fmt.Errorf("colony %s: day %d out of order, last day %d",
			c.name, day, c.reported)
	}

	if horizon := c.stepper.Params().Horizon; day > horizon {
		return fmt.Errorf("colony %s: day %d is past the horizon %d",
			c.name, day, horizon)
	}

	// Day 1 is the founder, which the stepper starts with.
	if day > c.stepper.Day() {
		c.stepper.Advance()
	}

	c.reported = day

	report := DayReport{
		Day:   day,
		Born:  c.stepper.Born(day),
		Alive: c.stepper.Total(day),
	}

	c.logger.Debug("day simulated",
		"day", report.Day, "born", report.Born, "alive", report.Alive)

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosDayEnd,
		Item:   report,
	})

	if c.stepper.Done() {
		return nil
	}

	c.engine.Schedule(timing.ScheduledEvent{
		Event:   &DayEvent{Day: e.Day + 1},
		Time:    e.Day + 1,
		Handler: c,
	})

	return nil
}
