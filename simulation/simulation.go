// Package simulation assembles an engine, a colony and the optional
// recording machinery into one runnable unit.
package simulation

import (
	"fmt"
	"log/slog"

	"github.com/sarchlab/cellpop/colony"
	"github.com/sarchlab/cellpop/datarecording"
	"github.com/sarchlab/cellpop/population"
	"github.com/sarchlab/cellpop/timing"
	"github.com/sarchlab/cellpop/tracing"
)

// A Simulation runs one population model on a serial engine.
type Simulation struct {
	id     string
	params population.Params
	logger *slog.Logger

	engine *timing.SerialEngine
	colony *colony.Colony

	dataRecorder datarecording.DataRecorder
	ownsRecorder bool
	outputFile   string
	tracer       *tracing.DayTracer

	ran bool
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// Params returns the population model.
func (s *Simulation) Params() population.Params {
	return s.params
}

// Engine returns the engine used in the simulation.
func (s *Simulation) Engine() *timing.SerialEngine {
	return s.engine
}

// Colony returns the simulated colony.
func (s *Simulation) Colony() *colony.Colony {
	return s.colony
}

// DataRecorder returns the data recorder, or nil when recording is off.
func (s *Simulation) DataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// OutputFile returns the SQLite file the simulation created, if any.
func (s *Simulation) OutputFile() string {
	return s.outputFile
}

// Run simulates every day up to the horizon and returns the number of cells
// alive on the last one. A simulation runs only once.
func (s *Simulation) Run() (int64, error) {
	if s.ran {
		return 0, fmt.Errorf("simulation %s already ran", s.id)
	}

	s.ran = true

	s.colony.Start()

	if err := s.engine.Run(); err != nil {
		return 0, fmt.Errorf("simulation %s: %w", s.id, err)
	}

	result := s.colony.Alive()

	if s.tracer != nil {
		s.tracer.Finish(result)
	}

	s.logger.Info("simulation finished",
		"id", s.id,
		"params", s.params.String(),
		"days", s.colony.Day(),
		"alive", result)

	return result, nil
}

// Terminate releases the resources owned by the simulation.
func (s *Simulation) Terminate() error {
	if s.dataRecorder == nil {
		return nil
	}

	if !s.ownsRecorder {
		s.dataRecorder.Flush()
		return nil
	}

	return s.dataRecorder.Close()
}
