package simulation

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/rs/xid"

	"github.com/sarchlab/cellpop/colony"
	"github.com/sarchlab/cellpop/datarecording"
	"github.com/sarchlab/cellpop/population"
	"github.com/sarchlab/cellpop/timing"
	"github.com/sarchlab/cellpop/tracing"
)

// Builder can be used to build a simulation.
type Builder struct {
	params         population.Params
	recordingOn    bool
	outputFileName string
	recorder       datarecording.DataRecorder
	logger         *slog.Logger
}

// MakeBuilder creates a new builder for the demo model without recording.
func MakeBuilder() Builder {
	return Builder{
		params: population.DefaultParams(),
	}
}

// WithParams sets the population model.
func (b Builder) WithParams(p population.Params) Builder {
	b.params = p
	return b
}

// WithRecording makes the simulation store every day in SQLite.
func (b Builder) WithRecording() Builder {
	b.recordingOn = true
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
// The ".sqlite3" suffix is appended.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithDataRecorder makes the simulation record into an existing recorder,
// which the simulation will not close.
func (b Builder) WithDataRecorder(r datarecording.DataRecorder) Builder {
	b.recorder = r
	b.recordingOn = true

	return b
}

// WithLogger sets the logger used by the simulation and its colony.
func (b Builder) WithLogger(l *slog.Logger) Builder {
	b.logger = l
	return b
}

func (b Builder) parametersMustBeValid() error {
	if err := b.params.Validate(); err != nil {
		return err
	}

	if !b.recordingOn && b.outputFileName != "" {
		return fmt.Errorf("output file name cannot be set when recording is disabled")
	}

	if b.recorder != nil && b.outputFileName != "" {
		return fmt.Errorf("output file name cannot be set with an existing recorder")
	}

	return nil
}

// Build builds the simulation.
func (b Builder) Build() (*Simulation, error) {
	if err := b.parametersMustBeValid(); err != nil {
		return nil, err
	}

	logger := b.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Simulation{
		id:     xid.New().String(),
		params: b.params,
		logger: logger,
	}

	s.engine = timing.NewSerialEngine()
	s.colony = colony.New("colony_"+s.id, s.engine, b.params, logger)

	if b.recordingOn {
		if err := s.attachRecorder(b); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Simulation) attachRecorder(b Builder) error {
	s.dataRecorder = b.recorder

	if s.dataRecorder == nil {
		outputPath := b.outputFileName
		if outputPath == "" {
			outputPath = "cellpop_sim_" + s.id
		}

		r, err := datarecording.New(outputPath)
		if err != nil {
			return err
		}

		s.dataRecorder = r
		s.ownsRecorder = true
		s.outputFile = outputPath + ".sqlite3"

		s.logger.Info("recording simulation", "file", s.outputFile)
	}

	s.tracer = tracing.NewDayTracer(s.id, s.params, s.dataRecorder)
	s.colony.AcceptHook(s.tracer)

	return nil
}
