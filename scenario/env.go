package scenario

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/sarchlab/cellpop/population"
)

// Environment variables read by Defaults.
const (
	EnvPrefix            = "CELLPOP_"
	EnvHorizon           = "CELLPOP_HORIZON"
	EnvReproductionDelay = "CELLPOP_REPRODUCTION_DELAY"
	EnvLifespan          = "CELLPOP_LIFESPAN"
	EnvStrategy          = "CELLPOP_STRATEGY"
	EnvOutput            = "CELLPOP_OUTPUT"
)

// LoadEnv loads .env files into the process environment without overriding
// variables that are already set. Without paths it loads ./.env when that
// file exists.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		if _, err := os.Stat(".env"); errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		paths = []string{".env"}
	}

	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("loading env files %v: %w", paths, err)
	}

	return nil
}

// Defaults returns the model described by the CELLPOP_* variables, falling
// back to the demo model for each unset variable.
func Defaults() (Scenario, error) {
	p := population.DefaultParams()

	fields := []struct {
		name   string
		target *int
	}{
		{EnvHorizon, &p.Horizon},
		{EnvReproductionDelay, &p.ReproductionDelay},
		{EnvLifespan, &p.Lifespan},
	}

	for _, f := range fields {
		raw, ok := os.LookupEnv(f.name)
		if !ok || raw == "" {
			continue
		}

		v, err := strconv.Atoi(raw)
		if err != nil {
			return Scenario{}, fmt.Errorf("%s=%q is not an integer", f.name, raw)
		}

		*f.target = v
	}

	strategy, err := population.ParseStrategy(os.Getenv(EnvStrategy))
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", EnvStrategy, err)
	}

	return Scenario{Name: "default", Params: p, Strategy: strategy}, nil
}
