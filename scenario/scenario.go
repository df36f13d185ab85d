// Package scenario loads population models from HCL files and from the
// environment.
//
// A scenario file holds one or more blocks:
//
//	scenario "demo" {
//	  horizon            = 5
//	  reproduction_delay = 1
//	  lifespan           = 5
//	  strategy           = "prefix-sum"
//	}
//
// Attribute expressions may read CELLPOP_* environment variables through
// the env object, e.g. horizon = env.CELLPOP_HORIZON.
package scenario

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/sarchlab/cellpop/population"
)

// A Scenario is a named population model.
type Scenario struct {
	Name     string
	Params   population.Params
	Strategy population.Strategy
}

type hclFile struct {
	Scenarios []*hclScenario `hcl:"scenario,block"`
}

type hclScenario struct {
	Name              string `hcl:"name,label"`
	Horizon           int    `hcl:"horizon"`
	ReproductionDelay int    `hcl:"reproduction_delay"`
	Lifespan          int    `hcl:"lifespan"`
	Strategy          string `hcl:"strategy,optional"`
}

// Load parses the scenario file at path.
func Load(path string) ([]Scenario, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", path, diags)
	}

	return decode(file, path)
}

// Parse parses scenario source; filename is only used in messages.
func Parse(src []byte, filename string) ([]Scenario, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", filename, diags)
	}

	return decode(file, filename)
}

func decode(file *hcl.File, filename string) ([]Scenario, error) {
	var parsed hclFile

	diags := gohcl.DecodeBody(file.Body, evalContext(), &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode scenario file %s: %w", filename, diags)
	}

	seen := make(map[string]bool, len(parsed.Scenarios))
	scenarios := make([]Scenario, 0, len(parsed.Scenarios))

	for _, s := range parsed.Scenarios {
		if seen[s.Name] {
			return nil, fmt.Errorf("%s: duplicated scenario %q", filename, s.Name)
		}

		seen[s.Name] = true

		sc, err := s.toScenario()
		if err != nil {
			return nil, fmt.Errorf("%s: scenario %q: %w", filename, s.Name, err)
		}

		scenarios = append(scenarios, sc)
	}

	return scenarios, nil
}

func (s *hclScenario) toScenario() (Scenario, error) {
	p := population.Params{
		Horizon:           s.Horizon,
		ReproductionDelay: s.ReproductionDelay,
		Lifespan:          s.Lifespan,
	}

	if err := p.Validate(); err != nil {
		return Scenario{}, err
	}

	strategy, err := population.ParseStrategy(s.Strategy)
	if err != nil {
		return Scenario{}, err
	}

	return Scenario{Name: s.Name, Params: p, Strategy: strategy}, nil
}

// evalContext exposes the CELLPOP_* environment variables as env.NAME.
func evalContext() *hcl.EvalContext {
	vars := map[string]cty.Value{}

	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}

		vars[name] = cty.StringVal(value)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}
