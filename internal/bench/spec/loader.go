package spec

import (
	"embed"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path"
	"path/filepath"

	"github.com/DjordjeVuckovic/callbench/internal/apperr"
	"github.com/DjordjeVuckovic/callbench/internal/bench/engine"
	"gopkg.in/yaml.v3"
)

//go:embed defaults
var defaults embed.FS

const defaultPlanFile = "plan.yaml"

func LoadFromFile(p string) (*Plan, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}
	plan, err := Parse(data)
	if err != nil {
		return nil, err
	}
	plan.Scripts = os.DirFS(filepath.Dir(p))
	return plan, nil
}

// Default returns the built-in plan: the enhanced Lua benchmark plus a simple
// Lua and a Go variant.
func Default() (*Plan, error) {
	fsys, err := fs.Sub(defaults, "defaults")
	if err != nil {
		return nil, fmt.Errorf("open default plan: %w", err)
	}
	data, err := fs.ReadFile(fsys, defaultPlanFile)
	if err != nil {
		return nil, fmt.Errorf("read default plan: %w", err)
	}
	plan, err := Parse(data)
	if err != nil {
		return nil, err
	}
	plan.Scripts = fsys
	return plan, nil
}

func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse plan YAML: %w", err)
	}
	if err := validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks a plan built in code and applies the same defaults as Parse.
func (p *Plan) Validate() error {
	return validate(p)
}

func validate(p *Plan) error {
	if len(p.Benchmarks) == 0 {
		return apperr.NewValidation("plan has no benchmarks")
	}
	if p.Warmup.Iterations < 0 {
		return apperr.NewValidation(fmt.Sprintf("warmup iterations must not be negative, got %d", p.Warmup.Iterations))
	}

	seen := make(map[string]bool, len(p.Benchmarks))
	for i := range p.Benchmarks {
		b := &p.Benchmarks[i]
		if b.Name == "" {
			return apperr.NewValidation(fmt.Sprintf("benchmark at index %d has no name", i))
		}
		if seen[b.Name] {
			return apperr.NewValidation(fmt.Sprintf("duplicate benchmark name %q", b.Name))
		}
		seen[b.Name] = true

		if _, err := engine.ParseKind(string(b.Engine)); err != nil {
			return apperr.NewValidationWrap(fmt.Sprintf("benchmark %q has invalid engine", b.Name), err)
		}
		if b.Shape == "" {
			b.Shape = ShapeFull
		}
		if b.Shape != ShapeFull && b.Shape != ShapeSimple {
			return apperr.NewValidation(fmt.Sprintf("benchmark %q has invalid shape %q", b.Name, b.Shape))
		}
		if b.Iterations == 0 {
			return apperr.NewValidation(fmt.Sprintf("benchmark %q needs iterations > 0", b.Name))
		}
		if b.Shape == ShapeFull && b.OpsPerIteration > 0 && b.Iterations > math.MaxUint32/b.OpsPerIteration {
			return apperr.NewValidation(fmt.Sprintf(
				"benchmark %q expects %d x %d operations, above the reportable maximum %d",
				b.Name, b.Iterations, b.OpsPerIteration, uint64(math.MaxUint32)))
		}
		if (b.Script == "") == (b.Source == "") {
			return apperr.NewValidation(fmt.Sprintf("benchmark %q needs exactly one of script or source", b.Name))
		}
		if b.Script != "" {
			b.Script = path.Clean(filepath.ToSlash(b.Script))
		}
	}
	return nil
}
