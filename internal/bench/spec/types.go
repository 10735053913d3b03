package spec

import (
	"fmt"
	"io/fs"

	"github.com/DjordjeVuckovic/callbench/internal/bench/engine"
)

type Shape string

const (
	ShapeFull   Shape = "full"
	ShapeSimple Shape = "simple"
)

type Plan struct {
	Warmup     WarmupConfig `yaml:"warmup"`
	Benchmarks []Benchmark  `yaml:"benchmarks"`

	// Scripts resolves Benchmark.Script paths.
	Scripts fs.FS `yaml:"-"`
}

type WarmupConfig struct {
	Iterations int `yaml:"iterations"`
}

type Benchmark struct {
	Name            string         `yaml:"name"`
	Engine          engine.Kind    `yaml:"engine"`
	Shape           Shape          `yaml:"shape"`
	Iterations      uint64         `yaml:"iterations"`
	OpsPerIteration uint64         `yaml:"ops_per_iteration,omitempty"`
	Script          string         `yaml:"script,omitempty"`
	Source          string         `yaml:"source,omitempty"`
	Params          map[string]any `yaml:"params,omitempty"`
}

// ExpectedOperations is the operation count a run must report, or 0 when the
// plan does not pin one.
func (b *Benchmark) ExpectedOperations() uint64 {
	return b.Iterations * b.OpsPerIteration
}

// LoadSource returns the inline source or reads the script file from fsys.
func (b *Benchmark) LoadSource(fsys fs.FS) (string, error) {
	if b.Source != "" {
		return b.Source, nil
	}
	if fsys == nil {
		return "", fmt.Errorf("benchmark %q: no filesystem to read %q from", b.Name, b.Script)
	}
	data, err := fs.ReadFile(fsys, b.Script)
	if err != nil {
		return "", fmt.Errorf("read script for benchmark %q: %w", b.Name, err)
	}
	return string(data), nil
}

// Filter keeps the benchmarks whose names are in names, in plan order.
func (p *Plan) Filter(names []string) (*Plan, error) {
	if len(names) == 0 {
		return p, nil
	}
	byName := make(map[string]bool, len(names))
	for _, n := range names {
		byName[n] = true
	}

	out := *p
	out.Benchmarks = nil
	for _, b := range p.Benchmarks {
		if byName[b.Name] {
			out.Benchmarks = append(out.Benchmarks, b)
			delete(byName, b.Name)
		}
	}
	for n := range byName {
		return nil, fmt.Errorf("unknown benchmark %q", n)
	}
	return &out, nil
}
