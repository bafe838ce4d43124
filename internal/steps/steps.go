// Package steps runs post-build steps: named units gated by an active
// predicate and ordered by explicit runs-after/runs-before constraints
// against other steps.
package steps

import (
	"fmt"

	"github.com/projflow/projflow/internal/runtime"
)

// Step is one post-build unit of work.
type Step interface {
	// Name identifies the step for ordering constraints and logs.
	Name() string

	// RunsAfter names steps that must run before this one.
	RunsAfter() []string

	// RunsBefore names steps that must run after this one.
	RunsBefore() []string

	// IsActive reports whether the step applies to this invocation.
	IsActive(rt *runtime.Runtime) bool

	// Run executes the step.
	Run(rt *runtime.Runtime) error
}

// Registry is the explicit ordered collection of steps, populated once
// at bootstrap and passed to whoever runs the pipeline.
type Registry struct {
	steps []Step
}

// NewRegistry creates a registry with the given steps in order.
func NewRegistry(steps ...Step) *Registry {
	return &Registry{steps: steps}
}

// Add appends a step.
func (r *Registry) Add(s Step) {
	r.steps = append(r.steps, s)
}

// Ordered resolves the runs-after/runs-before constraints into an
// execution order, keeping registration order among unconstrained steps.
// Constraints naming unregistered steps are ignored. A constraint cycle
// is an error.
func (r *Registry) Ordered() ([]Step, error) {
	index := map[string]int{}
	for i, s := range r.steps {
		index[s.Name()] = i
	}

	// edges[i] holds the steps that must run before step i.
	before := make([]map[int]bool, len(r.steps))
	for i := range before {
		before[i] = map[int]bool{}
	}
	for i, s := range r.steps {
		for _, name := range s.RunsAfter() {
			if j, ok := index[name]; ok {
				before[i][j] = true
			}
		}
		for _, name := range s.RunsBefore() {
			if j, ok := index[name]; ok {
				before[j][i] = true
			}
		}
	}

	ordered := make([]Step, 0, len(r.steps))
	done := make([]bool, len(r.steps))
	for len(ordered) < len(r.steps) {
		progressed := false
		for i, s := range r.steps {
			if done[i] {
				continue
			}
			ready := true
			for j := range before[i] {
				if !done[j] {
					ready = false
					break
				}
			}
			if ready {
				ordered = append(ordered, s)
				done[i] = true
				progressed = true
			}
		}
		if !progressed {
			return nil, fmt.Errorf("step ordering constraints form a cycle")
		}
	}
	return ordered, nil
}

// Run executes every active step in constraint order.
func (r *Registry) Run(rt *runtime.Runtime) error {
	ordered, err := r.Ordered()
	if err != nil {
		return err
	}
	log := runtime.Logger("steps")
	for _, s := range ordered {
		if !s.IsActive(rt) {
			log.Debug().Str("step", s.Name()).Msg("skipping inactive step")
			continue
		}
		log.Debug().Str("step", s.Name()).Msg("running step")
		if err := s.Run(rt); err != nil {
			return fmt.Errorf("step %s: %w", s.Name(), err)
		}
	}
	return nil
}
