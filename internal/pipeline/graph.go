package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// stage is one node of the request graph: a named unit of work plus the names
// of the stages that must fully complete before it may start.
type stage struct {
	name  string
	after []string
	run   func(ctx context.Context) error
}

// graph is an explicit DAG of pipeline stages. Stages whose dependencies are
// all satisfied run concurrently; a stage never starts before every stage it
// names in after has returned. Run is a sequence of waves with a full barrier
// between them.
type graph struct {
	stages []stage
}

// add registers a stage. Dependencies must be added before their dependents.
func (g *graph) add(name string, after []string, run func(ctx context.Context) error) {
	g.stages = append(g.stages, stage{name: name, after: after, run: run})
}

// runAll executes the graph. It returns the first stage error encountered;
// later waves are not started after a failure.
func (g *graph) runAll(ctx context.Context) error {
	done := make(map[string]bool, len(g.stages))
	pending := make([]stage, len(g.stages))
	copy(pending, g.stages)

	for _, s := range g.stages {
		for _, dep := range s.after {
			if !g.has(dep) {
				return fmt.Errorf("stage %q depends on unknown stage %q", s.name, dep)
			}
		}
	}

	for len(pending) > 0 {
		var wave []stage
		var rest []stage
		for _, s := range pending {
			if ready(s, done) {
				wave = append(wave, s)
			} else {
				rest = append(rest, s)
			}
		}
		if len(wave) == 0 {
			return fmt.Errorf("stage graph has a dependency cycle among %d stages", len(pending))
		}

		eg, waveCtx := errgroup.WithContext(ctx)
		for _, s := range wave {
			s := s
			eg.Go(func() error {
				if err := s.run(waveCtx); err != nil {
					return fmt.Errorf("stage %s: %w", s.name, err)
				}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}

		for _, s := range wave {
			done[s.name] = true
		}
		pending = rest
	}
	return nil
}

func (g *graph) has(name string) bool {
	for _, s := range g.stages {
		if s.name == name {
			return true
		}
	}
	return false
}

func ready(s stage, done map[string]bool) bool {
	for _, dep := range s.after {
		if !done[dep] {
			return false
		}
	}
	return true
}
