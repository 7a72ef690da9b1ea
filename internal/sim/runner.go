// Package sim drives an engine system through a fixed-step run, exporting
// one frame per step and notifying observers.
package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/ravi-l/povsim/internal/engine"
)

// FrameExporter receives one call per completed step. pov.Exporter satisfies
// this.
type FrameExporter interface {
	ExportData() error
}

// Observer is notified after every step with the new simulated time.
type Observer interface {
	OnStep(t float64)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(t float64)

func (f ObserverFunc) OnStep(t float64) { f(t) }

// Config controls a run.
type Config struct {
	Dt       float64
	Duration float64
}

func DefaultConfig() Config {
	return Config{Dt: 0.01, Duration: 1.5}
}

// Steps returns the number of fixed steps a run performs: ceil(Duration/Dt),
// so the final simulated time reaches Duration.
func (c Config) Steps() int {
	return int(math.Ceil(c.Duration/c.Dt - 1e-9))
}

// Result summarizes a completed run.
type Result struct {
	Times       []float64
	StepsTaken  int
	EnergyDrift float64
}

// Runner couples a system with an optional exporter and observers.
type Runner struct {
	sys       *engine.System
	exporter  FrameExporter
	observers []Observer
}

func New(sys *engine.System, exporter FrameExporter) *Runner {
	return &Runner{sys: sys, exporter: exporter}
}

func (r *Runner) AddObserver(o Observer) {
	r.observers = append(r.observers, o)
}

// Run advances the system until the configured duration is reached. Each
// iteration steps the system, notifies observers, then exports exactly one
// frame. Context cancellation aborts between steps.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("sim: dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("sim: duration must be positive, got %f", cfg.Duration)
	}

	steps := cfg.Steps()
	result := &Result{Times: make([]float64, 0, steps)}

	initialEnergy := r.sys.Energy()

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := r.sys.DoStep(cfg.Dt); err != nil {
			return result, fmt.Errorf("sim: step %d: %w", i, err)
		}

		t := r.sys.Time()
		for _, o := range r.observers {
			o.OnStep(t)
		}

		if r.exporter != nil {
			if err := r.exporter.ExportData(); err != nil {
				return result, fmt.Errorf("sim: exporting frame %d: %w", i, err)
			}
		}

		result.Times = append(result.Times, t)
		result.StepsTaken++
	}

	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(r.sys.Energy()-initialEnergy) / math.Abs(initialEnergy)
	}

	return result, nil
}
