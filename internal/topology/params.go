// Package topology grows spiking neural P systems step by step and hands every
// intermediate system to an Emitter.
//
// Two families are generated:
//
//   - Chains: N0 -> N1 -> ... with a single spike on N0 (one-spike variant)
//     and with the latest batch charged as well (all-spike variant).
//   - CompleteGraphs: complete digraphs laid out on a circle, serialized once
//     with one "any count" rule per neuron (simple variant) and once with two
//     "even counts" rules and two spikes per neuron (benchmark variant).
//
// Every family owns a fresh model.System; later steps extend the system built
// by earlier ones and rewrite spikes, rules and positions in place between
// emissions. Generation is sequential and deterministic.
package topology

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
)

const (
	DefaultMaxChain = 1000
	DefaultMaxGraph = 200
	DefaultStep     = 10
	DefaultGap      = 150.0

	// IDPrefix prefixes the decimal index in default neuron ids ("N0", "N1", ...).
	IDPrefix = "N"
)

const (
	methodChains   = "Chains"
	methodComplete = "CompleteGraphs"
	methodNew      = "New"
)

var ErrInvalidParams = errors.New("topology: invalid parameters")

// Params bounds the generation loops. Growth runs base = 0, Step, 2*Step, ...
// while base <= Max*, adding Step neurons per iteration, so the largest system
// holds Max*+Step neurons.
type Params struct {
	MaxChain int
	MaxGraph int
	Step     int
	Gap      float64
}

func DefaultParams() Params {
	return Params{
		MaxChain: DefaultMaxChain,
		MaxGraph: DefaultMaxGraph,
		Step:     DefaultStep,
		Gap:      DefaultGap,
	}
}

func (p Params) Validate() error {
	switch {
	case p.Step < 1:
		return fmt.Errorf("step=%d < 1: %w", p.Step, ErrInvalidParams)
	case p.MaxChain < 0:
		return fmt.Errorf("max chain=%d < 0: %w", p.MaxChain, ErrInvalidParams)
	case p.MaxGraph < 0:
		return fmt.Errorf("max graph=%d < 0: %w", p.MaxGraph, ErrInvalidParams)
	case !(p.Gap > 0) || math.IsInf(p.Gap, 0):
		return fmt.Errorf("gap=%v: %w", p.Gap, ErrInvalidParams)
	}
	return nil
}

// Sizes lists the neuron counts a family emits for the given maximum.
func (p Params) Sizes(max int) []int {
	var sizes []int
	for base := 0; base <= max; base += p.Step {
		sizes = append(sizes, base+p.Step)
	}
	return sizes
}

// DefaultID renders index i as "N<i>".
func DefaultID(i int) string {
	return IDPrefix + strconv.Itoa(i)
}

type config struct {
	idFn   func(int) string
	logger *slog.Logger
}

type Option func(*config)

// WithIDFn overrides the neuron id scheme. Ids must be valid element names;
// invalid ones surface as model.ErrInvalidID when the neuron is created.
func WithIDFn(fn func(int) string) Option {
	if fn == nil {
		panic("topology: WithIDFn(nil)")
	}
	return func(c *config) { c.idFn = fn }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
