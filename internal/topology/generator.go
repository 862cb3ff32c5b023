package topology

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"snpgen/internal/export"
	"snpgen/internal/model"
)

const synapseWeight = 1.0

var (
	chainRules = []model.Rule{model.MustRule("a", 1, 1, 0)}

	simpleRules = []model.Rule{model.MustRule(`a^\ast`, 1, 1, 0)}

	benchmarkRules = []model.Rule{
		model.MustRule(`(a^2)^\ast`, 1, 1, 0),
		model.MustRule(`(a^2)^\ast`, 1, 2, 0),
	}
)

const (
	simpleSpikes    = 1
	benchmarkSpikes = 2
)

type Generator struct {
	params Params
	emit   Emitter
	cfg    config
}

func New(params Params, emit Emitter, opts ...Option) (*Generator, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", methodNew, err)
	}
	if emit == nil {
		return nil, fmt.Errorf("%s: nil emitter: %w", methodNew, ErrInvalidParams)
	}
	cfg := config{idFn: DefaultID, logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Generator{params: params, emit: emit, cfg: cfg}, nil
}

// Run generates the chain families and then the complete-graph families.
func (g *Generator) Run(ctx context.Context) error {
	if err := g.Chains(ctx); err != nil {
		return err
	}
	return g.CompleteGraphs(ctx)
}

// Chains grows a linear chain Step neurons at a time. Each step emits the
// one-spike variant (only N0 charged) and the all-spike variant (N0 plus the
// neurons added in this step charged), then discharges everything but N0.
func (g *Generator) Chains(ctx context.Context) error {
	s := model.NewSystem()
	for base := 0; base <= g.params.MaxChain; base += g.params.Step {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", methodChains, err)
		}
		count := base + g.params.Step

		for i := base; i < count; i++ {
			spikes := 0
			if i == 0 {
				spikes = 1
			}
			pos := model.Position{X: float64(i) * g.params.Gap, Y: 0}
			if err := g.addNeuron(s, i, pos, chainRules, spikes); err != nil {
				return fmt.Errorf("%s: %w", methodChains, err)
			}
			if i > 0 {
				if err := s.Connect(g.cfg.idFn(i-1), g.cfg.idFn(i), synapseWeight); err != nil {
					return fmt.Errorf("%s: %w", methodChains, err)
				}
			}
		}
		g.cfg.logger.Info("built spike chain", "family", methodChains, "neurons", s.Len(), "synapses", s.SynapseCount())

		if err := g.emit.Emit(ctx, export.FamilyOneSpikeChain, s); err != nil {
			return fmt.Errorf("%s: %w", methodChains, err)
		}

		for i := base; i < count; i++ {
			if err := s.SetSpikes(i, 1); err != nil {
				return fmt.Errorf("%s: %w", methodChains, err)
			}
		}
		if err := g.emit.Emit(ctx, export.FamilyAllSpikeChain, s); err != nil {
			return fmt.Errorf("%s: %w", methodChains, err)
		}

		for i := 1; i < count; i++ {
			if err := s.SetSpikes(i, 0); err != nil {
				return fmt.Errorf("%s: %w", methodChains, err)
			}
		}
	}
	return nil
}

// CompleteGraphs grows a complete digraph Step neurons at a time. After each
// batch all neurons are placed on a circle and the simple and benchmark
// variants are emitted from the same topology.
func (g *Generator) CompleteGraphs(ctx context.Context) error {
	s := model.NewSystem()
	for base := 0; base <= g.params.MaxGraph; base += g.params.Step {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", methodComplete, err)
		}
		count := base + g.params.Step

		for i := base; i < count; i++ {
			if err := g.addNeuron(s, i, model.Position{}, simpleRules, simpleSpikes); err != nil {
				return fmt.Errorf("%s: %w", methodComplete, err)
			}
			v := g.cfg.idFn(i)
			for j := 0; j < i; j++ {
				u := g.cfg.idFn(j)
				if err := s.Connect(u, v, synapseWeight); err != nil {
					return fmt.Errorf("%s: %w", methodComplete, err)
				}
				if err := s.Connect(v, u, synapseWeight); err != nil {
					return fmt.Errorf("%s: %w", methodComplete, err)
				}
			}
		}
		if err := circleLayout(s, g.params.Gap); err != nil {
			return fmt.Errorf("%s: %w", methodComplete, err)
		}
		g.cfg.logger.Info("built complete graph", "family", methodComplete, "neurons", s.Len(), "synapses", s.SynapseCount())

		if err := g.emit.Emit(ctx, export.FamilySimpleComplete, s); err != nil {
			return fmt.Errorf("%s: %w", methodComplete, err)
		}
		if err := setAll(s, benchmarkRules, benchmarkSpikes); err != nil {
			return fmt.Errorf("%s: %w", methodComplete, err)
		}
		if err := g.emit.Emit(ctx, export.FamilyBenchmarkComplete, s); err != nil {
			return fmt.Errorf("%s: %w", methodComplete, err)
		}
		if err := setAll(s, simpleRules, simpleSpikes); err != nil {
			return fmt.Errorf("%s: %w", methodComplete, err)
		}
	}
	return nil
}

func (g *Generator) addNeuron(s *model.System, i int, pos model.Position, rules []model.Rule, spikes int) error {
	n, err := model.NewNeuron(g.cfg.idFn(i), model.NeuronRegular, pos, rules, spikes)
	if err != nil {
		return err
	}
	return s.AddNeuron(n)
}

// circleLayout places neuron i at angle 2πi/n on a circle of radius n*gap/2.
func circleLayout(s *model.System, gap float64) error {
	n := s.Len()
	radius := float64(n) * gap / 2
	for i := 0; i < n; i++ {
		theta := float64(i*2) * math.Pi / float64(n)
		pos := model.Position{X: math.Cos(theta) * radius, Y: math.Sin(theta) * radius}
		if err := s.SetPosition(i, pos); err != nil {
			return err
		}
	}
	return nil
}

func setAll(s *model.System, rules []model.Rule, spikes int) error {
	for i := 0; i < s.Len(); i++ {
		if err := s.SetRules(i, rules); err != nil {
			return err
		}
		if err := s.SetSpikes(i, spikes); err != nil {
			return err
		}
	}
	return nil
}
