package model

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// NeuronType classifies a neuron's role in the system.
type NeuronType string

const (
	NeuronRegular NeuronType = "regular"
	NeuronInput   NeuronType = "input"
	NeuronOutput  NeuronType = "output"
)

func (t NeuronType) Valid() bool {
	switch t {
	case NeuronRegular, NeuronInput, NeuronOutput:
		return true
	default:
		return false
	}
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Position) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Rule is a firing rule. Language is a symbolic spike-count pattern written in
// the tree-format notation (for example "a", "a^\ast", "(a^2)^\ast").
type Rule struct {
	Language string `json:"language"`
	Consume  int    `json:"consume"`
	Produce  int    `json:"produce"`
	Delay    int    `json:"delay"`
}

func NewRule(language string, consume, produce, delay int) (Rule, error) {
	r := Rule{Language: language, Consume: consume, Produce: produce, Delay: delay}
	if err := r.Validate(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

// MustRule is NewRule for package-level rule literals.
func MustRule(language string, consume, produce, delay int) Rule {
	r, err := NewRule(language, consume, produce, delay)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Rule) Validate() error {
	switch {
	case r.Language == "":
		return fmt.Errorf("empty language: %w", ErrInvalidRule)
	case r.Consume < 1:
		return fmt.Errorf("consume=%d < 1: %w", r.Consume, ErrInvalidRule)
	case r.Produce < 0:
		return fmt.Errorf("produce=%d < 0: %w", r.Produce, ErrInvalidRule)
	case r.Delay < 0:
		return fmt.Errorf("delay=%d < 0: %w", r.Delay, ErrInvalidRule)
	}
	return nil
}

type Neuron struct {
	ID       string     `json:"id"`
	Type     NeuronType `json:"type"`
	Position Position   `json:"position"`
	Rules    []Rule     `json:"rules"`
	Spikes   int        `json:"spikes"`
}

func NewNeuron(id string, typ NeuronType, pos Position, rules []Rule, spikes int) (Neuron, error) {
	if err := ValidateID(id); err != nil {
		return Neuron{}, err
	}
	if !typ.Valid() {
		return Neuron{}, fmt.Errorf("neuron %s: type %q: %w", id, typ, ErrInvalidNeuron)
	}
	if !pos.Finite() {
		return Neuron{}, fmt.Errorf("neuron %s: position %+v: %w", id, pos, ErrInvalidNeuron)
	}
	if spikes < 0 {
		return Neuron{}, fmt.Errorf("neuron %s: spikes=%d: %w", id, spikes, ErrInvalidNeuron)
	}
	for i, r := range rules {
		if err := r.Validate(); err != nil {
			return Neuron{}, fmt.Errorf("neuron %s: rule %d: %w", id, i, err)
		}
	}
	return Neuron{
		ID:       id,
		Type:     typ,
		Position: pos,
		Rules:    append([]Rule(nil), rules...),
		Spikes:   spikes,
	}, nil
}

func (n Neuron) IsInput() bool  { return n.Type == NeuronInput }
func (n Neuron) IsOutput() bool { return n.Type == NeuronOutput }

func (n Neuron) clone() Neuron {
	n.Rules = append([]Rule(nil), n.Rules...)
	return n
}

type Synapse struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

var elementName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// ValidateID reports whether id can be used as an element tag in the flat
// record format.
func ValidateID(id string) error {
	if !elementName.MatchString(id) {
		return fmt.Errorf("id %q: %w", id, ErrInvalidID)
	}
	if strings.HasPrefix(strings.ToLower(id), "xml") {
		return fmt.Errorf("id %q: reserved xml prefix: %w", id, ErrInvalidID)
	}
	return nil
}
