package model

import (
	"fmt"
	"math"
)

// System is a spiking neural P system: neurons in creation order and synapses
// in insertion order. Neurons are never removed, so synapse endpoints stay
// resolvable for the lifetime of the value.
type System struct {
	neurons  []Neuron
	synapses []Synapse
	index    map[string]int
	outgoing map[string][]int
}

func NewSystem() *System {
	return &System{
		index:    make(map[string]int),
		outgoing: make(map[string][]int),
	}
}

func (s *System) AddNeuron(n Neuron) error {
	if err := ValidateID(n.ID); err != nil {
		return err
	}
	if _, ok := s.index[n.ID]; ok {
		return fmt.Errorf("neuron %s: %w", n.ID, ErrDuplicateID)
	}
	s.index[n.ID] = len(s.neurons)
	s.neurons = append(s.neurons, n.clone())
	return nil
}

// Connect appends a synapse from source to target. Parallel synapses between
// the same ordered pair are kept.
func (s *System) Connect(source, target string, weight float64) error {
	if _, ok := s.index[source]; !ok {
		return fmt.Errorf("connect %s->%s: source: %w", source, target, ErrUnknownNeuron)
	}
	if _, ok := s.index[target]; !ok {
		return fmt.Errorf("connect %s->%s: target: %w", source, target, ErrUnknownNeuron)
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return fmt.Errorf("connect %s->%s: weight %v: %w", source, target, weight, ErrInvalidSynapse)
	}
	s.outgoing[source] = append(s.outgoing[source], len(s.synapses))
	s.synapses = append(s.synapses, Synapse{Source: source, Target: target, Weight: weight})
	return nil
}

func (s *System) Len() int { return len(s.neurons) }

func (s *System) SynapseCount() int { return len(s.synapses) }

// Neurons returns the neurons in creation order. The slice is shared with the
// system and must not be modified; use the Set* methods instead.
func (s *System) Neurons() []Neuron { return s.neurons }

// Synapses returns the synapses in insertion order. The slice is shared with
// the system and must not be modified.
func (s *System) Synapses() []Synapse { return s.synapses }

func (s *System) Neuron(id string) (Neuron, bool) {
	i, ok := s.index[id]
	if !ok {
		return Neuron{}, false
	}
	return s.neurons[i].clone(), true
}

// Outgoing returns the synapses whose source is id, in insertion order.
func (s *System) Outgoing(id string) []Synapse {
	idx := s.outgoing[id]
	out := make([]Synapse, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.synapses[i])
	}
	return out
}

func (s *System) SetSpikes(i, spikes int) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if spikes < 0 {
		return fmt.Errorf("neuron %s: spikes=%d: %w", s.neurons[i].ID, spikes, ErrInvalidNeuron)
	}
	s.neurons[i].Spikes = spikes
	return nil
}

func (s *System) SetRules(i int, rules []Rule) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	for j, r := range rules {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("neuron %s: rule %d: %w", s.neurons[i].ID, j, err)
		}
	}
	s.neurons[i].Rules = append([]Rule(nil), rules...)
	return nil
}

func (s *System) SetPosition(i int, p Position) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if !p.Finite() {
		return fmt.Errorf("neuron %s: position %+v: %w", s.neurons[i].ID, p, ErrInvalidNeuron)
	}
	s.neurons[i].Position = p
	return nil
}

// Snapshot returns a deep copy that shares no mutable state with s.
func (s *System) Snapshot() *System {
	cp := &System{
		neurons:  make([]Neuron, len(s.neurons)),
		synapses: append([]Synapse(nil), s.synapses...),
		index:    make(map[string]int, len(s.index)),
		outgoing: make(map[string][]int, len(s.outgoing)),
	}
	for i, n := range s.neurons {
		cp.neurons[i] = n.clone()
	}
	for id, i := range s.index {
		cp.index[id] = i
	}
	for id, idx := range s.outgoing {
		cp.outgoing[id] = append([]int(nil), idx...)
	}
	return cp
}

func (s *System) checkIndex(i int) error {
	if i < 0 || i >= len(s.neurons) {
		return fmt.Errorf("neuron index %d of %d: %w", i, len(s.neurons), ErrUnknownNeuron)
	}
	return nil
}
