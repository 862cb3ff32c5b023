package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"snpgen/internal/model"
	"snpgen/internal/notation"
)

const treeIndent = "    "

type treeDocument struct {
	Neurons  []treeNeuron  `json:"neurons"`
	Synapses []treeSynapse `json:"synapses"`
}

type treeNeuron struct {
	ID       string           `json:"id"`
	Type     model.NeuronType `json:"type"`
	Position model.Position   `json:"position"`
	Rules    []string         `json:"rules"`
	Content  int              `json:"content"`
}

type treeSynapse struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
}

// EncodeTree renders s as a v3 document: pretty-printed JSON with fields in
// a fixed order and neurons/synapses in system order.
func EncodeTree(s *model.System) ([]byte, error) {
	doc := treeDocument{
		Neurons:  make([]treeNeuron, 0, s.Len()),
		Synapses: make([]treeSynapse, 0, s.SynapseCount()),
	}
	for _, n := range s.Neurons() {
		rules := make([]string, 0, len(n.Rules))
		for _, r := range n.Rules {
			rules = append(rules, notation.Tree(r))
		}
		doc.Neurons = append(doc.Neurons, treeNeuron{
			ID:       n.ID,
			Type:     n.Type,
			Position: n.Position,
			Rules:    rules,
			Content:  n.Spikes,
		})
	}
	for _, syn := range s.Synapses() {
		doc.Synapses = append(doc.Synapses, treeSynapse{From: syn.Source, To: syn.Target, Weight: syn.Weight})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", treeIndent)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode tree document: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func WriteTree(ctx context.Context, sink Sink, s *model.System, path string) error {
	data, err := EncodeTree(s)
	if err != nil {
		return err
	}
	return sink.Write(ctx, path, data)
}
