package export

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"snpgen/internal/model"
	"snpgen/internal/notation"
)

const (
	flatRoot  = "content"
	flatDelay = "0"
)

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EncodeFlat renders s as a v2 document. Every neuron becomes an element
// named by its id; the delay field is always "0" whatever the rules say.
func EncodeFlat(s *model.System) ([]byte, error) {
	var buf bytes.Buffer
	w := flatWriter{buf: &buf}

	neurons := s.Neurons()
	if len(neurons) == 0 {
		w.leaf(flatRoot, "")
		return buf.Bytes(), nil
	}

	w.open(flatRoot)
	for _, n := range neurons {
		if err := model.ValidateID(n.ID); err != nil {
			return nil, fmt.Errorf("encode flat document: %w", err)
		}
		out := s.Outgoing(n.ID)

		w.open(n.ID)
		w.leaf("id", n.ID)
		w.open("position")
		w.leaf("x", FormatDecimal(n.Position.X))
		w.leaf("y", FormatDecimal(n.Position.Y))
		w.close("position")

		rules := make([]string, 0, len(n.Rules))
		for _, r := range n.Rules {
			rules = append(rules, notation.Flat(r))
		}
		w.leaf("rules", strings.Join(rules, " "))

		spikes := strconv.Itoa(n.Spikes)
		w.leaf("startingSpikes", spikes)
		w.leaf("delay", flatDelay)
		w.leaf("spikes", spikes)
		w.leaf("isOutput", strconv.FormatBool(n.IsOutput()))
		w.leaf("isInput", strconv.FormatBool(n.IsInput()))

		for _, syn := range out {
			w.leaf("out", syn.Target)
		}
		if len(out) == 0 {
			w.leaf("outWeights", "")
		} else {
			w.open("outWeights")
			for _, syn := range out {
				w.leaf(syn.Target, FormatDecimal(syn.Weight))
			}
			w.close("outWeights")
		}
		w.close(n.ID)
	}
	w.close(flatRoot)
	return buf.Bytes(), nil
}

func WriteFlat(ctx context.Context, sink Sink, s *model.System, path string) error {
	data, err := EncodeFlat(s)
	if err != nil {
		return err
	}
	return sink.Write(ctx, path, data)
}

// flatWriter emits compact markup with self-closing empty elements, which is
// what the v2 readers were built against.
type flatWriter struct {
	buf *bytes.Buffer
}

func (w flatWriter) open(name string) {
	w.buf.WriteByte('<')
	w.buf.WriteString(name)
	w.buf.WriteByte('>')
}

func (w flatWriter) close(name string) {
	w.buf.WriteString("</")
	w.buf.WriteString(name)
	w.buf.WriteByte('>')
}

func (w flatWriter) leaf(name, text string) {
	if text == "" {
		w.buf.WriteByte('<')
		w.buf.WriteString(name)
		w.buf.WriteString(" />")
		return
	}
	w.open(name)
	textEscaper.WriteString(w.buf, text)
	w.close(name)
}
