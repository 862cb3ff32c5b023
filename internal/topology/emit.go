package topology

import (
	"context"
	"fmt"

	"snpgen/internal/export"
	"snpgen/internal/model"
)

// Emitter receives the system after each growth or mutation step. The system
// is only valid for the duration of the call; implementations that keep it
// must take a Snapshot.
type Emitter interface {
	Emit(ctx context.Context, family export.Family, s *model.System) error
}

// Fixture describes one written document.
type Fixture struct {
	Family   export.Family
	Format   export.Format
	Path     string
	Neurons  int
	Synapses int
	Bytes    int
}

// FileEmitter encodes the system in every configured format and writes each
// document to its layout path.
type FileEmitter struct {
	Sink    export.Sink
	Layout  export.Layout
	Formats []export.Format
	// OnWrite, when set, runs after every successful write.
	OnWrite func(ctx context.Context, f Fixture) error
}

func (e *FileEmitter) Emit(ctx context.Context, family export.Family, s *model.System) error {
	formats := e.Formats
	if len(formats) == 0 {
		formats = export.Formats
	}
	for _, format := range formats {
		data, err := export.Encode(format, s)
		if err != nil {
			return fmt.Errorf("%s %s: %w", family, format, err)
		}
		path := e.Layout.Path(family, format, s.Len())
		if err := e.Sink.Write(ctx, path, data); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		if e.OnWrite == nil {
			continue
		}
		fixture := Fixture{
			Family:   family,
			Format:   format,
			Path:     path,
			Neurons:  s.Len(),
			Synapses: s.SynapseCount(),
			Bytes:    len(data),
		}
		if err := e.OnWrite(ctx, fixture); err != nil {
			return fmt.Errorf("record %s: %w", path, err)
		}
	}
	return nil
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(ctx context.Context, family export.Family, s *model.System) error

func (f EmitterFunc) Emit(ctx context.Context, family export.Family, s *model.System) error {
	return f(ctx, family, s)
}
