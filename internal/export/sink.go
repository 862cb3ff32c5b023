package export

import (
	"context"
	"os"
	"sort"
	"sync"
)

// Sink accepts finished documents. Implementations must not create missing
// directories.
type Sink interface {
	Write(ctx context.Context, path string, data []byte) error
}

// FileSink overwrites files on the local file system.
type FileSink struct{}

func (FileSink) Write(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

type MemorySink struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

func (s *MemorySink) Write(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.files[path] = append([]byte(nil), data...)
	return nil
}

func (s *MemorySink) Get(path string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.files[path]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}

func (s *MemorySink) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
