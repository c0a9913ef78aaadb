package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"recon-insights/internal/domain"
)

const (
	snapshotFile = "snapshot.json"
	ageingFile   = "ageing.json"
	growthFile   = "growth.json"
)

// FileSource implements the SnapshotSource interface over exported JSON
// files laid out as <dir>/<platform>/<dateField>/{snapshot,ageing,growth}.json.
// A <start>_<end> subdirectory, when present, takes precedence for that window.
type FileSource struct {
	dir string
}

// NewFileSource creates a source reading below dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// GetSnapshot reads the snapshot of q. A missing snapshot is an error.
func (s *FileSource) GetSnapshot(ctx context.Context, q domain.Query) (json.RawMessage, error) {
	raw, err := s.read(ctx, q, snapshotFile)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("no snapshot for %s/%s in %s", q.Platform, q.DateField, s.dir)
	}
	return raw, nil
}

// GetAgeing reads the ageing profile of q. A missing file yields no data.
func (s *FileSource) GetAgeing(ctx context.Context, q domain.Query) (json.RawMessage, error) {
	return s.read(ctx, q, ageingFile)
}

// GetGrowth reads the growth series of q. A missing file yields no data.
func (s *FileSource) GetGrowth(ctx context.Context, q domain.Query) (json.RawMessage, error) {
	return s.read(ctx, q, growthFile)
}

func (s *FileSource) read(ctx context.Context, q domain.Query, name string) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, path := range s.candidates(q, name) {
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return json.RawMessage(data), nil
	}
	return nil, nil
}

func (s *FileSource) candidates(q domain.Query, name string) []string {
	base := filepath.Join(s.dir, string(q.Platform), string(q.DateField))
	paths := make([]string, 0, 2)
	if !q.Start.IsZero() && !q.End.IsZero() {
		window := q.Start.Format(time.DateOnly) + "_" + q.End.Format(time.DateOnly)
		paths = append(paths, filepath.Join(base, window, name))
	}
	return append(paths, filepath.Join(base, name))
}
