package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/i474232898/weatherman/internal/store"
	"github.com/i474232898/weatherman/internal/weather"
)

// DirLoader reads every monthly file in a directory.
type DirLoader struct {
	Dir    string
	Logger *slog.Logger
}

// NewDirLoader creates a DirLoader for dir.
func NewDirLoader(dir string, logger *slog.Logger) *DirLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &DirLoader{
		Dir:    dir,
		Logger: logger.With("component", "ingest", "source", dir),
	}
}

func (l *DirLoader) Name() string {
	return "dir:" + l.Dir
}

// Load decodes the directory's files in name order and builds a store.
// Files with an unknown extension or without any dated row are skipped.
func (l *DirLoader) Load(ctx context.Context) (weather.Store, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	b := store.NewBuilder()
	files := 0

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		comma, err := Separator(name)
		if err != nil {
			l.Logger.Debug("skipping file", "file", name, "error", err)
			continue
		}

		readings, err := l.readFile(filepath.Join(l.Dir, name), comma)
		if err != nil {
			if errors.Is(err, ErrNoHeader) {
				l.Logger.Warn("skipping file without header", "file", name)
				continue
			}
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}

		key, ok := addFile(b, readings)
		if !ok {
			l.Logger.Warn("skipping file without dated rows", "file", name)
			continue
		}
		files++
		l.Logger.Debug("file loaded", "file", name, "month", key.String(), "readings", len(readings))
	}

	st := b.Build()
	l.Logger.Info("directory loaded", "files", files, "months", st.Len())
	return st, nil
}

func (l *DirLoader) readFile(path string, comma rune) ([]weather.Reading, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f, comma)
}
