package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/lox/holdem/internal/fileutil"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/gameid"
)

const fileExt = ".json"

// fileRecord is the on-disk layout of one hand.
type fileRecord struct {
	ID        string          `json:"id"`
	Round     game.Round      `json:"round"`
	UpdatedAt time.Time       `json:"updated_at"`
	Hand      json.RawMessage `json:"hand"`
}

// File stores each hand as a JSON document in a directory.
type File struct {
	*options
	dir string
	mu  sync.Mutex
}

// NewFile returns a store rooted at dir, creating the directory if needed.
func NewFile(dir string, opts ...Option) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &File{options: newOptions(opts), dir: dir}, nil
}

func (f *File) path(id string) (string, error) {
	if err := gameid.Validate(id); err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return filepath.Join(f.dir, id+fileExt), nil
}

func (f *File) read(id string) (fileRecord, error) {
	var rec fileRecord
	path, err := f.path(id)
	if err != nil {
		return rec, err
	}
	if err := fileutil.ReadJSON(path, &rec); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return rec, notFound(id)
		}
		return rec, err
	}
	return rec, nil
}

func (f *File) write(id string, h *game.Hand) error {
	data, err := f.encode(h)
	if err != nil {
		return err
	}
	path, err := f.path(id)
	if err != nil {
		return err
	}
	rec := fileRecord{ID: id, Round: h.Round(), UpdatedAt: f.clock.Now().UTC(), Hand: data}
	return fileutil.WriteJSON(path, rec, 0o644)
}

func (f *File) Get(ctx context.Context, id string) (*game.Hand, error) {
	rec, err := f.read(id)
	if err != nil {
		return nil, err
	}
	return f.decode(id, rec.Hand)
}

func (f *File) Create(ctx context.Context, h *game.Hand) (string, error) {
	id, err := f.ids.New()
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.write(id, h); err != nil {
		return "", err
	}
	return id, nil
}

func (f *File) Update(ctx context.Context, id string, h *game.Hand) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.read(id); err != nil {
		return err
	}
	return f.write(id, h)
}

func (f *File) Delete(ctx context.Context, id string) error {
	path, err := f.path(id)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return notFound(id)
		}
		return fmt.Errorf("deleting hand %s: %w", id, err)
	}
	return nil
}

func (f *File) List(ctx context.Context) ([]Summary, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", f.dir, err)
	}
	var out []Summary
	for _, e := range entries {
		id, ok := strings.CutSuffix(e.Name(), fileExt)
		if !ok || e.IsDir() || gameid.Validate(id) != nil {
			continue
		}
		rec, err := f.read(id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, Summary{ID: id, Round: rec.Round, UpdatedAt: rec.UpdatedAt})
	}
	slices.SortFunc(out, func(a, b Summary) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}
