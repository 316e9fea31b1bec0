package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/lox/holdem/internal/game"
)

type memoryEntry struct {
	data      []byte
	round     game.Round
	updatedAt time.Time
}

// Memory keeps hands in process memory.
type Memory struct {
	*options
	mu    sync.RWMutex
	hands map[string]memoryEntry
}

// NewMemory returns an empty in-memory store.
func NewMemory(opts ...Option) *Memory {
	return &Memory{
		options: newOptions(opts),
		hands:   make(map[string]memoryEntry),
	}
}

func (m *Memory) Get(ctx context.Context, id string) (*game.Hand, error) {
	m.mu.RLock()
	e, ok := m.hands[id]
	m.mu.RUnlock()
	if !ok {
		return nil, notFound(id)
	}
	return m.decode(id, e.data)
}

func (m *Memory) Create(ctx context.Context, h *game.Hand) (string, error) {
	data, err := m.encode(h)
	if err != nil {
		return "", err
	}
	id, err := m.ids.New()
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands[id] = memoryEntry{data: data, round: h.Round(), updatedAt: m.clock.Now()}
	return id, nil
}

func (m *Memory) Update(ctx context.Context, id string, h *game.Hand) error {
	data, err := m.encode(h)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.hands[id]; !ok {
		return notFound(id)
	}
	m.hands[id] = memoryEntry{data: data, round: h.Round(), updatedAt: m.clock.Now()}
	return nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.hands[id]; !ok {
		return notFound(id)
	}
	delete(m.hands, id)
	return nil
}

func (m *Memory) List(ctx context.Context) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Summary, 0, len(m.hands))
	for id, e := range m.hands {
		out = append(out, Summary{ID: id, Round: e.round, UpdatedAt: e.updatedAt})
	}
	slices.SortFunc(out, func(a, b Summary) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}
