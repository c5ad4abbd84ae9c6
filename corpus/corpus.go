// Package corpus provides the works the studies run over: an in-memory
// collection, a YAML file format, a DynamoDB table and a file watcher.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jsphweid/fictadex/model"
	"github.com/jsphweid/fictadex/util"
)

var ErrWorkNotFound = errors.New("work not found")

// Source hands out works by piece index. Every call returns a copy the
// caller may mutate freely.
type Source interface {
	Work(ctx context.Context, index int) (*model.Work, error)
}

// Memory is a Source over works held in memory. It is safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	works map[int]*model.Work
}

func NewMemory(works ...*model.Work) *Memory {
	m := &Memory{}
	m.Replace(works)
	return m
}

func (m *Memory) Work(ctx context.Context, index int) (*model.Work, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.works[index]
	if !ok {
		return nil, fmt.Errorf("piece %d: %w", index, ErrWorkNotFound)
	}
	return w.Clone(), nil
}

// Replace swaps the whole collection, e.g. after the corpus file changed.
func (m *Memory) Replace(works []*model.Work) {
	byIndex := make(map[int]*model.Work, len(works))
	for _, w := range works {
		byIndex[w.Index] = w
	}
	m.mu.Lock()
	m.works = byIndex
	m.mu.Unlock()
}

// Indexes lists the piece indexes held, ascending.
func (m *Memory) Indexes() []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return util.GetKeys(m.works)
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.works)
}
