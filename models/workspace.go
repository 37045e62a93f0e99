package models

import (
	"sync"
)

// Workspace serializes access to a graph and its selection for concurrent
// callers such as the admin server.
type Workspace struct {
	mutex     sync.RWMutex
	graph     *Graph
	selection *Selection
}

func NewWorkspace(g *Graph, selectionRange float64) *Workspace {
	return &Workspace{
		graph:     g,
		selection: NewSelection(g, selectionRange),
	}
}

// Update runs fn with exclusive access to the graph and the selection.
func (w *Workspace) Update(fn func(g *Graph, s *Selection) error) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	return fn(w.graph, w.selection)
}

// View runs fn with shared access to the graph. fn must not mutate it.
func (w *Workspace) View(fn func(g *Graph) error) error {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	return fn(w.graph)
}
