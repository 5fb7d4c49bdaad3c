package flow

import (
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Store holds the current graph of a flow file and swaps it atomically on reload.
// Readers never block writers.
type Store struct {
	path    string
	current atomic.Pointer[Graph]
	log     *logrus.Logger

	mu        sync.Mutex
	listeners []func(*Graph)
	failures  []func(error)
}

// NewStore creates a store backed by the flow file at path. The path may be
// empty for stores populated with Set.
func NewStore(path string, log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.New()
	}
	return &Store{
		path: path,
		log:  log,
	}
}

// Path returns the backing flow file
func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the flow file. On failure the previous graph stays current.
func (s *Store) Reload() error {
	graph, err := LoadFile(s.path)
	if err != nil {
		s.log.WithError(err).WithField("path", s.path).Warn("Failed to load flow")
		s.notifyError(err)
		return err
	}

	s.Set(graph)
	s.log.WithFields(logrus.Fields{
		"path":       s.path,
		"revision":   graph.Revision(),
		"components": graph.Len(),
	}).Info("Loaded flow")
	return nil
}

// Set replaces the current graph and notifies listeners
func (s *Store) Set(graph *Graph) {
	s.current.Store(graph)

	s.mu.Lock()
	listeners := append([]func(*Graph){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(graph)
	}
}

// Current returns the current graph
func (s *Store) Current() (*Graph, error) {
	graph := s.current.Load()
	if graph == nil {
		return nil, ErrNoFlowLoaded
	}
	return graph, nil
}

// OnChange registers fn to be called after every successful swap
func (s *Store) OnChange(fn func(*Graph)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// OnError registers fn to be called after every failed reload, whether it was
// triggered directly, by the watcher or by a schedule
func (s *Store) OnError(fn func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, fn)
}

func (s *Store) notifyError(err error) {
	s.mu.Lock()
	failures := append([]func(error){}, s.failures...)
	s.mu.Unlock()

	for _, fn := range failures {
		fn(err)
	}
}
