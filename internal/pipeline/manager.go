package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"reelsmith/internal/logging"
)

// Manager supervises the background task each submission spawns. Tasks are
// keyed by job id so a job can never have two concurrent orchestrator runs,
// and shutdown can wait for in-flight work.
type Manager struct {
	orchestrator *Orchestrator
	logger       *slog.Logger

	mu      sync.Mutex
	running map[string]struct{}
	wg      sync.WaitGroup
}

// NewManager builds a Manager around the given orchestrator.
func NewManager(orchestrator *Orchestrator, logger *slog.Logger) *Manager {
	return &Manager{
		orchestrator: orchestrator,
		logger:       logging.NewComponentLogger(logger, "pipeline"),
		running:      make(map[string]struct{}),
	}
}

// Launch starts the pipeline for a job on a background goroutine. The
// submission response does not wait for it. ctx should be the daemon's base
// context, not the HTTP request's, so the run outlives the request.
func (m *Manager) Launch(ctx context.Context, jobID string) error {
	m.mu.Lock()
	if _, exists := m.running[jobID]; exists {
		m.mu.Unlock()
		return fmt.Errorf("job %s already running", jobID)
	}
	m.running[jobID] = struct{}{}
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer func() {
			m.mu.Lock()
			delete(m.running, jobID)
			m.mu.Unlock()
			m.wg.Done()
		}()
		// Run converts every stage error into a terminal failed status; the
		// returned error is only for logging here.
		if err := m.orchestrator.Run(ctx, jobID); err != nil {
			m.logger.Debug("pipeline run ended with error",
				logging.String(logging.FieldJobID, jobID),
				logging.Error(err),
			)
		}
	}()
	return nil
}

// Running reports whether a job's pipeline task is in flight.
func (m *Manager) Running(jobID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.running[jobID]
	return ok
}

// ActiveCount returns the number of in-flight pipeline tasks.
func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.running)
}

// Wait blocks until every launched task has finished.
func (m *Manager) Wait() {
	m.wg.Wait()
}
