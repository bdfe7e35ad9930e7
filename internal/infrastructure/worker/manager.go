// Package worker runs the dashboard's background jobs.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Worker defines the interface for background workers
type Worker interface {
	Start(ctx context.Context) error
	Stop() error
	Name() string
}

// WorkerManager starts registered workers under one cancellable context.
// Only workers whose Start succeeded are stopped, newest first.
type WorkerManager struct {
	logger *zap.Logger

	mu         sync.RWMutex
	registered []Worker
	running    []Worker
	cancel     context.CancelFunc
}

// NewWorkerManager creates a new worker manager
func NewWorkerManager(logger *zap.Logger) *WorkerManager {
	return &WorkerManager{logger: logger}
}

// Register adds a worker; it is picked up by the next StartAll
func (m *WorkerManager) Register(w Worker) {
	m.mu.Lock()
	m.registered = append(m.registered, w)
	count := len(m.registered)
	m.mu.Unlock()

	m.logger.Info("Worker registered",
		zap.String("worker_name", w.Name()),
		zap.Int("total_workers", count))
}

// StartAll starts every registered worker. A worker that fails to start is
// logged and left out of the running set.
func (m *WorkerManager) StartAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		return fmt.Errorf("workers already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = m.running[:0]

	for _, w := range m.registered {
		if err := w.Start(runCtx); err != nil {
			m.logger.Error("Failed to start worker",
				zap.String("worker_name", w.Name()),
				zap.Error(err))
			continue
		}
		m.running = append(m.running, w)
	}

	m.logger.Info("Workers started",
		zap.Int("running", len(m.running)),
		zap.Int("registered", len(m.registered)))
	return nil
}

// StopAll cancels the shared context, then stops the running workers in
// reverse start order.
func (m *WorkerManager) StopAll() error {
	m.mu.Lock()
	cancel := m.cancel
	running := m.running
	m.cancel = nil
	m.running = nil
	m.mu.Unlock()

	if cancel == nil {
		m.logger.Warn("Workers not running, nothing to stop")
		return nil
	}
	cancel()

	var errs []error
	for i := len(running) - 1; i >= 0; i-- {
		w := running[i]
		if err := w.Stop(); err != nil {
			m.logger.Error("Failed to stop worker",
				zap.String("worker_name", w.Name()),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", w.Name(), err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("failed to stop %d workers: %w", len(errs), errors.Join(errs...))
	}

	m.logger.Info("All workers stopped", zap.Int("count", len(running)))
	return nil
}

// WorkerCount returns the number of registered workers
func (m *WorkerManager) WorkerCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.registered)
}

// Running returns the names of the workers that started
func (m *WorkerManager) Running() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.running))
	for _, w := range m.running {
		names = append(names, w.Name())
	}
	return names
}

// IsRunning reports whether StartAll has run without a matching StopAll
func (m *WorkerManager) IsRunning() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cancel != nil
}
