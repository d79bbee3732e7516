package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

type Module interface {
	Name() string
	Init(ctx context.Context, logger *slog.Logger) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// StatusReporter is implemented by modules that expose a health status.
type StatusReporter interface {
	Status() ServiceStatus
}

type ModuleManager struct {
	mu      sync.RWMutex
	modules []Module
	logger  *slog.Logger
	errCh   chan error
}

func NewModuleManager(logger *slog.Logger) *ModuleManager {
	return &ModuleManager{
		modules: []Module{},
		logger:  logger,
		errCh:   make(chan error, 1),
	}
}

func (m *ModuleManager) Register(mod Module) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modules = append(m.modules, mod)
}

// Modules returns the registered modules in registration order.
func (m *ModuleManager) Modules() []Module {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Module(nil), m.modules...)
}

func (m *ModuleManager) Init(ctx context.Context) error {
	for _, mod := range m.Modules() {
		if err := mod.Init(ctx, m.logger.With("module", mod.Name())); err != nil {
			return fmt.Errorf("init module %s: %w", mod.Name(), err)
		}
	}
	return nil
}

// Start runs every module in its own goroutine. The first module failure is
// reported on Errors.
func (m *ModuleManager) Start(ctx context.Context) {
	for _, mod := range m.Modules() {
		go func(mod Module) {
			m.logger.Info("Starting module", "module", mod.Name())
			if err := mod.Start(ctx); err != nil {
				m.logger.Error("Module failed", "module", mod.Name(), "error", err)
				select {
				case m.errCh <- fmt.Errorf("module %s: %w", mod.Name(), err):
				default:
				}
			}
		}(mod)
	}
}

// Errors delivers the first module start failure.
func (m *ModuleManager) Errors() <-chan error {
	return m.errCh
}

// Stop stops modules in reverse registration order.
func (m *ModuleManager) Stop(ctx context.Context) {
	mods := m.Modules()
	for i := len(mods) - 1; i >= 0; i-- {
		mod := mods[i]
		m.logger.Info("Stopping module", "module", mod.Name())
		if err := mod.Stop(ctx); err != nil {
			m.logger.Error("Error stopping module", "module", mod.Name(), "error", err)
		}
	}
}

// Status aggregates module health. Modules without a StatusReporter count as
// healthy; any unhealthy module makes the whole process degraded.
func (m *ModuleManager) Status() ServiceStatus {
	status := StatusHealthy
	for _, mod := range m.Modules() {
		r, ok := mod.(StatusReporter)
		if !ok {
			continue
		}
		switch r.Status() {
		case StatusHealthy:
		case StatusUnknown:
			if status == StatusHealthy {
				status = StatusUnknown
			}
		default:
			status = StatusDegraded
		}
	}
	return status
}
