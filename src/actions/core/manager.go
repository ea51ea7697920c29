// Package core runs the bot's long-lived parts (Discord session, HTTP API,
// Redis client) as modules with a shared lifecycle.
package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/TendTo/MemeBot/src/logging"
	"go.uber.org/zap"
)

var errRunning = errors.New("actions: manager is running")

// Module is one part of the process that owns goroutines or connections.
type Module interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context)
}

// Manager starts modules in registration order and stops them in reverse,
// so a module may rely on everything registered before it.
type Manager struct {
	mu      sync.Mutex
	modules []Module
	running []Module
	log     *zap.Logger
}

func NewManager(mods ...Module) *Manager {
	m := &Manager{log: logging.Resolve(nil, "actions")}
	for _, mod := range mods {
		if mod != nil {
			m.modules = append(m.modules, mod)
		}
	}
	return m
}

// Add registers mod. Registration closes once the manager runs.
func (m *Manager) Add(mod Module) error {
	if mod == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running != nil {
		return fmt.Errorf("add %s: %w", mod.Name(), errRunning)
	}
	m.modules = append(m.modules, mod)
	return nil
}

// Modules lists registered module names in start order.
func (m *Manager) Modules() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, len(m.modules))
	for i, mod := range m.modules {
		names[i] = mod.Name()
	}
	return names
}

// Start brings every module up. On the first failure the modules already
// up are stopped again and the error names the failing one.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running != nil {
		return errRunning
	}

	up := make([]Module, 0, len(m.modules))
	for _, mod := range m.modules {
		if err := mod.Start(ctx); err != nil {
			stopAll(ctx, up, m.log)
			return fmt.Errorf("module %s failed: %w", mod.Name(), err)
		}
		m.log.Info("module started", zap.String("module", mod.Name()))
		up = append(up, mod)
	}
	m.running = up
	return nil
}

// Stop takes the running modules down, last started first. It is a no-op
// when nothing runs.
func (m *Manager) Stop(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stopAll(ctx, m.running, m.log)
	m.running = nil
}

func stopAll(ctx context.Context, mods []Module, log *zap.Logger) {
	for i := len(mods) - 1; i >= 0; i-- {
		mods[i].Stop(ctx)
		log.Info("module stopped", zap.String("module", mods[i].Name()))
	}
}
