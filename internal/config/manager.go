package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"

	"schedgen/internal/core"
	"schedgen/internal/ingest"
	"schedgen/internal/model"
)

// Manager owns a Config and, optionally, a filesystem watcher that
// re-reads the configured rule document whenever it changes on disk.
type Manager struct {
	logger *core.Logger

	mu    sync.RWMutex
	cfg   Config
	rules []model.SchedulingRule

	watcher  *fsnotify.Watcher
	stopChan chan struct{}
}

// NewManager builds a Manager around an already-loaded Config.
func NewManager(cfg Config, logger *core.Logger) *Manager {
	if logger == nil {
		logger = core.NewDefaultLogger()
	}
	return &Manager{logger: logger, cfg: cfg}
}

// LoadRules reads and caches the rule document at cfg.RulesFile, if one is
// configured. A missing RulesFile is not an error — it means "no rules".
func (m *Manager) LoadRules() ([]model.SchedulingRule, error) {
	m.mu.RLock()
	path := m.cfg.RulesFile
	m.mu.RUnlock()

	if path == "" {
		return nil, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, core.NewFileError(path, "open", err)
	}
	defer file.Close()

	rules, err := ingest.ReadRuleDocument(file)
	if err != nil {
		return nil, core.NewConfigError(path, "", "failed to parse rule document", err)
	}

	m.mu.Lock()
	m.rules = rules
	m.mu.Unlock()

	return rules, nil
}

// CurrentRules returns the most recently loaded rule set.
func (m *Manager) CurrentRules() []model.SchedulingRule {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rules
}

// StartHotReload watches cfg.RulesFile for writes and re-runs LoadRules on
// every change, invoking callback with the resulting Snapshot. It is a
// no-op, returning nil, when no RulesFile is configured.
func (m *Manager) StartHotReload(callback func(Snapshot)) error {
	m.mu.RLock()
	path := m.cfg.RulesFile
	m.mu.RUnlock()

	if path == "" {
		return nil
	}
	if m.watcher != nil {
		return fmt.Errorf("hot-reload already started")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch rules file %q: %w", path, err)
	}

	m.watcher = watcher
	m.stopChan = make(chan struct{})

	go m.watchFile(callback)

	m.logger.Info("hot-reload enabled for %s", path)
	return nil
}

// StopHotReload stops the watcher started by StartHotReload. Safe to call
// even if hot-reload was never started.
func (m *Manager) StopHotReload() {
	if m.watcher == nil {
		return
	}
	close(m.stopChan)
	m.watcher.Close()
	m.watcher = nil
	m.logger.Info("hot-reload stopped")
}

func (m *Manager) watchFile(callback func(Snapshot)) {
	for {
		select {
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) {
				m.logger.Info("rules file changed: %s", event.Name)
				rules, err := m.LoadRules()
				if callback != nil {
					callback(Snapshot{Rules: rules, Err: err})
				}
			}

		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			m.logger.Error("file watcher error: %v", err)

		case <-m.stopChan:
			return
		}
	}
}
