package config

import (
	"github.com/fsnotify/fsnotify"

	"github.com/bnema/voyage/internal/logging"
)

// Watch starts watching the config file and reloads it on change.
// Registered callbacks run after every successful reload.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}

	m.viper.OnConfigChange(m.handleChange)
	m.viper.WatchConfig()
	m.watching = true
	return nil
}

func (m *Manager) handleChange(e fsnotify.Event) {
	log := logging.NewFromEnv()
	log.Debug().Str("op", e.Op.String()).Str("file", e.Name).Msg("config change detected")

	m.mu.Lock()

	if m.skipNextReload {
		log.Debug().Msg("skipping reload triggered by own save")
		m.skipNextReload = false
		m.notifyCallbacksLocked()
		return
	}

	if err := m.reload(true); err != nil {
		log.Warn().Err(err).Msg("failed to reload config, keeping previous values")
		m.mu.Unlock()
		return
	}
	log.Info().Str("file", e.Name).Msg("config reloaded")
	m.notifyCallbacksLocked()
}

// notifyCallbacksLocked copies callbacks and config, releases the lock, then notifies.
// Must be called with m.mu held for write.
func (m *Manager) notifyCallbacksLocked() {
	config := m.config.clone()
	callbacks := make([]func(*Config), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	for _, callback := range callbacks {
		callback(config)
	}
}

// OnConfigChange registers a callback run after each reload.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}
