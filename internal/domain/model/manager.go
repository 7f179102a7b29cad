package model

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Settings configures the weights location and target device.
type Settings struct {
	Dir    string
	Device string
}

// Manager owns the process-wide model handle and its load state.
type Manager struct {
	loader   Loader
	settings Settings
	log      zerolog.Logger
	now      func() time.Time

	// loadMu serializes Load and Unload; mu guards handle and status.
	loadMu    sync.Mutex
	mu        sync.RWMutex
	handle    Handle
	status    Status
	epoch     uint64
	listeners []func(Status)
}

// NewManager creates a manager in the not_loaded state.
func NewManager(loader Loader, settings Settings, log zerolog.Logger) *Manager {
	return &Manager{
		loader:   loader,
		settings: settings,
		log:      log.With().Str("component", "model-manager").Logger(),
		now:      time.Now,
		status: Status{
			State:    StateNotLoaded,
			Device:   settings.Device,
			ModelDir: settings.Dir,
		},
	}
}

// OnChange registers fn to run after every state transition.
func (m *Manager) OnChange(fn func(Status)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Status returns a snapshot of the current state.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Acquire returns the live model, or ErrModelNotLoaded. The returned Info
// carries the current epoch.
func (m *Manager) Acquire() (Model, Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.status.State != StateLoaded || m.handle == nil {
		return nil, Info{}, ErrModelNotLoaded
	}
	info := m.handle.Info()
	info.Epoch = m.epoch
	return m.handle, info, nil
}

// Load (re)loads the model from the configured directory. A model already
// serving keeps serving until the new one is ready; a failed reload releases
// it and leaves no model serving.
func (m *Manager) Load(ctx context.Context) (Status, error) {
	m.loadMu.Lock()
	defer m.loadMu.Unlock()

	if !m.serving() {
		m.swap(nil, Status{
			State:    StateLoading,
			Device:   m.settings.Device,
			ModelDir: m.settings.Dir,
		})
	}

	m.log.Info().
		Str("model_dir", m.settings.Dir).
		Str("device", m.settings.Device).
		Msg("loading model")

	start := m.now()
	handle, err := m.loader.Load(ctx, LoadRequest{Dir: m.settings.Dir, Device: m.settings.Device})
	if err != nil {
		message := err.Error()
		if errors.Is(err, ErrModelDirNotFound) {
			message = fmt.Sprintf("Model directory '%s' not found!", m.settings.Dir)
		}
		status := Status{
			State:    StateFailed,
			Device:   m.settings.Device,
			ModelDir: m.settings.Dir,
			Error:    message,
		}
		m.release(ctx, m.swap(nil, status))
		m.log.Error().Err(err).Str("model_dir", m.settings.Dir).Msg("error loading model")
		return status, err
	}

	info := handle.Info()
	device := info.Device
	if device == "" {
		device = m.settings.Device
	}
	loadedAt := m.now()
	status := Status{
		State:     StateLoaded,
		Loaded:    true,
		Device:    device,
		ModelDir:  m.settings.Dir,
		ModelName: info.Name,
		ModelType: info.ModelType,
		LoadedAt:  &loadedAt,
	}
	m.release(ctx, m.swap(handle, status))

	m.log.Info().
		Str("device", device).
		Str("model_type", info.ModelType).
		Dur("duration", loadedAt.Sub(start)).
		Msg("model loaded successfully")
	return status, nil
}

// Unload releases the model and returns to not_loaded.
func (m *Manager) Unload(ctx context.Context) (Status, error) {
	m.loadMu.Lock()
	defer m.loadMu.Unlock()

	status := Status{
		State:    StateNotLoaded,
		Device:   m.settings.Device,
		ModelDir: m.settings.Dir,
	}
	previous := m.swap(nil, status)
	if err := m.release(ctx, previous); err != nil {
		return status, err
	}
	if previous != nil {
		m.log.Info().Str("model_dir", m.settings.Dir).Msg("model unloaded")
	}
	return status, nil
}

func (m *Manager) serving() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.handle != nil && m.status.State == StateLoaded
}

// swap installs a new handle and status, bumps the epoch and returns the
// replaced handle.
func (m *Manager) swap(handle Handle, status Status) Handle {
	m.mu.Lock()
	previous := m.handle
	m.handle = handle
	m.status = status
	m.epoch++
	listeners := make([]func(Status), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(status)
	}
	return previous
}

func (m *Manager) release(ctx context.Context, handle Handle) error {
	if handle == nil {
		return nil
	}
	if err := handle.Close(ctx); err != nil {
		m.log.Warn().Err(err).Msg("release model handle")
		return err
	}
	return nil
}
