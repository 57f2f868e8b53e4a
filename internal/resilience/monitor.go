package resilience

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/anhdng/songngu/internal/logger"
	"github.com/anhdng/songngu/internal/notify"
)

// Monitor defaults.
const (
	DefaultMaxReconnects  = 5
	DefaultReconnectDelay = 2 * time.Second
)

// Probe checks connectivity. A nil return means online.
type Probe func(ctx context.Context) error

// MonitorConfig tunes a Monitor. Zero values select defaults.
type MonitorConfig struct {
	MaxReconnects  int
	ReconnectDelay time.Duration
}

// Monitor tracks online/offline state and drives capped reconnection.
//
// State transitions are pushed to listeners synchronously. Going offline
// surfaces a warning with a manual retry action; exhausting reconnect
// attempts surfaces a terminal failure instead of silently retrying
// forever.
type Monitor struct {
	probe    Probe
	notifier notify.Notifier
	log      logger.Logger
	cfg      MonitorConfig

	mu        sync.Mutex
	online    bool
	listeners []func(online bool)
}

// NewMonitor creates a monitor, initially online. notifier may be nil.
func NewMonitor(probe Probe, notifier notify.Notifier, log logger.Logger, cfg MonitorConfig) *Monitor {
	if cfg.MaxReconnects <= 0 {
		cfg.MaxReconnects = DefaultMaxReconnects
	}
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = DefaultReconnectDelay
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Monitor{
		probe:    probe,
		notifier: notifier,
		log:      log,
		cfg:      cfg,
		online:   true,
	}
}

// Online reports the current connectivity state.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// AddListener registers a state-change callback and returns its remover.
func (m *Monitor) AddListener(fn func(online bool)) (remove func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listeners = append(m.listeners, fn)
	idx := len(m.listeners) - 1
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if idx < len(m.listeners) {
			m.listeners[idx] = nil
		}
	}
}

// SetOnline records a connectivity transition. No-op when the state is
// unchanged.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	listeners := make([]func(bool), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	for _, fn := range listeners {
		if fn != nil {
			fn(online)
		}
	}

	if online {
		m.log.Info("connection restored")
		m.notifier.Notify(notify.Success, "Back online", "Connection restored.")
		return
	}

	m.log.Warn("connection lost")
	m.notifier.Notify(notify.Warning, "Connection lost",
		"Changes cannot be saved until the connection returns.",
		notify.Action{Label: "Retry connection", Run: func() {
			m.Reconnect(context.Background())
		}})
}

// Check probes once and records the result.
func (m *Monitor) Check(ctx context.Context) bool {
	online := m.probe(ctx) == nil
	m.SetOnline(online)
	return online
}

// Reconnect probes repeatedly with linearly increasing delay, up to the
// configured attempt cap. Returns true once a probe succeeds.
func (m *Monitor) Reconnect(ctx context.Context) bool {
	for attempt := 1; attempt <= m.cfg.MaxReconnects; attempt++ {
		err := m.probe(ctx)
		if err == nil {
			m.SetOnline(true)
			return true
		}
		m.log.Debug("reconnect attempt failed",
			logger.Int("attempt", attempt),
			logger.Error(err))

		if attempt == m.cfg.MaxReconnects {
			break
		}

		timer := time.NewTimer(m.cfg.ReconnectDelay * time.Duration(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}
	}

	m.SetOnline(false)
	m.notifier.Notify(notify.Error, "Still offline",
		fmt.Sprintf("Gave up after %d reconnection attempts.", m.cfg.MaxReconnects))
	return false
}
