// Package connectivity tracks whether the remote document store is
// reachable.
//
// The monitor probes the store's ping endpoint on a fixed interval and
// publishes transitions to subscribers. Consumers read the current state
// cheaply via Connected; the sync job subscribes to be woken on reconnect.
package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/adilfashion/tailorsync/internal/logger"
)

//go:generate mockgen -source=monitor.go -destination=../mock/connectivity_mock.go -package=mock

// Prober answers a single reachability check. The HTTP adapter's Ping is the
// production implementation.
type Prober interface {
	Ping(ctx context.Context) error
}

// State is the reported reachability of the remote store.
type State int

const (
	StateDisconnected State = iota
	StateConnected
)

func (s State) String() string {
	if s == StateConnected {
		return "connected"
	}
	return "disconnected"
}

// Monitor polls a Prober and fans out state transitions.
type Monitor interface {
	// Start runs the initial probe synchronously, then polls in the
	// background until Stop is called.
	Start(ctx context.Context)

	// Connected reports the most recent probe result.
	Connected() bool

	// State returns the most recent probe result as a State.
	State() State

	// Subscribe returns a channel receiving every state transition. The
	// channel is buffered; slow consumers miss intermediate flaps but always
	// observe the latest transition.
	Subscribe() <-chan State

	// Probe forces an immediate reachability check and returns the result.
	Probe(ctx context.Context) State

	// Stop terminates the polling loop and closes subscriber channels.
	Stop()
}

type monitor struct {
	prober   Prober
	interval time.Duration
	logger   *logger.Logger

	mu          sync.Mutex
	state       State
	subscribers []chan State

	started  bool
	stopOnce sync.Once
	stopped  chan struct{}
	done     chan struct{}
}

// NewMonitor returns a Monitor polling prober every interval.
func NewMonitor(prober Prober, interval time.Duration, log *logger.Logger) Monitor {
	return &monitor{
		prober:   prober,
		interval: interval,
		logger:   log.GetChildLogger(),
		state:    StateDisconnected,
		stopped:  make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (m *monitor) Start(ctx context.Context) {
	// Synchronous first probe so callers start with a real answer instead of
	// the zero value.
	m.Probe(ctx)

	m.mu.Lock()
	m.started = true
	m.mu.Unlock()

	go m.loop(ctx)
}

func (m *monitor) loop(ctx context.Context) {
	defer close(m.done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.stopped:
			return
		case <-ticker.C:
			m.Probe(ctx)
		}
	}
}

func (m *monitor) Probe(ctx context.Context) State {
	next := StateConnected
	if err := m.prober.Ping(ctx); err != nil {
		next = StateDisconnected
	}

	m.setState(next)

	return next
}

func (m *monitor) setState(next State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if next == m.state {
		return
	}
	m.state = next

	m.logger.Info().
		Str("func", "monitor.setState").
		Str("state", next.String()).
		Msg("connectivity changed")

	for _, sub := range m.subscribers {
		// Drop the stale transition if the subscriber has not consumed it:
		// only the latest state matters.
		select {
		case <-sub:
		default:
		}
		sub <- next
	}
}

func (m *monitor) Connected() bool {
	return m.State() == StateConnected
}

func (m *monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

func (m *monitor) Subscribe() <-chan State {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub := make(chan State, 1)
	m.subscribers = append(m.subscribers, sub)

	return sub
}

func (m *monitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopped)

		m.mu.Lock()
		started := m.started
		m.mu.Unlock()
		if started {
			<-m.done
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		for _, sub := range m.subscribers {
			close(sub)
		}
		m.subscribers = nil
	})
}
