package cache

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type entry struct {
	value     []byte
	expiresAt time.Time

	// Counter windows share the map with plain values.
	count       int64
	windowStart time.Time
}

func (e *entry) expired(now time.Time) bool {
	return !e.expiresAt.After(now)
}

// Memory is an in-process TTL cache. Expiry is the only eviction policy and
// there is no capacity bound.
type Memory struct {
	mu         sync.Mutex
	entries    map[string]*entry
	defaultTTL time.Duration
	interval   time.Duration
	now        func() time.Time
	logger     *zerolog.Logger

	startOnce sync.Once
	started   bool
	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
}

// MemoryOption configures a Memory cache.
type MemoryOption func(*Memory)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

// WithLogger logs sweep results at debug level.
func WithLogger(logger *zerolog.Logger) MemoryOption {
	return func(m *Memory) { m.logger = logger }
}

// NewMemory creates an empty cache. Call Start to run the periodic sweep.
func NewMemory(defaultTTL, sweepInterval time.Duration, opts ...MemoryOption) *Memory {
	nop := zerolog.Nop()
	m := &Memory{
		entries:    make(map[string]*entry),
		defaultTTL: defaultTTL,
		interval:   sweepInterval,
		now:        time.Now,
		logger:     &nop,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if e.expired(m.now()) {
		delete(m.entries, key)
		return nil, false, nil
	}
	if e.value == nil {
		// counter entry
		return nil, false, nil
	}

	return append([]byte(nil), e.value...), true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	m.entries[key] = &entry{value: stored, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()

	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()

	return nil
}

// Incr implements Counter. The window entry expires when the window ends, so
// the sweep reclaims idle counters.
func (m *Memory) Incr(_ context.Context, key string, window time.Duration) (Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()

	e, ok := m.entries[key]
	if !ok || e.expired(now) || e.value != nil {
		e = &entry{windowStart: now, expiresAt: now.Add(window)}
		m.entries[key] = e
	}
	e.count++

	return Window{Count: e.count, Start: e.windowStart, ResetAt: e.expiresAt}, nil
}

// Sweep removes every expired entry and returns how many were removed.
func (m *Memory) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for key, e := range m.entries {
		if e.expired(now) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of live entries. Expired entries awaiting a sweep
// are not counted.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	live := 0
	for _, e := range m.entries {
		if !e.expired(now) {
			live++
		}
	}
	return live
}

// Start runs the sweep every interval until ctx is done or Close is called.
// Calls after the first are no-ops.
func (m *Memory) Start(ctx context.Context) {
	m.startOnce.Do(func() {
		m.mu.Lock()
		m.started = true
		m.mu.Unlock()

		m.run(ctx)
	})
}

func (m *Memory) run(ctx context.Context) {
	if m.interval <= 0 {
		close(m.done)
		return
	}

	go func() {
		defer close(m.done)

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-m.stop:
				return
			case <-ticker.C:
				if removed := m.Sweep(); removed > 0 {
					m.logger.Debug().Int("removed", removed).Msg("cache sweep")
				}
			}
		}
	}()
}

// Close stops the sweep goroutine started by Start. It does not wait when
// Start was never called.
func (m *Memory) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })
	return nil
}

// Wait blocks until the sweep goroutine has exited. It returns at once when
// Start was never called.
func (m *Memory) Wait() {
	m.mu.Lock()
	started := m.started
	m.mu.Unlock()

	if !started {
		return
	}
	<-m.done
}
