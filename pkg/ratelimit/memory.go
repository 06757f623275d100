package ratelimit

import (
	"context"
	"sync"
	"time"
)

// pruneThreshold número de claves a partir del cual Check purga ventanas vencidas.
const pruneThreshold = 10000

type fixedWindow struct {
	count    int
	start    time.Time
	duration time.Duration
}

// MemoryStore contador en memoria del proceso. No se comparte entre instancias ni sobrevive reinicios.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*fixedWindow
	now     func() time.Time
}

// MemoryOption configura MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock reemplaza la fuente de tiempo (tests).
func WithClock(fn func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewMemoryStore construye un store vacío.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		windows: make(map[string]*fixedWindow),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Check reinicia la ventana si ya pasó más de window desde su inicio; si el contador alcanzó
// limit rechaza sin incrementar, si no incrementa y permite.
func (s *MemoryStore) Check(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok {
		if len(s.windows) >= pruneThreshold {
			s.prune(now)
		}
		w = &fixedWindow{start: now, duration: window}
		s.windows[key] = w
	}
	w.duration = window
	if now.Sub(w.start) > window {
		w.count = 0
		w.start = now
	}
	if w.count >= limit {
		return false, nil
	}
	w.count++
	return true, nil
}

// prune elimina ventanas vencidas; se llama con mu tomado.
func (s *MemoryStore) prune(now time.Time) {
	for k, w := range s.windows {
		if now.Sub(w.start) > w.duration {
			delete(s.windows, k)
		}
	}
}
