package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const (
	// DefaultTTL is how long an idle session is kept.
	DefaultTTL = 30 * time.Minute
	// DefaultCleanupInterval is how often expired sessions are purged.
	DefaultCleanupInterval = 5 * time.Minute
)

type entry struct {
	mu    sync.Mutex
	state State
}

// Store keeps conversation state per session ID with an idle timeout.
// It is safe for concurrent use. Updates to one session are serialized.
type Store struct {
	sessions *cache.Cache
	logger   *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	ttl     time.Duration
	cleanup time.Duration
	logger  *slog.Logger
}

// WithTTL sets the idle timeout. Every read or update restarts it.
func WithTTL(ttl time.Duration) StoreOption {
	return func(o *storeOptions) {
		o.ttl = ttl
	}
}

// WithCleanupInterval sets how often expired sessions are purged.
func WithCleanupInterval(d time.Duration) StoreOption {
	return func(o *storeOptions) {
		o.cleanup = d
	}
}

// WithStoreLogger sets a custom logger.
func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(o *storeOptions) {
		o.logger = logger
	}
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	o := &storeOptions{
		ttl:     DefaultTTL,
		cleanup: DefaultCleanupInterval,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	s := &Store{
		sessions: cache.New(o.ttl, o.cleanup),
		logger:   o.logger.With("component", "session-store"),
	}
	s.sessions.OnEvicted(func(id string, _ any) {
		s.logger.Debug("session evicted", "session", id)
	})
	return s
}

// Create starts a new session and returns its ID and initial state.
func (s *Store) Create() (string, State) {
	id := uuid.NewString()
	st := NewState()
	s.sessions.SetDefault(id, &entry{state: st})
	s.logger.Debug("session created", "session", id)
	return id, st.Clone()
}

// Get returns a copy of the session's current state.
func (s *Store) Get(id string) (State, error) {
	e, err := s.lookup(id)
	if err != nil {
		return State{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	s.touch(id, e)
	return e.state.Clone(), nil
}

// Update runs fn on a copy of the session's state while holding the
// session's lock and stores the state fn returns. If fn fails, the session
// is left unchanged.
func (s *Store) Update(id string, fn func(State) (State, error)) (State, error) {
	e, err := s.lookup(id)
	if err != nil {
		return State{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := fn(e.state.Clone())
	if err != nil {
		return State{}, err
	}
	e.state = next.Clone()
	s.touch(id, e)
	return next, nil
}

// touch refreshes the expiry of id, but only while id still maps to e. A
// session deleted or replaced mid-turn stays gone.
func (s *Store) touch(id string, e *entry) {
	if cur, ok := s.sessions.Get(id); ok && cur == e {
		s.sessions.SetDefault(id, e)
	}
}

// Delete removes a session. Unknown IDs are ignored.
func (s *Store) Delete(id string) {
	s.sessions.Delete(id)
}

// Len returns the number of live sessions, including expired ones not yet
// purged.
func (s *Store) Len() int {
	return s.sessions.ItemCount()
}

func (s *Store) lookup(id string) (*entry, error) {
	v, ok := s.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return v.(*entry), nil
}
