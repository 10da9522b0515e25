package agent

import (
	"context"
	"sync"
)

type sessionKeyContext struct{}

const defaultSessionKey = "default"

// WithSessionKey routes session lookups made with ctx to key.
func WithSessionKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, sessionKeyContext{}, key)
}

// SessionKeyFromContext gets the routing key from the context.
func SessionKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(sessionKeyContext{}).(string)
	return key, ok && key != ""
}

func sessionKeyOrDefault(ctx context.Context) string {
	if key, ok := SessionKeyFromContext(ctx); ok {
		return key
	}
	return defaultSessionKey
}

// Cache is the key-value backend sessions are kept in.
type Cache[S any] interface {
	Set(ctx context.Context, key string, val S) error
	Get(ctx context.Context, key string) (S, bool, error)
	Del(ctx context.Context, key string) error
}

type MemoryCache[S any] struct {
	mu sync.RWMutex
	m  map[string]S
}

func NewMemoryCache[S any]() *MemoryCache[S] {
	return &MemoryCache[S]{m: map[string]S{}}
}

func (m *MemoryCache[S]) Set(ctx context.Context, key string, val S) error {
	m.mu.Lock()
	m.m[key] = val
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache[S]) Get(ctx context.Context, key string) (S, bool, error) {
	m.mu.RLock()
	val, ok := m.m[key]
	m.mu.RUnlock()
	return val, ok, nil
}

func (m *MemoryCache[S]) Del(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.m, key)
	m.mu.Unlock()
	return nil
}

// SessionReadWriter loads and stores the session routed by the context key.
type SessionReadWriter interface {
	// Load returns the routed session, creating a fresh one on first use.
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Remove(ctx context.Context) error
}

// SessionStore keeps sessions in a Cache under a namespace.
type SessionStore struct {
	core      Cache[*Session]
	namespace string
	newFn     func() *Session
}

func NewSessionStore(core Cache[*Session], namespace string, newFn func() *Session) *SessionStore {
	return &SessionStore{core: core, namespace: namespace, newFn: newFn}
}

// NewMemorySessionStore keeps sessions of flow in process memory.
func NewMemorySessionStore(flow *IntakeFlow) *SessionStore {
	return NewSessionStore(NewMemoryCache[*Session](), "talentscout:session", flow.NewSession)
}

func (s *SessionStore) key(ctx context.Context) string {
	return s.namespace + ":" + sessionKeyOrDefault(ctx)
}

func (s *SessionStore) Load(ctx context.Context) (*Session, error) {
	key := s.key(ctx)
	session, ok, err := s.core.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if ok {
		return session, nil
	}
	session = s.newFn()
	if err := s.core.Set(ctx, key, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionStore) Save(ctx context.Context, session *Session) error {
	return s.core.Set(ctx, s.key(ctx), session)
}

func (s *SessionStore) Remove(ctx context.Context) error {
	return s.core.Del(ctx, s.key(ctx))
}

var _ SessionReadWriter = (*SessionStore)(nil)
