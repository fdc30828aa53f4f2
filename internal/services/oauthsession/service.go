// Package oauthsession manages the third-party (OAuth) sessions: records
// created after a provider sign-in, carrying the cached bearer-style
// credential and authorization flags obtained from the backend of record at
// exchange time. The rest of the system treats this subsystem as a narrow
// collaborator behind Get/Create/Clear; its storage and cookie mechanics do
// not leak into the resolver.
package oauthsession

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/readbacklabs/readback-web/internal/config"
	"github.com/readbacklabs/readback-web/internal/infrastructure/redis"
	"github.com/rs/zerolog/log"
)

// Session is one third-party sign-in. Bearer is the cached bearer-style
// credential from the one-time exchange with the backend of record; it may
// expire server-side before the session record does.
type Session struct {
	ID        string    `json:"id"`
	Provider  string    `json:"provider"`
	Bearer    string    `json:"bearer"`
	Elevated  bool      `json:"elevated"`
	Staff     bool      `json:"staff"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type sessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

type SessionStore interface {
	Set(ctx context.Context, sessionID string, session *Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

type RedisStore struct {
	redisService *redis.Service
	lifetime     time.Duration
}

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

type Service struct {
	store      SessionStore
	cfg        config.SessionConfig
	signingKey []byte
}

// NewService builds the session service, preferring Redis and falling back
// to in-memory storage when Redis is unavailable.
func NewService(cfg config.SessionConfig, signingKey []byte, redisService *redis.Service) *Service {
	var store SessionStore
	if redisService != nil {
		if err := redisService.Ping(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Redis unreachable, falling back to in-memory session storage")
			store = newMemoryStore()
		} else {
			store = &RedisStore{redisService: redisService, lifetime: cfg.SessionLifetime}
		}
	} else {
		store = newMemoryStore()
	}

	return &Service{
		store:      store,
		cfg:        cfg,
		signingKey: signingKey,
	}
}

func newMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (rs *RedisStore) Set(ctx context.Context, sessionID string, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return rs.redisService.Set(ctx, "session:"+sessionID, string(data), rs.lifetime)
}

func (rs *RedisStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	data, err := rs.redisService.Get(ctx, "session:"+sessionID)
	if err != nil || data == "" {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (rs *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return rs.redisService.Delete(ctx, "session:"+sessionID)
}

func (ms *MemoryStore) Set(ctx context.Context, sessionID string, session *Session) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.sessions[sessionID] = session
	return nil
}

func (ms *MemoryStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	session, exists := ms.sessions[sessionID]
	if !exists || time.Now().After(session.ExpiresAt) {
		return nil, nil
	}
	return session, nil
}

func (ms *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.sessions, sessionID)
	return nil
}

// Create stores a new session record and sets the signed session cookie.
func (s *Service) Create(ctx context.Context, w http.ResponseWriter, provider, bearer string, elevated, staff bool) error {
	now := time.Now()
	session := &Session{
		ID:        uuid.New().String(),
		Provider:  provider,
		Bearer:    bearer,
		Elevated:  elevated,
		Staff:     staff,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.SessionLifetime),
	}

	if err := s.store.Set(ctx, session.ID, session); err != nil {
		return err
	}

	claims := &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        session.ID,
		},
		SessionID: session.ID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.SessionCookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(s.cfg.SessionLifetime.Seconds()),
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Get returns the third-party session for the request, or nil when there is
// none. The stored record is re-written on each hit so an active session
// keeps its full lifetime.
func (s *Service) Get(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(s.cfg.SessionCookieName)
	if err != nil {
		return nil, nil
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		return s.signingKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		log.Debug().Err(err).Msg("Invalid session cookie")
		return nil, nil
	}

	session, err := s.store.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	_ = s.store.Set(ctx, session.ID, session)
	return session, nil
}

// UpdateBearer replaces the cached bearer credential on an existing session
// record, as after a fresh exchange.
func (s *Service) UpdateBearer(ctx context.Context, session *Session, bearer string) error {
	session.Bearer = bearer
	return s.store.Set(ctx, session.ID, session)
}

// Clear removes the session record and expires the cookie.
func (s *Service) Clear(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(s.cfg.SessionCookieName); err == nil {
		claims := &sessionClaims{}
		if token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
			return s.signingKey, nil
		}, jwt.WithValidMethods([]string{"HS256"})); err == nil && token.Valid {
			_ = s.store.Delete(ctx, claims.SessionID)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
