package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/royi-klein/ClinicalTrial/internal/domain"
)

// AuthConfig holds the single account and token settings.
type AuthConfig struct {
	Username  string
	Password  string
	JWTSecret string
	TokenTTL  time.Duration
}

// Session identifies a logged-in user by the token that was issued to them.
type Session struct {
	ID       string `json:"-"`
	Username string `json:"username"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// AuthService issues and checks bearer tokens for a single configured
// account. Tokens are signed JWTs, and a token is only accepted while its
// session is held in memory; sessions do not survive a restart.
type AuthService struct {
	username  string
	password  string
	jwtSecret []byte
	ttl       time.Duration
	now       func() time.Time

	mu       sync.RWMutex
	sessions map[string]sessionEntry // keyed by token id
}

type sessionEntry struct {
	username  string
	expiresAt time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg AuthConfig) *AuthService {
	return &AuthService{
		username:  cfg.Username,
		password:  cfg.Password,
		jwtSecret: []byte(cfg.JWTSecret),
		ttl:       cfg.TokenTTL,
		now:       time.Now,
		sessions:  make(map[string]sessionEntry),
	}
}

// Login checks the credentials and starts a new session.
func (s *AuthService) Login(username, password string) (*LoginResult, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !userOK || !passOK {
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	now := s.now()
	id := uuid.NewString()
	expiresAt := jwt.NewNumericDate(now.Add(s.ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        id,
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: expiresAt,
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.mu.Lock()
	s.sweepLocked(now)
	s.sessions[id] = sessionEntry{username: username, expiresAt: expiresAt.Time}
	s.mu.Unlock()

	return &LoginResult{Token: signed, Username: username}, nil
}

// ValidateToken verifies the token signature and expiry and returns the
// session it belongs to. Tokens of ended sessions are rejected.
func (s *AuthService) ValidateToken(tokenString string) (*Session, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) && claims.ID != "" {
			s.Logout(claims.ID)
		}
		return nil, fmt.Errorf("%w: parse token: %v", domain.ErrUnauthorized, err)
	}

	s.mu.RLock()
	entry, ok := s.sessions[claims.ID]
	s.mu.RUnlock()
	if !ok || entry.username != claims.Subject {
		return nil, domain.ErrUnauthorized
	}

	return &Session{ID: claims.ID, Username: entry.username}, nil
}

// Logout ends the session. Ending an unknown session is a no-op.
func (s *AuthService) Logout(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// sweepLocked drops sessions whose token has expired. s.mu must be held.
func (s *AuthService) sweepLocked(now time.Time) {
	for id, entry := range s.sessions {
		if !now.Before(entry.expiresAt) {
			delete(s.sessions, id)
		}
	}
}
