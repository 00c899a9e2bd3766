package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/layer-3/wombat/core"
	"github.com/layer-3/wombat/ports"
)

// Status is a snapshot of the authenticator state.
type Status struct {
	Loading   bool   `json:"loading"`
	Errored   bool   `json:"errored"`
	Connected bool   `json:"connected"`
	Error     string `json:"error,omitempty"`
	ErrorType string `json:"error_type,omitempty"`
	Users     int    `json:"users"`
}

// HostService drives an Authenticator on behalf of a server-side host and
// turns successful logins into stored, tokenized sessions.
type HostService struct {
	auth      *Authenticator
	tokenizer ports.Tokenizer
	store     ports.Store
	eventPub  ports.EventPublisher
	log       logrus.FieldLogger

	sessionTTL time.Duration
}

// NewHostService creates a new host service
func NewHostService(
	auth *Authenticator,
	tokenizer ports.Tokenizer,
	store ports.Store,
	eventPub ports.EventPublisher,
	log logrus.FieldLogger,
) *HostService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &HostService{
		auth:       auth,
		tokenizer:  tokenizer,
		store:      store,
		eventPub:   eventPub,
		log:        log,
		sessionTTL: 24 * time.Hour,
	}
}

// WithSessionTTL overrides the default session lifetime of 24 hours.
func (s *HostService) WithSessionTTL(ttl time.Duration) *HostService {
	if ttl > 0 {
		s.sessionTTL = ttl
	}
	return s
}

// Authenticator returns the wrapped authenticator.
func (s *HostService) Authenticator() *Authenticator {
	return s.auth
}

// Status returns the current authenticator state.
func (s *HostService) Status() Status {
	st := Status{
		Loading:   s.auth.IsLoading(),
		Errored:   s.auth.IsErrored(),
		Connected: s.auth.Connected(),
		Users:     len(s.auth.Users()),
	}
	if err := s.auth.GetError(); err != nil {
		st.Error = err.Error()
		st.ErrorType = string(err.Type)
	}
	return st
}

// Login logs in on every chain and returns a session token.
func (s *HostService) Login(ctx context.Context) (string, *core.Session, error) {
	users, err := s.auth.Login(ctx, "")
	if err != nil {
		return "", nil, err
	}

	accounts := make([]core.Account, 0, len(users))
	for _, u := range users {
		accounts = append(accounts, u.Account())
	}

	now := time.Now()
	session := &core.Session{
		ID:        uuid.New().String(),
		AppName:   s.auth.appName,
		Accounts:  accounts,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.store.SaveSession(ctx, session, s.sessionTTL); err != nil {
		return "", nil, fmt.Errorf("failed to save session: %w", err)
	}

	token, err := s.tokenizer.SessionToToken(session)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create token: %w", err)
	}

	if s.eventPub != nil {
		if err := s.eventPub.PublishLogin(ctx, session); err != nil {
			s.log.WithError(err).WithField("session", session.ID).Warn("failed to publish login event")
		}
	}

	return token, session, nil
}

// Logout logs the bridge out and revokes the session behind token.
func (s *HostService) Logout(ctx context.Context, token string) error {
	session, err := s.tokenizer.TokenToSession(token)
	if err != nil {
		return fmt.Errorf("invalid session token: %w", err)
	}

	if err := s.auth.Logout(ctx); err != nil {
		return err
	}

	if err := s.store.DeleteSession(ctx, session.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	// The session is already revoked in the store; a lost event only delays other instances.
	if s.eventPub != nil {
		if err := s.eventPub.PublishLogout(ctx, session.ID); err != nil {
			s.log.WithError(err).WithField("session", session.ID).Warn("failed to publish logout event")
		}
	}

	return nil
}

// ValidateToken returns the live session behind token.
func (s *HostService) ValidateToken(ctx context.Context, token string) (*core.Session, error) {
	session, err := s.tokenizer.TokenToSession(token)
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		return nil, core.ErrTokenExpired
	}

	stored, err := s.store.GetSession(ctx, session.ID)
	if errors.Is(err, core.ErrSessionNotFound) {
		return nil, core.ErrTokenInvalidated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	return stored, nil
}
