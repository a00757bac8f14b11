// Package auth provides the local sign-in session that gates trip mutations.
// There is no server: signing in records the user in the key-value store so
// the session survives restarts, and signing out removes it.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jacksmith/trips/internal/model"
	"github.com/jacksmith/trips/internal/notify"
	"github.com/jacksmith/trips/internal/storage"
)

// UserKey is the store key holding the signed-in user.
const UserKey = "travel-user"

// ErrInvalidEmail is returned when a login or signup email is not valid.
var ErrInvalidEmail = errors.New("invalid email address")

// User is the signed-in user.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session tracks the signed-in user.
type Session struct {
	mu       sync.RWMutex
	store    storage.Store
	notices  notify.Sink
	logger   *slog.Logger
	validate *validator.Validate
	user     *User
}

// NewSession creates a Session and restores any user saved in store.
// A stored user that cannot be parsed is removed.
func NewSession(ctx context.Context, store storage.Store, notices notify.Sink, logger *slog.Logger) *Session {
	if notices == nil {
		notices = notify.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		store:    store,
		notices:  notices,
		logger:   logger,
		validate: validator.New(),
	}
	s.restore(ctx)
	return s
}

func (s *Session) restore(ctx context.Context) {
	data, ok := s.store.Read(ctx, UserKey)
	if !ok {
		return
	}
	var u User
	if err := json.Unmarshal([]byte(data), &u); err != nil || u.ID == "" {
		s.logger.Warn("failed to parse stored user data, signing out", "error", err)
		if err := s.store.Delete(ctx, UserKey); err != nil {
			s.logger.Warn("failed to remove stored user", "error", err)
		}
		return
	}
	s.user = &u
}

// IsAuthenticated reports whether a user is signed in.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// User returns the signed-in user, or nil.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Login signs in with email. The display name is the part before the "@".
func (s *Session) Login(ctx context.Context, email string) (*User, error) {
	email = strings.TrimSpace(email)
	if err := s.checkEmail(email); err != nil {
		s.notices.Notify(notify.Destructive("Login failed", "Invalid email or password. Please try again."))
		return nil, err
	}
	name, _, _ := strings.Cut(email, "@")

	u, err := s.signIn(ctx, name, email)
	if err != nil {
		return nil, err
	}
	s.notices.Notify(notify.Info("Login successful!", fmt.Sprintf("Welcome back, %s!", u.Name)))
	return u, nil
}

// Signup creates an account for name and email and signs it in.
func (s *Session) Signup(ctx context.Context, name, email string) (*User, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if err := s.checkEmail(email); err != nil {
		s.notices.Notify(notify.Destructive("Signup failed", "Could not create your account. Please try again."))
		return nil, err
	}
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	u, err := s.signIn(ctx, name, email)
	if err != nil {
		return nil, err
	}
	s.notices.Notify(notify.Info("Account created!", fmt.Sprintf("Welcome to TravelAI, %s!", u.Name)))
	return u, nil
}

// Logout signs the user out and forgets the stored session.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err := s.store.Delete(ctx, UserKey); err != nil {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	s.notices.Notify(notify.Info("Logged out", "You have been successfully logged out."))
	return nil
}

func (s *Session) checkEmail(email string) error {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return nil
}

func (s *Session) signIn(ctx context.Context, name, email string) (*User, error) {
	id, err := model.NewUserID()
	if err != nil {
		return nil, err
	}
	u := &User{ID: id, Name: name, Email: email}

	data, err := json.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.store.Write(ctx, UserKey, string(data)); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.mu.Lock()
	s.user = u
	s.mu.Unlock()

	s.logger.Debug("signed in", "user_id", u.ID)
	c := *u
	return &c, nil
}
