package client

import (
	"context"
	"errors"
	"sync"
)

// Session tracks who is signed in. It starts in the loading state until
// Rehydrate has run once, so callers can distinguish "not signed in" from
// "not checked yet".
type Session struct {
	client *Client

	mu      sync.Mutex
	user    *User
	loading bool
}

func NewSession(c *Client) *Session {
	return &Session{client: c, loading: true}
}

// Rehydrate resolves the loading state exactly once per call: it asks the
// server who the stored token belongs to and clears the token if the
// server rejects it. Network failures leave the token in place so a
// later retry can still succeed.
func (s *Session) Rehydrate(ctx context.Context) error {
	tok, err := s.client.tokens.Token()
	if err != nil {
		s.finishLoading(nil)
		return err
	}
	if tok == "" {
		s.finishLoading(nil)
		return nil
	}

	u, err := s.client.CurrentUser(ctx)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			// Token the server no longer honors. Drop it.
			_ = s.client.tokens.Save("")
		}
		s.finishLoading(nil)
		return err
	}
	s.finishLoading(u)
	return nil
}

func (s *Session) finishLoading(u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
	s.loading = false
}

// Login authenticates, persists the token through the client's TokenStore
// and loads the profile of the signed-in user.
func (s *Session) Login(ctx context.Context, creds Credentials) (*User, error) {
	if _, err := s.client.Login(ctx, creds); err != nil {
		return nil, err
	}
	u, err := s.client.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	s.finishLoading(u)
	return u, nil
}

func (s *Session) Register(ctx context.Context, reg Registration) (*User, error) {
	if _, err := s.client.Register(ctx, reg); err != nil {
		return nil, err
	}
	u, err := s.client.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	s.finishLoading(u)
	return u, nil
}

// Logout clears local state only; the token simply expires server-side.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.user = nil
	s.loading = false
	s.mu.Unlock()
	return s.client.tokens.Save("")
}

func (s *Session) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
