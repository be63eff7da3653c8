// Package session owns the client-side session lifecycle. All consumers
// read the current session through the Manager instead of poking at
// ambient storage, and every transition (login, logout, bootstrap,
// forced logout on 401) goes through it.
package session

import (
	"context"
	"errors"
	"sync"

	"voyago/internal/client"
)

var (
	// ErrBusy means a login or bootstrap is already in flight; the caller
	// should keep its submit control disabled until the first one resolves.
	ErrBusy = errors.New("session operation already in progress")

	ErrNotAuthenticated = errors.New("not authenticated")
)

type State int

const (
	StateAnonymous State = iota
	StateAuthenticated
)

type Manager struct {
	api   *client.Client
	store Store

	mu      sync.Mutex
	current Session
	state   State
	busy    bool
}

func NewManager(api *client.Client, store Store) *Manager {
	return &Manager{
		api:   api,
		store: store,
		state: StateAnonymous,
	}
}

// Bootstrap restores a previously persisted session, revalidating the
// stored token against the server. Any rejection discards the stored
// credentials and leaves the manager anonymous.
func (m *Manager) Bootstrap(ctx context.Context) (State, error) {
	if err := m.acquire(); err != nil {
		return m.State(), err
	}
	defer m.release()

	stored, ok, err := m.store.Load()
	if err != nil {
		return StateAnonymous, err
	}
	if !ok {
		return StateAnonymous, nil
	}

	profile, err := m.api.GetProfile(ctx, stored.Token)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			_ = m.store.Clear()
			m.set(StateAnonymous, Session{})
			return StateAnonymous, nil
		}
		// Network failure: no verdict on the token, stay anonymous for
		// this run but keep the stored session for the next attempt.
		return StateAnonymous, err
	}

	sess := Session{
		Token: stored.Token,
		User: client.User{
			ID:        profile.ID,
			Email:     profile.Email,
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
		},
	}
	m.set(StateAuthenticated, sess)
	return StateAuthenticated, nil
}

// Login authenticates and persists the resulting session. Only one
// login/bootstrap may be in flight at a time.
func (m *Manager) Login(ctx context.Context, email, password string) (client.User, error) {
	if err := m.acquire(); err != nil {
		return client.User{}, err
	}
	defer m.release()

	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		return client.User{}, err
	}

	sess := Session{Token: resp.Token, User: resp.User}
	if err := m.store.Save(sess); err != nil {
		return client.User{}, err
	}

	m.set(StateAuthenticated, sess)
	return resp.User, nil
}

// Logout discards the session locally. Tokens are stateless server-side,
// so there is nothing to revoke.
func (m *Manager) Logout() error {
	m.set(StateAnonymous, Session{})
	return m.store.Clear()
}

// Profile fetches fresh profile data with the current token. A 401
// forces a logout: the session is discarded before the error is
// returned.
func (m *Manager) Profile(ctx context.Context) (client.Profile, error) {
	sess, ok := m.Current()
	if !ok {
		return client.Profile{}, ErrNotAuthenticated
	}

	profile, err := m.api.GetProfile(ctx, sess.Token)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) || errors.Is(err, client.ErrForbidden) {
			_ = m.Logout()
		}
		return client.Profile{}, err
	}
	return profile, nil
}

// Current returns the active session, if any.
func (m *Manager) Current() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, m.state == StateAuthenticated
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) set(state State, sess Session) {
	m.mu.Lock()
	m.state = state
	m.current = sess
	m.mu.Unlock()
}

func (m *Manager) acquire() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.busy {
		return ErrBusy
	}
	m.busy = true
	return nil
}

func (m *Manager) release() {
	m.mu.Lock()
	m.busy = false
	m.mu.Unlock()
}
