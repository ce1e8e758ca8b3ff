package session

import (
	"context"
	"errors"

	"markethub/internal/account"
	"markethub/internal/logger"
	"markethub/internal/store"

	"go.uber.org/zap"
)

// Confirmer answers the "are you sure you want to log out?" question. The
// presentation layer decides how to ask; the manager only cares about the
// answer.
type Confirmer interface {
	ConfirmLogout() bool
}

// ConfirmerFunc adapts a plain function to the Confirmer interface.
type ConfirmerFunc func() bool

func (f ConfirmerFunc) ConfirmLogout() bool { return f() }

// Manager is the two-state session machine: LoggedOut until a restore or
// login succeeds, LoggedIn until a confirmed logout. At most one session
// exists at a time.
type Manager struct {
	repo    Repository
	confirm Confirmer

	current  *Session
	onLogout []func()
}

func NewManager(repo Repository, confirm Confirmer) *Manager {
	return &Manager{repo: repo, confirm: confirm}
}

// Restore picks up a persisted session at startup. Absence (including a
// corrupt record) leaves the manager logged out and is not an error.
func (m *Manager) Restore(ctx context.Context) error {
	s, found, err := m.repo.Load(ctx)
	if err != nil && !errors.Is(err, store.ErrCorruptRecord) {
		logger.FromCtx(ctx).Error("failed to restore session", zap.Error(err))
		return err
	}
	if !found {
		return nil
	}

	m.current = &s
	logger.FromCtx(ctx).Info("session restored", zap.String("email", s.Email))
	return nil
}

// Login projects the account into a session and persists it.
func (m *Manager) Login(ctx context.Context, acc account.Account) (Session, error) {
	if m.current != nil {
		return Session{}, ErrAlreadyLoggedIn
	}

	s := Project(acc)
	if err := m.repo.Save(ctx, s); err != nil {
		logger.FromCtx(ctx).Error("failed to persist session", zap.Error(err))
		return Session{}, err
	}

	m.current = &s
	logger.FromCtx(ctx).Info("logged in", zap.String("email", s.Email))
	return s, nil
}

// Logout asks the confirmer, then clears the in-memory and persisted
// session and runs the registered hooks (cart clear, chat cancel). An
// unconfirmed logout changes nothing.
func (m *Manager) Logout(ctx context.Context) error {
	if m.current == nil {
		return ErrNotLoggedIn
	}
	if m.confirm != nil && !m.confirm.ConfirmLogout() {
		return ErrNotConfirmed
	}

	email := m.current.Email
	if err := m.repo.Clear(ctx); err != nil {
		logger.FromCtx(ctx).Error("failed to clear session record", zap.Error(err))
		return err
	}

	m.current = nil
	for _, hook := range m.onLogout {
		hook()
	}

	logger.FromCtx(ctx).Info("logged out", zap.String("email", email))
	return nil
}

// Current reports the active session, if any.
func (m *Manager) Current() (Session, bool) {
	if m.current == nil {
		return Session{}, false
	}
	return *m.current, true
}

// SetSession replaces the in-memory and persisted session in place. Used
// after a profile save re-keys the account email.
func (m *Manager) SetSession(ctx context.Context, acc account.Account) error {
	if m.current == nil {
		return ErrNotLoggedIn
	}
	s := Project(acc)
	if err := m.repo.Save(ctx, s); err != nil {
		return err
	}
	m.current = &s
	return nil
}

// OnLogout registers a hook run after a confirmed logout.
func (m *Manager) OnLogout(fn func()) {
	m.onLogout = append(m.onLogout, fn)
}
