package session

import (
	"context"
	"errors"
	"testing"

	"markethub/internal/account"
	"markethub/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Load(ctx context.Context) (Session, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(Session), args.Bool(1), args.Error(2)
}

func (m *MockRepository) Save(ctx context.Context, s Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func alwaysConfirm() Confirmer { return ConfirmerFunc(func() bool { return true }) }
func neverConfirm() Confirmer  { return ConfirmerFunc(func() bool { return false }) }

func anna() account.Account {
	return account.Account{
		Name:  "Anna",
		Email: "a@x.com",
		Phone: "+7000",
	}
}

func TestManager_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("RestoresPersistedSession", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Load", ctx).Return(Session{Name: "Anna", Email: "a@x.com"}, true, nil)

		m := NewManager(repo, alwaysConfirm())
		require.NoError(t, m.Restore(ctx))

		s, ok := m.Current()
		assert.True(t, ok)
		assert.Equal(t, "a@x.com", s.Email)
	})

	t.Run("AbsenceIsATerminalRead", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Load", ctx).Return(Session{}, false, nil)

		m := NewManager(repo, alwaysConfirm())
		require.NoError(t, m.Restore(ctx))

		_, ok := m.Current()
		assert.False(t, ok)
	})

	t.Run("CorruptRecordStaysLoggedOut", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Load", ctx).Return(Session{}, false, store.ErrCorruptRecord)

		m := NewManager(repo, alwaysConfirm())
		require.NoError(t, m.Restore(ctx))

		_, ok := m.Current()
		assert.False(t, ok)
	})

	t.Run("StoreError", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Load", ctx).Return(Session{}, false, errors.New("db error"))

		m := NewManager(repo, alwaysConfirm())
		assert.Error(t, m.Restore(ctx))
	})
}

func TestManager_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Save", ctx, Session{Name: "Anna", Email: "a@x.com", Phone: "+7000"}).Return(nil)

		m := NewManager(repo, alwaysConfirm())
		s, err := m.Login(ctx, anna())

		require.NoError(t, err)
		assert.Equal(t, "a@x.com", s.Email)

		got, ok := m.Current()
		assert.True(t, ok)
		assert.Equal(t, s, got)
		repo.AssertExpectations(t)
	})

	t.Run("AlreadyLoggedIn", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Save", ctx, mock.Anything).Return(nil)

		m := NewManager(repo, alwaysConfirm())
		_, err := m.Login(ctx, anna())
		require.NoError(t, err)

		_, err = m.Login(ctx, anna())
		assert.ErrorIs(t, err, ErrAlreadyLoggedIn)
	})

	t.Run("PersistFailureStaysLoggedOut", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Save", ctx, mock.Anything).Return(errors.New("db error"))

		m := NewManager(repo, alwaysConfirm())
		_, err := m.Login(ctx, anna())

		assert.Error(t, err)
		_, ok := m.Current()
		assert.False(t, ok)
	})
}

func TestManager_Logout(t *testing.T) {
	ctx := context.Background()

	login := func(t *testing.T, confirm Confirmer) (*MockRepository, *Manager) {
		repo := new(MockRepository)
		repo.On("Save", ctx, mock.Anything).Return(nil)
		m := NewManager(repo, confirm)
		_, err := m.Login(ctx, anna())
		require.NoError(t, err)
		return repo, m
	}

	t.Run("ConfirmedLogoutClearsEverything", func(t *testing.T) {
		repo, m := login(t, alwaysConfirm())
		repo.On("Clear", ctx).Return(nil)

		hookRan := false
		m.OnLogout(func() { hookRan = true })

		require.NoError(t, m.Logout(ctx))

		_, ok := m.Current()
		assert.False(t, ok)
		assert.True(t, hookRan)
		repo.AssertExpectations(t)
	})

	t.Run("UnconfirmedLogoutChangesNothing", func(t *testing.T) {
		_, m := login(t, neverConfirm())

		hookRan := false
		m.OnLogout(func() { hookRan = true })

		err := m.Logout(ctx)
		assert.ErrorIs(t, err, ErrNotConfirmed)

		_, ok := m.Current()
		assert.True(t, ok)
		assert.False(t, hookRan)
	})

	t.Run("NotLoggedIn", func(t *testing.T) {
		m := NewManager(new(MockRepository), alwaysConfirm())
		assert.ErrorIs(t, m.Logout(ctx), ErrNotLoggedIn)
	})

	t.Run("ClearFailureKeepsSession", func(t *testing.T) {
		repo, m := login(t, alwaysConfirm())
		repo.On("Clear", ctx).Return(errors.New("db error"))

		assert.Error(t, m.Logout(ctx))
		_, ok := m.Current()
		assert.True(t, ok)
	})
}

func TestManager_SetSession(t *testing.T) {
	ctx := context.Background()

	t.Run("RewritesAfterRekey", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Save", ctx, mock.Anything).Return(nil)

		m := NewManager(repo, alwaysConfirm())
		_, err := m.Login(ctx, anna())
		require.NoError(t, err)

		rekeyed := anna()
		rekeyed.Email = "anna@x.com"
		require.NoError(t, m.SetSession(ctx, rekeyed))

		s, ok := m.Current()
		assert.True(t, ok)
		assert.Equal(t, "anna@x.com", s.Email)
	})

	t.Run("NotLoggedIn", func(t *testing.T) {
		m := NewManager(new(MockRepository), alwaysConfirm())
		assert.ErrorIs(t, m.SetSession(ctx, anna()), ErrNotLoggedIn)
	})
}

func TestProject(t *testing.T) {
	acc := anna()
	acc.Secret = "hash"
	acc.Address = "somewhere"

	s := Project(acc)

	assert.Equal(t, Session{Name: "Anna", Email: "a@x.com", Phone: "+7000"}, s)
}
