package main

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"markethub/internal/account"
	"markethub/internal/cart"
	"markethub/internal/catalog"
	"markethub/internal/chat"
	"markethub/internal/seller"
	"markethub/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore keeps records in a map, enough to drive the full stack in tests
// without a database file.
type memStore struct {
	records map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string][]byte)}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.records[key]
	return v, ok, nil
}

func (m *memStore) Put(_ context.Context, key string, value []byte) error {
	m.records[key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	delete(m.records, key)
	return nil
}

func newTestApp(t *testing.T, input string) (*app, *bytes.Buffer) {
	t.Helper()

	in := bufio.NewScanner(strings.NewReader(input))
	out := &bytes.Buffer{}

	rs := newMemStore()
	sessions := session.NewManager(session.NewRepository(rs), newPromptConfirmer(in, out))
	cartSvc := cart.NewService(sessions)
	chatSvc := chat.NewService(time.Hour)
	t.Cleanup(chatSvc.CancelPending)

	sessions.OnLogout(cartSvc.Clear)
	sessions.OnLogout(chatSvc.CancelPending)

	return &app{
		in:       in,
		out:      out,
		accounts: account.NewService(account.NewRepository(rs)),
		sessions: sessions,
		catalog:  catalog.NewService(),
		cart:     cartSvc,
		seller:   seller.NewService(),
		chat:     chatSvc,
	}, out
}

func seedCatalog(a *app) {
	a.catalog.Replace(context.Background(), []catalog.Product{{
		ID:       1,
		Name:     "Смартфон TechPro X15",
		Category: catalog.CategoryElectronics,
	}})
}

func TestPromptConfirmer(t *testing.T) {
	ask := func(answer string) bool {
		in := bufio.NewScanner(strings.NewReader(answer))
		return newPromptConfirmer(in, &bytes.Buffer{}).ConfirmLogout()
	}

	t.Run("Yes", func(t *testing.T) {
		assert.True(t, ask("y\n"))
		assert.True(t, ask("  YES  \n"))
	})

	t.Run("No", func(t *testing.T) {
		assert.False(t, ask("n\n"))
		assert.False(t, ask("\n"))
		assert.False(t, ask("что угодно\n"))
	})

	t.Run("ClosedInput", func(t *testing.T) {
		assert.False(t, ask(""))
	})
}

func TestApp_RegisterAndSell(t *testing.T) {
	input := strings.Join([]string{
		"register",
		"Иван Петров",
		"ivan@example.com",
		"+7 900 000-00-00",
		"secret1",
		"secret1",
		"sell add",
		"Чехол для телефона",
		"590",
		"electronics",
		"Силиконовый, прозрачный",
		"",
		"sell",
		"quit",
	}, "\n") + "\n"

	a, out := newTestApp(t, input)
	a.run(context.Background())

	text := out.String()
	assert.Contains(t, text, "вы вошли как Иван Петров <ivan@example.com>")
	assert.Contains(t, text, "товар добавлен")
	assert.Contains(t, text, "Чехол для телефона — 590 ₽ (electronics)")
	require.Len(t, a.seller.List(), 1)
	assert.Equal(t, seller.DefaultImage, a.seller.List()[0].Image)
}

func TestApp_LoggedOutGates(t *testing.T) {
	input := strings.Join([]string{
		"sell",
		"chat send привет",
		"cart add 1",
		"quit",
	}, "\n") + "\n"

	a, out := newTestApp(t, input)
	seedCatalog(a)
	a.run(context.Background())

	text := out.String()
	assert.Contains(t, text, "войдите в аккаунт")
	assert.Contains(t, text, cart.ErrNotAuthenticated.Error())
	_, ok := a.sessions.Current()
	assert.False(t, ok)
}

func TestApp_SearchValidatesCategory(t *testing.T) {
	a, out := newTestApp(t, "search kitchen\nsearch all\nquit\n")
	a.run(context.Background())

	text := out.String()
	assert.Contains(t, text, "ошибка:")
	assert.Contains(t, text, "Пока нет товаров")
}

func TestApp_LogoutConfirmation(t *testing.T) {
	registerLines := []string{
		"register",
		"Иван Петров",
		"ivan@example.com",
		"+7 900 000-00-00",
		"secret1",
		"secret1",
	}

	t.Run("Declined", func(t *testing.T) {
		input := strings.Join(append(registerLines, "logout", "n", "quit"), "\n") + "\n"
		a, out := newTestApp(t, input)
		a.run(context.Background())

		assert.Contains(t, out.String(), "выход отменён")
		_, ok := a.sessions.Current()
		assert.True(t, ok)
	})

	t.Run("Confirmed", func(t *testing.T) {
		input := strings.Join(append(registerLines, "cart add 1", "logout", "y", "quit"), "\n") + "\n"
		a, out := newTestApp(t, input)
		seedCatalog(a)
		a.run(context.Background())

		assert.Contains(t, out.String(), "вы вышли из аккаунта")
		_, ok := a.sessions.Current()
		assert.False(t, ok)
		assert.Empty(t, a.cart.Items())
	})
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "fallback", orDefault("", "fallback"))
	assert.Equal(t, "value", orDefault("value", "fallback"))
}
