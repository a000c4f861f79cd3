package session_test

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clientdesk/internal/services/session"
	"clientdesk/internal/store"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestLoginLogout(t *testing.T) {
	kv := store.NewMemoryStore()
	s := session.New(kv, quietLogger())

	_, ok := s.Name()
	assert.False(t, ok)

	require.NoError(t, s.Login("  Maria  "))
	name, ok := s.Name()
	require.True(t, ok)
	assert.Equal(t, "Maria", name)

	b, _, err := kv.Get(session.StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":{"name":"Maria"},"version":0}`, string(b))

	require.NoError(t, s.Logout())
	_, ok = s.Name()
	assert.False(t, ok)

	b, _, err = kv.Get(session.StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":{"name":null},"version":0}`, string(b))
}

func TestLogin_BlankName(t *testing.T) {
	kv := store.NewMemoryStore()
	s := session.New(kv, quietLogger())

	for _, name := range []string{"", "   ", "\t\n"} {
		assert.ErrorIs(t, s.Login(name), session.ErrEmptyName)
	}
	_, ok := s.Name()
	assert.False(t, ok)

	_, written, err := kv.Get(session.StorageKey)
	require.NoError(t, err)
	assert.False(t, written, "rejected login must not write")
}

func TestRehydrate(t *testing.T) {
	kv := store.NewMemoryStore()
	require.NoError(t, session.New(kv, quietLogger()).Login("João"))

	name, ok := session.New(kv, quietLogger()).Name()
	require.True(t, ok)
	assert.Equal(t, "João", name)
}

func TestRehydrate_CorruptPayloadsYieldLoggedOut(t *testing.T) {
	cases := map[string]string{
		"empty":           ``,
		"not json":        `{{{`,
		"wrong shape":     `{"name":"x"}`,
		"name not text":   `{"state":{"name":42},"version":0}`,
		"blank name":      `{"state":{"name":"  "},"version":0}`,
		"missing state":   `{"version":0}`,
		"missing version": `{"state":{"name":"x"}}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			kv := store.NewMemoryStore()
			require.NoError(t, kv.Set(session.StorageKey, []byte(payload)))

			_, ok := session.New(kv, quietLogger()).Name()
			assert.False(t, ok)
		})
	}
}
