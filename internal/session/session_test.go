package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/Naitik-Lodhi/invoice-web-application-sub000/internal/api"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "asha@example.com",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestInit_MissingFileIsAnonymous(t *testing.T) {
	st := tempStore(t)
	require.NoError(t, st.Init())
	require.False(t, st.Current().Authenticated())
	require.Empty(t, st.AccessToken())
}

func TestSetFromAuth_PersistsAndHydrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	st := NewStore(path)
	require.NoError(t, st.Init())

	tok := signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, st.SetFromAuth(&api.AuthResult{
		AccessToken: tok,
		ExpiresIn:   3600,
		UserName:    "Asha",
		Email:       "asha@example.com",
	}))
	require.Equal(t, tok, st.AccessToken())

	// a second store hydrates the same session from disk
	st2 := NewStore(path)
	require.NoError(t, st2.Init())
	require.True(t, st2.Current().Authenticated())
	require.Equal(t, "Asha", st2.Current().UserName)
	require.Equal(t, tok, st2.AccessToken())
}

func TestInit_ExpiredSessionDropped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	st := NewStore(path)

	tok := signedToken(t, time.Now().Add(-time.Minute))
	require.NoError(t, st.SetFromAuth(&api.AuthResult{AccessToken: tok, UserName: "Asha"}))

	st2 := NewStore(path)
	require.NoError(t, st2.Init())
	require.False(t, st2.Current().Authenticated(), "expired session must not hydrate")
	require.Empty(t, st2.AccessToken())
}

func TestTeardown_ClearsFileAndMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	st := NewStore(path)

	tok := signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, st.SetFromAuth(&api.AuthResult{AccessToken: tok, UserName: "Asha"}))

	require.NoError(t, st.Teardown())
	require.False(t, st.Current().Authenticated())
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "session file removed")

	// teardown twice is fine
	require.NoError(t, st.Teardown())
}

func TestAccessToken_ExpiredYieldsEmpty(t *testing.T) {
	st := tempStore(t)
	tok := signedToken(t, time.Now().Add(time.Second))
	require.NoError(t, st.SetFromAuth(&api.AuthResult{AccessToken: tok}))
	require.NotEmpty(t, st.AccessToken())

	time.Sleep(2100 * time.Millisecond)
	require.Empty(t, st.AccessToken(), "expired token is never sent")
}
