// Package session owns the signed-in user's state. It replaces ambient
// globals with one explicit store: Init hydrates from the persisted
// file if a live session exists, Teardown wipes both file and memory.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Naitik-Lodhi/invoice-web-application-sub000/internal/api"
)

var ErrNotAuthenticated = errors.New("not signed in")

// Session is a snapshot of the signed-in state. The zero value is the
// anonymous session.
type Session struct {
	Token     string    `json:"token"`
	UserName  string    `json:"userName"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s Session) Authenticated() bool {
	return s.Token != "" && time.Now().Before(s.ExpiresAt)
}

// Store persists the session to a JSON file (the localStorage analog)
// and hands out the bearer token to the API client.
type Store struct {
	path string

	mu  sync.Mutex
	cur Session
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Init hydrates from the persisted file. A missing file or an expired
// session both leave the store anonymous; only a read or decode failure
// on an existing file is an error.
func (st *Store) Init() error {
	st.mu.Lock()
	defer st.mu.Unlock()

	raw, err := os.ReadFile(st.path)
	if errors.Is(err, os.ErrNotExist) {
		st.cur = Session{}
		return nil
	}
	if err != nil {
		return err
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return err
	}
	if !s.Authenticated() {
		s = Session{}
	}
	st.cur = s
	return nil
}

// SetFromAuth adopts a login/signup result and persists it. The token's
// expiry is read from its exp claim without verifying the signature;
// the client holds no signing key and only needs the timestamp.
func (st *Store) SetFromAuth(res *api.AuthResult) error {
	exp := tokenExpiry(res.AccessToken)
	if exp.IsZero() {
		exp = time.Now().Add(time.Duration(res.ExpiresIn) * time.Second)
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.cur = Session{
		Token:     res.AccessToken,
		UserName:  res.UserName,
		Email:     res.Email,
		ExpiresAt: exp,
	}
	return st.persist()
}

// Teardown clears the persisted file and resets the in-memory state.
func (st *Store) Teardown() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.cur = Session{}
	if err := os.Remove(st.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Current returns a copy of the session snapshot.
func (st *Store) Current() Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.cur
}

// AccessToken implements api.TokenSource. An expired session yields an
// empty token so stale credentials are never sent.
func (st *Store) AccessToken() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.cur.Authenticated() {
		return ""
	}
	return st.cur.Token
}

func (st *Store) persist() error {
	if err := os.MkdirAll(filepath.Dir(st.path), 0o700); err != nil {
		return err
	}
	raw, err := json.Marshal(st.cur)
	if err != nil {
		return err
	}
	return os.WriteFile(st.path, raw, 0o600)
}

func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
