package session_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/mdouchement/pantry/internal/model"
	"github.com/mdouchement/pantry/internal/server/session"
	"github.com/stretchr/testify/assert"
)

func user() *model.User {
	user := &model.User{
		Username: "alice",
		Email:    "alice@nowhere.lan",
	}
	user.ID = "b329a187-ddf8-4e9b-960d-49c272a58794"
	return user
}

func TestTokenRoundTrip(t *testing.T) {
	m := session.NewManager([]byte("secret"), time.Hour, false)

	token, err := m.Token(user())
	assert.NoError(t, err)

	claims, err := m.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, "b329a187-ddf8-4e9b-960d-49c272a58794", claims.Subject)
	assert.Equal(t, "alice@nowhere.lan", claims.Email)
	assert.Equal(t, "alice", claims.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenExpired(t *testing.T) {
	m := session.NewManager([]byte("secret"), -time.Second, false)

	token, err := m.Token(user())
	assert.NoError(t, err)

	_, err = m.Validate(token)
	assert.EqualError(t, err, "Invalid token.")
}

func TestTokenTampered(t *testing.T) {
	m := session.NewManager([]byte("secret"), time.Hour, false)

	token, err := m.Token(user())
	assert.NoError(t, err)

	// Alter the payload, keep the signature.
	parts := strings.Split(token, ".")
	parts[1] = "x" + parts[1]

	_, err = m.Validate(strings.Join(parts, "."))
	assert.EqualError(t, err, "Invalid token.")
}

func TestTokenWrongKey(t *testing.T) {
	m := session.NewManager([]byte("secret"), time.Hour, false)

	token, err := m.Token(user())
	assert.NoError(t, err)

	_, err = session.NewManager([]byte("terces"), time.Hour, false).Validate(token)
	assert.EqualError(t, err, "Invalid token.")
}

func TestTokenMalformed(t *testing.T) {
	m := session.NewManager([]byte("secret"), time.Hour, false)

	_, err := m.Validate("not.a.token")
	assert.EqualError(t, err, "Invalid token.")
}

func TestCookie(t *testing.T) {
	m := session.NewManager([]byte("secret"), time.Hour, true)

	cookie := m.Cookie("payload")
	assert.Equal(t, session.CookieName, cookie.Name)
	assert.Equal(t, "payload", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
}
