package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mdouchement/pantry/internal/apierror"
	"github.com/mdouchement/pantry/internal/model"
	"github.com/pkg/errors"
)

// CookieName is the name of the cookie carrying the session token.
const CookieName = "token"

type (
	// Claims are the token claims. Validity is determined purely by the
	// signature and the expiry, no server-side state is involved.
	Claims struct {
		jwt.RegisteredClaims
		Email    string `json:"email"`
		Username string `json:"username"`
	}

	// A Manager issues and validates session tokens.
	// It is an interface so a revocation list or a refresh flow can be
	// plugged in without changing call sites.
	Manager interface {
		// Token issues a signed token for the given user.
		Token(user *model.User) (string, error)
		// Validate verifies the token's signature and expiry and returns its claims.
		Validate(token string) (*Claims, error)
		// Cookie wraps a token in the session cookie.
		Cookie(token string) *http.Cookie
		// TTL returns the session lifetime.
		TTL() time.Duration
	}

	manager struct {
		signingKey []byte
		ttl        time.Duration
		secure     bool
	}
)

// NewManager returns a new manager signing tokens with the given key.
// secure controls the Secure flag of the emitted cookie.
func NewManager(signingKey []byte, ttl time.Duration, secure bool) Manager {
	return &manager{
		signingKey: signingKey,
		ttl:        ttl,
		secure:     secure,
	}
}

func (m *manager) Token(user *model.User) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Email:    user.Email,
		Username: user.Username,
	})

	signed, err := token.SignedString(m.signingKey)
	return signed, errors.Wrap(err, "could not sign session token")
}

func (m *manager) Validate(token string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, apierror.NewWithTagCode(http.StatusUnauthorized, "invalid-token", "Invalid token.")
	}

	return claims, nil
}

func (m *manager) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

func (m *manager) TTL() time.Duration {
	return m.ttl
}
