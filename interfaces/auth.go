package interfaces

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"talent-pipeline/config"
	"talent-pipeline/usecase"
)

// ErrUnauthorized is returned for a missing, malformed or expired session token.
var ErrUnauthorized = errors.New("unauthorized")

const sessionKey = "session"

// Session identifies the recruiter behind an admin request.
type Session struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type sessionClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Authenticator issues and checks mock admin session tokens. Any well-formed
// email may log in; the token only proves the login happened.
type Authenticator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthenticator(secret string, ttl time.Duration) *Authenticator {
	return &Authenticator{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for email and returns it with its expiry.
func (a *Authenticator) Issue(email string) (string, Session, time.Time, error) {
	now := a.now()
	exp := now.Add(a.ttl)
	s := Session{Email: email, Name: usecase.DisplayName(email)}

	claims := sessionClaims{
		Name: s.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    config.App,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", Session{}, time.Time{}, fmt.Errorf("signing session token: %w", err)
	}
	return token, s, exp, nil
}

// Verify parses a token produced by Issue.
func (a *Authenticator) Verify(raw string) (Session, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(config.App),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return Session{Email: claims.Subject, Name: claims.Name}, nil
}

// Middleware rejects requests without a valid bearer token and stores the
// Session on the context.
func (a *Authenticator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			return
		}

		s, err := a.Verify(strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
			return
		}
		c.Set(sessionKey, s)
		c.Next()
	}
}

// SessionFrom returns the session placed by Middleware.
func SessionFrom(c *gin.Context) (Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return Session{}, false
	}
	s, ok := v.(Session)
	return s, ok
}
