package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// UsernameKey is the gin context key the session guard stores the
	// authenticated username under.
	UsernameKey = "username"

	// SessionCookie carries the session token for browser clients. API
	// clients may send it as a bearer token instead.
	SessionCookie = "session"
)

var (
	// ErrNotAuthenticated means no usable session accompanied the request:
	// the token is missing, forged, malformed, or was revoked by logout.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrSessionExpired means the session was valid once but its window
	// has elapsed.
	ErrSessionExpired = errors.New("session expired")
)

// Claims is the session payload carried in the signed token. IssuedAt is
// the login time; ExpiresAt is login time plus the session window. The
// window is absolute: nothing ever rewrites IssuedAt after login.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Session is what a successful login hands back to the caller.
type Session struct {
	Token     string
	ID        string
	Username  string
	LoginTime time.Time
	ExpiresAt time.Time
}

// NewSession creates a fresh session for username with login time now.
func NewSession(username, secret string, window time.Duration) (*Session, error) {
	return newSessionAt(username, secret, window, time.Now())
}

func newSessionAt(username, secret string, window time.Duration, loginTime time.Time) (*Session, error) {
	id := uuid.NewString()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			IssuedAt:  jwt.NewNumericDate(loginTime),
			NotBefore: jwt.NewNumericDate(loginTime),
			ExpiresAt: jwt.NewNumericDate(loginTime.Add(window)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	return &Session{
		Token:     signed,
		ID:        id,
		Username:  username,
		LoginTime: loginTime,
		ExpiresAt: loginTime.Add(window),
	}, nil
}

// ValidateSession parses and verifies a session token. An elapsed window
// yields ErrSessionExpired; any other defect yields ErrNotAuthenticated.
func ValidateSession(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrNotAuthenticated
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		return nil, ErrNotAuthenticated
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrNotAuthenticated
	}

	return claims, nil
}

// SessionID extracts the session ID from a token without checking its
// window, so logout can revoke sessions that already expired. The
// signature is still verified.
func SessionID(tokenString, secret string) (string, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrNotAuthenticated
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", ErrNotAuthenticated
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return "", ErrNotAuthenticated
	}
	return claims.ID, nil
}

// TokenFromRequest pulls the session token off an inbound request: the
// session cookie first, then an Authorization bearer header. Empty string
// means no token was presented.
func TokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// GetUsernameFromContext extracts the authenticated username placed in the
// gin context by the session guard.
func GetUsernameFromContext(c *gin.Context) (string, error) {
	v, exists := c.Get(UsernameKey)
	if !exists {
		return "", fmt.Errorf("username not found in context")
	}

	username, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("invalid username type")
	}

	return username, nil
}
