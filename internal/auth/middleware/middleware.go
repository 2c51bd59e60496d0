package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers bad signature, malformed payload, and expiry.
// Callers never learn which; a bearer either holds a live token or not.
var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Sub string `json:"sub"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies stateless bearer tokens. There is no
// server-side revocation list; a token is good until it expires.
type TokenService struct {
	hmac []byte
	ttl  time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &TokenService{hmac: []byte(secret), ttl: ttl}
}

func (t *TokenService) Issue(sub string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Sub: sub,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "quizmith",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(t.hmac)
}

func (t *TokenService) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(tk *jwt.Token) (interface{}, error) {
		return t.hmac, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	c, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return c, nil
}

// RequireUser gates protected routes: requests without a live token are
// terminated with 401 before reaching the handler. On success the token's
// subject is attached to the request context.
func RequireUser(t *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := tokenFromRequest(r)
			if raw == "" {
				unauthorized(w)
				return
			}
			c, err := t.Parse(raw)
			if err != nil {
				unauthorized(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), c.Sub)))
		})
	}
}

// Token travels in the Authorization header; a cookie fallback keeps
// browser clients that cannot set headers working.
func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie("token"); err == nil {
		return c.Value
	}
	return ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"message":"invalid credentials"}`))
}
