package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const claimsContextKey = "auth_claims"

// Claims are the session claims carried by the signed token. ActorType is
// "brand" or "creator"; admin-only routes additionally require the admin role.
type Claims struct {
	ActorID   string   `json:"actor_id"`
	ActorType string   `json:"actor_type"`
	Roles     []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// HasRole reports whether the session carries a role.
func (claims *Claims) HasRole(role string) bool {
	for _, candidate := range claims.Roles {
		if candidate == role {
			return true
		}
	}
	return false
}

// SessionValidator parses and verifies session tokens from the cookie or the
// Authorization header.
type SessionValidator struct {
	signingKey []byte
	issuer     string
	cookieName string
}

// NewSessionValidator wires a validator.
func NewSessionValidator(signingKey []byte, issuer string, cookieName string) (*SessionValidator, error) {
	if len(signingKey) == 0 {
		return nil, errors.New("signing key is required")
	}
	if strings.TrimSpace(issuer) == "" {
		return nil, errors.New("issuer is required")
	}
	if strings.TrimSpace(cookieName) == "" {
		return nil, errors.New("cookie name is required")
	}
	return &SessionValidator{signingKey: signingKey, issuer: issuer, cookieName: cookieName}, nil
}

// GinMiddleware rejects requests without a valid session and stores the
// claims in the request context.
func (validator *SessionValidator) GinMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := validator.extractToken(ctx)
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse("unauthorized", "missing session"))
			return
		}
		claims, err := validator.parse(token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse("unauthorized", "invalid session"))
			return
		}
		ctx.Set(claimsContextKey, claims)
		ctx.Next()
	}
}

func (validator *SessionValidator) extractToken(ctx *gin.Context) string {
	if cookie, err := ctx.Cookie(validator.cookieName); err == nil && cookie != "" {
		return cookie
	}
	header := ctx.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func (validator *SessionValidator) parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return validator.signingKey, nil
	}, jwt.WithIssuer(validator.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// IssueToken signs a session token. Used by operator tooling and tests.
func (validator *SessionValidator) IssueToken(actorID string, actorType string, roles []string, lifetime time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		ActorID:   actorID,
		ActorType: actorType,
		Roles:     roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    validator.issuer,
			Subject:   actorID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(validator.signingKey)
}

// CookieName exposes the configured session cookie name.
func (validator *SessionValidator) CookieName() string {
	return validator.cookieName
}

func getClaims(ctx *gin.Context) *Claims {
	claimsValue, ok := ctx.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, _ := claimsValue.(*Claims)
	return claims
}
