package auth

import (
	"net/http"
	"strings"

	"github.com/chalkhire/chalkboard/pkg/errx"
	"github.com/chalkhire/chalkboard/pkg/kernel"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("AUTH")

var (
	CodeMissingToken = ErrRegistry.Register("MISSING_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Authorization token required")
	CodeInvalidToken = ErrRegistry.Register("INVALID_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid or expired token")
	CodeForbidden    = ErrRegistry.Register("FORBIDDEN", errx.TypeAuthorization, http.StatusForbidden, "Insufficient role")
)

func ErrMissingToken() *errx.Error { return ErrRegistry.New(CodeMissingToken) }
func ErrInvalidToken() *errx.Error { return ErrRegistry.New(CodeInvalidToken) }
func ErrForbidden() *errx.Error    { return ErrRegistry.New(CodeForbidden) }

const contextKey = "auth_context"

// AuthContext is the already-validated caller identity attached to a request.
// Issuing tokens (login, OTP, sessions) is not this service's concern; it only
// verifies what the identity provider signed.
type AuthContext struct {
	UserID kernel.UserID
	Role   Role
}

// Claims is the JWT payload this service understands
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenMiddleware validates bearer tokens and exposes the AuthContext
type TokenMiddleware struct {
	secret []byte
}

// NewTokenMiddleware creates a middleware verifying HS256 tokens with secret
func NewTokenMiddleware(secret string) *TokenMiddleware {
	return &TokenMiddleware{secret: []byte(secret)}
}

// Authenticate requires a valid bearer token
func (m *TokenMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return ErrMissingToken()
		}
		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == header {
			return ErrMissingToken().WithDetail("header", "expected Bearer scheme")
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.secret, nil
		})
		if err != nil || !token.Valid {
			return ErrInvalidToken()
		}

		c.Locals(contextKey, &AuthContext{
			UserID: kernel.NewUserID(claims.UserID),
			Role:   Role(claims.Role),
		})
		return c.Next()
	}
}

// RequireRole restricts the route to callers holding one of the given roles
func (m *TokenMiddleware) RequireRole(roles ...Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, ok := GetAuthContext(c)
		if !ok {
			return ErrMissingToken()
		}
		for _, r := range roles {
			if authCtx.Role == r {
				return c.Next()
			}
		}
		return ErrForbidden().WithDetail("role", string(authCtx.Role))
	}
}

// GetAuthContext returns the validated caller identity for the request
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	authCtx, ok := c.Locals(contextKey).(*AuthContext)
	return authCtx, ok
}
