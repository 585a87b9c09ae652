package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/juansite-billing/internal/domain/entity"
)

// AuthUser is the caller as asserted by the identity provider's token
type AuthUser struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// Identity converts the token subject into the workflow's identity.
func (u *AuthUser) Identity() entity.Identity {
	return entity.Identity{UserID: u.UserID, Email: u.Email, DisplayName: u.DisplayName}
}

// IdentityClaims are the claims read from an identity token. The display name is
// taken from "name", falling back to "display_name".
type IdentityClaims struct {
	Email       string `json:"email,omitempty"`
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	jwt.RegisteredClaims
}

// Identity claims are stored on transactions and subscriptions, so they may not
// exceed the column sizes there.
const (
	MaxSubjectLength     = 128
	MaxEmailLength       = 255
	MaxDisplayNameLength = 255
)

// oversized names the first claim longer than its column, or returns "".
func (c *IdentityClaims) oversized() string {
	user := c.user()
	switch {
	case utf8.RuneCountInString(user.UserID) > MaxSubjectLength:
		return "sub"
	case utf8.RuneCountInString(user.Email) > MaxEmailLength:
		return "email"
	case utf8.RuneCountInString(user.DisplayName) > MaxDisplayNameLength:
		return "name"
	}
	return ""
}

func (c *IdentityClaims) user() *AuthUser {
	name := c.Name
	if name == "" {
		name = c.DisplayName
	}
	return &AuthUser{UserID: c.Subject, Email: c.Email, DisplayName: name}
}

type contextKey struct{}

var userContextKey = contextKey{}

// JWTConfig holds the configuration for JWT middleware
type JWTConfig struct {
	Secret string
	Logger *zap.Logger
	// SkipPaths are path prefixes served without a token.
	SkipPaths []string
	// Leeway tolerates clock skew on exp and nbf.
	Leeway time.Duration
}

func (c JWTConfig) skip(path string) bool {
	for _, prefix := range c.SkipPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// JWTMiddleware accepts HS256 bearer tokens and stores the subject as the request user
func JWTMiddleware(config JWTConfig) echo.MiddlewareFunc {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(config.Leeway),
	)
	secret := []byte(config.Secret)
	keyFunc := func(*jwt.Token) (interface{}, error) { return secret, nil }

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if config.skip(req.URL.Path) {
				return next(c)
			}

			reject := func(code, message string, fields ...zap.Field) error {
				config.Logger.Warn("Request rejected by JWT middleware",
					append(fields,
						zap.String("code", code),
						zap.String("method", req.Method),
						zap.String("path", req.URL.Path))...)
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": message, "code": code})
			}

			header := req.Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return reject("MISSING_AUTH_HEADER", "Authorization header required")
			}
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return reject("INVALID_AUTH_FORMAT", "Invalid authorization header format. Expected: Bearer <token>")
			}

			claims := &IdentityClaims{}
			if _, err := parser.ParseWithClaims(raw, claims, keyFunc); err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return reject("INVALID_TOKEN", "Token has expired", zap.Error(err))
				}
				return reject("INVALID_TOKEN", "Invalid or expired token", zap.Error(err))
			}
			if claims.Subject == "" {
				return reject("MISSING_SUBJECT", "Token subject required")
			}
			if claim := claims.oversized(); claim != "" {
				return reject("INVALID_CLAIMS", "Token claim "+claim+" is too long", zap.String("claim", claim))
			}

			user := claims.user()
			c.SetRequest(req.WithContext(context.WithValue(req.Context(), userContextKey, user)))
			c.Set("user_id", user.UserID)

			return next(c)
		}
	}
}

// GetUserFromContext extracts the authenticated user from the request context
func GetUserFromContext(c echo.Context) (*AuthUser, error) {
	user, ok := c.Request().Context().Value(userContextKey).(*AuthUser)
	if !ok || user == nil {
		return nil, errors.New("no authenticated user found in context")
	}
	return user, nil
}

// RequireAuth returns the authenticated user or a 401 for the error handler to render
func RequireAuth(c echo.Context) (*AuthUser, error) {
	user, err := GetUserFromContext(c)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required").SetInternal(err)
	}
	return user, nil
}
