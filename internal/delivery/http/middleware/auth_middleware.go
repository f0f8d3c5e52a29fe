// Package middleware contains HTTP-specific middleware for the echo server.
package middleware

import (
	"log/slog"
	"net/http"

	"pulpit/internal/delivery"
	"pulpit/internal/domain/entity"
	"pulpit/internal/domain/repository"

	"github.com/labstack/echo/v4"
)

// Context keys under which the gate stores the authenticated principal.
const (
	userContextKey  = "authUser"
	tokenContextKey = "authToken"
)

// AuthMiddleware gates protected routes on an opaque bearer token. The
// token is a database lookup key, not a self-describing credential, so
// every request resolves it against the session store.
type AuthMiddleware struct {
	tokenRepo repository.SessionTokenRepository
	userRepo  repository.UserRepository
	logger    *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(
	tokenRepo repository.SessionTokenRepository,
	userRepo repository.UserRepository,
	logger *slog.Logger,
) *AuthMiddleware {
	return &AuthMiddleware{tokenRepo: tokenRepo, userRepo: userRepo, logger: logger}
}

// Authenticate validates the bearer token and loads its owner. Malformed
// headers are rejected before any datastore access. The three rejection
// reasons (bad header, unknown token, missing user) stay distinct so
// clients can tell a stale session from a broken request.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenValue, ok := delivery.ParseBearerToken(c.Request().Header.Get("Authorization"))
		if !ok {
			return unauthorized(c, delivery.MsgMissingAuthHeader)
		}

		ctx := c.Request().Context()

		token, err := m.tokenRepo.FindByToken(ctx, tokenValue)
		if err != nil {
			m.logger.Error("Auth gate failed to look up token", slog.Any("error", err))

			return internalError(c)
		}
		if token == nil {
			return unauthorized(c, delivery.MsgInvalidToken)
		}

		user, err := m.userRepo.FindByID(ctx, token.UserID)
		if err != nil {
			m.logger.Error("Auth gate failed to look up user",
				slog.Any("error", err), slog.Int64("user_id", token.UserID))

			return internalError(c)
		}
		if user == nil {
			return unauthorized(c, delivery.MsgUserNotFound)
		}

		c.Set(userContextKey, user)
		c.Set(tokenContextKey, token)

		return next(c)
	}
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{
		"error":   "Unauthorized",
		"message": message,
	})
}

func internalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, map[string]string{
		"error":   "Internal Server Error",
		"message": delivery.MsgAuthInternal,
	})
}

// CurrentUser returns the authenticated user set by Authenticate, or nil
// on an unprotected route.
func CurrentUser(c echo.Context) *entity.User {
	user, _ := c.Get(userContextKey).(*entity.User)

	return user
}

// CurrentToken returns the session token set by Authenticate, or nil.
func CurrentToken(c echo.Context) *entity.SessionToken {
	token, _ := c.Get(tokenContextKey).(*entity.SessionToken)

	return token
}
