package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/scentalux/storefront/internal/model"
	"github.com/scentalux/storefront/internal/session"
	"github.com/scentalux/storefront/pkg/logger"
	"github.com/scentalux/storefront/prometheus"
	"go.uber.org/zap"
)

// LoginRedirect is the entry point clients are sent to when their session is
// missing, invalid or expired
const LoginRedirect = "/login"

// unauthorized answers with the redirect-to-login signal the views act on
func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"error":    message,
		"redirect": LoginRedirect,
	})
}

// AuthMiddleware resolves the bearer session ID and stores the session in
// the request context. Requests without a valid session never reach the
// cart or order handlers.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromEcho(c)

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			prometheus.AuthErrorsCounter.Inc()
			return unauthorized(c, "missing authorization token")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			prometheus.AuthErrorsCounter.Inc()
			return unauthorized(c, "invalid authorization format, expected Bearer token")
		}

		sess, err := session.GetManager().Lookup(parts[1])
		if err != nil {
			log.Warn("Session rejected", zap.Error(err))
			prometheus.AuthErrorsCounter.Inc()
			return unauthorized(c, "invalid or expired session")
		}

		c.Set("session", sess)
		log.Debug("Session resolved",
			zap.String("username", sess.Username),
			zap.String("role", sess.Role))

		return next(c)
	}
}

// OptionalAuthMiddleware resolves the bearer session when one is presented
// and continues anonymously otherwise. Public catalog routes use it so an
// admin browsing the storefront still sees unpublished products.
func OptionalAuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			if sess, err := session.GetManager().Lookup(parts[1]); err == nil {
				c.Set("session", sess)
			}
		}
		return next(c)
	}
}

// AdminMiddleware rejects non-admin sessions. It must run after AuthMiddleware.
func AdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, ok := SessionFromContext(c)
		if !ok {
			return unauthorized(c, "missing session")
		}
		if !sess.IsAdmin() {
			logger.FromEcho(c).Warn("Non-admin access to admin route",
				zap.String("username", sess.Username))
			return c.JSON(http.StatusForbidden, echo.Map{"error": "admin role required"})
		}
		return next(c)
	}
}

// SessionFromContext retrieves the resolved session from the echo context
func SessionFromContext(c echo.Context) (*model.Session, bool) {
	sess, ok := c.Get("session").(*model.Session)
	return sess, ok
}
