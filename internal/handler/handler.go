// Package handler implements the storefront HTTP API: catalog browsing,
// recommendations, cart, checkout, order history and the admin surface.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/scentalux/storefront/internal/model"
	"github.com/scentalux/storefront/internal/session"
	"github.com/scentalux/storefront/pkg/backend"
	"github.com/scentalux/storefront/pkg/logger"
	"github.com/scentalux/storefront/prometheus"
	"go.uber.org/zap"
)

var backendClient *backend.Client

// Initialize sets the backend client the handlers proxy through
func Initialize(client *backend.Client) {
	backendClient = client
}

// handleBackendError maps a backend call failure onto the storefront's
// error policy: a rejected credential tears the whole session down and
// signals the login redirect; a backend refusal passes the backend's status
// and message through; anything else is a connectivity notice. Ordinary
// failures never mutate local state.
func handleBackendError(c echo.Context, sess *model.Session, err error) error {
	log := logger.FromEcho(c)

	if errors.Is(err, backend.ErrUnauthorized) {
		log.Warn("Backend rejected session credential, tearing down")
		prometheus.SessionTeardownCounter.Inc()
		if sess != nil {
			if terr := session.GetManager().Teardown(sess.ID); terr != nil {
				log.Error("Session teardown failed", zap.Error(terr))
			}
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error":    "Sesión expirada. Por favor, inicia sesión nuevamente.",
			"redirect": "/login",
		})
	}

	if apiErr, ok := backend.IsAPIError(err); ok {
		log.Warn("Backend refused request",
			zap.Int("status", apiErr.Status),
			zap.String("message", apiErr.Message))
		return c.JSON(apiErr.Status, echo.Map{"error": apiErr.Message})
	}

	log.Error("Backend unreachable", zap.Error(err))
	return c.JSON(http.StatusBadGateway, echo.Map{"error": "backend unavailable"})
}

// Health answers the liveness probe
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
