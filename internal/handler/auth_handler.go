package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/scentalux/storefront/internal/middleware"
	"github.com/scentalux/storefront/internal/session"
	"github.com/scentalux/storefront/pkg/backend"
	"github.com/scentalux/storefront/pkg/logger"
	"github.com/scentalux/storefront/prometheus"
	"go.uber.org/zap"
)

// RegisterRequest is the registration form
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the login form
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register validates the form and creates the account through the backend
func Register(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RegisterCounter.Inc()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid registration request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
	}

	if err := backendClient.Register(c.Request().Context(), req.Username, req.Password); err != nil {
		return handleBackendError(c, nil, err)
	}

	log.Info("User registered", zap.String("username", req.Username))
	return c.JSON(http.StatusCreated, echo.Map{"message": "registered"})
}

// Login exchanges credentials with the backend and opens a session. The
// session ID is the bearer credential for every subsequent storefront call.
func Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.LoginCounter.Inc()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid login request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
	}

	result, err := backendClient.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		prometheus.AuthErrorsCounter.Inc()
		if errors.Is(err, backend.ErrUnauthorized) {
			log.Warn("Login rejected", zap.String("username", req.Username))
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Usuario o contraseña incorrectos."})
		}
		return handleBackendError(c, nil, err)
	}

	role := ""
	if len(result.Roles) > 0 {
		role = result.Roles[0]
	}

	sess, err := session.GetManager().Create(result.Username, role, result.Token)
	if err != nil {
		log.Error("Failed to create session", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create session"})
	}

	log.Info("User logged in",
		zap.String("username", sess.Username),
		zap.String("role", sess.Role))
	return c.JSON(http.StatusOK, echo.Map{
		"sessionId": sess.ID,
		"username":  sess.Username,
		"role":      sess.Role,
	})
}

// Logout tears the caller's session down: credential, role and cart clear
// together
func Logout(c echo.Context) error {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing session"})
	}

	prometheus.SessionTeardownCounter.Inc()
	if err := session.GetManager().Teardown(sess.ID); err != nil {
		logger.FromEcho(c).Error("Logout teardown failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to log out"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}
