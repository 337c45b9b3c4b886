// Package session keeps the per-identity authenticated state: username,
// role and the backend bearer token, addressed by an opaque session ID. It
// replaces the ambient client-side storage of the old storefront with an
// explicit object whose login and logout are lifecycle transitions.
package session

import (
	"errors"

	"github.com/google/uuid"
	"github.com/scentalux/storefront/internal/model"
	"github.com/scentalux/storefront/pkg/jwtutil"
	"github.com/scentalux/storefront/pkg/logger"
	"go.uber.org/zap"
)

// ErrNotFound signals an unknown, expired or torn-down session
var ErrNotFound = errors.New("session not found")

// CartClearer detaches the identity's cart on teardown; the cart store
// implements it
type CartClearer interface {
	Clear(username string) error
}

// Manager creates, resolves and tears down sessions
type Manager struct {
	repo  Repository
	carts CartClearer
}

// NewManager creates a session manager
func NewManager(repo Repository, carts CartClearer) *Manager {
	return &Manager{repo: repo, carts: carts}
}

var manager *Manager

// Initialize sets up the package-level manager instance
func Initialize(repo Repository, carts CartClearer) {
	manager = NewManager(repo, carts)
}

// GetManager returns the package-level manager instance
func GetManager() *Manager {
	return manager
}

// Create opens a session for a freshly logged-in identity
func (m *Manager) Create(username, role, token string) (*model.Session, error) {
	sess := &model.Session{
		ID:       uuid.New().String(),
		Username: username,
		Role:     role,
		Token:    token,
	}
	if err := m.repo.Save(sess); err != nil {
		return nil, err
	}

	logger.GetLogger().Info("Session created",
		zap.String("session_id", sess.ID),
		zap.String("username", username),
		zap.String("role", role))
	return sess, nil
}

// Lookup resolves a session ID. A session whose backend token has already
// expired is torn down on the spot and reported as not found, so dependent
// views see a clean logged-out state instead of a doomed credential.
func (m *Manager) Lookup(id string) (*model.Session, error) {
	sess, err := m.repo.Find(id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNotFound
	}

	if jwtutil.IsExpired(sess.Token) {
		logger.GetLogger().Warn("Session token expired, tearing down",
			zap.String("session_id", id),
			zap.String("username", sess.Username))
		if err := m.Teardown(id); err != nil {
			logger.GetLogger().Error("Failed to tear down expired session", zap.Error(err))
		}
		return nil, ErrNotFound
	}

	return sess, nil
}

// Teardown removes the session and the identity's cart together. Stored
// credential, role and cart always clear as one unit.
func (m *Manager) Teardown(id string) error {
	sess, err := m.repo.Find(id)
	if err != nil {
		return err
	}
	if sess == nil {
		return nil
	}

	if err := m.repo.Delete(id); err != nil {
		return err
	}
	if err := m.carts.Clear(sess.Username); err != nil {
		return err
	}

	logger.GetLogger().Info("Session torn down",
		zap.String("session_id", id),
		zap.String("username", sess.Username))
	return nil
}
