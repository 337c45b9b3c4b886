// Package cart maintains each authenticated identity's product/quantity
// selections. Every mutation is validated against the catalog's current
// stock; carts are cleared on logout and never shared across identities.
package cart

import (
	"errors"

	"github.com/scentalux/storefront/internal/model"
	"github.com/scentalux/storefront/pkg/logger"
	"go.uber.org/zap"
)

// ErrInsufficientStock signals an add that would push a line past the
// product's current stock
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrUnknownPerfume signals a cart mutation against a product the catalog
// does not know
var ErrUnknownPerfume = errors.New("unknown perfume")

// StockSource answers current-stock lookups; the catalog store implements it
type StockSource interface {
	Get(id uint) (model.Perfume, bool)
}

// Store applies cart mutations against a repository with stock validation
type Store struct {
	repo  Repository
	stock StockSource
}

// NewStore creates a cart store
func NewStore(repo Repository, stock StockSource) *Store {
	return &Store{repo: repo, stock: stock}
}

var store *Store

// Initialize sets up the package-level store instance
func Initialize(repo Repository, stock StockSource) {
	store = NewStore(repo, stock)
}

// GetStore returns the package-level store instance
func GetStore() *Store {
	return store
}

// Add merges a quantity into the identity's line for the perfume. The
// mutation is rejected when the merged quantity would exceed current stock,
// leaving the cart unchanged.
func (s *Store) Add(username string, perfumeID uint, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}

	perfume, ok := s.stock.Get(perfumeID)
	if !ok {
		return ErrUnknownPerfume
	}

	existing, err := s.repo.Get(username, perfumeID)
	if err != nil {
		return err
	}

	inCart := 0
	if existing != nil {
		inCart = existing.Quantity
	}
	if inCart+quantity > perfume.Stock {
		return ErrInsufficientStock
	}

	line := &model.CartItem{Username: username, PerfumeID: perfumeID, Quantity: inCart + quantity}
	if existing != nil {
		line.ID = existing.ID
	}
	if err := s.repo.Save(line); err != nil {
		return err
	}

	logger.GetLogger().Info("Cart line updated",
		zap.String("username", username),
		zap.Uint("perfume_id", perfumeID),
		zap.Int("quantity", line.Quantity))
	return nil
}

// SetQuantity sets a line to an explicit quantity. Zero or below removes the
// line; a quantity above current stock is corrected down to the stock
// ceiling rather than rejected.
func (s *Store) SetQuantity(username string, perfumeID uint, quantity int) error {
	if quantity <= 0 {
		return s.Remove(username, perfumeID)
	}

	perfume, ok := s.stock.Get(perfumeID)
	if !ok {
		return ErrUnknownPerfume
	}
	if quantity > perfume.Stock {
		quantity = perfume.Stock
	}
	if quantity == 0 {
		return s.Remove(username, perfumeID)
	}

	existing, err := s.repo.Get(username, perfumeID)
	if err != nil {
		return err
	}

	line := &model.CartItem{Username: username, PerfumeID: perfumeID, Quantity: quantity}
	if existing != nil {
		line.ID = existing.ID
	}
	return s.repo.Save(line)
}

// Remove drops the identity's line for the perfume
func (s *Store) Remove(username string, perfumeID uint) error {
	return s.repo.Delete(username, perfumeID)
}

// Items returns the identity's cart lines
func (s *Store) Items(username string) ([]model.CartItem, error) {
	return s.repo.Items(username)
}

// Count returns the total unit count across the identity's lines
func (s *Store) Count(username string) (int, error) {
	items, err := s.repo.Items(username)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count, nil
}

// Clear removes every line the identity has. Runs on logout and on session
// teardown.
func (s *Store) Clear(username string) error {
	return s.repo.DeleteAll(username)
}
