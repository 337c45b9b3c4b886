// Package catalog caches the backend's product list and forwards admin
// mutations to it. The cache is reconciled from the server's authoritative
// response on every mutation; local state is never computed ahead of the
// backend's answer.
package catalog

import (
	"context"
	"errors"
	"sync"

	"github.com/scentalux/storefront/internal/model"
	"github.com/scentalux/storefront/pkg/backend"
	"github.com/scentalux/storefront/pkg/logger"
	"go.uber.org/zap"
)

// ErrStockExceeded signals a stock decrement larger than the current stock
var ErrStockExceeded = errors.New("requested quantity exceeds current stock")

// ErrNotFound signals an unknown perfume identifier
var ErrNotFound = errors.New("perfume not found")

// DeleteBlockedReason is the guidance shown when the backend refuses a
// delete because orders reference the product
const DeleteBlockedReason = "Este perfume no se puede eliminar porque tiene pedidos asociados. " +
	"Sugerencia: edítalo para crear una nueva versión u ocúltalo del catálogo."

// DeleteResult is the outcome of a delete request. A refused delete is a
// normal business outcome, not an error: Deleted is false and Reason carries
// user-facing guidance.
type DeleteResult struct {
	Deleted bool   `json:"deleted"`
	Reason  string `json:"reason,omitempty"`
}

// Store holds the cached product list
type Store struct {
	mu       sync.RWMutex
	perfumes []model.Perfume
	client   *backend.Client
	sales    SaleLog
}

// NewStore creates a catalog store over the given backend client and sale log
func NewStore(client *backend.Client, sales SaleLog) *Store {
	return &Store{client: client, sales: sales}
}

var store *Store

// Initialize sets up the package-level store instance
func Initialize(client *backend.Client, sales SaleLog) {
	store = NewStore(client, sales)
}

// GetStore returns the package-level store instance
func GetStore() *Store {
	return store
}

// Refresh replaces the cache with the backend's current product list
func (s *Store) Refresh(ctx context.Context) error {
	perfumes, err := s.client.ListPerfumes(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.perfumes = perfumes
	s.mu.Unlock()

	logger.FromContext(ctx).Info("Catalog refreshed", zap.Int("count", len(perfumes)))
	return nil
}

// All returns a copy of the full, admin-visible product list
func (s *Store) All() []model.Perfume {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Perfume, len(s.perfumes))
	copy(out, s.perfumes)
	return out
}

// Published returns the customer-visible subset
func (s *Store) Published() []model.Perfume {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Perfume
	for _, p := range s.perfumes {
		if p.Published {
			out = append(out, p)
		}
	}
	return out
}

// Get looks a perfume up by identifier
func (s *Store) Get(id uint) (model.Perfume, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.perfumes {
		if p.ID == id {
			return p, true
		}
	}
	return model.Perfume{}, false
}

// Create submits a new product and prepends the server-assigned entity to
// the cache. A failed create leaves the cache untouched.
func (s *Store) Create(ctx context.Context, input *model.PerfumeInput) (*model.Perfume, error) {
	created, err := s.client.CreatePerfume(ctx, input)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.perfumes = append([]model.Perfume{*created}, s.perfumes...)
	s.mu.Unlock()

	logger.FromContext(ctx).Info("Perfume created",
		zap.Uint("perfume_id", created.ID),
		zap.String("name", created.Name))
	return created, nil
}

// Delete asks the backend to remove a product. A backend refusal (the
// product is referenced by existing orders) is reported as a blocked result
// with guidance; the cache stays untouched and no error is returned.
func (s *Store) Delete(ctx context.Context, id uint) (DeleteResult, error) {
	log := logger.FromContext(ctx)

	err := s.client.DeletePerfume(ctx, id)
	if err != nil {
		if apiErr, ok := backend.IsAPIError(err); ok {
			log.Warn("Perfume delete refused by backend",
				zap.Uint("perfume_id", id),
				zap.Int("status", apiErr.Status),
				zap.String("backend_message", apiErr.Message))
			return DeleteResult{Deleted: false, Reason: DeleteBlockedReason}, nil
		}
		return DeleteResult{}, err
	}

	s.mu.Lock()
	for i, p := range s.perfumes {
		if p.ID == id {
			s.perfumes = append(s.perfumes[:i], s.perfumes[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	log.Info("Perfume deleted", zap.Uint("perfume_id", id))
	return DeleteResult{Deleted: true}, nil
}

// TogglePublish flips the product's visibility and replaces the cached entry
// wholesale with the server's response
func (s *Store) TogglePublish(ctx context.Context, id uint) (*model.Perfume, error) {
	updated, err := s.client.TogglePublish(ctx, id)
	if err != nil {
		return nil, err
	}

	s.replace(updated)

	logger.FromContext(ctx).Info("Perfume publish flag toggled",
		zap.Uint("perfume_id", id),
		zap.Bool("published", updated.Published))
	return updated, nil
}

// UpdateStock decrements a product's stock by a sold quantity. The decrement
// is rejected locally when it exceeds the cached stock; otherwise the cached
// entry is replaced with the server's response.
func (s *Store) UpdateStock(ctx context.Context, id uint, quantitySold int) (*model.Perfume, error) {
	current, ok := s.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	if quantitySold > current.Stock {
		return nil, ErrStockExceeded
	}

	updated, err := s.client.UpdateStock(ctx, id, quantitySold)
	if err != nil {
		return nil, err
	}

	s.replace(updated)

	logger.FromContext(ctx).Info("Perfume stock updated",
		zap.Uint("perfume_id", id),
		zap.Int("quantity_sold", quantitySold),
		zap.Int("stock", updated.Stock))
	return updated, nil
}

func (s *Store) replace(updated *model.Perfume) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.perfumes {
		if p.ID == updated.ID {
			s.perfumes[i] = *updated
			return
		}
	}
}
