package cart

import (
	"errors"

	"github.com/scentalux/storefront/internal/model"
	"gorm.io/gorm"
)

// Repository persists cart lines per identity
type Repository interface {
	Items(username string) ([]model.CartItem, error)
	Get(username string, perfumeID uint) (*model.CartItem, error)
	Save(item *model.CartItem) error
	Delete(username string, perfumeID uint) error
	DeleteAll(username string) error
}

// GormRepository stores cart lines in the service database
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a cart repository over the given database handle
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Items returns the identity's cart lines, oldest first
func (r *GormRepository) Items(username string) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.Where("username = ?", username).Order("created_at ASC").Find(&items).Error
	return items, err
}

// Get returns the identity's line for a perfume, or nil when absent
func (r *GormRepository) Get(username string, perfumeID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.Where("username = ? AND perfume_id = ?", username, perfumeID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Save upserts a cart line
func (r *GormRepository) Save(item *model.CartItem) error {
	return r.db.Save(item).Error
}

// Delete removes the identity's line for a perfume
func (r *GormRepository) Delete(username string, perfumeID uint) error {
	return r.db.Where("username = ? AND perfume_id = ?", username, perfumeID).
		Delete(&model.CartItem{}).Error
}

// DeleteAll removes every line the identity has
func (r *GormRepository) DeleteAll(username string) error {
	return r.db.Where("username = ?", username).Delete(&model.CartItem{}).Error
}
