package session

import (
	"errors"

	"github.com/scentalux/storefront/internal/model"
	"gorm.io/gorm"
)

// Repository persists sessions
type Repository interface {
	Save(sess *model.Session) error
	Find(id string) (*model.Session, error)
	Delete(id string) error
}

// GormRepository stores sessions in the service database
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a session repository over the given database handle
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Save persists a session row
func (r *GormRepository) Save(sess *model.Session) error {
	return r.db.Create(sess).Error
}

// Find returns the session, or nil when unknown
func (r *GormRepository) Find(id string) (*model.Session, error) {
	var sess model.Session
	err := r.db.First(&sess, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// Delete removes the session row
func (r *GormRepository) Delete(id string) error {
	return r.db.Delete(&model.Session{}, "id = ?", id).Error
}
