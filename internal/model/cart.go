package model

import "time"

// CartItem is one product line in an identity's cart. Quantity is always
// positive; a line that would drop to zero is removed instead.
type CartItem struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Username  string    `json:"-" gorm:"type:varchar(100);uniqueIndex:idx_cart_user_perfume;not null"`
	PerfumeID uint      `json:"perfumeId" gorm:"uniqueIndex:idx_cart_user_perfume;not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
