package model

import "time"

// Session is the per-identity authenticated state this service keeps. It
// replaces the ambient browser storage of the old storefront: auth flag,
// role, username and the backend bearer token live and die together.
type Session struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Username  string    `json:"username" gorm:"type:varchar(100);index;not null"`
	Role      string    `json:"role" gorm:"type:varchar(50)"`
	Token     string    `json:"-" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the session belongs to an administrator
func (s *Session) IsAdmin() bool {
	return s.Role == "ADMIN" || s.Role == "admin"
}
