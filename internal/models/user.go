package models

// UserModel is the single administrative account. There is no multi-tenant
// access control; every mutating route is gated on this one credential.
type UserModel struct {
	Base
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Password string `json:"-"        gorm:"not null"` // bcrypt hash
	Email    string `json:"email,omitempty"`
}

func (UserModel) TableName() string { return "users" }
