package models

import "time"

// User represents a registered account. Registration never creates a
// workspace or membership; those are separate operations.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Username  string    `gorm:"uniqueIndex;size:63;not null" json:"user_name"`
	Password  string    `gorm:"size:255;not null" json:"-"` // bcrypt hash
	FirstName string    `gorm:"size:127;not null" json:"first_name"`
	LastName  string    `gorm:"size:127" json:"last_name"`
	Address   string    `gorm:"size:255" json:"address,omitempty"`
	Phone     string    `gorm:"size:63" json:"phone,omitempty"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// FullName is used in activity messages and meeting invitations.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
