package models

import "time"

// Admin is a credentialed user of the admin area. Only the password hash is
// ever persisted; the hash never leaves the server.
type Admin struct {
	ID           int       `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" db:"username" gorm:"type:text;not null;unique"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"column:password_hash;type:text;not null"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

func (Admin) TableName() string {
	return "admins"
}
