package domain

import "time"

// User is a freelancer account. PasswordHash is a bcrypt hash and is never
// serialized.
type User struct {
	UserID       string `json:"userID"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	AuditFields
	DeletedAt *time.Time `json:"-"`
}
