package model

import "time"

type Role string

const (
	RoleUser     Role = "user"
	RoleAdmin    Role = "admin"
	RoleSubAdmin Role = "sub-admin"
	RoleSubUser  Role = "sub-user"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSubAdmin, RoleSubUser:
		return true
	}
	return false
}

type Account struct {
	ID                   int64      `json:"id" db:"id"`
	Name                 string     `json:"name" db:"name"`
	Email                string     `json:"email" db:"email"`
	PasswordHash         string     `json:"-" db:"password_hash"`
	Role                 Role       `json:"role" db:"role"`
	PasswordResetToken   *string    `json:"-" db:"password_reset_token"`
	PasswordResetExpires *time.Time `json:"-" db:"password_reset_expires"`
	PasswordChangedAt    time.Time  `json:"-" db:"password_changed_at"`
	CreatedAt            time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time  `json:"updatedAt" db:"updated_at"`
}
