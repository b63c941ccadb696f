package model

import "time"

// City is reference data; (name, state) is unique.
type City struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	State     string    `json:"state" db:"state"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
