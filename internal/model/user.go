package model

import "time"

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleCommercial = "commercial"
)

type User struct {
	UUID         string     `db:"uuid" json:"uuid"`
	ExternalID   *string    `db:"external_id" json:"external_id,omitempty"`
	Email        *string    `db:"email" json:"email,omitempty"`
	PasswordHash *string    `db:"password_hash" json:"-"`
	Role         string     `db:"role" json:"role"`
	LastSignedIn *time.Time `db:"last_signed_in" json:"last_signed_in,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}
