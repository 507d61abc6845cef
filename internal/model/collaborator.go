package model

import "time"

const (
	PermissionView    = "view"
	PermissionEdit    = "edit"
	PermissionControl = "control"

	CollaboratorPending  = "pending"
	CollaboratorAccepted = "accepted"
	CollaboratorRejected = "rejected"
)

type Collaborator struct {
	SessionUUID string    `db:"session_uuid" json:"session_uuid"`
	UserUUID    string    `db:"user_uuid" json:"user_uuid"`
	Permission  string    `db:"permission" json:"permission"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
