package model

import "time"

// PresenterCursor : одна перезаписываемая строка на сессию (last-writer-wins)
type PresenterCursor struct {
	SessionUUID string    `db:"session_uuid" json:"session_uuid"`
	PosX        float64   `db:"pos_x" json:"pos_x"`
	PosY        float64   `db:"pos_y" json:"pos_y"`
	Zoom        float64   `db:"zoom" json:"zoom"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type ViewerCursor struct {
	SessionUUID string    `db:"session_uuid" json:"session_uuid"`
	ViewerID    string    `db:"viewer_id" json:"viewer_id"`
	PosX        float64   `db:"pos_x" json:"pos_x"`
	PosY        float64   `db:"pos_y" json:"pos_y"`
	Zoom        float64   `db:"zoom" json:"zoom"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
