package model

import "time"

// Viewer : запись о подключении зрителя к сессии.
// Журнал append-only: счётчик зрителей — накопительный счётчик подключений,
// а не количество зрителей онлайн
type Viewer struct {
	ID           int64     `db:"id" json:"id"`
	SessionUUID  string    `db:"session_uuid" json:"session_uuid"`
	UserUUID     *string   `db:"user_uuid" json:"user_uuid,omitempty"`
	ViewerID     string    `db:"viewer_id" json:"viewer_id"`
	LastActivity time.Time `db:"last_activity" json:"last_activity"`
}
