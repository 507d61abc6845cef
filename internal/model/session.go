package model

import "time"

const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Session : сессия презентации, адресуемая join-кодом
type Session struct {
	UUID                string    `db:"uuid" json:"uuid"`
	PresenterUUID       string    `db:"presenter_uuid" json:"presenter_uuid"`
	JoinCode            string    `db:"join_code" json:"join_code"`
	Title               string    `db:"title" json:"title"`
	IsActive            bool      `db:"is_active" json:"is_active"`
	CurrentDocumentUUID *string   `db:"current_document_uuid" json:"current_document_uuid,omitempty"`
	CurrentOrientation  string    `db:"current_orientation" json:"current_orientation"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// SessionSnapshot : снимок состояния сессии для зрителей (polling read model)
// Транспорт получения снапшота (сейчас — опрос с фиксированным интервалом)
// от этой структуры не зависит
type SessionSnapshot struct {
	SessionUUID        string    `json:"session_uuid"`
	Title              string    `json:"title"`
	JoinCode           string    `json:"join_code"`
	CurrentOrientation string    `json:"current_orientation"`
	CurrentDocument    *Document `json:"current_document,omitempty"`
	UpdatedAt          time.Time `json:"updated_at"`
}
