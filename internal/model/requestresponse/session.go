package requestresponse

import (
	"presentation-web-server/internal/model"
	"time"
)

// CreateSessionRequest : тело запроса создания сессии
type CreateSessionRequest struct {
	Title string `json:"title" example:"Demo"`
}

// SessionResponse : описывает сессию для JSON-ответа
type SessionResponse struct {
	UUID                string  `json:"uuid" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
	JoinCode            string  `json:"join_code" example:"K4T9XW2A"`
	Title               string  `json:"title" example:"Demo"`
	IsActive            bool    `json:"is_active" example:"true"`
	CurrentDocumentUUID *string `json:"current_document_uuid,omitempty"`
	CurrentOrientation  string  `json:"current_orientation" example:"portrait"`
	CreatedAt           string  `json:"created" example:"2025-08-23T12:34:56Z"`
}

// SessionResponseFromModel : конвертирует model.Session в SessionResponse
func SessionResponseFromModel(session *model.Session) SessionResponse {
	return SessionResponse{
		UUID:                session.UUID,
		JoinCode:            session.JoinCode,
		Title:               session.Title,
		IsActive:            session.IsActive,
		CurrentDocumentUUID: session.CurrentDocumentUUID,
		CurrentOrientation:  session.CurrentOrientation,
		CreatedAt:           session.CreatedAt.Format(time.RFC3339),
	}
}

// ListSessionsResponse : ответ API со списком сессий
type ListSessionsResponse struct {
	Data struct {
		Sessions []SessionResponse `json:"sessions"`
	} `json:"data"`
}

// DisplayDocumentRequest : тело запроса смены отображаемого документа
type DisplayDocumentRequest struct {
	DocumentUUID *string `json:"document_uuid" example:"qwdj1q4o34u34ih759ou1"`
	Orientation  string  `json:"orientation" example:"landscape"`
}

// UpdateTitleRequest : тело запроса смены названия сессии
type UpdateTitleRequest struct {
	Title string `json:"title" example:"Demo v2"`
}

// ViewerCountResponse : накопительный счётчик подключений зрителей
type ViewerCountResponse struct {
	Response struct {
		Count int `json:"count" example:"12"`
	} `json:"response"`
}

// CursorRequest : положение указателя и зум докладчика
type CursorRequest struct {
	PosX float64 `json:"pos_x" example:"0.42"`
	PosY float64 `json:"pos_y" example:"0.17"`
	Zoom float64 `json:"zoom" example:"1.5"`
}

// CursorResponse : текущее положение указателя докладчика
type CursorResponse struct {
	Response model.PresenterCursor `json:"response"`
}
