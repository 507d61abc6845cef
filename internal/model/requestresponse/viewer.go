package requestresponse

import "presentation-web-server/internal/model"

// JoinSessionRequest : тело запроса подключения зрителя
type JoinSessionRequest struct {
	ViewerID string `json:"viewer_id" example:"anon-7f3b2c"`
}

// SnapshotResponse : снимок состояния сессии для зрителя.
// Зрители запрашивают его повторно с фиксированным интервалом
type SnapshotResponse struct {
	Data *model.SessionSnapshot `json:"data"`
}

// ViewerCursorRequest : положение указателя зрителя
type ViewerCursorRequest struct {
	ViewerID string  `json:"viewer_id" example:"anon-7f3b2c"`
	PosX     float64 `json:"pos_x" example:"0.42"`
	PosY     float64 `json:"pos_y" example:"0.17"`
	Zoom     float64 `json:"zoom" example:"1.0"`
}
