package requestresponse

import "presentation-web-server/internal/model"

// SendMessageRequest : тело запроса отправки сообщения
type SendMessageRequest struct {
	SenderName string  `json:"sender_name" example:"Ivan"`
	MsgType    string  `json:"msg_type" example:"text"`
	Content    string  `json:"content" example:"Привет!"`
	FileURL    *string `json:"file_url,omitempty"`
	FileName   *string `json:"file_name,omitempty"`
	MimeType   *string `json:"mime_type,omitempty"`
}

// ListMessagesResponse : история сообщений сессии
type ListMessagesResponse struct {
	Data struct {
		Messages []model.ChatMessage `json:"messages"`
	} `json:"data"`
}

// UploadAttachmentResponse : ответ при загрузке вложения чата
type UploadAttachmentResponse struct {
	Data struct {
		FileURL  string `json:"file_url"`
		FileName string `json:"file_name" example:"notes.pdf"`
		MimeType string `json:"mime_type" example:"application/pdf"`
	} `json:"data"`
}
