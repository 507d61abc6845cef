package model

import "time"

const (
	MessageTypeText      = "text"
	MessageTypeDocument  = "document"
	MessageTypeVideoLink = "video_link"
)

type ChatMessage struct {
	UUID        string    `db:"uuid" json:"uuid"`
	SessionUUID string    `db:"session_uuid" json:"session_uuid"`
	SenderUUID  *string   `db:"sender_uuid" json:"sender_uuid,omitempty"`
	SenderName  string    `db:"sender_name" json:"sender_name"`
	MsgType     string    `db:"msg_type" json:"msg_type"`
	Content     string    `db:"content" json:"content"`
	FileURL     *string   `db:"file_url" json:"file_url,omitempty"`
	FileName    *string   `db:"file_name" json:"file_name,omitempty"`
	MimeType    *string   `db:"mime_type" json:"mime_type,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
