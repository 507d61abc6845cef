package model

import "time"

// Invitation : коммерческая пригласительная ссылка.
// Токен — capability: запрос с валидным неотозванным токеном
// авторизуется как создатель приглашения
type Invitation struct {
	UUID        string     `db:"uuid" json:"uuid"`
	Token       string     `db:"token" json:"token"`
	Email       string     `db:"email" json:"email"`
	InviteeName *string    `db:"invitee_name" json:"invitee_name,omitempty"`
	Used        bool       `db:"used" json:"used"`
	RevokedAt   *time.Time `db:"revoked_at" json:"revoked_at,omitempty"`
	CreatorUUID string     `db:"creator_uuid" json:"creator_uuid"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}
