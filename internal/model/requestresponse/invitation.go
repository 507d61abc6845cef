package requestresponse

import "presentation-web-server/internal/model"

// CreateInvitationRequest : тело запроса создания коммерческого приглашения
type CreateInvitationRequest struct {
	Email string `json:"email" example:"client@company.com"`
	Name  string `json:"name,omitempty" example:"Client Name"`
}

// InvitationResponse : приглашение с токеном (токен показывается только создателю)
type InvitationResponse struct {
	Data model.Invitation `json:"data"`
}

// ListInvitationsResponse : список приглашений администратора
type ListInvitationsResponse struct {
	Data struct {
		Invitations []model.Invitation `json:"invitations"`
	} `json:"data"`
}

// RedeemInvitationRequest : тело запроса активации приглашения
type RedeemInvitationRequest struct {
	Token string `json:"token" example:"1f6a9c0d3b2e4a85"`
}
