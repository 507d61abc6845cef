package requestresponse

import "presentation-web-server/internal/model"

// InviteCollaboratorRequest : тело запроса приглашения соведущего
type InviteCollaboratorRequest struct {
	Email      string `json:"email" example:"friend@example.com"`
	Permission string `json:"permission" example:"edit"`
}

// RespondCollaborationRequest : ответ приглашённого на приглашение
type RespondCollaborationRequest struct {
	Accept bool `json:"accept" example:"true"`
}

// ListCollaboratorsResponse : список соведущих сессии
type ListCollaboratorsResponse struct {
	Data struct {
		Collaborators []model.Collaborator `json:"collaborators"`
	} `json:"data"`
}
