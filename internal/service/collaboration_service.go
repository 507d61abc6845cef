package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"presentation-web-server/config"
	"presentation-web-server/internal/model"
	"presentation-web-server/internal/ports"
	"presentation-web-server/internal/security"
	"presentation-web-server/internal/util"
)

// CollaborationService : приглашение зарегистрированных пользователей
// в сессию с правами view/edit/control. Приглашение живёт в состоянии
// pending, пока приглашённый не примет или не отклонит его
type CollaborationService struct {
	collaboratorRepository ports.CollaboratorRepository
	sessionRepository      ports.SessionRepository
	userRepository         ports.UserRepository
}

func NewCollaborationService(
	collaboratorRepository ports.CollaboratorRepository,
	sessionRepository ports.SessionRepository,
	userRepository ports.UserRepository,
) *CollaborationService {
	return &CollaborationService{
		collaboratorRepository: collaboratorRepository,
		sessionRepository:      sessionRepository,
		userRepository:         userRepository,
	}
}

// InviteCollaborator : владелец сессии приглашает пользователя по email.
// Повторное приглашение того же пользователя перезаписывает права и
// возвращает запись в состояние pending
func (s *CollaborationService) InviteCollaborator(ctx context.Context, sessionUUID, email, permission string) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[CollaborationService] database connection не найден в context")
	}

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return fmt.Errorf("[CollaborationService] пользователь не авторизован")
	}

	switch permission {
	case model.PermissionView, model.PermissionEdit, model.PermissionControl:
	default:
		return fmt.Errorf("[CollaborationService] неизвестное право: %s", permission)
	}

	owner, err := s.sessionRepository.IsOwner(ctx, db, sessionUUID, claims.UserUUID)
	if err != nil {
		return util.LogError("[CollaborationService] ошибка проверки владения", err)
	}
	if !owner {
		return fmt.Errorf("[CollaborationService] доступ запрещён")
	}

	email = strings.TrimSpace(strings.ToLower(email))
	invitee, err := s.userRepository.FindByEmail(ctx, db, email)
	if err != nil {
		return fmt.Errorf("[CollaborationService] пользователь не найден")
	}

	if invitee.UUID == claims.UserUUID {
		return fmt.Errorf("[CollaborationService] нельзя пригласить самого себя")
	}

	if err := s.collaboratorRepository.Upsert(ctx, db, &model.Collaborator{
		SessionUUID: sessionUUID,
		UserUUID:    invitee.UUID,
		Permission:  permission,
		Status:      model.CollaboratorPending,
	}); err != nil {
		return util.LogError("[CollaborationService] не удалось сохранить приглашение", err)
	}

	log.Printf("[CollaborationService] пользователь %s приглашён в сессию %s (%s)",
		invitee.UUID, sessionUUID, permission)

	return nil
}

// RespondInvitation : приглашённый принимает или отклоняет приглашение.
// Ответить можно только на приглашение в состоянии pending
func (s *CollaborationService) RespondInvitation(ctx context.Context, sessionUUID string, accept bool) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[CollaborationService] database connection не найден в context")
	}

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return fmt.Errorf("[CollaborationService] пользователь не авторизован")
	}

	collaborator, err := s.collaboratorRepository.Get(ctx, db, sessionUUID, claims.UserUUID)
	if err != nil {
		return fmt.Errorf("[CollaborationService] приглашение не найдено")
	}
	if collaborator.Status != model.CollaboratorPending {
		return fmt.Errorf("[CollaborationService] приглашение уже обработано")
	}

	status := model.CollaboratorRejected
	if accept {
		status = model.CollaboratorAccepted
	}

	return s.collaboratorRepository.UpdateStatus(ctx, db, sessionUUID, claims.UserUUID, status)
}

// ListCollaborators : список соавторов сессии.
// Доступен владельцу и принятым соведущим
func (s *CollaborationService) ListCollaborators(ctx context.Context, sessionUUID string) ([]model.Collaborator, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[CollaborationService] database connection не найден в context")
	}

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return nil, fmt.Errorf("[CollaborationService] пользователь не авторизован")
	}

	owner, err := s.sessionRepository.IsOwner(ctx, db, sessionUUID, claims.UserUUID)
	if err != nil {
		return nil, util.LogError("[CollaborationService] ошибка проверки владения", err)
	}
	if !owner {
		member, err := s.collaboratorRepository.IsMember(ctx, db, sessionUUID, claims.UserUUID)
		if err != nil {
			return nil, util.LogError("[CollaborationService] ошибка проверки участия", err)
		}
		if !member {
			return nil, fmt.Errorf("[CollaborationService] доступ запрещён")
		}
	}

	return s.collaboratorRepository.ListBySession(ctx, db, sessionUUID)
}
