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

	"github.com/google/uuid"
)

// InvitationService : коммерческие пригласительные ссылки. Токен
// приглашения — capability: запрос с валидным неотозванным токеном
// действует от имени создателя приглашения. Создавать приглашения
// могут роли commercial и admin
type InvitationService struct {
	invitationRepository ports.InvitationRepository
}

func NewInvitationService(invitationRepository ports.InvitationRepository) *InvitationService {
	return &InvitationService{invitationRepository: invitationRepository}
}

func canInvite(claims *security.Claims) bool {
	return claims.Role == model.RoleCommercial || claims.Role == model.RoleAdmin
}

// CreateInvitation : выпускает токен делегирования. Отзыв возможен
// в любой момент и действует немедленно
func (s *InvitationService) CreateInvitation(ctx context.Context, email, name string) (*model.Invitation, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[InvitationService] database connection не найден в context")
	}

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return nil, fmt.Errorf("[InvitationService] пользователь не авторизован")
	}
	if !canInvite(claims) {
		return nil, fmt.Errorf("[InvitationService] доступ запрещён")
	}

	email = strings.TrimSpace(strings.ToLower(email))
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("[InvitationService] некорректный email")
	}

	token, err := util.GenerateInvitationToken(32)
	if err != nil {
		return nil, util.LogError("[InvitationService] не удалось сгенерировать токен", err)
	}

	invitation := &model.Invitation{
		UUID:        uuid.New().String(),
		Token:       token,
		Email:       email,
		CreatorUUID: claims.UserUUID,
	}
	if name != "" {
		invitation.InviteeName = &name
	}

	created, err := s.invitationRepository.Create(ctx, db, invitation)
	if err != nil {
		return nil, util.LogError("[InvitationService] не удалось сохранить приглашение", err)
	}

	log.Printf("[InvitationService] приглашение %s создано пользователем %s", created.UUID, claims.UserUUID)

	return created, nil
}

// ListInvitations : приглашения, выпущенные принципалом
func (s *InvitationService) ListInvitations(ctx context.Context) ([]model.Invitation, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[InvitationService] database connection не найден в context")
	}

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return nil, fmt.Errorf("[InvitationService] пользователь не авторизован")
	}
	if !canInvite(claims) {
		return nil, fmt.Errorf("[InvitationService] доступ запрещён")
	}

	return s.invitationRepository.ListByCreator(ctx, db, claims.UserUUID)
}

// RevokeInvitation : отзыв токена создателем (админ может отзывать чужие).
// Все последующие запросы с этим токеном перестают авторизоваться
func (s *InvitationService) RevokeInvitation(ctx context.Context, invitationUUID string) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[InvitationService] database connection не найден в context")
	}

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return fmt.Errorf("[InvitationService] пользователь не авторизован")
	}

	invitation, err := s.invitationRepository.FindByUUID(ctx, db, invitationUUID)
	if err != nil {
		return fmt.Errorf("[InvitationService] приглашение не найдено")
	}

	if invitation.CreatorUUID != claims.UserUUID && claims.Role != model.RoleAdmin {
		return fmt.Errorf("[InvitationService] доступ запрещён")
	}

	if err := s.invitationRepository.Revoke(ctx, db, invitationUUID); err != nil {
		return util.LogError("[InvitationService] не удалось отозвать приглашение", err)
	}

	log.Printf("[InvitationService] приглашение %s отозвано", invitationUUID)

	return nil
}

// RedeemInvitation : первое использование токена приглашённым.
// Помечает приглашение использованным; токен остаётся рабочим
// до явного отзыва
func (s *InvitationService) RedeemInvitation(ctx context.Context, token string) (*model.Invitation, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[InvitationService] database connection не найден в context")
	}

	invitation, err := s.invitationRepository.FindByToken(ctx, db, token)
	if err != nil {
		return nil, fmt.Errorf("[InvitationService] приглашение не найдено")
	}
	if invitation.RevokedAt != nil {
		return nil, fmt.Errorf("[InvitationService] приглашение отозвано")
	}

	if !invitation.Used {
		if err := s.invitationRepository.MarkUsed(ctx, db, invitation.UUID); err != nil {
			return nil, util.LogError("[InvitationService] не удалось пометить приглашение", err)
		}
		invitation.Used = true
	}

	return invitation, nil
}
