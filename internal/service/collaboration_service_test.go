package service_test

import (
	"errors"
	"testing"

	"presentation-web-server/config"
	"presentation-web-server/internal/model"
	"presentation-web-server/internal/security"
	srv "presentation-web-server/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCollaborationService(
	collabRepo *MockCollaboratorRepository,
	sessionRepo *MockSessionRepository,
	userRepo *MockUserRepository,
) *srv.CollaborationService {
	return srv.NewCollaborationService(collabRepo, sessionRepo, userRepo)
}

func TestCollaborationService_InviteCollaborator(t *testing.T) {
	db := &config.Database{}
	owner := &security.Claims{UserUUID: "owner-1", Role: model.RoleUser}
	inviteeEmail := "guest@example.com"

	tests := []struct {
		name        string
		claims      *security.Claims
		email       string
		permission  string
		setupMocks  func(c *MockCollaboratorRepository, s *MockSessionRepository, u *MockUserRepository)
		expectError string
	}{
		{
			name:        "unknown permission",
			claims:      owner,
			email:       inviteeEmail,
			permission:  "superedit",
			expectError: "неизвестное право",
		},
		{
			name:       "non-owner is forbidden",
			claims:     &security.Claims{UserUUID: "user-2", Role: model.RoleUser},
			email:      inviteeEmail,
			permission: model.PermissionEdit,
			setupMocks: func(c *MockCollaboratorRepository, s *MockSessionRepository, u *MockUserRepository) {
				s.On("IsOwner", mock.Anything, mock.Anything, "session-1", "user-2").Return(false, nil)
			},
			expectError: "доступ запрещён",
		},
		{
			name:       "invitee is not registered",
			claims:     owner,
			email:      "nobody@example.com",
			permission: model.PermissionView,
			setupMocks: func(c *MockCollaboratorRepository, s *MockSessionRepository, u *MockUserRepository) {
				s.On("IsOwner", mock.Anything, mock.Anything, "session-1", "owner-1").Return(true, nil)
				u.On("FindByEmail", mock.Anything, mock.Anything, "nobody@example.com").
					Return(nil, errors.New("sql: no rows in result set"))
			},
			expectError: "пользователь не найден",
		},
		{
			name:       "self-invite is rejected",
			claims:     owner,
			email:      "owner@example.com",
			permission: model.PermissionControl,
			setupMocks: func(c *MockCollaboratorRepository, s *MockSessionRepository, u *MockUserRepository) {
				s.On("IsOwner", mock.Anything, mock.Anything, "session-1", "owner-1").Return(true, nil)
				u.On("FindByEmail", mock.Anything, mock.Anything, "owner@example.com").
					Return(&model.User{UUID: "owner-1"}, nil)
			},
			expectError: "нельзя пригласить самого себя",
		},
		{
			name:       "invite lands as pending",
			claims:     owner,
			email:      "  Guest@Example.COM ",
			permission: model.PermissionEdit,
			setupMocks: func(c *MockCollaboratorRepository, s *MockSessionRepository, u *MockUserRepository) {
				s.On("IsOwner", mock.Anything, mock.Anything, "session-1", "owner-1").Return(true, nil)
				u.On("FindByEmail", mock.Anything, mock.Anything, "guest@example.com").
					Return(&model.User{UUID: "guest-1", Email: &inviteeEmail}, nil)
				c.On("Upsert", mock.Anything, mock.Anything, mock.MatchedBy(func(col *model.Collaborator) bool {
					return col.SessionUUID == "session-1" &&
						col.UserUUID == "guest-1" &&
						col.Permission == model.PermissionEdit &&
						col.Status == model.CollaboratorPending
				})).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collabRepo := new(MockCollaboratorRepository)
			sessionRepo := new(MockSessionRepository)
			userRepo := new(MockUserRepository)
			service := newCollaborationService(collabRepo, sessionRepo, userRepo)

			if tt.setupMocks != nil {
				tt.setupMocks(collabRepo, sessionRepo, userRepo)
			}

			err := service.InviteCollaborator(testContext(db, tt.claims), "session-1", tt.email, tt.permission)

			if tt.expectError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
			} else {
				assert.NoError(t, err)
			}

			collabRepo.AssertExpectations(t)
		})
	}
}

func TestCollaborationService_RespondInvitation(t *testing.T) {
	db := &config.Database{}
	invitee := &security.Claims{UserUUID: "guest-1", Role: model.RoleUser}

	t.Run("accept moves the record to accepted", func(t *testing.T) {
		collabRepo := new(MockCollaboratorRepository)
		service := newCollaborationService(collabRepo, new(MockSessionRepository), new(MockUserRepository))

		collabRepo.On("Get", mock.Anything, mock.Anything, "session-1", "guest-1").
			Return(&model.Collaborator{SessionUUID: "session-1", UserUUID: "guest-1", Status: model.CollaboratorPending}, nil)
		collabRepo.On("UpdateStatus", mock.Anything, mock.Anything, "session-1", "guest-1", model.CollaboratorAccepted).Return(nil)

		err := service.RespondInvitation(testContext(db, invitee), "session-1", true)

		assert.NoError(t, err)
		collabRepo.AssertExpectations(t)
	})

	t.Run("reject moves the record to rejected", func(t *testing.T) {
		collabRepo := new(MockCollaboratorRepository)
		service := newCollaborationService(collabRepo, new(MockSessionRepository), new(MockUserRepository))

		collabRepo.On("Get", mock.Anything, mock.Anything, "session-1", "guest-1").
			Return(&model.Collaborator{SessionUUID: "session-1", UserUUID: "guest-1", Status: model.CollaboratorPending}, nil)
		collabRepo.On("UpdateStatus", mock.Anything, mock.Anything, "session-1", "guest-1", model.CollaboratorRejected).Return(nil)

		err := service.RespondInvitation(testContext(db, invitee), "session-1", false)

		assert.NoError(t, err)
		collabRepo.AssertExpectations(t)
	})

	t.Run("already processed invitation", func(t *testing.T) {
		collabRepo := new(MockCollaboratorRepository)
		service := newCollaborationService(collabRepo, new(MockSessionRepository), new(MockUserRepository))

		collabRepo.On("Get", mock.Anything, mock.Anything, "session-1", "guest-1").
			Return(&model.Collaborator{SessionUUID: "session-1", UserUUID: "guest-1", Status: model.CollaboratorAccepted}, nil)

		err := service.RespondInvitation(testContext(db, invitee), "session-1", false)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "приглашение уже обработано")
		collabRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no invitation for this user", func(t *testing.T) {
		collabRepo := new(MockCollaboratorRepository)
		service := newCollaborationService(collabRepo, new(MockSessionRepository), new(MockUserRepository))

		collabRepo.On("Get", mock.Anything, mock.Anything, "session-1", "guest-1").
			Return(nil, errors.New("sql: no rows in result set"))

		err := service.RespondInvitation(testContext(db, invitee), "session-1", true)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "приглашение не найдено")
	})
}

func TestCollaborationService_ListCollaborators(t *testing.T) {
	db := &config.Database{}

	t.Run("owner sees the list", func(t *testing.T) {
		collabRepo := new(MockCollaboratorRepository)
		sessionRepo := new(MockSessionRepository)
		service := newCollaborationService(collabRepo, sessionRepo, new(MockUserRepository))

		sessionRepo.On("IsOwner", mock.Anything, mock.Anything, "session-1", "owner-1").Return(true, nil)
		collabRepo.On("ListBySession", mock.Anything, mock.Anything, "session-1").
			Return([]model.Collaborator{
				{SessionUUID: "session-1", UserUUID: "guest-1", Permission: model.PermissionEdit, Status: model.CollaboratorAccepted},
			}, nil)

		collaborators, err := service.ListCollaborators(testContext(db, &security.Claims{UserUUID: "owner-1", Role: model.RoleUser}), "session-1")

		assert.NoError(t, err)
		assert.Len(t, collaborators, 1)
	})

	t.Run("accepted collaborator sees the list", func(t *testing.T) {
		collabRepo := new(MockCollaboratorRepository)
		sessionRepo := new(MockSessionRepository)
		service := newCollaborationService(collabRepo, sessionRepo, new(MockUserRepository))

		sessionRepo.On("IsOwner", mock.Anything, mock.Anything, "session-1", "guest-1").Return(false, nil)
		collabRepo.On("IsMember", mock.Anything, mock.Anything, "session-1", "guest-1").Return(true, nil)
		collabRepo.On("ListBySession", mock.Anything, mock.Anything, "session-1").
			Return([]model.Collaborator{
				{SessionUUID: "session-1", UserUUID: "guest-1", Permission: model.PermissionEdit, Status: model.CollaboratorAccepted},
			}, nil)

		collaborators, err := service.ListCollaborators(testContext(db, &security.Claims{UserUUID: "guest-1", Role: model.RoleUser}), "session-1")

		assert.NoError(t, err)
		assert.Len(t, collaborators, 1)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		collabRepo := new(MockCollaboratorRepository)
		sessionRepo := new(MockSessionRepository)
		service := newCollaborationService(collabRepo, sessionRepo, new(MockUserRepository))

		sessionRepo.On("IsOwner", mock.Anything, mock.Anything, "session-1", "user-2").Return(false, nil)
		collabRepo.On("IsMember", mock.Anything, mock.Anything, "session-1", "user-2").Return(false, nil)

		_, err := service.ListCollaborators(testContext(db, &security.Claims{UserUUID: "user-2", Role: model.RoleUser}), "session-1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "доступ запрещён")
		collabRepo.AssertNotCalled(t, "ListBySession", mock.Anything, mock.Anything, mock.Anything)
	})
}
