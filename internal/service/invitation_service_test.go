package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"presentation-web-server/config"
	"presentation-web-server/internal/model"
	"presentation-web-server/internal/security"
	srv "presentation-web-server/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockInvitationRepository struct{ mock.Mock }

func (m *MockInvitationRepository) Create(ctx context.Context, exec sqlx.ExtContext, invitation *model.Invitation) (*model.Invitation, error) {
	args := m.Called(ctx, exec, invitation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) FindByToken(ctx context.Context, exec sqlx.ExtContext, token string) (*model.Invitation, error) {
	args := m.Called(ctx, exec, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) FindByUUID(ctx context.Context, exec sqlx.ExtContext, invitationUUID string) (*model.Invitation, error) {
	args := m.Called(ctx, exec, invitationUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) ListByCreator(ctx context.Context, exec sqlx.ExtContext, creatorUUID string) ([]model.Invitation, error) {
	args := m.Called(ctx, exec, creatorUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) MarkUsed(ctx context.Context, exec sqlx.ExtContext, invitationUUID string) error {
	return m.Called(ctx, exec, invitationUUID).Error(0)
}

func (m *MockInvitationRepository) Revoke(ctx context.Context, exec sqlx.ExtContext, invitationUUID string) error {
	return m.Called(ctx, exec, invitationUUID).Error(0)
}

func TestInvitationService_CreateInvitation(t *testing.T) {
	db := &config.Database{}

	tests := []struct {
		name        string
		claims      *security.Claims
		email       string
		setupMocks  func(i *MockInvitationRepository)
		expectError string
	}{
		{
			name:        "regular user cannot invite",
			claims:      &security.Claims{UserUUID: "user-1", Role: model.RoleUser},
			email:       "client@example.com",
			expectError: "[InvitationService] доступ запрещён",
		},
		{
			name:        "invalid email",
			claims:      &security.Claims{UserUUID: "sales-1", Role: model.RoleCommercial},
			email:       "not-an-email",
			expectError: "[InvitationService] некорректный email",
		},
		{
			name:   "commercial role issues a token",
			claims: &security.Claims{UserUUID: "sales-1", Role: model.RoleCommercial},
			email:  "client@example.com",
			setupMocks: func(i *MockInvitationRepository) {
				i.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(inv *model.Invitation) bool {
					return inv.CreatorUUID == "sales-1" && inv.Email == "client@example.com" && len(inv.Token) == 32
				})).Return(&model.Invitation{UUID: "inv-1", CreatorUUID: "sales-1"}, nil)
			},
		},
		{
			name:   "admin may invite too",
			claims: &security.Claims{UserUUID: "admin-1", Role: model.RoleAdmin},
			email:  "client@example.com",
			setupMocks: func(i *MockInvitationRepository) {
				i.On("Create", mock.Anything, mock.Anything, mock.Anything).
					Return(&model.Invitation{UUID: "inv-2", CreatorUUID: "admin-1"}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockInvitationRepository)
			service := srv.NewInvitationService(mockRepo)

			if tt.setupMocks != nil {
				tt.setupMocks(mockRepo)
			}

			invitation, err := service.CreateInvitation(testContext(db, tt.claims), tt.email, "")

			if tt.expectError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				assert.Nil(t, invitation)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, invitation)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestInvitationService_RevokeInvitation(t *testing.T) {
	db := &config.Database{}
	invitation := &model.Invitation{UUID: "inv-1", CreatorUUID: "sales-1"}

	tests := []struct {
		name        string
		claims      *security.Claims
		setupMocks  func(i *MockInvitationRepository)
		expectError string
	}{
		{
			name:   "creator revokes own invitation",
			claims: &security.Claims{UserUUID: "sales-1", Role: model.RoleCommercial},
			setupMocks: func(i *MockInvitationRepository) {
				i.On("FindByUUID", mock.Anything, mock.Anything, "inv-1").Return(invitation, nil)
				i.On("Revoke", mock.Anything, mock.Anything, "inv-1").Return(nil)
			},
		},
		{
			name:   "admin revokes someone else's invitation",
			claims: &security.Claims{UserUUID: "admin-1", Role: model.RoleAdmin},
			setupMocks: func(i *MockInvitationRepository) {
				i.On("FindByUUID", mock.Anything, mock.Anything, "inv-1").Return(invitation, nil)
				i.On("Revoke", mock.Anything, mock.Anything, "inv-1").Return(nil)
			},
		},
		{
			name:   "another commercial user is forbidden",
			claims: &security.Claims{UserUUID: "sales-2", Role: model.RoleCommercial},
			setupMocks: func(i *MockInvitationRepository) {
				i.On("FindByUUID", mock.Anything, mock.Anything, "inv-1").Return(invitation, nil)
			},
			expectError: "[InvitationService] доступ запрещён",
		},
		{
			name:   "invitation not found",
			claims: &security.Claims{UserUUID: "sales-1", Role: model.RoleCommercial},
			setupMocks: func(i *MockInvitationRepository) {
				i.On("FindByUUID", mock.Anything, mock.Anything, "inv-1").Return(nil, errors.New("sql: no rows in result set"))
			},
			expectError: "[InvitationService] приглашение не найдено",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockInvitationRepository)
			service := srv.NewInvitationService(mockRepo)

			if tt.setupMocks != nil {
				tt.setupMocks(mockRepo)
			}

			err := service.RevokeInvitation(testContext(db, tt.claims), "inv-1")

			if tt.expectError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				mockRepo.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestInvitationService_RedeemInvitation(t *testing.T) {
	db := &config.Database{}

	t.Run("first redeem marks the invitation used", func(t *testing.T) {
		mockRepo := new(MockInvitationRepository)
		service := srv.NewInvitationService(mockRepo)

		mockRepo.On("FindByToken", mock.Anything, mock.Anything, "token-abc").
			Return(&model.Invitation{UUID: "inv-1", Token: "token-abc", Used: false}, nil)
		mockRepo.On("MarkUsed", mock.Anything, mock.Anything, "inv-1").Return(nil)

		invitation, err := service.RedeemInvitation(testContext(db, nil), "token-abc")

		assert.NoError(t, err)
		assert.True(t, invitation.Used)
		mockRepo.AssertExpectations(t)
	})

	t.Run("repeat redeem does not mark again", func(t *testing.T) {
		mockRepo := new(MockInvitationRepository)
		service := srv.NewInvitationService(mockRepo)

		mockRepo.On("FindByToken", mock.Anything, mock.Anything, "token-abc").
			Return(&model.Invitation{UUID: "inv-1", Token: "token-abc", Used: true}, nil)

		invitation, err := service.RedeemInvitation(testContext(db, nil), "token-abc")

		assert.NoError(t, err)
		assert.True(t, invitation.Used)
		mockRepo.AssertNotCalled(t, "MarkUsed", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("revoked token is rejected", func(t *testing.T) {
		mockRepo := new(MockInvitationRepository)
		service := srv.NewInvitationService(mockRepo)

		revokedAt := time.Now()
		mockRepo.On("FindByToken", mock.Anything, mock.Anything, "token-abc").
			Return(&model.Invitation{UUID: "inv-1", Token: "token-abc", RevokedAt: &revokedAt}, nil)

		_, err := service.RedeemInvitation(testContext(db, nil), "token-abc")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "приглашение отозвано")
		mockRepo.AssertNotCalled(t, "MarkUsed", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown token", func(t *testing.T) {
		mockRepo := new(MockInvitationRepository)
		service := srv.NewInvitationService(mockRepo)

		mockRepo.On("FindByToken", mock.Anything, mock.Anything, "nope").
			Return(nil, errors.New("sql: no rows in result set"))

		_, err := service.RedeemInvitation(testContext(db, nil), "nope")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "приглашение не найдено")
	})
}
