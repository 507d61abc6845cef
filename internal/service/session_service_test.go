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

type MockSessionRepository struct{ mock.Mock }

func (m *MockSessionRepository) Create(ctx context.Context, exec sqlx.ExtContext, session *model.Session) (*model.Session, error) {
	args := m.Called(ctx, exec, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionRepository) FindByUUID(ctx context.Context, exec sqlx.ExtContext, sessionUUID string) (*model.Session, error) {
	args := m.Called(ctx, exec, sessionUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionRepository) FindActiveByJoinCode(ctx context.Context, exec sqlx.ExtContext, joinCode string) (*model.Session, error) {
	args := m.Called(ctx, exec, joinCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionRepository) ListByPresenter(ctx context.Context, exec sqlx.ExtContext, presenterUUID string) ([]model.Session, error) {
	args := m.Called(ctx, exec, presenterUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Session), args.Error(1)
}

func (m *MockSessionRepository) IsOwner(ctx context.Context, exec sqlx.ExtContext, sessionUUID, presenterUUID string) (bool, error) {
	args := m.Called(ctx, exec, sessionUUID, presenterUUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionRepository) UpdateCurrentDocument(ctx context.Context, exec sqlx.ExtContext, sessionUUID string, documentUUID *string, orientation string) error {
	return m.Called(ctx, exec, sessionUUID, documentUUID, orientation).Error(0)
}

func (m *MockSessionRepository) ClearCurrentDocument(ctx context.Context, exec sqlx.ExtContext, sessionUUID, documentUUID string) error {
	return m.Called(ctx, exec, sessionUUID, documentUUID).Error(0)
}

func (m *MockSessionRepository) UpdateTitle(ctx context.Context, exec sqlx.ExtContext, sessionUUID, title string) error {
	return m.Called(ctx, exec, sessionUUID, title).Error(0)
}

func (m *MockSessionRepository) End(ctx context.Context, exec sqlx.ExtContext, sessionUUID string) error {
	return m.Called(ctx, exec, sessionUUID).Error(0)
}

func (m *MockSessionRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	args := m.Called(ctx)
	return args.Get(0).(sqlx.ExtContext), args.Get(1).(func() error), args.Get(2).(func() error), args.Error(3)
}

type MockDocumentRepository struct{ mock.Mock }

func (m *MockDocumentRepository) Create(ctx context.Context, exec sqlx.ExtContext, document *model.Document) error {
	return m.Called(ctx, exec, document).Error(0)
}

func (m *MockDocumentRepository) FindByUUID(ctx context.Context, exec sqlx.ExtContext, documentUUID string) (*model.Document, error) {
	args := m.Called(ctx, exec, documentUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) BelongsToSession(ctx context.Context, exec sqlx.ExtContext, documentUUID, sessionUUID string) (bool, error) {
	args := m.Called(ctx, exec, documentUUID, sessionUUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentRepository) ListBySession(ctx context.Context, exec sqlx.ExtContext, sessionUUID string) ([]model.Document, error) {
	args := m.Called(ctx, exec, sessionUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, exec sqlx.ExtContext, documentUUID string) (string, error) {
	args := m.Called(ctx, exec, documentUUID)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentRepository) UpdateOrder(ctx context.Context, exec sqlx.ExtContext, documentUUID string, order int) error {
	return m.Called(ctx, exec, documentUUID, order).Error(0)
}

func (m *MockDocumentRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	args := m.Called(ctx)
	return args.Get(0).(sqlx.ExtContext), args.Get(1).(func() error), args.Get(2).(func() error), args.Error(3)
}

type MockViewerRepository struct{ mock.Mock }

func (m *MockViewerRepository) Append(ctx context.Context, exec sqlx.ExtContext, viewer *model.Viewer) error {
	return m.Called(ctx, exec, viewer).Error(0)
}

func (m *MockViewerRepository) TouchActivity(ctx context.Context, exec sqlx.ExtContext, sessionUUID, viewerID string) error {
	return m.Called(ctx, exec, sessionUUID, viewerID).Error(0)
}

func (m *MockViewerRepository) Count(ctx context.Context, exec sqlx.ExtContext, sessionUUID string) (int, error) {
	args := m.Called(ctx, exec, sessionUUID)
	return args.Int(0), args.Error(1)
}

type MockCursorRepository struct{ mock.Mock }

func (m *MockCursorRepository) UpsertPresenterCursor(ctx context.Context, exec sqlx.ExtContext, cursor *model.PresenterCursor) error {
	return m.Called(ctx, exec, cursor).Error(0)
}

func (m *MockCursorRepository) GetPresenterCursor(ctx context.Context, exec sqlx.ExtContext, sessionUUID string) (*model.PresenterCursor, error) {
	args := m.Called(ctx, exec, sessionUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PresenterCursor), args.Error(1)
}

func (m *MockCursorRepository) UpsertViewerCursor(ctx context.Context, exec sqlx.ExtContext, cursor *model.ViewerCursor) error {
	return m.Called(ctx, exec, cursor).Error(0)
}

type MockCacheRepository struct{ mock.Mock }

func (m *MockCacheRepository) SetSnapshot(ctx context.Context, joinCode string, snapshot *model.SessionSnapshot) error {
	return m.Called(ctx, joinCode, snapshot).Error(0)
}

func (m *MockCacheRepository) GetSnapshot(ctx context.Context, joinCode string) (*model.SessionSnapshot, error) {
	args := m.Called(ctx, joinCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SessionSnapshot), args.Error(1)
}

func (m *MockCacheRepository) DeleteSnapshot(ctx context.Context, joinCode string) error {
	return m.Called(ctx, joinCode).Error(0)
}

func newSessionService(
	sessionRepo *MockSessionRepository,
	docRepo *MockDocumentRepository,
	viewerRepo *MockViewerRepository,
	cursorRepo *MockCursorRepository,
	cacheRepo *MockCacheRepository,
) *srv.SessionService {
	return srv.NewSessionService(sessionRepo, docRepo, viewerRepo, cursorRepo, cacheRepo)
}

func testContext(db *config.Database, claims *security.Claims) context.Context {
	ctx := context.Background()
	if db != nil {
		ctx = context.WithValue(ctx, "db", db)
	}
	if claims != nil {
		ctx = context.WithValue(ctx, security.UserContextKey, claims)
	}
	return ctx
}

func TestSessionService_UpdateCurrentDocument(t *testing.T) {
	db := &config.Database{}
	owner := &security.Claims{UserUUID: "presenter-1", Role: model.RoleUser}
	stranger := &security.Claims{UserUUID: "intruder", Role: model.RoleUser}
	docUUID := "doc-1"

	activeSession := &model.Session{
		UUID:          "session-1",
		PresenterUUID: "presenter-1",
		JoinCode:      "K4T9XW2A",
		IsActive:      true,
	}

	tests := []struct {
		name         string
		claims       *security.Claims
		documentUUID *string
		orientation  string
		setupMocks   func(s *MockSessionRepository, d *MockDocumentRepository, c *MockCacheRepository)
		expectError  string
	}{
		{
			name:         "not authorized",
			claims:       nil,
			documentUUID: &docUUID,
			orientation:  model.OrientationPortrait,
			expectError:  "[SessionService] пользователь не авторизован",
		},
		{
			name:         "invalid orientation",
			claims:       owner,
			documentUUID: &docUUID,
			orientation:  "diagonal",
			expectError:  "[SessionService] неизвестная ориентация",
		},
		{
			name:         "session not found",
			claims:       owner,
			documentUUID: &docUUID,
			orientation:  model.OrientationPortrait,
			setupMocks: func(s *MockSessionRepository, d *MockDocumentRepository, c *MockCacheRepository) {
				s.On("FindByUUID", mock.Anything, mock.Anything, "session-1").
					Return(nil, errors.New("sql: no rows in result set"))
			},
			expectError: "[SessionService] сессия не найдена",
		},
		{
			name:         "not the owner",
			claims:       stranger,
			documentUUID: &docUUID,
			orientation:  model.OrientationPortrait,
			setupMocks: func(s *MockSessionRepository, d *MockDocumentRepository, c *MockCacheRepository) {
				s.On("FindByUUID", mock.Anything, mock.Anything, "session-1").Return(activeSession, nil)
			},
			expectError: "[SessionService] доступ запрещён",
		},
		{
			name:         "ended session rejects display",
			claims:       owner,
			documentUUID: &docUUID,
			orientation:  model.OrientationPortrait,
			setupMocks: func(s *MockSessionRepository, d *MockDocumentRepository, c *MockCacheRepository) {
				ended := *activeSession
				ended.IsActive = false
				s.On("FindByUUID", mock.Anything, mock.Anything, "session-1").Return(&ended, nil)
			},
			expectError: "[SessionService] сессия завершена",
		},
		{
			name:         "document from another session",
			claims:       owner,
			documentUUID: &docUUID,
			orientation:  model.OrientationPortrait,
			setupMocks: func(s *MockSessionRepository, d *MockDocumentRepository, c *MockCacheRepository) {
				s.On("FindByUUID", mock.Anything, mock.Anything, "session-1").Return(activeSession, nil)
				d.On("BelongsToSession", mock.Anything, mock.Anything, "doc-1", "session-1").Return(false, nil)
			},
			expectError: "[SessionService] документ не принадлежит сессии",
		},
		{
			name:         "display document",
			claims:       owner,
			documentUUID: &docUUID,
			orientation:  model.OrientationLandscape,
			setupMocks: func(s *MockSessionRepository, d *MockDocumentRepository, c *MockCacheRepository) {
				s.On("FindByUUID", mock.Anything, mock.Anything, "session-1").Return(activeSession, nil)
				d.On("BelongsToSession", mock.Anything, mock.Anything, "doc-1", "session-1").Return(true, nil)
				s.On("UpdateCurrentDocument", mock.Anything, mock.Anything, "session-1", &docUUID, model.OrientationLandscape).Return(nil)
				c.On("DeleteSnapshot", mock.Anything, "K4T9XW2A").Return(nil)
			},
		},
		{
			name:         "clear displayed document",
			claims:       owner,
			documentUUID: nil,
			orientation:  model.OrientationPortrait,
			setupMocks: func(s *MockSessionRepository, d *MockDocumentRepository, c *MockCacheRepository) {
				s.On("FindByUUID", mock.Anything, mock.Anything, "session-1").Return(activeSession, nil)
				s.On("UpdateCurrentDocument", mock.Anything, mock.Anything, "session-1", (*string)(nil), model.OrientationPortrait).Return(nil)
				c.On("DeleteSnapshot", mock.Anything, "K4T9XW2A").Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessionRepo := new(MockSessionRepository)
			docRepo := new(MockDocumentRepository)
			cacheRepo := new(MockCacheRepository)
			service := newSessionService(sessionRepo, docRepo, new(MockViewerRepository), new(MockCursorRepository), cacheRepo)

			if tt.setupMocks != nil {
				tt.setupMocks(sessionRepo, docRepo, cacheRepo)
			}

			err := service.UpdateCurrentDocument(testContext(db, tt.claims), "session-1", tt.documentUUID, tt.orientation)

			if tt.expectError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
			} else {
				assert.NoError(t, err)
			}

			sessionRepo.AssertExpectations(t)
			docRepo.AssertExpectations(t)
			cacheRepo.AssertExpectations(t)
		})
	}
}

func TestSessionService_EndSession(t *testing.T) {
	db := &config.Database{}
	session := &model.Session{
		UUID:          "session-1",
		PresenterUUID: "presenter-1",
		JoinCode:      "K4T9XW2A",
		IsActive:      true,
	}

	t.Run("owner ends session and cache is invalidated", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		cacheRepo := new(MockCacheRepository)
		service := newSessionService(sessionRepo, new(MockDocumentRepository), new(MockViewerRepository), new(MockCursorRepository), cacheRepo)

		sessionRepo.On("FindByUUID", mock.Anything, mock.Anything, "session-1").Return(session, nil)
		sessionRepo.On("End", mock.Anything, mock.Anything, "session-1").Return(nil)
		cacheRepo.On("DeleteSnapshot", mock.Anything, "K4T9XW2A").Return(nil)

		ctx := testContext(db, &security.Claims{UserUUID: "presenter-1"})
		err := service.EndSession(ctx, "session-1")

		assert.NoError(t, err)
		sessionRepo.AssertExpectations(t)
		cacheRepo.AssertExpectations(t)
	})

	t.Run("stranger cannot end session", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		service := newSessionService(sessionRepo, new(MockDocumentRepository), new(MockViewerRepository), new(MockCursorRepository), new(MockCacheRepository))

		sessionRepo.On("FindByUUID", mock.Anything, mock.Anything, "session-1").Return(session, nil)

		ctx := testContext(db, &security.Claims{UserUUID: "intruder"})
		err := service.EndSession(ctx, "session-1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "доступ запрещён")
		sessionRepo.AssertNotCalled(t, "End", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSessionService_GetViewerCount(t *testing.T) {
	db := &config.Database{}
	session := &model.Session{UUID: "session-1", PresenterUUID: "presenter-1", JoinCode: "K4T9XW2A", IsActive: true}

	t.Run("owner sees cumulative count", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		viewerRepo := new(MockViewerRepository)
		service := newSessionService(sessionRepo, new(MockDocumentRepository), viewerRepo, new(MockCursorRepository), new(MockCacheRepository))

		sessionRepo.On("FindByUUID", mock.Anything, mock.Anything, "session-1").Return(session, nil)
		viewerRepo.On("Count", mock.Anything, mock.Anything, "session-1").Return(12, nil)

		count, err := service.GetViewerCount(testContext(db, &security.Claims{UserUUID: "presenter-1"}), "session-1")

		assert.NoError(t, err)
		assert.Equal(t, 12, count)
	})

	t.Run("stranger gets forbidden", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		service := newSessionService(sessionRepo, new(MockDocumentRepository), new(MockViewerRepository), new(MockCursorRepository), new(MockCacheRepository))

		sessionRepo.On("FindByUUID", mock.Anything, mock.Anything, "session-1").Return(session, nil)

		_, err := service.GetViewerCount(testContext(db, &security.Claims{UserUUID: "intruder"}), "session-1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "доступ запрещён")
	})
}

func TestSessionService_GetCursorAndZoom(t *testing.T) {
	db := &config.Database{}

	t.Run("cursor never set falls back to defaults", func(t *testing.T) {
		cursorRepo := new(MockCursorRepository)
		service := newSessionService(new(MockSessionRepository), new(MockDocumentRepository), new(MockViewerRepository), cursorRepo, new(MockCacheRepository))

		cursorRepo.On("GetPresenterCursor", mock.Anything, mock.Anything, "session-1").
			Return(nil, errors.New("sql: no rows in result set"))

		cursor, err := service.GetCursorAndZoom(testContext(db, nil), "session-1")

		assert.NoError(t, err)
		assert.Equal(t, 1.0, cursor.Zoom)
		assert.Equal(t, 0.0, cursor.PosX)
	})

	t.Run("stored cursor is returned", func(t *testing.T) {
		cursorRepo := new(MockCursorRepository)
		service := newSessionService(new(MockSessionRepository), new(MockDocumentRepository), new(MockViewerRepository), cursorRepo, new(MockCacheRepository))

		stored := &model.PresenterCursor{SessionUUID: "session-1", PosX: 0.4, PosY: 0.2, Zoom: 1.5, UpdatedAt: time.Now()}
		cursorRepo.On("GetPresenterCursor", mock.Anything, mock.Anything, "session-1").Return(stored, nil)

		cursor, err := service.GetCursorAndZoom(testContext(db, nil), "session-1")

		assert.NoError(t, err)
		assert.Equal(t, stored, cursor)
	})
}
