package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"presentation-web-server/config"
	"presentation-web-server/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionRepo(t *testing.T) (*repository.SessionRepository, sqlmock.Sqlmock, *config.Database) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := &config.Database{DB: sqlx.NewDb(mockDB, "postgres")}
	return repository.NewSessionRepository(db), mock, db
}

func sessionColumns() []string {
	return []string{
		"uuid", "presenter_uuid", "join_code", "title", "is_active",
		"current_document_uuid", "current_orientation", "created_at", "updated_at",
	}
}

func TestSessionRepository_FindActiveByJoinCode(t *testing.T) {
	t.Run("active session is found", func(t *testing.T) {
		repo, mock, db := newSessionRepo(t)

		now := time.Now()
		mock.ExpectQuery("FROM presentation_sessions WHERE join_code").
			WithArgs("K4T9XW2A").
			WillReturnRows(sqlmock.NewRows(sessionColumns()).
				AddRow("session-1", "owner-1", "K4T9XW2A", "Demo", true, nil, "portrait", now, now))

		session, err := repo.FindActiveByJoinCode(context.Background(), db, "K4T9XW2A")

		assert.NoError(t, err)
		assert.Equal(t, "session-1", session.UUID)
		assert.True(t, session.IsActive)
		assert.Nil(t, session.CurrentDocumentUUID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ended session yields no rows", func(t *testing.T) {
		repo, mock, db := newSessionRepo(t)

		mock.ExpectQuery("FROM presentation_sessions WHERE join_code").
			WithArgs("ENDED123").
			WillReturnRows(sqlmock.NewRows(sessionColumns()))

		_, err := repo.FindActiveByJoinCode(context.Background(), db, "ENDED123")

		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.True(t, repository.IsNotFound(err))
	})
}

func TestSessionRepository_IsOwner(t *testing.T) {
	repo, mock, db := newSessionRepo(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("session-1", "owner-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("session-1", "user-2").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	owner, err := repo.IsOwner(context.Background(), db, "session-1", "owner-1")
	assert.NoError(t, err)
	assert.True(t, owner)

	stranger, err := repo.IsOwner(context.Background(), db, "session-1", "user-2")
	assert.NoError(t, err)
	assert.False(t, stranger)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_End(t *testing.T) {
	t.Run("active session is ended", func(t *testing.T) {
		repo, mock, db := newSessionRepo(t)

		mock.ExpectExec("UPDATE presentation_sessions SET is_active = FALSE").
			WithArgs("session-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.End(context.Background(), db, "session-1")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown session", func(t *testing.T) {
		repo, mock, db := newSessionRepo(t)

		mock.ExpectExec("UPDATE presentation_sessions SET is_active = FALSE").
			WithArgs("session-x").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.End(context.Background(), db, "session-x")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "сессия не найдена")
	})
}

func TestSessionRepository_ClearCurrentDocument(t *testing.T) {
	repo, mock, db := newSessionRepo(t)

	// сброс условный: указатель очищается, только если ссылается на документ
	mock.ExpectExec("SET current_document_uuid = NULL").
		WithArgs("session-1", "doc-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ClearCurrentDocument(context.Background(), db, "session-1", "doc-1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_UpdateCurrentDocument(t *testing.T) {
	repo, mock, db := newSessionRepo(t)

	docUUID := "doc-1"
	mock.ExpectExec("SET current_document_uuid = \\$2").
		WithArgs("session-1", "doc-1", "landscape").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateCurrentDocument(context.Background(), db, "session-1", &docUUID, "landscape")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
