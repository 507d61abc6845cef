package util_test

import (
	"context"
	"strings"
	"testing"

	"presentation-web-server/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const joinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func TestGenerateJoinCode(t *testing.T) {
	code, err := util.GenerateJoinCode(util.JoinCodeLength)

	require.NoError(t, err)
	assert.Len(t, code, util.JoinCodeLength)
	for _, c := range code {
		assert.True(t, strings.ContainsRune(joinCodeAlphabet, c), "недопустимый символ: %c", c)
	}
}

func TestGenerateJoinCode_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := util.GenerateJoinCode(util.JoinCodeLength)
		require.NoError(t, err)
		seen[code] = true
	}
	// 36^8 комбинаций, сто подряд одинаковых кодов означали бы сломанный генератор
	assert.Greater(t, len(seen), 1)
}

func TestGenerateUniqueJoinCode(t *testing.T) {
	t.Run("free code is returned as is", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()
		db := sqlx.NewDb(mockDB, "postgres")

		mock.ExpectQuery("SELECT EXISTS").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		code, err := util.GenerateUniqueJoinCode(context.Background(), db, util.JoinCodeLength)

		assert.NoError(t, err)
		assert.Len(t, code, util.JoinCodeLength)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("collision triggers a retry", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()
		db := sqlx.NewDb(mockDB, "postgres")

		mock.ExpectQuery("SELECT EXISTS").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectQuery("SELECT EXISTS").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		code, err := util.GenerateUniqueJoinCode(context.Background(), db, util.JoinCodeLength)

		assert.NoError(t, err)
		assert.Len(t, code, util.JoinCodeLength)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGenerateInvitationToken(t *testing.T) {
	token, err := util.GenerateInvitationToken(32)

	require.NoError(t, err)
	assert.Len(t, token, 32)
	// hex-алфавит
	for _, c := range token {
		assert.True(t, strings.ContainsRune("0123456789abcdef", c), "недопустимый символ: %c", c)
	}

	odd, err := util.GenerateInvitationToken(7)
	require.NoError(t, err)
	assert.Len(t, odd, 7)
}
