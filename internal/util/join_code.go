package util

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"math/big"

	"github.com/jmoiron/sqlx"
)

// JoinCodeLength : длина join-кода сессии
const JoinCodeLength = 8

const joinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateJoinCode : генерирует случайный join-код длиной length символов
func GenerateJoinCode(length int) (string, error) {
	code := make([]byte, length)
	max := big.NewInt(int64(len(joinCodeAlphabet)))

	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", LogError("[util] ошибка генерации join-кода", err)
		}
		code[i] = joinCodeAlphabet[n.Int64()]
	}

	return string(code), nil
}

// GenerateUniqueJoinCode : генерирует join-код, которого ещё нет в БД.
// Пространство кодов велико (36^8), поэтому повтор цикла практически невозможен
func GenerateUniqueJoinCode(ctx context.Context, db *sqlx.DB, length int) (string, error) {
	for {
		code, err := GenerateJoinCode(length)
		if err != nil {
			return "", err
		}

		var exists bool
		err = db.GetContext(ctx, &exists, `
			SELECT EXISTS (SELECT 1 FROM presentation_sessions WHERE join_code = $1)
		`, code)

		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return "", LogError("[util] ошибка проверки join-кода", err)
		}

		if exists == false {
			return code, nil
		}
	}
}

// GenerateInvitationToken : генерирует случайный токен приглашения длиной length символов
func GenerateInvitationToken(length int) (string, error) {
	byteLength := (length + 1) / 2 // т.к. hex кодирует 1 байт = 2 символа
	bytes := make([]byte, byteLength)

	_, err := rand.Read(bytes)
	if err != nil {
		return "", LogError("[util] ошибка генерации токена", err)
	}

	return hex.EncodeToString(bytes)[:length], nil
}
