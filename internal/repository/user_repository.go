package repository

import (
	"context"
	"fmt"
	"time"

	"presentation-web-server/config"
	"presentation-web-server/internal/model"
	"presentation-web-server/internal/util"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// CreateUser : сохраняет нового пользователя
func (r *UserRepository) CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error) {
	query := `
	INSERT INTO users (uuid, external_id, email, password_hash, role)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING uuid, external_id, email, role, created_at
	`

	createdUser := &model.User{}
	err := exec.QueryRowxContext(ctx, query, user.UUID, user.ExternalID, user.Email, user.PasswordHash, user.Role).
		StructScan(createdUser)

	if err != nil {
		return nil, util.LogError("[UserRepo] ошибка вставки данных в БД", err)
	}

	return createdUser, nil
}

// UpsertByExternalID : создаёт пользователя по внешнему идентификатору или
// обновляет lastSignedIn существующего. Upsert атомарен на уровне БД
func (r *UserRepository) UpsertByExternalID(ctx context.Context, exec sqlx.ExtContext, externalID, email, role string) (*model.User, error) {
	query := `
	INSERT INTO users (uuid, external_id, email, role, last_signed_in)
	VALUES ($1, $2, $3, $4, NOW())
	ON CONFLICT (external_id) DO UPDATE
	SET last_signed_in = NOW(), email = EXCLUDED.email
	RETURNING uuid, external_id, email, password_hash, role, last_signed_in, created_at
	`

	var user model.User
	err := exec.QueryRowxContext(ctx, query, uuid.New().String(), externalID, email, role).StructScan(&user)
	if err != nil {
		return nil, util.LogError("[UserRepo] не удалось выполнить upsert пользователя", err)
	}
	return &user, nil
}

// FindByUUID : ищет пользователя по UUID
func (r *UserRepository) FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error) {
	query := `SELECT uuid, external_id, email, password_hash, role, last_signed_in, created_at FROM users WHERE uuid = $1`
	var user model.User
	err := sqlx.GetContext(ctx, exec, &user, query, uuid)
	if err != nil {
		return nil, util.LogError("[UserRepo] не удалось найти пользователя в БД", err)
	}
	return &user, nil
}

// FindByEmail : ищет пользователя по email
func (r *UserRepository) FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error) {
	query := `SELECT uuid, external_id, email, password_hash, role, last_signed_in, created_at FROM users WHERE email = $1`
	var user model.User
	err := sqlx.GetContext(ctx, exec, &user, query, email)
	if err != nil {
		return nil, util.LogError("[UserRepo] не удалось найти пользователя по email", err)
	}
	return &user, nil
}

// TouchLastSignedIn : обновляет отметку последнего входа
func (r *UserRepository) TouchLastSignedIn(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	query := `UPDATE users SET last_signed_in = NOW() WHERE uuid = $1`
	_, err := exec.ExecContext(ctx, query, uuid)
	if err != nil {
		return util.LogError("[UserRepo] не удалось обновить last_signed_in", err)
	}
	return nil
}

// UpdateRole : назначает роль пользователю
func (r *UserRepository) UpdateRole(ctx context.Context, exec sqlx.ExtContext, uuid, role string) error {
	query := `UPDATE users SET role = $2 WHERE uuid = $1`
	_, err := exec.ExecContext(ctx, query, uuid, role)
	if err != nil {
		return util.LogError("[UserRepo] не удалось обновить роль", err)
	}
	return nil
}

// Exists : проверяет, существует ли пользователь по UUID
func (r *UserRepository) Exists(ctx context.Context, exec sqlx.ExtContext, uuid string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE uuid = $1)`
	err := sqlx.GetContext(ctx, exec, &exists, query, uuid)
	if err != nil {
		return false, util.LogError("[UserRepo] ошибка проверки существования пользователя", err)
	}
	return exists, nil
}

// EmailExists : проверяет, занят ли email
func (r *UserRepository) EmailExists(ctx context.Context, exec sqlx.ExtContext, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	err := sqlx.GetContext(ctx, exec, &exists, query, email)
	if err != nil {
		return false, util.LogError("[UserRepo] ошибка проверки email", err)
	}
	return exists, nil
}

// ListUsers : вывод списка пользователей с cursor-based пагинацией
func (r *UserRepository) ListUsers(ctx context.Context, exec sqlx.ExtContext, cursor string, limit int) ([]*model.User, string, error) {
	query := `
        SELECT uuid, external_id, email, role, last_signed_in, created_at
        FROM users
        WHERE created_at > $1
        ORDER BY created_at ASC, uuid ASC
        LIMIT $2
    `

	var cursorTime time.Time
	var err error

	if cursor == "" {
		cursorTime = time.Time{}
	} else {
		cursorTime, err = time.Parse(time.RFC3339Nano, cursor)
		if err != nil {
			return nil, "", fmt.Errorf("invalid cursor format: %w", err)
		}
	}

	var users []*model.User
	err = sqlx.SelectContext(ctx, exec, &users, query, cursorTime, limit+1) // +1 для проверки наличия следующей страницы
	if err != nil {
		return nil, "", util.LogError("[UserRepo] не удалось получить список пользователей", err)
	}

	var nextCursor string
	if len(users) > limit {
		users = users[:limit]
		nextCursor = users[len(users)-1].CreatedAt.Format(time.RFC3339Nano)
	}

	return users, nextCursor, nil
}
