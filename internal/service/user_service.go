package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"presentation-web-server/config"
	"presentation-web-server/internal/model"
	"presentation-web-server/internal/ports"
	"presentation-web-server/internal/security"

	"github.com/google/uuid"
)

type UserService struct {
	userRepository ports.UserRepository
}

func NewUserService(userRepository ports.UserRepository) *UserService {
	return &UserService{userRepository: userRepository}
}

// Register : регистрация по email и паролю.
// Дубликат email — конфликт, а не внутренняя ошибка
func (s *UserService) Register(ctx context.Context, email string, password string) (*model.User, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[UserService] database connection не найден в context")
	}

	email = strings.TrimSpace(strings.ToLower(email))
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("[UserService] некорректный email")
	}

	if err := validatePassword(password); err != nil {
		return nil, fmt.Errorf("[UserService] %w", err)
	}

	exists, err := s.userRepository.EmailExists(ctx, db, email)
	if err != nil {
		return nil, fmt.Errorf("[UserService] ошибка проверки email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("[UserService] email уже занят")
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("[UserService] не удалось создать хэш пароля: %w", err)
	}

	user := &model.User{
		UUID:         uuid.New().String(),
		Email:        &email,
		PasswordHash: &hash,
		Role:         model.RoleUser,
	}

	created, err := s.userRepository.CreateUser(ctx, db, user)
	if err != nil {
		return nil, fmt.Errorf("[UserService] ошибка создания пользователя: %w", err)
	}

	return created, nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("пароль должен содержать минимум 8 символов")
	}

	var letterCount, digitCount int
	for _, c := range password {
		switch {
		case unicode.IsLetter(c):
			letterCount++
		case unicode.IsDigit(c):
			digitCount++
		}
	}

	if letterCount == 0 || digitCount == 0 {
		return fmt.Errorf("пароль должен содержать буквы и цифры")
	}

	return nil
}

// Login : проверка пароля; на каждый вход обновляется lastSignedIn
func (s *UserService) Login(ctx context.Context, email string, password string) (*model.User, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[UserService] database connection не найден в context")
	}

	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.FindByEmail(ctx, db, email)
	if err != nil {
		return nil, fmt.Errorf("[UserService] пользователь не найден")
	}

	if user.PasswordHash == nil || !security.CheckPassword(password, *user.PasswordHash) {
		return nil, fmt.Errorf("[UserService] неверный пароль")
	}

	if err := s.userRepository.TouchLastSignedIn(ctx, db, user.UUID); err != nil {
		return nil, fmt.Errorf("[UserService] не удалось обновить last_signed_in: %w", err)
	}

	return user, nil
}

// ListUsers : список пользователей (только админ), cursor-based пагинация
func (s *UserService) ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, "", fmt.Errorf("[UserService] database connection не найден в context")
	}

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return nil, "", fmt.Errorf("[UserService] пользователь не авторизован")
	}
	if claims.Role != model.RoleAdmin {
		return nil, "", fmt.Errorf("[UserService] доступ запрещён")
	}

	users, nextCursor, err := s.userRepository.ListUsers(ctx, db, cursor, limit)
	if err != nil {
		return nil, "", err
	}

	return users, nextCursor, nil
}

// SetRole : назначение роли (только админ)
func (s *UserService) SetRole(ctx context.Context, userUUID string, role string) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[UserService] database connection не найден в context")
	}

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return fmt.Errorf("[UserService] пользователь не авторизован")
	}
	if claims.Role != model.RoleAdmin {
		return fmt.Errorf("[UserService] доступ запрещён")
	}

	switch role {
	case model.RoleUser, model.RoleAdmin, model.RoleCommercial:
	default:
		return fmt.Errorf("[UserService] неизвестная роль: %s", role)
	}

	exists, err := s.userRepository.Exists(ctx, db, userUUID)
	if err != nil {
		return fmt.Errorf("[UserService] ошибка проверки пользователя: %w", err)
	}
	if exists == false {
		return fmt.Errorf("[UserService] пользователь не найден")
	}

	return s.userRepository.UpdateRole(ctx, db, userUUID, role)
}
