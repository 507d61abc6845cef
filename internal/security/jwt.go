package security

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"presentation-web-server/config"
	"presentation-web-server/internal/model"
	"presentation-web-server/internal/util"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	UserContextKey contextKey = "user"
)

// Claims : принципал запроса.
// Delegated = true означает, что запрос авторизован по коммерческому
// токену и действует от имени создателя приглашения (acts-as)
type Claims struct {
	UserUUID       string `json:"user_uuid"`
	Email          string `json:"email,omitempty"`
	Role           string `json:"role"`
	Delegated      bool   `json:"-"`
	InvitationUUID string `json:"-"`
	jwt.RegisteredClaims
}

type JWTService struct {
	*config.JWTConfig
}

func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{cfg}
}

// IssueToken : выдаёт подписанный JWT для пользователя (subject: uuid + email)
func (service *JWTService) IssueToken(user *model.User) (string, error) {
	ttl, err := time.ParseDuration(service.TokenTTL)
	if err != nil {
		return "", util.LogError("ошибка парсинга token_ttl", err)
	}

	email := ""
	if user.Email != nil {
		email = *user.Email
	}

	claims := Claims{
		UserUUID: user.UUID,
		Email:    email,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UUID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "presentation-web-server",
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := jwtToken.SignedString([]byte(service.SecretKey))
	if err != nil {
		return "", util.LogError("ошибка подписи токена", err)
	}

	return signed, nil
}

func (service *JWTService) ValidateJWT(jwtTokenStr string, secretKey []byte) (*Claims, error) {
	var claims = &Claims{}

	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return secretKey, nil
	})

	if err != nil || jwtToken.Valid == false {
		return nil, util.LogError("невалидный токен", err)
	}

	return claims, nil
}

// SetSessionCookie : ставит cookie с JWT на время жизни токена
func (service *JWTService) SetSessionCookie(w http.ResponseWriter, token string) {
	ttl, err := time.ParseDuration(service.TokenTTL)
	if err != nil {
		ttl = 7 * 24 * time.Hour
	}

	http.SetCookie(w, &http.Cookie{
		Name:     service.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (service *JWTService) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     service.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func GetClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(UserContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, fmt.Errorf("пользователь не авторизован")
	}
	return claims, nil
}
