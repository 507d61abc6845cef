package ports

import (
	"net/http"

	"presentation-web-server/internal/model"
	"presentation-web-server/internal/security"
)

type JWTServiceInterface interface {
	IssueToken(user *model.User) (string, error)
	ValidateJWT(tokenString string, secret []byte) (*security.Claims, error)
	SetSessionCookie(w http.ResponseWriter, token string)
	ClearSessionCookie(w http.ResponseWriter)
}
