package security_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"presentation-web-server/config"
	"presentation-web-server/internal/model"
	"presentation-web-server/internal/security"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func newJWTService(ttl string) *security.JWTService {
	return security.NewJWTService(&config.JWTConfig{
		SecretKey:  "test-secret-key",
		TokenTTL:   ttl,
		CookieName: "session_token",
	})
}

func testUser() *model.User {
	email := "user@example.com"
	return &model.User{UUID: "user-1", Email: &email, Role: model.RoleUser}
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	service := newJWTService("168h")

	token, err := service.IssueToken(testUser())
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateJWT(token, []byte("test-secret-key"))
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserUUID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, model.RoleUser, claims.Role)
	assert.Equal(t, "presentation-web-server", claims.Issuer)
}

func TestJWTService_WrongSecret(t *testing.T) {
	service := newJWTService("168h")

	token, err := service.IssueToken(testUser())
	assert.NoError(t, err)

	_, err = service.ValidateJWT(token, []byte("another-secret"))
	assert.Error(t, err)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	service := newJWTService("-1h")

	token, err := service.IssueToken(testUser())
	assert.NoError(t, err)

	_, err = service.ValidateJWT(token, []byte("test-secret-key"))
	assert.Error(t, err)
}

func TestJWTService_ForeignSigningMethod(t *testing.T) {
	service := newJWTService("168h")

	// токен подписан HS256, сервис принимает только HS512
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_uuid": "user-1"})
	signed, err := foreign.SignedString([]byte("test-secret-key"))
	assert.NoError(t, err)

	_, err = service.ValidateJWT(signed, []byte("test-secret-key"))
	assert.Error(t, err)
}

func TestJWTService_SessionCookie(t *testing.T) {
	service := newJWTService("168h")

	t.Run("set", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		service.SetSessionCookie(recorder, "signed-token")

		cookies := recorder.Result().Cookies()
		assert.Len(t, cookies, 1)
		assert.Equal(t, "session_token", cookies[0].Name)
		assert.Equal(t, "signed-token", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	})

	t.Run("clear", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		service.ClearSessionCookie(recorder)

		cookies := recorder.Result().Cookies()
		assert.Len(t, cookies, 1)
		assert.Empty(t, cookies[0].Value)
		assert.Negative(t, cookies[0].MaxAge)
	})
}
