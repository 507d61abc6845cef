package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	requestresponse "presentation-web-server/internal/model/requestresponse"
	"presentation-web-server/internal/ports"
	"presentation-web-server/internal/security"
	"presentation-web-server/internal/util"
)

type AuthHandler struct {
	ports.UserService
	jwtService ports.JWTServiceInterface
}

func NewAuthHandler(userService ports.UserService, jwtService ports.JWTServiceInterface) *AuthHandler {
	return &AuthHandler{userService, jwtService}
}

// Register godoc
// @Summary Регистрация по email и паролю
// @Description Создаёт пользователя и сразу ставит сессионную cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "Email и пароль"
// @Success 201 {object} requestresponse.CurrentUserResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный email или пароль"
// @Failure 409 {object} requestresponse.ErrorResponse "Email уже занят"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "уже занят"):
			util.HandleError(w, "email уже занят", http.StatusConflict)
		case strings.Contains(err.Error(), "некорректный email"),
			strings.Contains(err.Error(), "пароль"):
			util.HandleError(w, err.Error(), http.StatusBadRequest)
		default:
			util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	token, err := h.jwtService.IssueToken(user)
	if err != nil {
		log.Println(err)
		util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}
	h.jwtService.SetSessionCookie(w, token)

	resp := requestresponse.CurrentUserResponse{}
	resp.Response.UserUUID = user.UUID
	if user.Email != nil {
		resp.Response.Email = *user.Email
	}
	resp.Response.Role = user.Role

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// Login godoc
// @Summary Аутентификация по email и паролю
// @Description Проверяет пароль и ставит сессионную cookie с JWT.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Email и пароль"
// @Success 200 {object} requestresponse.CurrentUserResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Неверный формат запроса"
// @Failure 401 {object} requestresponse.ErrorResponse "Неверный email или пароль"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"),
			strings.Contains(err.Error(), "неверный пароль"):
			util.HandleError(w, "неверный email или пароль", http.StatusUnauthorized)
		default:
			util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	token, err := h.jwtService.IssueToken(user)
	if err != nil {
		log.Println(err)
		util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}
	h.jwtService.SetSessionCookie(w, token)

	resp := requestresponse.CurrentUserResponse{}
	resp.Response.UserUUID = user.UUID
	if user.Email != nil {
		resp.Response.Email = *user.Email
	}
	resp.Response.Role = user.Role

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Logout godoc
// @Summary Выход из сессии
// @Description Сбрасывает сессионную cookie.
// @Tags Auth
// @Produce json
// @Success 200 {object} requestresponse.SuccessResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.jwtService.ClearSessionCookie(w)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "выход выполнен"})
}

// Me godoc
// @Summary Текущий принципал
// @Description Возвращает принципала запроса независимо от канала авторизации
// (OAuth, cookie или коммерческий токен).
// @Tags Auth
// @Produce json
// @Success 200 {object} requestresponse.CurrentUserResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Пользователь не авторизован"
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "пользователь не авторизован", http.StatusUnauthorized)
		return
	}

	resp := requestresponse.CurrentUserResponse{}
	resp.Response.UserUUID = claims.UserUUID
	resp.Response.Email = claims.Email
	resp.Response.Role = claims.Role
	resp.Response.Delegated = claims.Delegated

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
