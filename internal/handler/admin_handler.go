package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"presentation-web-server/internal/model"
	requestresponse "presentation-web-server/internal/model/requestresponse"
	"presentation-web-server/internal/ports"
	"presentation-web-server/internal/util"

	"github.com/go-chi/chi/v5"
)

// AdminHandler : административный контур (роль admin)
type AdminHandler struct {
	ports.UserService
}

func NewAdminHandler(userService ports.UserService) *AdminHandler {
	return &AdminHandler{userService}
}

// ListUsers godoc
// @Summary Список пользователей
// @Description Возвращает пользователей с cursor-based пагинацией.
// @Tags Admin
// @Produce json
// @Param cursor query string false "Курсор следующей страницы"
// @Param limit query int false "Лимит на странице" default(20) minimum(1) maximum(100)
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	cursor := r.URL.Query().Get("cursor")

	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			util.HandleError(w, "неверное значение limit", http.StatusBadRequest)
			return
		}
		if parsed > 100 {
			limit = 100
		} else {
			limit = parsed
		}
	}

	users, nextCursor, err := h.UserService.ListUsers(r.Context(), cursor, limit)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "доступ запрещён"):
			util.HandleError(w, "доступ запрещён", http.StatusForbidden)
		case strings.Contains(err.Error(), "не авторизован"):
			util.HandleError(w, "пользователь не авторизован", http.StatusUnauthorized)
		default:
			util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	resp := struct {
		Data struct {
			Users []*model.User `json:"users"`
		} `json:"data"`
		NextCursor string `json:"next_cursor,omitempty"`
		Count      int    `json:"count"`
	}{
		NextCursor: nextCursor,
		Count:      len(users),
	}
	resp.Data.Users = users

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// SetRole godoc
// @Summary Назначение роли пользователю
// @Description Меняет роль пользователя (user, admin, commercial).
// @Tags Admin
// @Accept json
// @Produce json
// @Param user_id path string true "UUID пользователя"
// @Param body body requestresponse.SetRoleRequest true "Новая роль"
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Неизвестная роль"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/admin/users/{user_id}/role [put]
func (h *AdminHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	userUUID := chi.URLParam(r, "user_id")
	if userUUID == "" {
		util.HandleError(w, "ID пользователя обязателен", http.StatusBadRequest)
		return
	}

	var req requestresponse.SetRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.UserService.SetRole(r.Context(), userUUID, req.Role); err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			util.HandleError(w, "пользователь не найден", http.StatusNotFound)
		case strings.Contains(err.Error(), "доступ запрещён"):
			util.HandleError(w, "доступ запрещён", http.StatusForbidden)
		case strings.Contains(err.Error(), "не авторизован"):
			util.HandleError(w, "пользователь не авторизован", http.StatusUnauthorized)
		case strings.Contains(err.Error(), "неизвестная роль"):
			util.HandleError(w, err.Error(), http.StatusBadRequest)
		default:
			util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "роль обновлена"})
}
