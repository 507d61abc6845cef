package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	requestresponse "presentation-web-server/internal/model/requestresponse"
	"presentation-web-server/internal/ports"
	"presentation-web-server/internal/util"

	"github.com/go-chi/chi/v5"
)

type CollaborationHandler struct {
	ports.CollaborationService
}

func NewCollaborationHandler(collaborationService ports.CollaborationService) *CollaborationHandler {
	return &CollaborationHandler{collaborationService}
}

func handleCollaborationError(w http.ResponseWriter, err error) {
	log.Println(err)
	switch {
	case strings.Contains(err.Error(), "не найден"),
		strings.Contains(err.Error(), "не найдена"),
		strings.Contains(err.Error(), "не найдено"):
		util.HandleError(w, err.Error(), http.StatusNotFound)
	case strings.Contains(err.Error(), "доступ запрещён"):
		util.HandleError(w, "доступ запрещён", http.StatusForbidden)
	case strings.Contains(err.Error(), "не авторизован"):
		util.HandleError(w, "пользователь не авторизован", http.StatusUnauthorized)
	case strings.Contains(err.Error(), "неизвестное право"),
		strings.Contains(err.Error(), "самого себя"),
		strings.Contains(err.Error(), "уже обработано"):
		util.HandleError(w, err.Error(), http.StatusBadRequest)
	default:
		util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}

// InviteCollaborator godoc
// @Summary Приглашение соведущего
// @Description Владелец сессии приглашает зарегистрированного пользователя
// по email с правами view, edit или control.
// @Tags Collaboration
// @Accept json
// @Produce json
// @Param session_id path string true "UUID сессии"
// @Param body body requestresponse.InviteCollaboratorRequest true "Email и права"
// @Success 201 {object} requestresponse.SuccessResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/sessions/{session_id}/collaborators [post]
func (h *CollaborationHandler) InviteCollaborator(w http.ResponseWriter, r *http.Request) {
	sessionUUID := chi.URLParam(r, "session_id")
	if sessionUUID == "" {
		util.HandleError(w, "ID сессии обязателен", http.StatusBadRequest)
		return
	}

	var req requestresponse.InviteCollaboratorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.CollaborationService.InviteCollaborator(r.Context(), sessionUUID, req.Email, req.Permission); err != nil {
		handleCollaborationError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "приглашение отправлено"})
}

// RespondInvitation godoc
// @Summary Ответ на приглашение в сессию
// @Description Приглашённый принимает или отклоняет приглашение.
// Ответить можно только один раз.
// @Tags Collaboration
// @Accept json
// @Produce json
// @Param session_id path string true "UUID сессии"
// @Param body body requestresponse.RespondCollaborationRequest true "Решение"
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Приглашение уже обработано"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/sessions/{session_id}/collaborators/respond [post]
func (h *CollaborationHandler) RespondInvitation(w http.ResponseWriter, r *http.Request) {
	sessionUUID := chi.URLParam(r, "session_id")
	if sessionUUID == "" {
		util.HandleError(w, "ID сессии обязателен", http.StatusBadRequest)
		return
	}

	var req requestresponse.RespondCollaborationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.CollaborationService.RespondInvitation(r.Context(), sessionUUID, req.Accept); err != nil {
		handleCollaborationError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "ответ сохранён"})
}

// ListCollaborators godoc
// @Summary Список соведущих сессии
// @Tags Collaboration
// @Produce json
// @Param session_id path string true "UUID сессии"
// @Success 200 {object} requestresponse.ListCollaboratorsResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/sessions/{session_id}/collaborators [get]
func (h *CollaborationHandler) ListCollaborators(w http.ResponseWriter, r *http.Request) {
	sessionUUID := chi.URLParam(r, "session_id")
	if sessionUUID == "" {
		util.HandleError(w, "ID сессии обязателен", http.StatusBadRequest)
		return
	}

	collaborators, err := h.CollaborationService.ListCollaborators(r.Context(), sessionUUID)
	if err != nil {
		handleCollaborationError(w, err)
		return
	}

	resp := requestresponse.ListCollaboratorsResponse{}
	resp.Data.Collaborators = collaborators

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
