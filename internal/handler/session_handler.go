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

type SessionHandler struct {
	ports.SessionService
}

func NewSessionHandler(sessionService ports.SessionService) *SessionHandler {
	return &SessionHandler{sessionService}
}

// handleSessionError : общая раскладка ошибок сервиса сессий по статусам
func handleSessionError(w http.ResponseWriter, err error) {
	log.Println(err)
	switch {
	case strings.Contains(err.Error(), "не найдена"),
		strings.Contains(err.Error(), "не найден"):
		util.HandleError(w, "сессия не найдена", http.StatusNotFound)
	case strings.Contains(err.Error(), "доступ запрещён"):
		util.HandleError(w, "доступ запрещён", http.StatusForbidden)
	case strings.Contains(err.Error(), "не авторизован"):
		util.HandleError(w, "пользователь не авторизован", http.StatusUnauthorized)
	case strings.Contains(err.Error(), "не принадлежит сессии"),
		strings.Contains(err.Error(), "неизвестная ориентация"),
		strings.Contains(err.Error(), "обязательно"),
		strings.Contains(err.Error(), "завершена"):
		util.HandleError(w, err.Error(), http.StatusBadRequest)
	default:
		util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}

// CreateSession godoc
// @Summary Создание сессии презентации
// @Description Создаёт активную сессию с уникальным join-кодом.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param body body requestresponse.CreateSessionRequest true "Название сессии"
// @Success 201 {object} requestresponse.SessionResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/sessions [post]
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	session, err := h.SessionService.CreateSession(r.Context(), req.Title)
	if err != nil {
		handleSessionError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(requestresponse.SessionResponseFromModel(session))
}

// ListSessions godoc
// @Summary Список сессий принципала
// @Description Возвращает сессии, которыми владеет текущий принципал,
// включая завершённые.
// @Tags Sessions
// @Produce json
// @Success 200 {object} requestresponse.ListSessionsResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/sessions [get]
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.SessionService.GetSessions(r.Context())
	if err != nil {
		handleSessionError(w, err)
		return
	}

	resp := requestresponse.ListSessionsResponse{}
	resp.Data.Sessions = make([]requestresponse.SessionResponse, 0, len(sessions))
	for i := range sessions {
		resp.Data.Sessions = append(resp.Data.Sessions, requestresponse.SessionResponseFromModel(&sessions[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// DisplayDocument godoc
// @Summary Смена отображаемого документа
// @Description Переключает документ, который видят зрители. document_uuid = null
// убирает документ с экрана. Документ обязан принадлежать этой сессии.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "UUID сессии"
// @Param body body requestresponse.DisplayDocumentRequest true "Документ и ориентация"
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Документ не принадлежит сессии или сессия завершена"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/sessions/{session_id}/display [put]
func (h *SessionHandler) DisplayDocument(w http.ResponseWriter, r *http.Request) {
	sessionUUID := chi.URLParam(r, "session_id")
	if sessionUUID == "" {
		util.HandleError(w, "ID сессии обязателен", http.StatusBadRequest)
		return
	}

	var req requestresponse.DisplayDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.SessionService.UpdateCurrentDocument(r.Context(), sessionUUID, req.DocumentUUID, req.Orientation); err != nil {
		handleSessionError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "документ обновлён"})
}

// UpdateTitle godoc
// @Summary Переименование сессии
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "UUID сессии"
// @Param body body requestresponse.UpdateTitleRequest true "Новое название"
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/sessions/{session_id}/title [put]
func (h *SessionHandler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	sessionUUID := chi.URLParam(r, "session_id")
	if sessionUUID == "" {
		util.HandleError(w, "ID сессии обязателен", http.StatusBadRequest)
		return
	}

	var req requestresponse.UpdateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.SessionService.UpdateTitle(r.Context(), sessionUUID, req.Title); err != nil {
		handleSessionError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "название обновлено"})
}

// EndSession godoc
// @Summary Завершение сессии
// @Description Переводит сессию в терминальное состояние. Для зрителей
// завершённая сессия перестаёт существовать.
// @Tags Sessions
// @Produce json
// @Param session_id path string true "UUID сессии"
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/sessions/{session_id}/end [post]
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	sessionUUID := chi.URLParam(r, "session_id")
	if sessionUUID == "" {
		util.HandleError(w, "ID сессии обязателен", http.StatusBadRequest)
		return
	}

	if err := h.SessionService.EndSession(r.Context(), sessionUUID); err != nil {
		handleSessionError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "сессия завершена"})
}

// GetViewerCount godoc
// @Summary Счётчик зрителей
// @Description Возвращает накопительное количество подключений к сессии.
// @Tags Sessions
// @Produce json
// @Param session_id path string true "UUID сессии"
// @Success 200 {object} requestresponse.ViewerCountResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/sessions/{session_id}/viewers [get]
func (h *SessionHandler) GetViewerCount(w http.ResponseWriter, r *http.Request) {
	sessionUUID := chi.URLParam(r, "session_id")
	if sessionUUID == "" {
		util.HandleError(w, "ID сессии обязателен", http.StatusBadRequest)
		return
	}

	count, err := h.SessionService.GetViewerCount(r.Context(), sessionUUID)
	if err != nil {
		handleSessionError(w, err)
		return
	}

	resp := requestresponse.ViewerCountResponse{}
	resp.Response.Count = count

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// UpdateCursor godoc
// @Summary Положение указателя докладчика
// @Description Сохраняет позицию указателя и зум. Одна строка на сессию,
// побеждает последняя запись.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "UUID сессии"
// @Param body body requestresponse.CursorRequest true "Координаты и зум"
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/sessions/{session_id}/cursor [put]
func (h *SessionHandler) UpdateCursor(w http.ResponseWriter, r *http.Request) {
	sessionUUID := chi.URLParam(r, "session_id")
	if sessionUUID == "" {
		util.HandleError(w, "ID сессии обязателен", http.StatusBadRequest)
		return
	}

	var req requestresponse.CursorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.SessionService.UpdateZoomAndCursor(r.Context(), sessionUUID, req.PosX, req.PosY, req.Zoom); err != nil {
		handleSessionError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "курсор обновлён"})
}

// GetCursor godoc
// @Summary Текущее положение указателя докладчика
// @Tags Sessions
// @Produce json
// @Param session_id path string true "UUID сессии"
// @Success 200 {object} requestresponse.CursorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/sessions/{session_id}/cursor [get]
func (h *SessionHandler) GetCursor(w http.ResponseWriter, r *http.Request) {
	sessionUUID := chi.URLParam(r, "session_id")
	if sessionUUID == "" {
		util.HandleError(w, "ID сессии обязателен", http.StatusBadRequest)
		return
	}

	cursor, err := h.SessionService.GetCursorAndZoom(r.Context(), sessionUUID)
	if err != nil {
		handleSessionError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.CursorResponse{Response: *cursor})
}
