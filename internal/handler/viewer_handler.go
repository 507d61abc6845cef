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

	"github.com/go-chi/chi/v5"
)

// ViewerHandler : публичный контур зрителей. Авторизации нет, сессия
// адресуется только join-кодом
type ViewerHandler struct {
	ports.ViewerService
}

func NewViewerHandler(viewerService ports.ViewerService) *ViewerHandler {
	return &ViewerHandler{viewerService}
}

func handleViewerError(w http.ResponseWriter, err error) {
	log.Println(err)
	switch {
	case strings.Contains(err.Error(), "не найдена"):
		util.HandleError(w, "сессия не найдена", http.StatusNotFound)
	case strings.Contains(err.Error(), "обязателен"):
		util.HandleError(w, err.Error(), http.StatusBadRequest)
	default:
		util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}

// GetSnapshot godoc
// @Summary Снапшот сессии по join-коду
// @Description Состояние сессии для зрителя: название, отображаемый документ,
// ориентация. Зрители запрашивают его повторно с фиксированным интервалом.
// Завершённая сессия неотличима от несуществующей.
// @Tags Viewers
// @Produce json
// @Param code path string true "Join-код сессии"
// @Success 200 {object} requestresponse.SnapshotResponse
// @Failure 404 {object} requestresponse.ErrorResponse "Сессия не найдена или завершена"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /view/{code} [get]
func (h *ViewerHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	joinCode := strings.ToUpper(chi.URLParam(r, "code"))
	if joinCode == "" {
		util.HandleError(w, "join-код обязателен", http.StatusBadRequest)
		return
	}

	snapshot, err := h.ViewerService.GetSessionByCode(r.Context(), joinCode)
	if err != nil {
		handleViewerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.SnapshotResponse{Data: snapshot})
}

// JoinSession godoc
// @Summary Подключение зрителя к сессии
// @Description Регистрирует подключение зрителя и возвращает снапшот сессии.
// Каждое подключение увеличивает накопительный счётчик у докладчика.
// @Tags Viewers
// @Accept json
// @Produce json
// @Param code path string true "Join-код сессии"
// @Param body body requestresponse.JoinSessionRequest true "Идентификатор зрителя"
// @Success 200 {object} requestresponse.SnapshotResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse "Сессия не найдена или завершена"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /view/{code}/join [post]
func (h *ViewerHandler) JoinSession(w http.ResponseWriter, r *http.Request) {
	joinCode := strings.ToUpper(chi.URLParam(r, "code"))
	if joinCode == "" {
		util.HandleError(w, "join-код обязателен", http.StatusBadRequest)
		return
	}

	var req requestresponse.JoinSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	// аутентифицированный зритель привязывается к своему пользователю
	var userUUID *string
	if claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims); ok && claims != nil {
		userUUID = &claims.UserUUID
	}

	snapshot, err := h.ViewerService.JoinSession(r.Context(), joinCode, req.ViewerID, userUUID)
	if err != nil {
		handleViewerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.SnapshotResponse{Data: snapshot})
}

// UpdateViewerCursor godoc
// @Summary Положение курсора зрителя
// @Description Сохраняет позицию курсора зрителя. Одна строка на пару
// (сессия, зритель), перезаписывается на месте.
// @Tags Viewers
// @Accept json
// @Produce json
// @Param code path string true "Join-код сессии"
// @Param body body requestresponse.ViewerCursorRequest true "Координаты и зум"
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /view/{code}/cursor [put]
func (h *ViewerHandler) UpdateViewerCursor(w http.ResponseWriter, r *http.Request) {
	joinCode := strings.ToUpper(chi.URLParam(r, "code"))
	if joinCode == "" {
		util.HandleError(w, "join-код обязателен", http.StatusBadRequest)
		return
	}

	var req requestresponse.ViewerCursorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}
	if req.ViewerID == "" {
		util.HandleError(w, "viewer_id обязателен", http.StatusBadRequest)
		return
	}

	if err := h.ViewerService.UpdateViewerCursor(r.Context(), joinCode, req.ViewerID, req.PosX, req.PosY, req.Zoom); err != nil {
		handleViewerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "курсор обновлён"})
}
