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

// InvitationHandler : коммерческие пригласительные ссылки (capability-токены)
type InvitationHandler struct {
	ports.InvitationService
}

func NewInvitationHandler(invitationService ports.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitationService}
}

func handleInvitationError(w http.ResponseWriter, err error) {
	log.Println(err)
	switch {
	case strings.Contains(err.Error(), "не найдено"):
		util.HandleError(w, "приглашение не найдено", http.StatusNotFound)
	case strings.Contains(err.Error(), "отозвано"):
		util.HandleError(w, "приглашение отозвано", http.StatusGone)
	case strings.Contains(err.Error(), "доступ запрещён"):
		util.HandleError(w, "доступ запрещён", http.StatusForbidden)
	case strings.Contains(err.Error(), "не авторизован"):
		util.HandleError(w, "пользователь не авторизован", http.StatusUnauthorized)
	case strings.Contains(err.Error(), "некорректный email"):
		util.HandleError(w, err.Error(), http.StatusBadRequest)
	default:
		util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}

// CreateInvitation godoc
// @Summary Выпуск коммерческого приглашения
// @Description Создаёт пригласительную ссылку с токеном делегирования.
// Запросы с этим токеном действуют от имени создателя приглашения.
// Доступно ролям commercial и admin.
// @Tags Invitations
// @Accept json
// @Produce json
// @Param body body requestresponse.CreateInvitationRequest true "Email и имя приглашаемого"
// @Success 201 {object} requestresponse.InvitationResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/invitations [post]
func (h *InvitationHandler) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.CreateInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	invitation, err := h.InvitationService.CreateInvitation(r.Context(), req.Email, req.Name)
	if err != nil {
		handleInvitationError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(requestresponse.InvitationResponse{Data: *invitation})
}

// ListInvitations godoc
// @Summary Список выпущенных приглашений
// @Description Возвращает приглашения, созданные текущим принципалом.
// @Tags Invitations
// @Produce json
// @Success 200 {object} requestresponse.ListInvitationsResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/invitations [get]
func (h *InvitationHandler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	invitations, err := h.InvitationService.ListInvitations(r.Context())
	if err != nil {
		handleInvitationError(w, err)
		return
	}

	resp := requestresponse.ListInvitationsResponse{}
	resp.Data.Invitations = invitations

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// RevokeInvitation godoc
// @Summary Отзыв приглашения
// @Description Отзывает токен приглашения. Все последующие запросы с этим
// токеном перестают авторизоваться немедленно.
// @Tags Invitations
// @Produce json
// @Param invitation_id path string true "UUID приглашения"
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/invitations/{invitation_id} [delete]
func (h *InvitationHandler) RevokeInvitation(w http.ResponseWriter, r *http.Request) {
	invitationUUID := chi.URLParam(r, "invitation_id")
	if invitationUUID == "" {
		util.HandleError(w, "ID приглашения обязателен", http.StatusBadRequest)
		return
	}

	if err := h.InvitationService.RevokeInvitation(r.Context(), invitationUUID); err != nil {
		handleInvitationError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "приглашение отозвано"})
}

// RedeemInvitation godoc
// @Summary Активация приглашения
// @Description Первое использование токена приглашённым. Помечает приглашение
// использованным, токен остаётся рабочим до отзыва.
// @Tags Invitations
// @Accept json
// @Produce json
// @Param body body requestresponse.RedeemInvitationRequest true "Токен приглашения"
// @Success 200 {object} requestresponse.InvitationResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 410 {object} requestresponse.ErrorResponse "Приглашение отозвано"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/invitations/redeem [post]
func (h *InvitationHandler) RedeemInvitation(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.RedeemInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}
	if req.Token == "" {
		util.HandleError(w, "токен обязателен", http.StatusBadRequest)
		return
	}

	invitation, err := h.InvitationService.RedeemInvitation(r.Context(), req.Token)
	if err != nil {
		handleInvitationError(w, err)
		return
	}

	// токен не возвращаем: он уже известен приглашённому
	invitation.Token = ""

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.InvitationResponse{Data: *invitation})
}
