package handler

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"presentation-web-server/config"
	"presentation-web-server/internal/model"
	requestresponse "presentation-web-server/internal/model/requestresponse"
	"presentation-web-server/internal/ports"
	"presentation-web-server/internal/util"

	"github.com/go-chi/chi/v5"
)

// ChatHandler : чат сессии, доступен всем участникам включая анонимных
// зрителей
type ChatHandler struct {
	ports.ChatService
	maxUploadBytes int64
}

func NewChatHandler(chatService ports.ChatService, uploadCfg *config.UploadConfig) *ChatHandler {
	return &ChatHandler{chatService, uploadCfg.MaxBytes}
}

func handleChatError(w http.ResponseWriter, err error) {
	log.Println(err)
	switch {
	case strings.Contains(err.Error(), "не найдена"):
		util.HandleError(w, "сессия не найдена", http.StatusNotFound)
	case strings.Contains(err.Error(), "доступ запрещён"):
		util.HandleError(w, "доступ запрещён", http.StatusForbidden)
	case strings.Contains(err.Error(), "не авторизован"):
		util.HandleError(w, "пользователь не авторизован", http.StatusUnauthorized)
	case strings.Contains(err.Error(), "пустое сообщение"),
		strings.Contains(err.Error(), "превышает"),
		strings.Contains(err.Error(), "неизвестный тип"):
		util.HandleError(w, err.Error(), http.StatusBadRequest)
	default:
		util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}

// SendMessage godoc
// @Summary Отправка сообщения в чат сессии
// @Description Добавляет сообщение в журнал. Имя отправителя приходит из
// запроса, аутентифицированным пользователям дополнительно проставляется
// sender_uuid.
// @Tags Chat
// @Accept json
// @Produce json
// @Param session_id path string true "UUID сессии"
// @Param body body requestresponse.SendMessageRequest true "Сообщение"
// @Success 201 {object} requestresponse.SuccessResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/sessions/{session_id}/chat [post]
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	sessionUUID := chi.URLParam(r, "session_id")
	if sessionUUID == "" {
		util.HandleError(w, "ID сессии обязателен", http.StatusBadRequest)
		return
	}

	var req requestresponse.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	message := &model.ChatMessage{
		SessionUUID: sessionUUID,
		SenderName:  req.SenderName,
		MsgType:     req.MsgType,
		Content:     req.Content,
		FileURL:     req.FileURL,
		FileName:    req.FileName,
		MimeType:    req.MimeType,
	}

	if err := h.ChatService.SendMessage(r.Context(), message); err != nil {
		handleChatError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "сообщение отправлено"})
}

// GetMessages godoc
// @Summary История чата сессии
// @Description Возвращает сообщения сессии в хронологическом порядке.
// @Tags Chat
// @Produce json
// @Param session_id path string true "UUID сессии"
// @Success 200 {object} requestresponse.ListMessagesResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/sessions/{session_id}/chat [get]
func (h *ChatHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	sessionUUID := chi.URLParam(r, "session_id")
	if sessionUUID == "" {
		util.HandleError(w, "ID сессии обязателен", http.StatusBadRequest)
		return
	}

	messages, err := h.ChatService.GetMessages(r.Context(), sessionUUID)
	if err != nil {
		handleChatError(w, err)
		return
	}

	resp := requestresponse.ListMessagesResponse{}
	resp.Data.Messages = messages

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ClearMessages godoc
// @Summary Очистка чата сессии
// @Description Удаляет всю историю сообщений. Доступно только владельцу сессии.
// @Tags Chat
// @Produce json
// @Param session_id path string true "UUID сессии"
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/sessions/{session_id}/chat [delete]
func (h *ChatHandler) ClearMessages(w http.ResponseWriter, r *http.Request) {
	sessionUUID := chi.URLParam(r, "session_id")
	if sessionUUID == "" {
		util.HandleError(w, "ID сессии обязателен", http.StatusBadRequest)
		return
	}

	if err := h.ChatService.ClearMessages(r.Context(), sessionUUID); err != nil {
		handleChatError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "чат очищен"})
}

// UploadAttachment godoc
// @Summary Загрузка вложения чата
// @Description Кладёт файл в хранилище и возвращает публичный URL для
// последующей отправки сообщением с типом document.
// @Tags Chat
// @Accept multipart/form-data
// @Produce json
// @Param session_id path string true "UUID сессии"
// @Param file formData file true "Файл вложения"
// @Success 201 {object} requestresponse.UploadAttachmentResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 413 {object} requestresponse.ErrorResponse "Файл превышает лимит загрузки"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/sessions/{session_id}/chat/attachment [post]
func (h *ChatHandler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	sessionUUID := chi.URLParam(r, "session_id")
	if sessionUUID == "" {
		util.HandleError(w, "ID сессии обязателен", http.StatusBadRequest)
		return
	}

	limitRequestBody(w, r, h.maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		if isBodyTooLarge(err) {
			util.HandleError(w, "файл превышает лимит загрузки", http.StatusRequestEntityTooLarge)
			return
		}
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		util.HandleError(w, "файл не найден в запросе", http.StatusBadRequest)
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		if isBodyTooLarge(err) {
			util.HandleError(w, "файл превышает лимит загрузки", http.StatusRequestEntityTooLarge)
			return
		}
		util.HandleError(w, "ошибка чтения файла", http.StatusInternalServerError)
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(fileBytes)
	}

	fileURL, err := h.ChatService.UploadAttachment(r.Context(), sessionUUID, header.Filename, mimeType, fileBytes)
	if err != nil {
		handleChatError(w, err)
		return
	}

	resp := requestresponse.UploadAttachmentResponse{}
	resp.Data.FileURL = fileURL
	resp.Data.FileName = header.Filename
	resp.Data.MimeType = mimeType

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}
