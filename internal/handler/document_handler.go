package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"presentation-web-server/config"
	requestresponse "presentation-web-server/internal/model/requestresponse"
	"presentation-web-server/internal/ports"
	"presentation-web-server/internal/util"

	"github.com/go-chi/chi/v5"
)

type DocumentHandler struct {
	ports.DocumentService
	maxUploadBytes int64
}

func NewDocumentHandler(documentService ports.DocumentService, uploadCfg *config.UploadConfig) *DocumentHandler {
	return &DocumentHandler{documentService, uploadCfg.MaxBytes}
}

// limitRequestBody : ограничивает тело запроса на транспортном уровне,
// чтобы превышающая лимит загрузка обрывалась при чтении, а не после
// буферизации целиком
func limitRequestBody(w http.ResponseWriter, r *http.Request, maxBytes int64) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
}

func isBodyTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr)
}

func handleDocumentError(w http.ResponseWriter, err error) {
	log.Println(err)
	switch {
	case strings.Contains(err.Error(), "не найден"),
		strings.Contains(err.Error(), "не найдена"):
		util.HandleError(w, err.Error(), http.StatusNotFound)
	case strings.Contains(err.Error(), "доступ запрещён"):
		util.HandleError(w, "доступ запрещён", http.StatusForbidden)
	case strings.Contains(err.Error(), "не авторизован"):
		util.HandleError(w, "пользователь не авторизован", http.StatusUnauthorized)
	case strings.Contains(err.Error(), "превышает лимит"),
		strings.Contains(err.Error(), "недопустимый тип файла"),
		strings.Contains(err.Error(), "не принадлежит сессии"):
		util.HandleError(w, err.Error(), http.StatusBadRequest)
	default:
		util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}

// UploadDocument godoc
// @Summary Загрузка документа в сессию
// @Description Принимает multipart/form-data: сначала файл кладётся в хранилище,
// затем создаётся запись документа. Поддерживаются pdf, изображения и видео.
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param session_id path string true "UUID сессии"
// @Param file formData file true "Файл документа"
// @Success 201 {object} requestresponse.UploadDocumentResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Недопустимый тип или размер файла"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 413 {object} requestresponse.ErrorResponse "Файл превышает лимит загрузки"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/sessions/{session_id}/documents [post]
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

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

	document, err := h.DocumentService.UploadDocument(ctx, sessionUUID, header.Filename, mimeType, fileBytes)
	if err != nil {
		handleDocumentError(w, err)
		return
	}

	resp := requestresponse.UploadDocumentResponse{
		Data: requestresponse.DocumentResponseFromModel(document),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// ListDocuments godoc
// @Summary Документы сессии
// @Description Возвращает документы сессии в порядке отображения.
// @Tags Documents
// @Produce json
// @Param session_id path string true "UUID сессии"
// @Success 200 {object} requestresponse.ListDocumentsResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/sessions/{session_id}/documents [get]
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	sessionUUID := chi.URLParam(r, "session_id")
	if sessionUUID == "" {
		util.HandleError(w, "ID сессии обязателен", http.StatusBadRequest)
		return
	}

	documents, err := h.DocumentService.GetSessionDocuments(r.Context(), sessionUUID)
	if err != nil {
		handleDocumentError(w, err)
		return
	}

	resp := requestresponse.ListDocumentsResponse{Count: len(documents)}
	resp.Data.Docs = make([]requestresponse.DocumentResponse, 0, len(documents))
	for i := range documents {
		resp.Data.Docs = append(resp.Data.Docs, requestresponse.DocumentResponseFromModel(&documents[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// DeleteDocument godoc
// @Summary Удаление документа
// @Description Удаляет документ из сессии. Если документ сейчас отображается,
// сессия возвращается в состояние без документа.
// @Tags Documents
// @Produce json
// @Param doc_id path string true "UUID документа"
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/documents/{doc_id} [delete]
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	docUUID := chi.URLParam(r, "doc_id")
	if docUUID == "" {
		util.HandleError(w, "ID документа обязателен", http.StatusBadRequest)
		return
	}

	if err := h.DocumentService.DeleteDocument(r.Context(), docUUID); err != nil {
		handleDocumentError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "документ удалён"})
}

// ReorderDocuments godoc
// @Summary Переупорядочивание документов
// @Description Задаёт новый порядок отображения документов сессии.
// @Tags Documents
// @Accept json
// @Produce json
// @Param session_id path string true "UUID сессии"
// @Param body body requestresponse.ReorderDocumentsRequest true "UUID документов в новом порядке"
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Документ не принадлежит сессии"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/sessions/{session_id}/documents/reorder [put]
func (h *DocumentHandler) ReorderDocuments(w http.ResponseWriter, r *http.Request) {
	sessionUUID := chi.URLParam(r, "session_id")
	if sessionUUID == "" {
		util.HandleError(w, "ID сессии обязателен", http.StatusBadRequest)
		return
	}

	var req requestresponse.ReorderDocumentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}
	if len(req.DocumentUUIDs) == 0 {
		util.HandleError(w, "список документов пуст", http.StatusBadRequest)
		return
	}

	if err := h.DocumentService.ReorderDocuments(r.Context(), sessionUUID, req.DocumentUUIDs); err != nil {
		handleDocumentError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "порядок обновлён"})
}

// GetDownloadURL godoc
// @Summary Ссылка на скачивание документа
// @Description Возвращает pre-signed GET URL с ограниченным сроком жизни.
// @Tags Documents
// @Produce json
// @Param doc_id path string true "UUID документа"
// @Success 200 {object} map[string]string
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/documents/{doc_id}/download [get]
func (h *DocumentHandler) GetDownloadURL(w http.ResponseWriter, r *http.Request) {
	docUUID := chi.URLParam(r, "doc_id")
	if docUUID == "" {
		util.HandleError(w, "ID документа обязателен", http.StatusBadRequest)
		return
	}

	url, err := h.DocumentService.GetDownloadURL(r.Context(), docUUID)
	if err != nil {
		handleDocumentError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"url": url})
}
