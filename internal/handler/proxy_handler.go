package handler

import (
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"presentation-web-server/config"
	"presentation-web-server/internal/util"
)

// ProxyHandler : прокси для картинок со сторонних доменов, чтобы фронтенд
// мог отрисовывать их без проблем с CORS. Авторизация не требуется
type ProxyHandler struct {
	client *http.Client
}

func NewProxyHandler(cfg *config.ProxyConfig) *ProxyHandler {
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		timeout = 15 * time.Second
	}
	return &ProxyHandler{client: &http.Client{Timeout: timeout}}
}

// ProxyImage godoc
// @Summary Прокси изображения
// @Description Скачивает изображение по переданному URL и отдаёт его с
// разрешающими CORS-заголовками.
// @Tags Proxy
// @Produce octet-stream
// @Param url query string true "URL изображения (http или https)"
// @Success 200 "Содержимое изображения"
// @Failure 400 {object} requestresponse.ErrorResponse "Отсутствует или некорректный url"
// @Failure 502 {object} requestresponse.ErrorResponse "Удалённый сервер недоступен"
// @Router /proxy/image [get]
func (h *ProxyHandler) ProxyImage(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		util.HandleError(w, "параметр url обязателен", http.StatusBadRequest)
		return
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		util.HandleError(w, "некорректный url", http.StatusBadRequest)
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, rawURL, nil)
	if err != nil {
		util.HandleError(w, "некорректный url", http.StatusBadRequest)
		return
	}

	resp, err := h.client.Do(req)
	if err != nil {
		log.Printf("[ProxyHandler] ошибка запроса %s: %v", rawURL, err)
		util.HandleError(w, "удалённый сервер недоступен", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		util.HandleError(w, "удалённый сервер недоступен", http.StatusBadGateway)
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		util.HandleError(w, "ресурс не является изображением", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Cache-Control", "public, max-age=3600")

	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Printf("[ProxyHandler] ошибка передачи ответа: %v", err)
	}
}
