package util

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	requestresponse "presentation-web-server/internal/model/requestresponse"
)

// LogError : логирует ошибку слоя сервиса/репозитория и возвращает её
// обёрнутой с префиксом компонента; обработчики сопоставляют префиксы
// со статусами HTTP
func LogError(message string, err error) error {
	log.Printf("%s: %v", message, err)
	return fmt.Errorf("%s: %w", message, err)
}

// HandleError : пишет стандартный конверт ошибки API.
// Формат совпадает с requestresponse.ErrorResponse из swagger-аннотаций
func HandleError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(requestresponse.ErrorResponse{
		Error: requestresponse.ErrorDetail{
			Code: statusCode,
			Text: message,
		},
	})
}
