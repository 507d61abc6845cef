package util_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	requestresponse "presentation-web-server/internal/model/requestresponse"
	"presentation-web-server/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	recorder := httptest.NewRecorder()

	util.HandleError(recorder, "сессия не найдена", http.StatusNotFound)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var resp requestresponse.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusNotFound, resp.Error.Code)
	assert.Equal(t, "сессия не найдена", resp.Error.Text)
}

func TestLogError(t *testing.T) {
	cause := errors.New("connection refused")

	err := util.LogError("[SessionRepo] ошибка вставки сессии в БД", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "[SessionRepo] ошибка вставки сессии в БД")
}
