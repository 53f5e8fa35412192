package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/noel97chan-creator/IFRS16calculator/internal/validators"
)

const maxBodyBytes = 64 << 10

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// decodeParams читает тело запроса как JSON-объект с произвольными полями
func decodeParams(w http.ResponseWriter, r *http.Request) (map[string]interface{}, error) {
	var params map[string]interface{}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&params); err != nil {
		return nil, err
	}
	if params == nil {
		return nil, errors.New("request body must be a JSON object")
	}
	return params, nil
}

// handleToolError переводит ошибку инструмента в HTTP-ответ
func handleToolError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var ve *validators.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Error(), Field: ve.Field})
		return
	}
	logger.Error("tool failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
