package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/noel97chan-creator/IFRS16calculator/internal/calculations"
	"github.com/noel97chan-creator/IFRS16calculator/internal/export"
	"github.com/noel97chan-creator/IFRS16calculator/internal/metrics"
	"github.com/noel97chan-creator/IFRS16calculator/internal/tools"
	"github.com/noel97chan-creator/IFRS16calculator/internal/validators"
)

func healthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func toolHandler(handler tools.ToolHandler, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := decodeParams(w, r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		result, err := handler(r.Context(), params)
		if err != nil {
			handleToolError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func namedToolHandler(registry map[string]tools.ToolHandler, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		handler, ok := registry[name]
		if !ok {
			writeError(w, http.StatusNotFound, fmt.Sprintf("unknown tool %q", name))
			return
		}
		toolHandler(handler, logger)(w, r)
	}
}

type leadRequest struct {
	Email string `json:"email"`
}

func leadHandler(leads LeadCapturer, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email, err := readEmail(w, r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		token, err := leads.Capture(r.Context(), email)
		if err != nil {
			var ve *validators.ValidationError
			if errors.As(err, &ve) {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Message, Field: ve.Field})
				return
			}
			logger.Warn("lead capture failed", zap.Error(err))
			writeError(w, http.StatusBadGateway, "could not submit email, please try again later")
			return
		}

		writeJSON(w, http.StatusOK, token)
	}
}

// readEmail принимает как JSON, так и обычную HTML-форму
func readEmail(w http.ResponseWriter, r *http.Request) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		params, err := decodeParams(w, r)
		if err != nil {
			return "", err
		}
		email, _ := params["email"].(string)
		return email, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return "", err
	}
	return r.PostForm.Get("email"), nil
}

func exportHandler(handler tools.ToolHandler, tokens TokenVerifier, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formatParam := r.URL.Query().Get("format")
		if formatParam == "" {
			formatParam = string(export.FormatCSV)
		}
		format, err := export.ParseFormat(formatParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if _, err := tokens.Verify(bearerToken(r)); err != nil {
			metrics.Exports.WithLabelValues(string(format), "locked").Inc()
			writeError(w, http.StatusUnauthorized, "download is locked, submit an email to unlock it")
			return
		}

		params, err := decodeParams(w, r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		result, err := handler(r.Context(), params)
		if err != nil {
			handleToolError(w, err, logger)
			return
		}
		schedule, ok := result.(calculations.Schedule)
		if !ok {
			logger.Error("unexpected tool result", zap.String("type", fmt.Sprintf("%T", result)))
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		var buf bytes.Buffer
		if err := export.Write(&buf, format, schedule); err != nil {
			metrics.Exports.WithLabelValues(string(format), "error").Inc()
			logger.Error("export failed", zap.Error(err), zap.String("format", string(format)))
			writeError(w, http.StatusInternalServerError, "export failed")
			return
		}

		metrics.Exports.WithLabelValues(string(format), "success").Inc()
		logger.Info("schedule exported",
			zap.String("format", string(format)),
			zap.Int("periods", len(schedule.Rows)),
		)

		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, format.FileName()))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}
