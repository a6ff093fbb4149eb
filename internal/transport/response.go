package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"laundry-be/internal/apperr"
	"laundry-be/internal/logger"

	"go.uber.org/zap"
)

type errorBody struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

type messageBody struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().Warn("failed to encode response", zap.Error(err))
	}
}

func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, messageBody{Message: message})
}

// WriteError maps err to its HTTP status. Unclassified errors are logged and
// reported as a generic internal error.
func WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		logger.FromCtx(ctx).Error("request failed", zap.Error(err))
	}

	body := errorBody{Error: apperr.PublicMessage(err)}
	var ve *ValidationError
	if errors.As(err, &ve) {
		body.Details = ve.Details
	}
	WriteJSON(w, kind.HTTPStatus(), body)
}
