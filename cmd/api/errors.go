package main

import (
	"errors"
	"net/http"

	"github.com/farxc/frota-multas/internal/activity"
	"github.com/farxc/frota-multas/internal/multas"
	"github.com/farxc/frota-multas/internal/response"
	"github.com/farxc/frota-multas/internal/session"
)

var codeStatus = map[string]int{
	multas.ErrValidation.Code:        http.StatusBadRequest,
	multas.ErrDuplicateAuto.Code:     http.StatusConflict,
	multas.ErrNotFound.Code:          http.StatusNotFound,
	multas.ErrInvalidTransition.Code: http.StatusUnprocessableEntity,
	multas.ErrForbidden.Code:         http.StatusForbidden,
	multas.ErrStore.Code:             http.StatusBadGateway,
}

// writeError maps a failure to its HTTP status and user-facing message.
func (app *application) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *multas.Error
	switch {
	case errors.As(err, &domainErr):
		status, ok := codeStatus[domainErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		msg := domainErr.Message
		if msg == "" {
			msg = domainErr.Code
		}
		writeJSON(w, status, &response.ErrorResponse{Error: msg, Code: domainErr.Code})
	case errors.Is(err, session.ErrInvalidCredentials), errors.Is(err, session.ErrLoggedOut):
		writeJSONError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, session.ErrUnavailable), errors.Is(err, activity.ErrUnavailable):
		writeJSONError(w, http.StatusBadGateway, err.Error())
	default:
		app.logger.Error("HTTP", "%s %s failed: %v", r.Method, r.URL.Path, err)
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}
