package main

import (
	"net/http"
	"strconv"
)

// @Summary		Get import history
// @Description	Get a list of the latest planilha imports.
// @Tags			Imports
// @Produce		json
// @Param			limit	query		int		false	"Limit the number of results"	default(10)
// @Success		200		{object}	response.APIResponse[[]store.ImportHistory]	"Successfully retrieved latest imports"
// @Failure		500		{object}	response.ErrorResponse						"Failed to get import history"
// @Router			/imports [get]
func (app *application) handleListImports(w http.ResponseWriter, r *http.Request) {
	limitParam := r.URL.Query().Get("limit")
	limit := 10
	if limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 {
			limit = l
		}
	}

	data, err := app.store.ImportHistory.GetLatest(r.Context(), limit)
	if err != nil {
		app.logger.Error("Imports", "failed to get import history: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to get import history")
		return
	}

	writeData(w, http.StatusOK, "Successfully retrieved latest imports", data)
}
