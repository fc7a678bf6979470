package main

import (
	"net/http"
	"strconv"

	"github.com/farxc/frota-multas/internal/activity"
)

// @Summary		Activity log
// @Description	Newest entries first. Non-admins only see entries of their own role.
// @Tags			Logs
// @Produce		json
// @Param			limit	query		int		false	"Maximum entries"	default(50)
// @Param			role	query		string	false	"Role filter (admin only), todos for any"
// @Param			user_id	query		string	false	"Author filter (admin only), todos for any"
// @Success		200		{object}	response.APIResponse[[]store.ActivityLog]
// @Failure		502		{object}	response.ErrorResponse	"Erro ao carregar logs"
// @Router			/logs [get]
func (app *application) handleListLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := app.config.logsMax
	if l, err := strconv.Atoi(q.Get("limit")); err == nil && l > 0 && l < limit {
		limit = l
	}

	logs, err := app.activity.List(r.Context(), sessionFrom(r).User.Actor(), activity.Query{
		Role:   q.Get("role"),
		UserID: q.Get("user_id"),
		Limit:  limit,
	})
	if err != nil {
		app.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", logs)
}

func (app *application) handleListLogUsers(w http.ResponseWriter, r *http.Request) {
	users, err := app.activity.Users(r.Context(), sessionFrom(r).User.Actor())
	if err != nil {
		app.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", users)
}
