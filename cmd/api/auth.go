package main

import (
	"net/http"
	"time"

	"github.com/farxc/frota-multas/internal/multas"
	"github.com/farxc/frota-multas/internal/session"
)

type loginPayload struct {
	Usuario string `json:"usuario"`
	Senha   string `json:"senha"`
}

type sessionView struct {
	Token       string             `json:"token,omitempty"`
	User        session.User       `json:"user"`
	Permissions multas.Permissions `json:"permissions"`
	Menu        []multas.View      `json:"menu"`
	ExpiresAt   time.Time          `json:"expires_at"`
}

func viewOf(s session.Session) sessionView {
	return sessionView{
		User:        s.User,
		Permissions: s.Permissions,
		Menu:        multas.MenuFor(s.User.Role),
		ExpiresAt:   s.ExpiresAt,
	}
}

// @Summary		Login
// @Description	Checks the credentials and returns a session token.
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200	{object}	response.APIResponse[sessionView]
// @Failure		401	{object}	response.ErrorResponse	"Usuário ou senha incorretos"
// @Failure		429	{object}	response.ErrorResponse
// @Failure		502	{object}	response.ErrorResponse	"Erro ao conectar com o servidor"
// @Router			/auth/login [post]
func (app *application) handleLogin(w http.ResponseWriter, r *http.Request) {
	var input loginPayload
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, err := app.auth.Login(r.Context(), input.Usuario, input.Senha)
	if err != nil {
		app.writeError(w, r, err)
		return
	}

	token, s, err := app.sessions.Issue(user)
	if err != nil {
		app.writeError(w, r, err)
		return
	}

	app.activity.Record(r.Context(), multas.ActivityEntry{Actor: user.Actor(), Action: multas.ActionLogin})

	view := viewOf(s)
	view.Token = token
	writeData(w, http.StatusOK, "Login realizado", view)
}

func (app *application) handleLogout(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)
	app.sessions.Revoke(s)
	app.activity.Record(r.Context(), multas.ActivityEntry{Actor: s.User.Actor(), Action: multas.ActionLogout})
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) handleMe(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, "", viewOf(sessionFrom(r)))
}
