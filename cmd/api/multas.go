package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/farxc/frota-multas/internal/multas"
	"github.com/farxc/frota-multas/internal/response"
)

type MultasPage = response.Page[multas.Multa, multas.Totals]

// redact blanks the links and workflow fields the role may not see.
func redact(m multas.Multa, p multas.Permissions) multas.Multa {
	if !p.CanAccessBoleto {
		m.Boleto = ""
		m.ComprovantePagamento = ""
	}
	if !p.CanAccessConsulta {
		m.Consulta = ""
	}
	if !p.CanViewIndicacao {
		m.ExpiracaoIndicacao = ""
		m.StatusIndicacao = multas.IndicacaoNone
	}
	return m
}

func redactAll(records []multas.Multa, p multas.Permissions) []multas.Multa {
	out := make([]multas.Multa, len(records))
	for i, m := range records {
		out[i] = redact(m, p)
	}
	return out
}

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, multas.ErrValidation.WithMessagef("id inválido: %q", chi.URLParam(r, "id"))
	}
	return id, nil
}

// @Summary		List multas
// @Description	Rows of a dashboard tab for the caller's role, filtered by text and slip status, with totals.
// @Tags			Multas
// @Produce		json
// @Param			view	query		string	false	"Tab name"	default(todas)
// @Param			q		query		string	false	"Free-text search"
// @Param			status	query		string	false	"Slip status or todos"
// @Success		200		{object}	response.APIResponse[MultasPage]
// @Failure		400		{object}	response.ErrorResponse
// @Failure		403		{object}	response.ErrorResponse
// @Router			/multas [get]
func (app *application) handleListMultas(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)
	q := r.URL.Query()

	view := multas.View(q.Get("view"))
	if view == "" {
		view = multas.ViewTodas
	}
	if !view.Known() {
		app.writeError(w, r, multas.ErrValidation.WithMessagef("aba inválida: %q", view))
		return
	}
	if !multas.Offers(s.User.Role, view) {
		app.writeError(w, r, multas.ErrForbidden.WithMessagef("perfil %q sem acesso à aba %q", s.User.Role, view))
		return
	}

	rows := app.multas.Aggregator(s.User.Role).Select(view)
	rows = multas.Filter(rows, multas.ListFilter{Search: q.Get("q"), Status: q.Get("status")})

	writeData(w, http.StatusOK, "", MultasPage{
		Items:   redactAll(rows, s.Permissions),
		Summary: multas.TotalsOf(rows),
	})
}

func (app *application) handleGetMulta(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		app.writeError(w, r, err)
		return
	}

	m, err := app.multas.Get(id)
	if err != nil {
		app.writeError(w, r, err)
		return
	}

	s := sessionFrom(r)
	if s.User.Role == multas.RoleFinanceiro && m.StatusBoleto == multas.BoletoPendente {
		app.writeError(w, r, multas.ErrNotFound.WithMessagef("multa %d não encontrada", id))
		return
	}
	writeData(w, http.StatusOK, "", redact(m, s.Permissions))
}

func (app *application) handleCreateMulta(w http.ResponseWriter, r *http.Request) {
	var input multas.Input
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	m, err := app.multas.Create(r.Context(), sessionFrom(r).User.Actor(), input)
	if err != nil {
		app.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "Multa adicionada com sucesso", m)
}

func (app *application) handleUpdateMulta(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		app.writeError(w, r, err)
		return
	}

	var input multas.Input
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	m, err := app.multas.Edit(r.Context(), sessionFrom(r).User.Actor(), id, input)
	if err != nil {
		app.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Multa atualizada com sucesso", m)
}

func (app *application) handleDeleteMulta(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		app.writeError(w, r, err)
		return
	}

	if err := app.multas.Delete(r.Context(), sessionFrom(r).User.Actor(), id); err != nil {
		app.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type transitionFunc func(ctx context.Context, actor multas.Actor, id int64) (multas.Multa, error)

// transitionHandler adapts a status-changing service call to a handler.
func (app *application) transitionHandler(run transitionFunc, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			app.writeError(w, r, err)
			return
		}

		s := sessionFrom(r)
		m, err := run(r.Context(), s.User.Actor(), id)
		if err != nil {
			app.writeError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, message, redact(m, s.Permissions))
	}
}

func (app *application) handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Comprovante string `json:"comprovante"`
	}
	// The body is optional.
	if err := readJSON(w, r, &input); err != nil && !errors.Is(err, io.EOF) {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	app.transitionHandler(func(ctx context.Context, actor multas.Actor, id int64) (multas.Multa, error) {
		return app.multas.MarkPaid(ctx, actor, id, input.Comprovante)
	}, "Pagamento registrado")(w, r)
}

func (app *application) handleUnmarkPaid(w http.ResponseWriter, r *http.Request) {
	app.transitionHandler(app.multas.UnmarkPaid, "Pagamento desmarcado")(w, r)
}

func (app *application) handleMarkComplete(w http.ResponseWriter, r *http.Request) {
	app.transitionHandler(app.multas.MarkComplete, "Desconto concluído")(w, r)
}

func (app *application) handleUndoComplete(w http.ResponseWriter, r *http.Request) {
	app.transitionHandler(app.multas.UndoComplete, "Conclusão desfeita")(w, r)
}

func (app *application) handleIndicate(w http.ResponseWriter, r *http.Request) {
	app.transitionHandler(app.multas.Indicate, "Motorista indicado")(w, r)
}

func (app *application) handleUndoIndication(w http.ResponseWriter, r *http.Request) {
	app.transitionHandler(app.multas.UndoIndication, "Indicação desfeita")(w, r)
}

func (app *application) handleRefuseIndication(w http.ResponseWriter, r *http.Request) {
	app.transitionHandler(app.multas.RefuseIndication, "Indicação recusada")(w, r)
}

func (app *application) handleReloadMultas(w http.ResponseWriter, r *http.Request) {
	if err := app.multas.Reload(r.Context()); err != nil {
		app.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Multas recarregadas", map[string]int{"total": len(app.multas.Records())})
}
