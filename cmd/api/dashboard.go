package main

import (
	"net/http"
	"strconv"

	"github.com/farxc/frota-multas/internal/multas"
)

type dashboardView struct {
	Stats  multas.Stats        `json:"stats"`
	Counts map[multas.View]int `json:"counts"`
	Menu   []multas.View       `json:"menu"`
}

// @Summary		Dashboard
// @Description	Statistics and per-tab counts for the caller's role.
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	response.APIResponse[dashboardView]
// @Router			/dashboard [get]
func (app *application) handleDashboard(w http.ResponseWriter, r *http.Request) {
	role := sessionFrom(r).User.Role
	agg := app.multas.Aggregator(role)

	writeData(w, http.StatusOK, "", dashboardView{
		Stats:  agg.Stats(),
		Counts: agg.Counts(),
		Menu:   multas.MenuFor(role),
	})
}

// @Summary		Dashboard charts
// @Tags			Dashboard
// @Produce		json
// @Param			period	query		string	false	"week, month, quarter, semester, year or all"	default(all)
// @Param			top		query		int		false	"Vehicles in the ranking"						default(10)
// @Success		200		{object}	response.APIResponse[multas.Charts]
// @Failure		400		{object}	response.ErrorResponse
// @Router			/dashboard/charts [get]
func (app *application) handleCharts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	period, ok := multas.ParsePeriod(q.Get("period"))
	if !ok {
		app.writeError(w, r, multas.ErrValidation.WithMessagef("período inválido: %q", q.Get("period")))
		return
	}

	opts := multas.ChartOptions{
		Period:          period,
		IgnoredVehicles: app.config.charts.ignoredVehicles,
	}
	if top := q.Get("top"); top != "" {
		n, err := strconv.Atoi(top)
		if err != nil || n <= 0 {
			app.writeError(w, r, multas.ErrValidation.WithMessagef("top inválido: %q", top))
			return
		}
		opts.TopVehicles = n
	}

	charts := app.multas.Aggregator(sessionFrom(r).User.Role).Charts(opts)
	writeData(w, http.StatusOK, "", charts)
}
