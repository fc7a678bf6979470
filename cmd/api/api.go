package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/farxc/frota-multas/internal/activity"
	"github.com/farxc/frota-multas/internal/logger"
	"github.com/farxc/frota-multas/internal/multas"
	"github.com/farxc/frota-multas/internal/session"
	"github.com/farxc/frota-multas/internal/store"
)

type application struct {
	config   config
	store    store.Storage
	logger   *logger.Logger
	multas   *multas.Service
	activity *activity.Recorder
	auth     *session.Authenticator
	sessions *session.Manager
	limiter  *loginLimiter
}

type config struct {
	addr    string
	db      dbConfig
	auth    authConfig
	charts  chartsConfig
	logsMax int
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

type authConfig struct {
	secret     string
	sessionTTL time.Duration
	loginRate  float64
	loginBurst int
}

type chartsConfig struct {
	ignoredVehicles []string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Route("/auth", func(r chi.Router) {
			r.With(app.limiter.Middleware).Post("/login", app.handleLogin)
			r.Group(func(r chi.Router) {
				r.Use(app.authenticate)
				r.Post("/logout", app.handleLogout)
				r.Get("/me", app.handleMe)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(app.authenticate)

			r.Route("/multas", func(r chi.Router) {
				r.Get("/", app.handleListMultas)
				r.Post("/", app.handleCreateMulta)
				r.Post("/reload", app.handleReloadMultas)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", app.handleGetMulta)
					r.Put("/", app.handleUpdateMulta)
					r.Delete("/", app.handleDeleteMulta)
					r.Post("/pagamento", app.handleMarkPaid)
					r.Delete("/pagamento", app.handleUnmarkPaid)
					r.Post("/conclusao", app.handleMarkComplete)
					r.Delete("/conclusao", app.handleUndoComplete)
					r.Post("/indicacao", app.handleIndicate)
					r.Delete("/indicacao", app.handleUndoIndication)
					r.Post("/indicacao/recusa", app.handleRefuseIndication)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/", app.handleDashboard)
				r.Get("/charts", app.handleCharts)
			})

			r.Route("/logs", func(r chi.Router) {
				r.Get("/", app.handleListLogs)
				r.Get("/users", app.handleListLogUsers)
			})

			r.With(app.requireRole(multas.RoleAdmin)).Get("/imports", app.handleListImports)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	app.logger.Info("Server", "Server started on %s", app.config.addr)
	return srv.ListenAndServe()
}
