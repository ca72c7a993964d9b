package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"netivim/internal/config"
	"netivim/internal/http-server/handlers/advisor"
	"netivim/internal/http-server/handlers/errors"
	"netivim/internal/http-server/handlers/mapfeed"
	"netivim/internal/http-server/handlers/meta"
	"netivim/internal/http-server/handlers/school"
	"netivim/internal/http-server/middleware/reqlog"
	"netivim/internal/http-server/middleware/timeout"
	"netivim/internal/lib/sl"
	"netivim/internal/ws"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	meta.Core
	school.Core
	advisor.Core
}

// Options carries the parts of the surface that live outside the core.
type Options struct {
	Hub     *ws.Hub
	Metrics http.Handler
}

func NewRouter(conf *config.Config, log *slog.Logger, handler Handler, opts Options) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(reqlog.New(log))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Get("/ws/map", mapfeed.Serve(log, opts.Hub))
	if opts.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(timeout.Timeout(conf.Listen.Timeout))
		v1.Use(render.SetContentType(render.ContentTypeJSON))

		v1.Get("/status", meta.Status(log, handler))
		v1.Get("/types", meta.Types(log, handler))

		v1.Route("/schools", func(r chi.Router) {
			r.Get("/", school.ListSchools(log, handler))
			r.Post("/", school.AddSchool(log, handler))
			r.Get("/stats", school.Stats(log, handler))
			r.Get("/{id}", school.GetSchool(log, handler))
		})
		v1.Route("/advisor", func(r chi.Router) {
			r.Post("/", advisor.Open(log, handler))
			r.Get("/{id}", advisor.Get(log, handler))
			r.Delete("/{id}", advisor.Close(log, handler))
			r.Post("/{id}/messages", advisor.Send(log, handler))
		})
	})

	return router
}

func New(conf *config.Config, log *slog.Logger, handler Handler, opts Options) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  NewRouter(conf, log, handler, opts),
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
