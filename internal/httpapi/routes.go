package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/DoyleJ11/innings-scorer/internal/engine"
	"github.com/DoyleJ11/innings-scorer/internal/hub"
	"github.com/DoyleJ11/innings-scorer/internal/ws"
)

type Options struct {
	Openers        engine.Lineup
	ClientBuffer   int
	OriginPatterns []string
	Logger         *zap.Logger
}

func SetupRoutes(h *hub.Hub, opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	a := &handlers{hub: h, openers: opts.Openers, log: log}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	// Public routes
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h, ws.Options{
		OutboxSize:     opts.ClientBuffer,
		OriginPatterns: opts.OriginPatterns,
		Logger:         log,
	}))
	r.Route("/innings", func(r chi.Router) {
		r.Post("/", a.createInnings)
		r.Route("/{code}", func(r chi.Router) {
			r.Get("/", a.getInnings)
			r.Delete("/", a.deleteInnings)
			r.Post("/actions", a.postAction)
		})
	})
	return r
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("elapsed", time.Since(start)),
			)
		})
	}
}
