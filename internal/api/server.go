// Package api exposes the chat, quiz and certificate flows over HTTP.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/kellen/chronos/internal/appstate"
	"github.com/kellen/chronos/internal/catalog"
	"github.com/kellen/chronos/internal/certificate"
	"github.com/kellen/chronos/internal/llm"
	"github.com/kellen/chronos/internal/store"
)

// Options wires the server's dependencies. Opener and Events may be nil.
type Options struct {
	Machine        *appstate.Machine
	Catalog        *catalog.Catalog
	Opener         llm.Opener
	Exporter       certificate.Exporter
	Events         store.EventRepo
	AllowedOrigins []string
	Logger         *slog.Logger
	Now            func() time.Time
}

// Server holds the HTTP handlers.
type Server struct {
	opts     Options
	sessions *sessionRegistry
	logger   *slog.Logger
}

// New creates a Server.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Exporter == nil {
		opts.Exporter = certificate.PDFExporter{}
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	return &Server{opts: opts, sessions: newSessionRegistry(), logger: opts.Logger}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.healthz)

	r.Route("/api", func(r chi.Router) {
		r.Get("/languages", s.listLanguages)
		r.Get("/eras", s.listEras)

		r.Route("/state", func(r chi.Router) {
			r.Get("/", s.getState)
			r.Post("/start-chat", s.startChat)
			r.Post("/select-era", s.selectEra)
			r.Post("/home", s.goHome)
			r.Put("/language", s.setLanguage)
		})

		r.Route("/chat/sessions", func(r chi.Router) {
			r.Post("/", s.createSession)
			r.Get("/{id}", s.getSession)
			r.Post("/{id}/messages", s.sendMessage)
			r.Delete("/{id}", s.deleteSession)
		})

		r.Get("/quiz/questions", s.listQuestions)
		r.Post("/quiz/score", s.scoreQuiz)
		r.Post("/certificates", s.issueCertificate)
	})

	return r
}

// Close closes every open chat session.
func (s *Server) Close() {
	s.sessions.closeAll()
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok", "catalog": s.opts.Catalog.Version()})
}
