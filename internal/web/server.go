package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jaminalder/codex-battleship/internal/app"
	"github.com/jaminalder/codex-battleship/internal/constants"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type Options struct {
	Logger         zerolog.Logger
	AllowedOrigins []string
	Heartbeat      time.Duration
}

// NewServer wires routes and returns an http.Handler.
func NewServer(s *app.Service, opts Options) http.Handler {
	if opts.Heartbeat <= 0 {
		opts.Heartbeat = constants.DefaultHeartbeat
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	h := &handlers{
		svc:       s,
		tpl:       loadTemplates(),
		logger:    opts.Logger,
		heartbeat: opts.Heartbeat,
		origins:   opts.AllowedOrigins,
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", constants.PlayerSecretHeader, "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	})

	r := chi.NewRouter()
	r.Use(RequestID(opts.Logger))
	r.Use(chimw.Recoverer)
	r.Use(c.Handler)

	r.Get("/", h.index)
	r.Get("/me", h.me)
	r.Route("/matches", func(r chi.Router) {
		r.Post("/", h.createMatch)
		r.Get("/", h.listMatches)
		r.Get("/active", h.activeMatch)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.view)
			r.Get("/state", h.state)
			r.Post("/ships", h.placeShips)
			r.Post("/shots", h.proposeShot)
			r.Post("/ack", h.acknowledge)
			r.Get("/board", h.ownBoard)
			r.Get("/shots", h.shots)
			r.Get("/events", h.events)
			r.Get("/ws", h.stream)
		})
	})
	return r
}
