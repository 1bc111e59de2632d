package fx

import (
	"context"
	"net/http"

	"github.com/jaminalder/codex-battleship/internal/app"
	"github.com/jaminalder/codex-battleship/internal/config"
	"github.com/jaminalder/codex-battleship/internal/database"
	"github.com/jaminalder/codex-battleship/internal/events"
	"github.com/jaminalder/codex-battleship/internal/logger"
	"github.com/jaminalder/codex-battleship/internal/store"
	"github.com/jaminalder/codex-battleship/internal/store/memory"
	"github.com/jaminalder/codex-battleship/internal/store/sqlite"
	"github.com/jaminalder/codex-battleship/internal/web"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// ProvideStore picks the private board store named by STORE_DRIVER. The
// sqlite database is closed when the app stops.
func ProvideStore(lc fx.Lifecycle, cfg *config.Config, log zerolog.Logger) (store.PrivateStore, error) {
	log = log.Level(cfg.LogLevel)
	if cfg.StoreDriver != config.StoreSQLite {
		log.Info().Msg("using in-memory board store")
		return memory.New(), nil
	}
	db, err := database.New(cfg, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			if err := db.Close(); err != nil {
				log.Warn().Err(err).Msg("error closing database connection")
				return err
			}
			return nil
		},
	})
	return sqlite.New(db, log), nil
}

func ProvideService(cfg *config.Config, log zerolog.Logger, boards store.PrivateStore, hub *events.Hub) *app.Service {
	return app.NewService(boards,
		app.WithLogger(log.Level(cfg.LogLevel).With().Str("component", "service").Logger()),
		app.WithHub(hub),
		app.WithSingleActiveMatch(cfg.SingleActiveMatch),
	)
}

func ProvideHandler(cfg *config.Config, log zerolog.Logger, svc *app.Service) http.Handler {
	return web.NewServer(svc, web.Options{
		Logger:         log.Level(cfg.LogLevel),
		AllowedOrigins: cfg.AllowedOrigins,
		Heartbeat:      cfg.SSEHeartbeat,
	})
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	// storage
	fx.Provide(ProvideStore),
	// events
	fx.Provide(events.NewHub),
	// svc
	fx.Provide(ProvideService),
	// http
	fx.Provide(ProvideHandler),
)
