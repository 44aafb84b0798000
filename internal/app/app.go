package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"volwatch/internal/config"
	"volwatch/internal/storage"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

// errNoDatabase covers every command that needs the store. The DSN is
// the one required external input of the process.
var errNoDatabase = errors.New("database.dsn not configured (set VOLWATCH_DATABASE_DSN or database.dsn)")

func (a *App) openStore(ctx context.Context) (*storage.Store, func(), error) {
	if a.Config.Database.DSN == "" {
		return nil, nil, errNoDatabase
	}

	pool, err := storage.NewPool(ctx, a.Config.Database)
	if err != nil {
		return nil, nil, err
	}

	store := storage.NewStore(pool)
	closer := func() {
		store.Close()
	}
	return store, closer, nil
}

// ShowOptions configure the show command.
type ShowOptions struct {
	Limit int
}

// ExportOptions hold parameters for exporting historical prices.
// Range anchors at the latest stored date; From/To override it with an
// explicit window.
type ExportOptions struct {
	Range     string
	From      string
	To        string
	PNGPath   string
	CSVPath   string
	MaxPoints int
}

// SubscribeOptions configure the subscribe command.
type SubscribeOptions struct {
	Email string
	Rules []string
	All   bool
	None  bool
}
