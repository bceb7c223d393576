package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/mkrogh/go-accounts"
	"github.com/mkrogh/go-accounts/webapp"
)

type appConfig struct {
	Addr     string `env:"HTTP_ADDR, default=:8080"`
	DSN      string `env:"DATABASE_DSN, default=file:accounts.db?cache=shared"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	Pretty   bool   `env:"LOG_PRETTY, default=false"`
	ViewsDir string `env:"VIEWS_DIR, default=./views"`

	Auth accounts.Config
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log := newLogger(cfg)
	logger := webapp.NewZerologAdapter(log)

	// A missing signing secret aborts startup; nothing below may run with an
	// unsigned token path.
	if err := cfg.Auth.Validate(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	tokens, err := accounts.NewTokenService(cfg.Auth, logger)
	if err != nil {
		return err
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	// First-run bootstrap, the equivalent of the schema setup script.
	if _, err := db.NewCreateTable().
		Model((*accounts.User)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("bootstrap schema: %w", err)
	}

	users := accounts.NewUsersRepository(db, accounts.WithUsersLogger(logger))

	srv := webapp.NewServer(users, tokens, webapp.ServerOptions{
		ViewsDir: cfg.ViewsDir,
		Logger:   logger,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(cfg.Addr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	log.Info().Str("addr", cfg.Addr).Str("issuer", cfg.Auth.Issuer).Msg("server started")

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		return srv.Shutdown()
	}
}

func newLogger(cfg appConfig) zerolog.Logger {
	var out io.Writer = os.Stdout
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	return zerolog.New(out).Level(parseLevel(cfg.LogLevel)).With().Timestamp().Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
