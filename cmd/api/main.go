package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/Salsabil-210/comhabits/internal/config"
	"github.com/Salsabil-210/comhabits/internal/container"
	"github.com/Salsabil-210/comhabits/internal/router"
)

type ServeCmd struct {
	Port      string `help:"HTTP port, overrides PORT." env:"PORT" default:"8080"`
	DSN       string `help:"Postgres DSN, overrides DATABASE_DSN." env:"DATABASE_DSN"`
	Migrate   bool   `help:"Run migrations before serving."`
	Reminders bool   `help:"Run the reminder dispatcher." default:"true" negatable:""`
}

func (c *ServeCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := container.Bootstrap(ctx, c.DSN)
	if err != nil {
		return err
	}
	if c.Migrate {
		if err := config.Migrate(config.DB, container.Models()...); err != nil {
			return err
		}
	}

	if c.Reminders {
		if err := app.Reminders.Start(ctx, config.Cfg.ReminderCron); err != nil {
			return err
		}
		defer app.Reminders.Stop()
	}

	srv := &http.Server{
		Addr:              ":" + c.Port,
		Handler:           router.New(app.Router()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		config.Log.WithField("addr", srv.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	config.Log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type MigrateCmd struct {
	DSN string `help:"Postgres DSN, overrides DATABASE_DSN." env:"DATABASE_DSN"`
}

func (c *MigrateCmd) Run() error {
	if _, err := container.Bootstrap(context.Background(), c.DSN); err != nil {
		return err
	}
	return config.Migrate(config.DB, container.Models()...)
}

var CLI struct {
	Serve   ServeCmd   `cmd:"" help:"Serve the HTTP API and reminder job." default:"1"`
	Migrate MigrateCmd `cmd:"" help:"Create or update database tables."`
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found, using environment variables")
	}

	ctx := kong.Parse(&CLI,
		kong.Name("comhabits"),
		kong.Description("Habit tracking API"),
		kong.UsageOnError(),
	)

	if err := ctx.Run(); err != nil {
		config.Log.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}
