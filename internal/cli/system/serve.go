package system

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/habitup/internal/auth"
	"github.com/julianstephens/habitup/internal/cli"
	"github.com/julianstephens/habitup/internal/config"
	"github.com/julianstephens/habitup/internal/constants"
	"github.com/julianstephens/habitup/internal/logger"
	"github.com/julianstephens/habitup/internal/notifier"
	"github.com/julianstephens/habitup/internal/server"
	"github.com/julianstephens/habitup/internal/tracker"
)

type ServeCmd struct {
	Addr          string        `help:"Listen address." env:"HABITUP_ADDR" default:"${addr}"`
	TokenSecret   string        `help:"HMAC secret for access tokens (falls back to the keyring)." env:"HABITUP_TOKEN_SECRET"`
	TokenTTL      time.Duration `help:"Access token lifetime." env:"HABITUP_TOKEN_TTL" default:"${token_ttl}"`
	WebhookURL    string        `help:"Also POST every notification to this URL." env:"HABITUP_WEBHOOK_URL"`
	WebhookSecret string        `help:"Secret sent with webhook requests." env:"HABITUP_WEBHOOK_SECRET"`
	Tray          bool          `help:"Also forward notifications to a running habitup-tray." env:"HABITUP_TRAY"`
}

func (cmd *ServeCmd) Run(ctx *cli.Context) error {
	secret, err := config.TokenSecret(cmd.TokenSecret)
	if err != nil {
		return err
	}
	issuer, err := auth.NewIssuer(secret, cmd.TokenTTL)
	if err != nil {
		return err
	}

	registry := notifier.NewRegistry()
	sinks := notifier.Multi{registry}
	if cmd.WebhookURL != "" {
		sinks = append(sinks, notifier.NewWebhook(cmd.WebhookURL, cmd.WebhookSecret))
	}
	if cmd.Tray {
		sinks = append(sinks, notifier.NewTray())
	}

	opts := []tracker.Option{tracker.WithNotifier(sinks)}
	if ctx.Config != nil {
		opts = append(opts, tracker.WithLocation(ctx.Config.Location))
	}
	svc := tracker.New(ctx.Store, opts...)

	if ctx.Config == nil || !ctx.Config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := server.New(server.Deps{
		Tracker:  svc,
		Store:    ctx.Store,
		Issuer:   issuer,
		Registry: registry,
	}).HTTPServer(cmd.Addr)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// Request contexts end on shutdown so open event streams return.
	srv.BaseContext = func(net.Listener) context.Context { return runCtx }

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "addr", cmd.Addr, "db", ctx.Store.GetConfigPath(), "webhook", cmd.WebhookURL != "", "tray", cmd.Tray)
		fmt.Printf("habitup listening on %s\n", cmd.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-runCtx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownGracePeriod)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
