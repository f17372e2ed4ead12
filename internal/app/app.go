package app

import (
	"context"
	"os"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/storefront-cli/internal/api"
	"github.com/xenking/storefront-cli/internal/domain/chat"
	"github.com/xenking/storefront-cli/internal/session"
	"github.com/xenking/storefront-cli/internal/view"
	"github.com/xenking/storefront-cli/pkg/health"
)

// Run creates all dependencies and drives the interactive shell until the
// user quits or the context is cancelled. It is the single wiring point for
// the application.
func Run(ctx context.Context, lg *zap.Logger, cfg *Config) error {
	lg.Info("Initializing", zap.String("api", cfg.APIBaseURL))
	ctx = zctx.Base(ctx, lg)

	// Session first: the API client takes it at construction and never reads
	// ambient storage afterwards.
	sess, err := session.Load(cfg.TokenFile)
	if err != nil {
		return errors.Wrap(err, "load session")
	}

	client := api.NewClient(api.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout,
	}, sess)

	// Backend connectivity probe for the home page status line.
	monitor := health.New()
	monitor.AddProbe("backend", 5*time.Second, client.Ping)
	monitor.Start(ctx, 30*time.Second)
	defer monitor.Stop()

	prefs := chat.Preferences{
		Style:          cfg.Preferences.Style,
		Size:           cfg.Preferences.Size,
		FavoriteColors: cfg.Preferences.FavoriteColors,
		PriceRange:     cfg.Preferences.PriceRange,
	}

	toaster := view.NewToaster(cfg.ToastTTL)
	guard := view.NewGuard()

	shell := view.NewShell(os.Stdout, client, toaster,
		view.NewHomePage(sess, monitor),
		view.NewProductsPage(client, toaster, guard),
		view.NewImageSearchPage(client, toaster, guard),
		view.NewCartPage(client, toaster, guard, prefs, cfg.MaxQuantity),
		view.NewChatPage(client, toaster, guard, prefs),
	)

	lg.Info("Shell ready")
	if err := shell.Run(ctx, os.Stdin); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "shell")
	}
	return nil
}
