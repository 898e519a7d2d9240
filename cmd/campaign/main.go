package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"campaign-gen/internal/assets"
	"campaign-gen/internal/config"
	"campaign-gen/internal/firefly"
	"campaign-gen/internal/httpclient"
	"campaign-gen/internal/i18n"
	"campaign-gen/internal/output"
	"campaign-gen/internal/pipeline"
)

var (
	_ pipeline.Generator    = (*firefly.Client)(nil)
	_ pipeline.AssetLocator = (*assets.Locator)(nil)
	_ pipeline.ImageWriter  = (*output.Writer)(nil)
	_ pipeline.Translator   = (*i18n.Catalog)(nil)
)

type flags struct {
	brief string
	lang  string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		var logged loggedError
		if !errors.As(err, &logged) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}

// loggedError marks failures that run already reported through the logger.
type loggedError struct{ err error }

func (e loggedError) Error() string { return e.err.Error() }
func (e loggedError) Unwrap() error { return e.err }

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "campaign",
		Short:         "Generate campaign creatives for every product and aspect ratio in a brief",
		Long:          "Reads a JSON or YAML campaign brief, composes one prompt per product and generates one image per configured aspect ratio. Existing outputs are skipped.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := run(cmd.Context(), f, cmd.ErrOrStderr()); err != nil {
				return loggedError{err: err}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&f.brief, "brief", "b", "", "path to the campaign brief (bare names are looked up in BRIEFS_DIR)")
	cmd.Flags().StringVarP(&f.lang, "lang", "l", i18n.DefaultLang, "language of the campaign message")
	_ = cmd.MarkFlagRequired("brief")
	return cmd
}

func run(ctx context.Context, f flags, stderr io.Writer) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewTextHandler(stderr, nil)).Error("config load failed", "err", err)
		return err
	}

	logger := newLogger(cfg, stderr).With("run_id", uuid.NewString())

	ratios, err := cfg.AspectRatios()
	if err != nil {
		logger.Error("config load failed", "err", err)
		return err
	}

	httpClient := httpclient.New(httpclient.Options{
		PreferIPv4: cfg.HTTP.PreferIPv4,
		Timeout:    cfg.HTTP.Timeout(),
		Logger:     logger,
	})

	client := firefly.New(firefly.Options{
		ClientID:        cfg.Firefly.ClientID,
		ClientSecret:    cfg.Firefly.ClientSecret,
		BaseURL:         cfg.Firefly.BaseURL,
		TokenURL:        cfg.Firefly.TokenURL,
		VisualIntensity: cfg.Firefly.VisualIntensity,
		HTTPClient:      httpClient,
		Logger:          logger,
	})

	p := pipeline.New(pipeline.Options{
		Ratios:    ratios,
		BriefsDir: cfg.BriefsDir,
		Generator: client,
		Assets: assets.New(assets.Options{
			AssetsDir:  cfg.AssetsDir,
			OutputsDir: cfg.OutputsDir,
			Logger:     logger,
		}),
		Writer: output.New(output.Options{
			OutputsDir: cfg.OutputsDir,
			Logger:     logger,
		}),
		Translator: i18n.New(i18n.Options{
			Dir:    cfg.LocalesDir,
			Logger: logger,
		}),
		Logger: logger,
	})

	if _, err := p.Run(ctx, f.brief, f.lang); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			logger.Warn("run interrupted")
		case errors.Is(err, pipeline.ErrAllFailed):
			// already summarised by the pipeline
		default:
			logger.Error("run failed", "err", err)
		}
		return err
	}
	return nil
}

func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}
	if cfg.Log.SlogFormat() == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
