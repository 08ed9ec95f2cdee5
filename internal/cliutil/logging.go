package cliutil

import (
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/wandb/dlist/internal/observability"
	"github.com/wandb/dlist/internal/observability/wberrors"
	"github.com/wandb/dlist/internal/sentry_ext"
)

// LoggerParams configures NewLogger.
type LoggerParams struct {
	// Level is a charmbracelet/log level name, e.g. "debug" or "warn".
	Level string

	// Format is "text", "json" or "logfmt".
	Format string

	// SentryDSN enables Sentry reporting if set.
	SentryDSN string

	Release string
	Commit  string

	// Tags are added to every log record and Sentry event.
	Tags observability.Tags
}

// LoggerParamsFromFlags reads the persistent logging flags of the root
// command.
func LoggerParamsFromFlags(cmd *cobra.Command) LoggerParams {
	return LoggerParams{
		Level:     GetString(cmd, "log-level"),
		Format:    GetString(cmd, "log-format"),
		SentryDSN: GetString(cmd, "sentry-dsn"),
	}
}

// NewLogger creates a CoreLogger that writes to w through a
// charmbracelet/log handler.
//
// The returned Sentry client should be flushed before exiting.
func NewLogger(
	w io.Writer,
	params LoggerParams,
) (*observability.CoreLogger, *sentry_ext.Client, error) {
	level := log.InfoLevel
	if params.Level != "" {
		var err error
		level, err = log.ParseLevel(params.Level)
		if err != nil {
			return nil, nil, wberrors.Enrichf(err, "invalid log level").
				SkipSentryIf(true)
		}
	}

	var formatter log.Formatter
	switch strings.ToLower(params.Format) {
	case "", "text":
		formatter = log.TextFormatter
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return nil, nil, wberrors.Newf(
			"invalid log format %q: expected text, json or logfmt",
			params.Format).
			SkipSentryIf(true)
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
	})

	sentryClient := sentry_ext.New(sentry_ext.Params{
		DSN:     params.SentryDSN,
		Release: params.Release,
		Commit:  params.Commit,
	})

	logger := observability.NewCoreLogger(
		slog.New(handler),
		&observability.CoreLoggerParams{
			Sentry: sentryClient,
			Tags:   params.Tags,
		},
	)
	return logger, sentryClient, nil
}
