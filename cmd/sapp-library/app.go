package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/mikietechie/sapp-library/app/shared/shell"
	"github.com/mikietechie/sapp-library/app/shared/shell/config"
	"github.com/mikietechie/sapp-library/app/shared/shell/observable"
	"github.com/mikietechie/sapp-library/lendingstore"
	"github.com/mikietechie/sapp-library/lendingstore/oteladapters"
	"github.com/mikietechie/sapp-library/lendingstore/sqlengine"
)

const instrumentationName = "github.com/mikietechie/sapp-library"

var ErrInvalidFlag = errors.New("invalid flag value")

// app holds what every subcommand needs once the root command has opened the store.
type app struct {
	envFile string
	actor   string

	cfg        config.Config
	logger     *oteladapters.SlogBridgeLogger
	metrics    *oteladapters.MetricsCollector
	tracing    *oteladapters.TracingCollector
	store      sqlengine.Store
	closeStore func()
	clock      func() time.Time
}

func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.clock = time.Now
	a.logger = oteladapters.NewSlogBridgeLoggerWithHandler(
		slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel}),
	)
	a.metrics = oteladapters.NewMetricsCollector(otel.Meter(instrumentationName))
	a.tracing = oteladapters.NewTracingCollector(otel.Tracer(instrumentationName))

	store, closeStore, err := config.OpenStore(
		cmd.Context(),
		cfg,
		sqlengine.WithLogger(a.logger),
		sqlengine.WithContextualLogger(a.logger),
		sqlengine.WithMetrics(a.metrics),
		sqlengine.WithTracing(a.tracing),
	)
	if err != nil {
		return err
	}

	a.store, a.closeStore = store, closeStore

	return nil
}

func (a *app) close() {
	if a.closeStore != nil {
		a.closeStore()
		a.closeStore = nil
	}
}

func (a *app) retryOptions(commandType string) []shell.RetryOption {
	return []shell.RetryOption{shell.WithMetrics(a.metrics, commandType)}
}

func wrapCommand[C shell.Command, R any](
	a *app,
	handler shell.CoreCommandHandler[C, R],
) (*observable.CommandWrapper[C, R], error) {
	return observable.NewCommandWrapper(
		handler,
		observable.WithCommandMetrics[C, R](a.metrics),
		observable.WithCommandTracing[C, R](a.tracing),
		observable.WithCommandContextualLogging[C, R](a.logger),
	)
}

func wrapQuery[Q shell.Query, R any](
	a *app,
	handler shell.CoreQueryHandler[Q, R],
) (*observable.QueryWrapper[Q, R], error) {
	return observable.NewQueryWrapper(
		handler,
		observable.WithQueryMetrics[Q, R](a.metrics),
		observable.WithQueryTracing[Q, R](a.tracing),
		observable.WithQueryContextualLogging[Q, R](a.logger),
	)
}

// runCommand wraps handler, handles command and prints the view of its result.
func runCommand[C shell.Command, R, V any](
	cmd *cobra.Command,
	a *app,
	handler shell.CoreCommandHandler[C, R],
	command C,
	view func(R) V,
) error {
	wrapped, err := wrapCommand(a, handler)
	if err != nil {
		return err
	}

	result, _, err := wrapped.Handle(cmd.Context(), command)
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), view(result))
}

// runQuery wraps handler, handles query and prints the view of its result.
func runQuery[Q shell.Query, R, V any](
	cmd *cobra.Command,
	a *app,
	handler shell.CoreQueryHandler[Q, R],
	query Q,
	view func(R) V,
) error {
	wrapped, err := wrapQuery(a, handler)
	if err != nil {
		return err
	}

	result, err := wrapped.Handle(cmd.Context(), query)
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), view(result))
}

func printJSON(out io.Writer, v any) error {
	encoded, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(encoded))

	return err
}

func parseID(flag, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: --%s: %w", ErrInvalidFlag, flag, err)
	}

	return id, nil
}

// parseOptionalID returns uuid.Nil for an empty value.
func parseOptionalID(flag, raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, nil
	}

	return parseID(flag, raw)
}

// parseOptionalDate returns the zero Date for an empty value.
func parseOptionalDate(flag, raw string) (lendingstore.Date, error) {
	if raw == "" {
		return lendingstore.Date{}, nil
	}

	date, err := lendingstore.ParseDate(raw)
	if err != nil {
		return lendingstore.Date{}, fmt.Errorf("%w: --%s: %w", ErrInvalidFlag, flag, err)
	}

	return date, nil
}
