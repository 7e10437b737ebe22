package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/mikietechie/sapp-library/app/features/query/genrebookstats"
	"github.com/mikietechie/sapp-library/app/features/query/listbookings"
	"github.com/mikietechie/sapp-library/app/features/query/listbookitems"
	"github.com/mikietechie/sapp-library/app/features/query/listleases"
	"github.com/mikietechie/sapp-library/app/features/query/listmembers"
	"github.com/mikietechie/sapp-library/app/httpapi"
	"github.com/mikietechie/sapp-library/app/shared/core"
	"github.com/mikietechie/sapp-library/lendingstore"
)

const shutdownTimeout = 10 * time.Second

// wrappedQueries builds the observable query handlers behind the HTTP API.
func wrappedQueries(a *app) (httpapi.Queries, error) {
	var (
		queries httpapi.Queries
		err     error
	)

	if queries.GenreBookStats, err = wrapQuery[genrebookstats.Query, core.GenreBookStats](a, genrebookstats.NewQueryHandler(a.store)); err != nil {
		return httpapi.Queries{}, err
	}
	if queries.Leases, err = wrapQuery[listleases.Query, []lendingstore.Lease](a, listleases.NewQueryHandler(a.store)); err != nil {
		return httpapi.Queries{}, err
	}
	if queries.Bookings, err = wrapQuery[listbookings.Query, []lendingstore.Booking](a, listbookings.NewQueryHandler(a.store)); err != nil {
		return httpapi.Queries{}, err
	}
	if queries.BookItems, err = wrapQuery[listbookitems.Query, []lendingstore.BookItem](a, listbookitems.NewQueryHandler(a.store)); err != nil {
		return httpapi.Queries{}, err
	}
	if queries.Members, err = wrapQuery[listmembers.Query, []lendingstore.Member](a, listmembers.NewQueryHandler(a.store)); err != nil {
		return httpapi.Queries{}, err
	}

	return queries, nil
}

func newServeCommand(a *app) *cobra.Command {
	var addr string

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the reporting HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.HTTPAddr
			}

			queries, err := wrappedQueries(a)
			if err != nil {
				return err
			}

			gin.SetMode(gin.ReleaseMode)
			server := &http.Server{
				Addr:              addr,
				Handler:           httpapi.NewRouter(queries, httpapi.WithCORSOrigins(a.cfg.CORSOrigins), httpapi.WithLogger(a.logger)),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errChan := make(chan error, 1)
			go func() {
				a.logger.Info("http server listening", "addr", addr)
				errChan <- server.ListenAndServe()
			}()

			select {
			case err := <-errChan:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				a.logger.Info("shutting down http server")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			return server.Shutdown(shutdownCtx)
		},
	}
	serve.Flags().StringVar(&addr, "addr", "", "listen address, defaults to LIBRARY_HTTP_ADDR")

	return serve
}
