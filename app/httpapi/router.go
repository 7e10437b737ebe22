package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mikietechie/sapp-library/app/features/query/genrebookstats"
	"github.com/mikietechie/sapp-library/app/features/query/listbookings"
	"github.com/mikietechie/sapp-library/app/features/query/listbookitems"
	"github.com/mikietechie/sapp-library/app/features/query/listleases"
	"github.com/mikietechie/sapp-library/app/features/query/listmembers"
	"github.com/mikietechie/sapp-library/app/shared/core"
	"github.com/mikietechie/sapp-library/app/shared/shell"
	"github.com/mikietechie/sapp-library/app/shared/shell/presenter"
	"github.com/mikietechie/sapp-library/lendingstore"
)

const (
	logMsgRequest      = "http request"
	logMsgRequestError = "http request failed"

	logAttrMethod     = "method"
	logAttrPath       = "path"
	logAttrStatus     = "status"
	logAttrDurationMS = "duration_ms"
	logAttrError      = "error"

	statusClientClosedRequest = 499
)

// Queries are the query handlers behind the endpoints, usually wrapped with observability.
type Queries struct {
	GenreBookStats shell.CoreQueryHandler[genrebookstats.Query, core.GenreBookStats]
	Leases         shell.CoreQueryHandler[listleases.Query, []lendingstore.Lease]
	Bookings       shell.CoreQueryHandler[listbookings.Query, []lendingstore.Booking]
	BookItems      shell.CoreQueryHandler[listbookitems.Query, []lendingstore.BookItem]
	Members        shell.CoreQueryHandler[listmembers.Query, []lendingstore.Member]
}

type router struct {
	queries     Queries
	corsOrigins []string
	logger      shell.Logger
}

// Option configures the router.
type Option func(*router)

// WithCORSOrigins allows cross-origin requests from origins. Without origins no CORS headers are sent.
func WithCORSOrigins(origins []string) Option {
	return func(r *router) {
		r.corsOrigins = origins
	}
}

// WithLogger logs every request at info and every failed query at error.
func WithLogger(logger shell.Logger) Option {
	return func(r *router) {
		r.logger = logger
	}
}

// NewRouter builds the gin engine serving the reporting endpoints.
func NewRouter(queries Queries, opts ...Option) *gin.Engine {
	r := &router{queries: queries}

	for _, opt := range opts {
		opt(r)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), r.requestLogging())

	if len(r.corsOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:  r.corsOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Content-Type"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	api.GET("/genres/book-stats", r.genreBookStats)
	api.GET("/leases", listEndpoint(r, r.queries.Leases, listleases.BuildQuery, presenter.Lease))
	api.GET("/bookings", listEndpoint(r, r.queries.Bookings, listbookings.BuildQuery, presenter.Booking))
	api.GET("/book-items", listEndpoint(r, r.queries.BookItems, listbookitems.BuildQuery, presenter.BookItem))
	api.GET("/members", listEndpoint(r, r.queries.Members, listmembers.BuildQuery, presenter.Member))

	return engine
}

func (r *router) genreBookStats(c *gin.Context) {
	stats, err := r.queries.GenreBookStats.Handle(c.Request.Context(), genrebookstats.BuildQuery())
	if err != nil {
		r.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func listEndpoint[Q shell.Query, E, V any](
	r *router,
	handler shell.CoreQueryHandler[Q, []E],
	buildQuery func(map[string]string) Q,
	view func(E) V,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		entities, err := handler.Handle(c.Request.Context(), buildQuery(queryParams(c)))
		if err != nil {
			r.fail(c, err)
			return
		}

		c.JSON(http.StatusOK, presenter.List(entities, view))
	}
}

// queryParams flattens the query string. For repeated parameters the first value is used.
func queryParams(c *gin.Context) map[string]string {
	params := make(map[string]string)

	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	return params
}

func (r *router) fail(c *gin.Context, err error) {
	status := statusFromError(err)

	if r.logger != nil {
		r.logger.Error(logMsgRequestError, logAttrPath, c.FullPath(), logAttrStatus, status, logAttrError, err.Error())
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = http.StatusText(status)
	}

	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, lendingstore.ErrUnknownFilterKey),
		errors.Is(err, lendingstore.ErrInvalidFilterValue),
		errors.Is(err, lendingstore.ErrUnknownFilterEntity):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (r *router) requestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		if r.logger == nil {
			return
		}

		r.logger.Info(
			logMsgRequest,
			logAttrMethod, c.Request.Method,
			logAttrPath, c.Request.URL.Path,
			logAttrStatus, c.Writer.Status(),
			logAttrDurationMS, shell.ToMilliseconds(time.Since(start)),
		)
	}
}
