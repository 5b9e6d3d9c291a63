package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/amonks/musiclib/db"
	"github.com/amonks/musiclib/limiter"
	"github.com/amonks/musiclib/logger"
	"github.com/gin-gonic/gin"
)

type Options struct {
	// Nil means no rate limiting.
	Limiter *limiter.Limiter
}

// New builds the catalog's http handler: the JSON API under /api and the
// html pages everywhere else.
func New(d *db.DB, opts Options) *gin.Engine {
	e := gin.New()
	e.RedirectFixedPath = true
	e.SetHTMLTemplate(templates)

	e.Use(requestID(), requestLogger(), recovery())
	if opts.Limiter != nil && opts.Limiter.Enabled() {
		e.Use(opts.Limiter.Middleware())
	}

	registerPages(e)
	registerAPI(e.Group("/api"), d)

	e.NoRoute(func(c *gin.Context) {
		if isAPI(c) {
			// Written now, or gin fills in a plain-text body.
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		renderError(c, http.StatusNotFound)
	})

	return e
}

// Run serves handler on addr until ctx is canceled, then shuts down
// gracefully.
func Run(ctx context.Context, handler http.Handler, addr string) error {
	srv := http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() { errs <- srv.ListenAndServe() }()

	logger.Info(logger.EventStartup, "server listening", logger.Fields("address", addr))

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		logger.Info(logger.EventShutdown, "server shutting down", logger.Fields("address", addr))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func isAPI(c *gin.Context) bool {
	return c.Request.URL.Path == "/api" || strings.HasPrefix(c.Request.URL.Path, "/api/")
}
