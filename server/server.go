// Package server exposes a bond book over HTTP.
//
// The JSON API is the boundary for a web front-end: it serves the report of
// the book (instruments, monthly income, totals, recommendations and what to
// highlight for the element under the pointer), and accepts the mutation
// intents. Every mutation is saved before the response is sent.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/etnz/bondbook"
	"github.com/etnz/bondbook/date"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Server serves one session.
type Server struct {
	session  *bondbook.Session
	currency string
	log      *zap.Logger
	today    func() date.Date
	echo     *echo.Echo
}

// New returns a server for session, reporting amounts in currency.
func New(session *bondbook.Session, currency string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		session:  session,
		currency: currency,
		log:      log,
		today:    date.Today,
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	setupMiddleware(e, log)
	s.setupRoutes(e)
	s.echo = e
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.echo.ServeHTTP(w, r) }

// setupRoutes configures the routes of the API and the report pages.
func (s *Server) setupRoutes(e *echo.Echo) {
	e.GET("/", func(c echo.Context) error { return c.Redirect(http.StatusFound, "/report.html") })
	e.GET("/report.md", s.ReportMarkdown)
	e.GET("/report.html", s.ReportHTML)

	api := e.Group("/api")
	api.GET("/report", s.Report)
	api.GET("/highlight", s.Highlight)
	api.POST("/move", s.Move)

	instruments := api.Group("/instruments")
	instruments.GET("", s.Instruments)
	instruments.POST("", s.Add)
	instruments.GET("/:id", s.Get)
	instruments.POST("/:id/edit", s.BeginEdit)
	instruments.PUT("/:id", s.Edit)
	instruments.POST("/:id/cancel", s.Cancel)
	instruments.DELETE("/:id", s.Delete)
	instruments.POST("/:id/up", s.MoveUp)
	instruments.POST("/:id/down", s.MoveDown)
}

// Start listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errc <- s.echo.Start(addr)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
