// Package httpapi serves evidence verification over REST with gin.
//
// Routes live under /v1. A tampered verdict is answered with 409 Conflict so
// that no client treats it as a successful response; lookup failures keep
// their distinct statuses (404, 502 for rejected credentials, 503).
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driving"
	"github.com/custodia-labs/chainforensix-cli/internal/logger"
)

// ErrMissingInspectionService is returned when the inspection service is not provided.
var ErrMissingInspectionService = errors.New("httpapi: inspection service is required")

// Ports aggregates the driving ports served over REST.
type Ports struct {
	Inspection driving.InspectionService
	Lookup     driving.LookupService
	Capture    driving.CaptureService
	Archive    driving.ArchiveService

	// Metrics serves /metrics when set.
	Metrics http.Handler

	// ExplorerLink builds block explorer URLs. Optional.
	ExplorerLink func(ref string) string
}

// Options tune the server.
type Options struct {
	// RatePerSecond bounds accepted requests. Zero disables limiting.
	RatePerSecond float64
	// Burst is the limiter bucket size.
	Burst int
}

// Server is the REST API server.
type Server struct {
	ports  *Ports
	engine *gin.Engine
}

// NewServer builds the router.
func NewServer(ports *Ports, opts Options) (*Server, error) {
	if ports == nil || ports.Inspection == nil {
		return nil, ErrMissingInspectionService
	}

	g := gin.New()
	g.Use(gin.Recovery(), requestLogger())
	if opts.RatePerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		g.Use(rateLimit(rate.NewLimiter(rate.Limit(opts.RatePerSecond), burst)))
	}

	s := &Server{ports: ports, engine: g}
	s.attachRoutes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) attachRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if s.ports.Metrics != nil {
		s.engine.GET("/metrics", gin.WrapH(s.ports.Metrics))
	}

	v1 := s.engine.Group("/v1")
	v1.GET("/evidence/:input", s.inspect)
	v1.POST("/verify", s.verifyBatch)
	v1.POST("/verify/record", s.verifyRecord)

	if s.ports.Lookup != nil {
		v1.GET("/records/:input", s.lookup)
		v1.GET("/resolve/:input", s.resolve)
	}

	if s.ports.Capture != nil {
		captures := v1.Group("/captures")
		captures.POST("", s.startCapture)
		captures.GET("", s.listCaptures)
		captures.GET("/:id", s.getCapture)
		captures.POST("/:id/confirm", s.confirmCapture)
		captures.GET("/:id/prepared", s.prepareCapture)
		captures.DELETE("/:id", s.discardCapture)
	}

	if s.ports.Archive != nil {
		v1.GET("/archive", s.listArchive)
		v1.POST("/archive", s.importArchive)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func rateLimit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorBody{Error: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
