// Package server exposes a responder over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vijay-prabhu/replybot/internal/catalog"
	"github.com/vijay-prabhu/replybot/internal/logging"
	"github.com/vijay-prabhu/replybot/internal/metrics"
	"github.com/vijay-prabhu/replybot/internal/responder"
)

// shutdownTimeout bounds how long in-flight requests may run after the
// context is cancelled.
const shutdownTimeout = 5 * time.Second

// maxMessageBytes caps the size of one utterance
const maxMessageBytes = 4096

// maxBodyBytes caps a request body before it is decoded
const maxBodyBytes = 64 << 10

// Options configures a Server
type Options struct {
	Metrics bool
	Version string
}

// Server serves the responder's operations as JSON endpoints
type Server struct {
	responder *responder.Responder
	catalog   *catalog.Catalog
	engine    *gin.Engine
	registry  *prometheus.Registry
	metrics   *metrics.Metrics
	log       *slog.Logger
	version   string
}

// New creates a Server for the given catalog
func New(c *catalog.Catalog, opts Options) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		responder: c.Responder(),
		catalog:   c,
		engine:    gin.New(),
		log:       logging.ForComponent(logging.CompServer),
		version:   opts.Version,
	}
	if opts.Metrics {
		s.registry = prometheus.NewRegistry()
		s.metrics = metrics.MustNewMetrics(s.registry)
	}

	s.engine.Use(gin.Recovery(), s.observe())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.handleHealth)

	v1 := s.engine.Group("/v1")
	v1.POST("/respond", s.handleRespond)
	v1.POST("/score", s.handleScore)
	v1.GET("/rules", s.handleRules)

	if s.registry != nil {
		s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	}
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", slog.String("addr", addr), slog.Int("rules", len(s.catalog.Rules)))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// observe logs and measures each request
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		s.metrics.ObserveRequest(route, c.Writer.Status(), elapsed)
		s.log.Debug("request",
			slog.String("method", c.Request.Method),
			slog.String("route", route),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("elapsed", elapsed))
	}
}

type messageRequest struct {
	Message *string `json:"message" binding:"required"`
}

type respondResponse struct {
	Response string `json:"response"`
	Rule     string `json:"rule,omitempty"`
	Score    int    `json:"score"`
	Fallback bool   `json:"fallback"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type ruleResponse struct {
	Name        string   `json:"name"`
	Response    string   `json:"response"`
	Recognized  []string `json:"recognized"`
	Required    []string `json:"required,omitempty"`
	AlwaysScore bool     `json:"always_score"`
}

func (s *Server) bindMessage(c *gin.Context) (string, bool) {
	var req messageRequest
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return "", false
		}
		c.JSON(http.StatusBadRequest, errorResponse{Error: "body must be a JSON object with a \"message\" string"})
		return "", false
	}
	if len(*req.Message) > maxMessageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "message too long"})
		return "", false
	}
	return strings.TrimRight(*req.Message, "\r\n"), true
}

func (s *Server) handleRespond(c *gin.Context) {
	msg, ok := s.bindMessage(c)
	if !ok {
		return
	}

	res := s.responder.Explain(msg)
	s.metrics.ObserveSelection(res)

	c.JSON(http.StatusOK, respondResponse{
		Response: res.Response,
		Rule:     res.Rule,
		Score:    res.Score,
		Fallback: res.Fallback,
	})
}

func (s *Server) handleScore(c *gin.Context) {
	msg, ok := s.bindMessage(c)
	if !ok {
		return
	}

	res := s.responder.Explain(msg)
	s.metrics.ObserveSelection(res)
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleRules(c *gin.Context) {
	rules := make([]ruleResponse, 0, len(s.catalog.Rules))
	for _, r := range s.catalog.Rules {
		rules = append(rules, ruleResponse{
			Name:        r.Name(),
			Response:    r.Response(),
			Recognized:  r.Recognized(),
			Required:    r.Required(),
			AlwaysScore: r.AlwaysScore(),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"source":   s.catalog.Source,
		"rules":    rules,
		"fallback": s.catalog.Fallbacks,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": s.version,
		"rules":   len(s.catalog.Rules),
	})
}
