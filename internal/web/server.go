package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lawbot/billrag/internal/catalog"
	"github.com/lawbot/billrag/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// Asker answers one free-text question.
type Asker interface {
	Ask(ctx context.Context, question string) (service.Result, error)
}

type Server struct {
	engine  *gin.Engine
	catalog *catalog.Catalog
	asker   Asker
	count   func() int
}

// New 라우터와 템플릿을 준비한다. count 는 검색 가능한 문서 수를 돌려준다.
func New(cat *catalog.Catalog, asker Asker, count func() int) (*Server, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"formatDate": catalog.FormatDate,
		"na": func(s string) string {
			if s == "" {
				return "N/A"
			}
			return s
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	if count == nil {
		count = func() int { return 0 }
	}
	s := &Server{
		engine:  gin.New(),
		catalog: cat,
		asker:   asker,
		count:   count,
	}
	s.engine.Use(gin.Recovery(), requestLogger())
	s.engine.SetHTMLTemplate(tmpl)

	s.engine.GET("/", s.index)
	s.engine.POST("/ask", s.ask)
	s.engine.GET("/healthz", s.health)
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("web UI available", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
