package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contact-form/config"
	"contact-form/internal/handler"
	"contact-form/internal/middleware"
	"contact-form/internal/transport/httpdto"
	"contact-form/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

// ginMode maps APP_MODE to a gin mode. Unknown values run in debug mode.
func ginMode(appMode string) string {
	switch appMode {
	case ReleaseMode:
		return gin.ReleaseMode
	case TestMode:
		return gin.TestMode
	case DebugMode:
		return gin.DebugMode
	}
	return gin.DebugMode
}

type Handlers struct {
	Contact *handler.ContactHandler
}

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// Options are the optional pieces of the router.
type Options struct {
	// MediaDir is served under /media when attachments live on local disk.
	MediaDir string
	Checks   map[string]HealthCheck
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	gin.SetMode(ginMode(cfg.AppMode))

	engine := gin.New()
	engine.Use(middleware.Recovery(l))
	engine.MaxMultipartMemory = 8 << 20

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.AppPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

// Engine exposes the router, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) SetupRoutes(handlers *Handlers, opts Options) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.CORSMiddleware(s.config.CORSAllowedOrigins))
	s.engine.Use(middleware.MetricsMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse("pong", "", nil))
	})

	s.engine.GET("/health", func(c *gin.Context) {
		for name, check := range opts.Checks {
			if err := check(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(fmt.Sprintf("%s: %s", name, err.Error())))
				return
			}
		}
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse("healthy", "", nil))
	})

	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if opts.MediaDir != "" {
		s.engine.Static("/media", opts.MediaDir)
	}

	contacts := s.engine.Group("/api/contacts")
	{
		contacts.GET("", handlers.Contact.Index)
		contacts.POST("", handlers.Contact.Store)
		contacts.GET("/:id", handlers.Contact.Show)
		contacts.PUT("/:id", handlers.Contact.Update)
		contacts.DELETE("/:id", handlers.Contact.Destroy)
	}
}

func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("Error in starting the server: %s", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	if s.logger != nil {
		s.logger.Infof("Server is running on :%s", s.config.AppPort)
	}

	<-quit

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
