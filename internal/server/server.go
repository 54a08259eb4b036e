package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"corpusgate/internal/blob"
	"corpusgate/internal/blob/local"
)

const apiBasePath = "/api/v1"

type ServerOptions struct {
	DevMode bool
	Port    int

	// APIKeys is the list of keys accepted by the protected API group.
	APIKeys []string

	// Locator mints signed download URLs.
	Locator blob.Locator

	// LocalBlobs is set when the local backend is active; it enables the
	// public /blob/:token resolution route.
	LocalBlobs *local.Locator

	// SignedURLTTL is the validity window of issued download URLs.
	SignedURLTTL time.Duration
}

type Server struct {
	Options      *ServerOptions
	Engine       *gin.Engine
	HttpServer   *http.Server
	ProtectedAPI *gin.RouterGroup
	Locator      blob.Locator
}

func NewServer(options *ServerOptions) (*Server, error) {
	if options == nil {
		return nil, fmt.Errorf("server options cannot be nil")
	}
	if options.Locator == nil {
		return nil, fmt.Errorf("server options Locator cannot be nil")
	}
	if options.SignedURLTTL <= 0 {
		return nil, fmt.Errorf("server options SignedURLTTL must be positive")
	}

	server := &Server{
		Options: options,
		Locator: options.Locator,
	}

	if !server.Options.DevMode {
		log.Info().Msg("Running Gin in production mode")
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Info().Msg("Running Gin in development mode")
	}

	engine := gin.New()
	server.Engine = engine
	server.Engine.Use(gin.Recovery())
	server.Engine.Use(requestLogger())

	server.HttpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", options.Port),
		Handler: engine,
	}

	return server, nil
}

func (s *Server) RegisterRoutes() error {
	// Public routes — no authentication required
	s.Engine.GET(apiBasePath+"/health", s.getHealthHandler())
	s.Engine.GET(apiBasePath+"/version", s.getVersionHandler())

	// Protected API group — all routes here require a valid X-API-Key header
	protected := s.Engine.Group(apiBasePath)
	protected.Use(apiKeyAuth(s.Options.APIKeys))
	s.ProtectedAPI = protected

	// Signed download URL issuance (protected — caller uses API key)
	s.ProtectedAPI.GET("/download", s.downloadHandler())

	// Grant token resolution for the local backend (public — the token is the auth)
	if s.Options.LocalBlobs != nil {
		s.Engine.GET("/blob/:token", s.blobHandler())
	}

	return nil
}

func (s *Server) Run() error {
	if err := s.HttpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) {
	s.HttpServer.Shutdown(ctx)
}
