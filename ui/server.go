package ui

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gemdash/app"
	"gemdash/internal"
	"gemdash/ports"
	"gemdash/ui/middleware"
	"gemdash/ui/services"
)

// Title is shown in the browser tab and the page heading
const Title = "Diamond Analytics Dashboard"

// Options configures the dashboard server
type Options struct {
	Service  *app.DashboardService
	Renderer ports.ChartRenderer
	// API is mounted under /api; nil leaves it out.
	API    http.Handler
	Assets fs.FS // defaults to Assets
	Width  int
	Height int
	Source string
	Logger *internal.Logger
}

// Server represents the web server for the diamonds dashboard
type Server struct {
	router    *gin.Engine
	service   *app.DashboardService
	renderer  ports.ChartRenderer
	templates *template.Template
	render    *services.RenderService
	assets    fs.FS
	about     template.HTML
	width     int
	height    int
	source    string
	logger    *internal.Logger
}

// NewServer parses the templates and sets up routes
func NewServer(opts Options) (*Server, error) {
	if opts.Service == nil || opts.Renderer == nil {
		return nil, fmt.Errorf("dashboard service and chart renderer are required")
	}
	if opts.Assets == nil {
		opts.Assets = Assets
	}
	if opts.Logger == nil {
		opts.Logger = internal.DefaultLogger
	}

	templates, err := parseTemplates(opts.Assets)
	if err != nil {
		return nil, err
	}
	about, err := fs.ReadFile(opts.Assets, "content/about.md")
	if err != nil {
		return nil, fmt.Errorf("failed to read about page: %w", err)
	}

	logger := opts.Logger.With("Server")
	s := &Server{
		router:    gin.New(),
		service:   opts.Service,
		renderer:  opts.Renderer,
		templates: templates,
		render:    services.NewRenderService(templates, opts.Logger),
		assets:    opts.Assets,
		about:     renderMarkdown(about),
		width:     opts.Width,
		height:    opts.Height,
		source:    opts.Source,
		logger:    logger,
	}

	if err := s.setupMiddleware(); err != nil {
		return nil, err
	}
	s.setupRoutes(opts.API)
	return s, nil
}

// setupMiddleware configures Gin middleware and static files
func (s *Server) setupMiddleware() error {
	s.router.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())

	staticFS, err := fs.Sub(s.assets, "static")
	if err != nil {
		return fmt.Errorf("failed to create static filesystem: %w", err)
	}
	s.router.StaticFS("/static", http.FS(staticFS))
	return nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes(api http.Handler) {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/charts/:name", s.handleChart)
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if api != nil {
		s.router.Any("/api/*path", gin.WrapH(api))
	}
}

// Handler exposes the router for an http.Server
func (s *Server) Handler() http.Handler {
	return s.router
}
