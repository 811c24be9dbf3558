package container

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	"gemdash/adapters/api"
	"gemdash/adapters/chartpng"
	"gemdash/adapters/excel"
	"gemdash/adapters/frame"
	"gemdash/adapters/postgres"
	"gemdash/app"
	"gemdash/data"
	"gemdash/internal"
	"gemdash/internal/config"
	"gemdash/internal/dataset"
	"gemdash/internal/errors"
	"gemdash/ports"
	"gemdash/ui"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure, set only for the postgres source
	DB *sqlx.DB

	// Data
	Source ports.DatasetSource
	Store  *dataset.Store

	// Pipeline and presentation
	Dashboard *app.DashboardService
	Renderer  ports.ChartRenderer
	API       http.Handler
	Server    *ui.Server
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Container{Config: cfg, Logger: logger}, nil
}

// Init wires the dataset source, the render pipeline and both HTTP surfaces.
// Nothing is loaded yet; call LoadDataset before serving.
func (c *Container) Init(ctx context.Context) error {
	source, db, err := NewSource(ctx, c.Config.Data, c.Logger)
	if err != nil {
		return err
	}
	c.Source = source
	c.DB = db

	c.Store = dataset.NewStore(c.Source, c.Logger)
	c.Dashboard = app.NewDashboardService(c.Store, c.Config.Data.SampleRows, c.Logger)
	c.Renderer = chartpng.NewRenderer(c.Config.Charts.Width, c.Config.Charts.Height)
	c.API = api.NewRouter(api.NewHandler(c.Dashboard, c.Logger), c.Config.Server.AllowedOrigins)

	c.Server, err = ui.NewServer(ui.Options{
		Service:  c.Dashboard,
		Renderer: c.Renderer,
		API:      c.API,
		Width:    c.Config.Charts.Width,
		Height:   c.Config.Charts.Height,
		Source:   c.Source.Name(),
		Logger:   c.Logger,
	})
	if err != nil {
		return errors.Wrap(err, "failed to initialize dashboard server")
	}

	c.Logger.Info("Container initialized with %s source", c.Source.Name())
	return nil
}

// LoadDataset performs the one and only dataset load
func (c *Container) LoadDataset(ctx context.Context) error {
	if c.Store == nil {
		return fmt.Errorf("container not initialized")
	}
	_, err := c.Store.Get(ctx)
	return err
}

// NewSource builds the dataset source named by cfg.Source. The returned DB is
// non-nil only for postgres and must be closed by the caller.
func NewSource(ctx context.Context, cfg config.DataConfig, logger *internal.Logger) (ports.DatasetSource, *sqlx.DB, error) {
	switch cfg.Source {
	case config.SourceEmbedded, "":
		return frame.NewCSVSource("embedded", data.DiamondsCSV), nil, nil
	case config.SourceFile:
		return excel.NewFileSource(excel.DefaultFileConfig(cfg.File), logger), nil, nil
	case config.SourcePostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewDiamondRepository(db, cfg.Table), db, nil
	}
	return nil, nil, errors.ConfigInvalid(fmt.Sprintf("unknown data source %q", cfg.Source))
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	// Close database connection
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
