package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/memberclient/internal/client/client"
	"github.com/dmitrijs2005/memberclient/internal/client/config"
	"github.com/dmitrijs2005/memberclient/internal/client/services"
	"github.com/dmitrijs2005/memberclient/internal/client/session"
	"github.com/dmitrijs2005/memberclient/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

type App struct {
	config         *config.Config
	db             *sql.DB
	logger         logging.Logger
	registry       *prometheus.Registry
	controller     *session.Controller
	authService    services.AuthService
	accountService services.AccountService
	reader         *bufio.Reader
	out            io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogLevel, c.LogFormat, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	registry := prometheus.NewRegistry()
	metrics, err := client.NewMetrics(registry)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("metrics init error: %w", err)
	}

	httpClient := client.NewHTTPClient(c.BaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(logger),
		client.WithMetrics(metrics),
	)

	store := session.NewSQLiteStore(db)

	var controller *session.Controller
	authClient := client.NewAuthClient(httpClient, store, client.WithExpiredHandler(func(ctx context.Context) {
		controller.Expire(ctx)
	}))
	api := client.NewAPI(httpClient, authClient)

	as := services.NewAuthService(api.Public())
	controller = session.NewController(store, as, session.WithLogger(logger))

	return &App{
		config:         c,
		db:             db,
		logger:         logger,
		registry:       registry,
		controller:     controller,
		authService:    as,
		accountService: services.NewAccountService(api.Private()),
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
	}, nil
}

// Run serves metrics when configured and blocks in the REPL until the user
// exits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.db.Close()

	if a.config.MetricsAddr != "" {
		if err := serveMetrics(ctx, a.config.MetricsAddr, a.registry, a.logger); err != nil {
			return fmt.Errorf("metrics server: %w", err)
		}
	}

	a.Root(ctx)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.controller.IsAuthenticated()
}
