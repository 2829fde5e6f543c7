// Package server wires and runs the fake member backend: an in-memory user
// directory and ledger behind the REST API.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/memberclient/internal/logging"
	"github.com/dmitrijs2005/memberclient/internal/server/api"
	"github.com/dmitrijs2005/memberclient/internal/server/config"
	"github.com/dmitrijs2005/memberclient/internal/server/users"
	"github.com/dmitrijs2005/memberclient/internal/server/wallets"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	userService *users.Service
	ledger      *wallets.Ledger
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogLevel, c.LogFormat, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	us := users.NewService(users.NewMemoryRepository(), c)
	ledger := wallets.NewLedger()

	root, err := us.Seed(ctx, c.SeedUserID, c.SeedFullName, c.SeedPassword)
	if err != nil {
		return nil, fmt.Errorf("seed error: %w", err)
	}
	ledger.Open(root.ID, c.SeedDeposit)
	logger.Info(ctx, "Seeded root member", "user_id", root.ID)

	return &App{config: c, logger: logger, userService: us, ledger: ledger}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves the API until a termination signal arrives or ctx is done.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	s := api.NewServer(app.config.Addr, app.logger, app.userService, app.ledger, app.config.SeedDeposit)
	return s.Run(ctx)
}
