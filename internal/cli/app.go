// Package cli holds the state shared by the voyage commands.
package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/voyage/internal/bootstrap"
	"github.com/bnema/voyage/internal/cli/styles"
	"github.com/bnema/voyage/internal/domain/build"
	"github.com/bnema/voyage/internal/infrastructure/config"
	"github.com/bnema/voyage/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config        *config.Config
	ConfigManager *config.Manager
	// ConfigErr is set when the config file could not be loaded and defaults are in use.
	ConfigErr error
	Theme     *styles.Theme
	BuildInfo build.Info

	ctx        context.Context
	logCleanup func()

	browserOnce sync.Once
	browser     *bootstrap.Browser
	browserErr  error
}

// NewApp loads the configuration and sets up logging. The browser core is
// started on first use.
func NewApp() (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, err
	}

	cfg, cfgErr := loadConfig(mgr)

	// Logs go to the rotated file only; stderr belongs to the TUI.
	logger, cleanup, err := bootstrap.NewLogger(cfg.Logging, false)
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}
	ctx := logging.WithContext(context.Background(), logger)
	if cfgErr != nil {
		logger.Warn().Err(cfgErr).Msg("config load failed, using defaults")
	}

	return &App{
		Config:        cfg,
		ConfigManager: mgr,
		ConfigErr:     cfgErr,
		Theme:         styles.NewTheme(),
		ctx:           ctx,
		logCleanup:    cleanup,
	}, nil
}

func loadConfig(mgr *config.Manager) (*config.Config, error) {
	if err := mgr.Load(); err != nil {
		cfg := config.DefaultConfig()
		if path, pathErr := config.GetDatabaseFile(); pathErr == nil {
			cfg.Database.Path = path
		}
		return cfg, err
	}
	return mgr.Get(), nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Browser returns the browser core, starting it on first call.
func (a *App) Browser() (*bootstrap.Browser, error) {
	a.browserOnce.Do(func() {
		a.browser, a.browserErr = bootstrap.NewBrowser(a.ctx, a.Config)
	})
	return a.browser, a.browserErr
}

// WatchConfig pushes config file edits into the running browser core.
func (a *App) WatchConfig() error {
	b, err := a.Browser()
	if err != nil {
		return err
	}
	a.ConfigManager.OnConfigChange(func(cfg *config.Config) {
		if err := b.ApplyConfig(cfg); err != nil {
			logging.FromContext(a.ctx).Warn().Err(err).Msg("reloaded config rejected")
		}
	})
	return a.ConfigManager.Watch()
}

// Close releases all resources.
func (a *App) Close() error {
	var err error
	if a.browser != nil {
		err = a.browser.Close()
	}
	if a.logCleanup != nil {
		a.logCleanup()
	}
	return err
}
