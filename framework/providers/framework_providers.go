package providers

import (
	"go.uber.org/zap"

	"github.com/km-arc/go-dislocator/framework/config"
	"github.com/km-arc/go-dislocator/framework/container"
	gohttp "github.com/km-arc/go-dislocator/framework/http"
	"github.com/km-arc/go-dislocator/framework/logging"
	"github.com/km-arc/go-dislocator/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider registers the configuration as a literal. When
// Config is nil it is loaded from EnvFiles and the environment.
//
// Registered services:
//   - "config"  → *config.Config
type ConfigServiceProvider struct {
	container.BaseProvider
	Config   *config.Config
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) error {
	cfg := p.Config
	if cfg == nil {
		cfg = config.Load(p.EnvFiles...)
	}
	return app.Instance("config", cfg)
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider registers the application logger. When Logger is
// nil it is built from "config" on first use.
//
// Registered services:
//   - "logger"  → *zap.Logger
type LoggingServiceProvider struct {
	container.BaseProvider
	Logger *zap.Logger
}

func (p *LoggingServiceProvider) Register(app *container.Container) error {
	if p.Logger != nil {
		return app.Instance("logger", p.Logger)
	}
	return app.Register("logger", func(c *container.Container) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, "config")
		if err != nil {
			return nil, err
		}
		return logging.New(cfg)
	})
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router and, when enabled in
// configuration, mounts the container inspector on it during Boot.
//
// Registered services:
//   - "router"     → *routing.Router
//   - "inspector"  → *gohttp.Inspector
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) error {
	return app.Use(func(c *container.Container) error {
		if err := c.Register("router", func(c *container.Container) (any, error) {
			logger, err := container.Resolve[*zap.Logger](c, "logger")
			if err != nil {
				return nil, err
			}
			return routing.New(logger), nil
		}); err != nil {
			return err
		}
		return c.Register("inspector", func(c *container.Container) (any, error) {
			logger, err := container.Resolve[*zap.Logger](c, "logger")
			if err != nil {
				return nil, err
			}
			return gohttp.NewInspector(c, logger), nil
		})
	})
}

func (p *RoutingServiceProvider) Boot(app *container.Container) error {
	cfg, err := container.Resolve[*config.Config](app, "config")
	if err != nil {
		return err
	}
	if !cfg.Inspector.Enabled {
		return nil
	}
	router, err := container.Resolve[*routing.Router](app, "router")
	if err != nil {
		return err
	}
	inspector, err := container.Resolve[*gohttp.Inspector](app, "inspector")
	if err != nil {
		return err
	}
	router.Prefix(cfg.Inspector.Prefix, inspector.Routes)
	return nil
}
