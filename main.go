package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/go-dislocator/framework/app"
	"github.com/km-arc/go-dislocator/framework/container"
)

// Greeter is a small service depending on two others.
type Greeter struct {
	Greeting string
	Now      func() time.Time
}

func (g *Greeter) Greet(name string) string {
	return fmt.Sprintf("%s, %s! It is %s.", g.Greeting, name, g.Now().Format(time.Kitchen))
}

// greeterProvider wires the demo service graph:
//
//	greeting (literal) ─┐
//	                    ├─> greeter
//	clock (factory)  ───┘
type greeterProvider struct {
	container.BaseProvider
}

func (p *greeterProvider) Register(c *container.Container) error {
	return c.Use(func(c *container.Container) error {
		if err := c.Instance("greeting", "Hello"); err != nil {
			return err
		}
		if err := c.Register("clock", func(*container.Container) (any, error) {
			return time.Now, nil
		}); err != nil {
			return err
		}
		return c.Register("greeter", func(c *container.Container) (any, error) {
			greeting, err := container.Resolve[string](c, "greeting")
			if err != nil {
				return nil, err
			}
			now, err := container.Resolve[func() time.Time](c, "clock")
			if err != nil {
				return nil, err
			}
			return &Greeter{Greeting: greeting, Now: now}, nil
		})
	})
}

func (p *greeterProvider) Boot(c *container.Container) error {
	g, err := container.Resolve[*Greeter](c, "greeter")
	if err != nil {
		return err
	}
	logger, err := container.Resolve[*zap.Logger](c, "logger")
	if err != nil {
		return err
	}
	logger.Info(g.Greet("world"))
	return nil
}

func main() {
	application, err := app.New() // loads .env automatically
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = application.Logger().Sync() }()

	if err := application.RegisterProvider(&greeterProvider{}); err != nil {
		application.Logger().Fatal("register provider", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		application.Logger().Error("application stopped", zap.Error(err))
	}
}
