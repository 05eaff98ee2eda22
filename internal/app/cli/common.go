package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/docchat/docchat/internal/platform/config"
	"github.com/docchat/docchat/internal/platform/container"
	"github.com/docchat/docchat/internal/platform/logger"
)

// AppContext holds the shared state command actions need.
type AppContext struct {
	Config    *config.Config
	Container *container.Container
}

// NewAppContext loads configuration, connects to the store and wires the
// services.
func NewAppContext(ctx context.Context, envFile string) (*AppContext, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	appLogger := logger.New(logger.DefaultConfig())

	cont, err := container.New(ctx, cfg, container.WithLogger(appLogger))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &AppContext{Config: cfg, Container: cont}, nil
}

// Close releases the resources held by the AppContext.
func (ac *AppContext) Close() {
	if ac.Container != nil {
		ac.Container.Close()
	}
}

// Logger returns the AppContext logger.
func (ac *AppContext) Logger() *slog.Logger {
	if ac.Container != nil {
		return ac.Container.Logger()
	}
	return slog.Default()
}
