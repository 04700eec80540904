package app

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/computedgen/internal/config"
	"github.com/specialistvlad/computedgen/internal/ctxlog"
	"github.com/specialistvlad/computedgen/internal/fsutil"
	"github.com/specialistvlad/computedgen/internal/gosource"
	"github.com/specialistvlad/computedgen/internal/model"
	"github.com/specialistvlad/computedgen/internal/schema"
)

// inputLoaders returns the loaders for every supported input format.
func inputLoaders() config.Loaders {
	return config.Loaders{
		".go": config.LoaderFunc(func(filename string, src []byte, sel config.Selection) (*model.File, hcl.Diagnostics) {
			return gosource.Load(filename, src, gosource.Options{Types: sel.Types, Constructor: sel.Constructor})
		}),
		schema.Extension: config.LoaderFunc(func(filename string, src []byte, sel config.Selection) (*model.File, hcl.Diagnostics) {
			return schema.Load(filename, src, schema.Options{Types: sel.Types, Constructor: sel.Constructor})
		}),
	}
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	outMu   sync.Mutex
	logger  *slog.Logger
	config  *Config
	loaders config.Loaders
	filter  fsutil.Filter
}

// NewApp returns an App writing logs and diagnostics to outW.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	loaders := inputLoaders()
	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		loaders: loaders,
		filter: fsutil.Filter{
			Extensions: loaders.Extensions(),
			Exclude:    []string{"_test.go", cfg.Suffix},
		},
	}
}

// Context returns ctx carrying the application's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
