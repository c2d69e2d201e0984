package boilerplate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-barry/boilerplate/core"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 5 * time.Second
)

type RuntimeConfig struct {
	Env        string
	Port       int
	ConfigPath string
	LiveReload bool

	// Routes installs application routes. Requests no route matches get
	// the placeholder page.
	Routes func(r *core.Router)
}

// Start runs the server until SIGINT or SIGTERM.
var Start = func(cfg RuntimeConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Run(ctx, cfg)
}

// Run serves until ctx is done, then shuts down gracefully.
func Run(ctx context.Context, rt RuntimeConfig) error {
	if rt.ConfigPath == "" {
		rt.ConfigPath = core.DefaultConfigFile
	}

	config, err := core.LoadConfig(rt.ConfigPath)
	if err != nil {
		return err
	}
	if rt.Port != 0 {
		config.Port = rt.Port
	}
	if rt.LiveReload {
		config.LiveReload = true
	}

	logger := core.NewLogger(os.Stderr, config.DebugLogs || rt.Env == "dev")

	shutdownTelemetry, err := core.SetupTelemetry(ctx, config.Telemetry)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	handler, err := NewHandler(ctx, rt, config, logger)
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", config.Port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", config.Port, err)
	}

	fmt.Printf("✅ Boilerplate running at http://localhost:%d\n", listener.Addr().(*net.TCPAddr).Port)
	return Serve(ctx, listener, handler, logger)
}

// Serve runs an http.Server on listener until ctx is done.
func Serve(ctx context.Context, listener net.Listener, handler http.Handler, logger *slog.Logger) error {
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", "addr", listener.Addr().String())
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server shutdown complete")
	return nil
}

// NewHandler builds the request pipeline: tracing and request logging
// around a Router whose fallback is the placeholder Page. In dev with live
// reload on, the reload socket and client script are mounted in front and
// the page re-renders whenever the config file changes.
func NewHandler(ctx context.Context, rt RuntimeConfig, config core.Config, logger *slog.Logger) (http.Handler, error) {
	liveReload := rt.Env == "dev" && config.LiveReload

	page, err := core.NewPage(config.Page, core.RenderOptions{ReloadScript: liveReload})
	if err != nil {
		return nil, err
	}

	router := core.NewRouter(config, page)
	if rt.Routes != nil {
		rt.Routes(router)
	}

	var handler http.Handler = router
	if liveReload {
		reloader := core.NewLiveReloader(logger)

		configPath := rt.ConfigPath
		if configPath == "" {
			configPath = core.DefaultConfigFile
		}
		err := core.Watch(ctx, configPath, func() {
			if _, err := os.Stat(configPath); err != nil {
				logger.Warn("config reload skipped", "path", configPath, "error", err)
				return
			}
			updated, err := core.LoadConfig(configPath)
			if err != nil {
				logger.Warn("config reload failed", "path", configPath, "error", err)
				return
			}
			if err := page.Reload(updated.Page); err != nil {
				logger.Warn("page reload failed", "error", err)
				return
			}
			logger.Info("page reloaded", "path", configPath)
			reloader.BroadcastReload()
		})
		if err != nil {
			logger.Warn("config watch disabled", "error", err)
		}

		handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case core.ReloadSocketPath:
				core.SetRoute(r, core.ReloadSocketPath)
				reloader.Handler(w, r)
			case core.ReloadScriptPath:
				core.SetRoute(r, core.ReloadScriptPath)
				core.ReloadScriptHandler(w, r)
			default:
				router.ServeHTTP(w, r)
			}
		})
	}

	return core.Traced(core.RequestLogger(logger, handler)), nil
}
