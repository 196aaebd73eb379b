package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/user-none/padnav/bridge/ws"
	"github.com/user-none/padnav/cli"
	"github.com/user-none/padnav/feedback"
	"github.com/user-none/padnav/hw"
	"github.com/user-none/padnav/input"
	"github.com/user-none/padnav/storage"
)

func main() {
	configPath := flag.String("config", "", "path to config.json or config.yaml (default: user config dir)")
	logLevel := flag.String("log-level", "info", "log level: error, warn, info, or debug")
	listen := flag.String("listen", "", "enable the WebSocket bridge on host:port (overrides config)")
	flag.Parse()

	level, err := parseLogLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := setupLogger(level)

	if err := run(logger, *configPath, *listen); err != nil {
		logger.Error("padnav exited", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, configPath, listen string) error {
	fs := afero.NewOsFs()

	if configPath == "" {
		p, err := storage.DefaultConfigPath()
		if err != nil {
			return err
		}
		configPath = p
	}
	if err := storage.CreateConfigIfMissing(fs, configPath); err != nil {
		logger.Warn("failed to create config", "path", configPath, "error", err)
	}
	config, err := storage.LoadConfig(fs, configPath)
	if err != nil {
		return err
	}
	if listen != "" {
		config.Bridge.Enabled = true
		config.Bridge.Listen = listen
	}

	coord, err := newCoordinator(config, logger)
	if err != nil {
		return err
	}

	for _, kind := range []input.EventKind{input.EventNav, input.EventSelect, input.EventBack} {
		coord.Subscribe(kind, func(e input.Event) {
			logger.Debug("input event", "kind", e.Kind, "dir", e.Dir, "mode", e.Mode, "source", e.Source, "ts", e.At)
		})
	}

	sfx := feedback.Load(audio.NewContext(feedback.SampleRate), fs, feedback.Options{
		Clips: map[input.EventKind]string{
			input.EventNav:    config.Sounds.Nav,
			input.EventSelect: config.Sounds.Select,
			input.EventBack:   config.Sounds.Back,
		},
		Volume: config.Sounds.Level(),
		Muted:  config.Sounds.Muted,
	}, logger.With("component", "sfx"))
	sfx.Attach(coord)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	if config.Bridge.Enabled {
		startBridge(ctx, g, coord, config.Bridge, logger.With("component", "bridge"))
	}

	ebiten.SetWindowSize(640, 360)
	ebiten.SetWindowTitle("padnav")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	gameErr := ebiten.RunGame(newGame(ctx, coord))
	stop()
	if err := g.Wait(); err != nil {
		return err
	}
	if errors.Is(gameErr, ebiten.Termination) {
		return nil
	}
	return gameErr
}

func newCoordinator(config *storage.Config, logger *slog.Logger) (*input.Coordinator, error) {
	cfg, err := config.InputConfig()
	if err != nil {
		return nil, err
	}
	keys, err := config.KeyBindings(hw.IsKeyName)
	if err != nil {
		return nil, err
	}
	pads, err := config.ControllerBindings(hw.IsPadName)
	if err != nil {
		return nil, err
	}

	inputLogger := logger.With("component", "input")
	return input.NewCoordinator(
		input.NewKeyboardAdapter(hw.Keyboard{}, keys),
		input.NewGamepadAdapter(hw.NewGamepad(inputLogger), pads, cfg, inputLogger),
		cfg,
		input.WithLogger(inputLogger),
	)
}

func startBridge(ctx context.Context, g *errgroup.Group, coord *input.Coordinator, cfg storage.BridgeConfig, logger *slog.Logger) {
	hub := ws.NewHub(logger, ws.HubConfig{Active: coord.ActiveDevice})
	hub.Attach(coord)

	mux := http.NewServeMux()
	mux.Handle(cfg.Path, hub)
	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		hub.Run(ctx)
		return nil
	})
	g.Go(func() error {
		logger.Info("event bridge listening", "addr", cfg.Listen, "path", cfg.Path)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("event bridge: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

// game stops the Ebiten loop when ctx is cancelled (signal or bridge failure).
type game struct {
	*cli.Runner
	ctx context.Context
}

func newGame(ctx context.Context, coord *input.Coordinator) *game {
	return &game{Runner: cli.NewRunner(coord, 640, 360), ctx: ctx}
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	return g.Runner.Update()
}
