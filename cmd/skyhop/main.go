package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chosenoffset.com/skyhop/internal/config"
	"chosenoffset.com/skyhop/internal/game"
	"chosenoffset.com/skyhop/internal/logging"
	ebitenrender "chosenoffset.com/skyhop/internal/render/ebiten"
)

func main() {
	configPath := flag.String("config", "data/skyhop.yaml", "path to the game config file")
	list := flag.Bool("list", false, "list the level configs in the config file's directory and exit")
	flag.Parse()

	if *list {
		if err := listLevels(filepath.Dir(*configPath)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create logger: %v\n", err)
		os.Exit(1)
	}
	logger = logger.With(zap.String("run_id", uuid.NewString()))
	defer logging.Sync(logger)

	if err := run(cfg, logger, *configPath); err != nil {
		logger.Error("game exited with error", zap.Error(err))
		logging.Sync(logger)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger, configPath string) error {
	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	gameManager, err := game.NewManager(cfg, renderer, inputMgr, logger)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	// Set up the window
	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(cfg.Window.Resizable)

	logger.Info("starting game",
		zap.String("config", configPath),
		zap.String("level", cfg.Level.Name),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)
	if err := engine.RunGame(gameManager); err != nil {
		return err
	}
	logger.Info("game closed")
	return nil
}

func listLevels(dir string) error {
	levels, err := config.ScanDataDirectory(dir)
	if err != nil {
		return err
	}
	if len(levels) == 0 {
		fmt.Printf("No level configs found in %s\n", dir)
		return nil
	}
	for _, l := range levels {
		fmt.Printf("%-16s %-32s %d platforms\n", l.Name, l.Path, l.Platforms)
	}
	return nil
}
