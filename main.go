package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.design/x/clipboard"

	"github.com/ORO42/nodeboard/boardspec"
)

func main() {
	boardPath := flag.String("board", "", "board yaml file (watched for changes; defaults to the built-in scratchpad)")
	demo := flag.Bool("demo", false, "use the built-in grid-demo board with a tengo layout script")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if *debug {
		logger.SetLevel(log.DebugLevel)
	}

	var (
		spec    *boardspec.Board
		watcher *boardspec.Watcher
		err     error
	)
	switch {
	case *boardPath != "":
		spec, err = boardspec.Load(*boardPath)
		if err != nil {
			logger.Fatal("load board", "err", err)
		}
		watcher, err = boardspec.NewWatcher(filepath.Dir(*boardPath))
		if err != nil {
			logger.Warn("file watching disabled", "err", err)
			watcher = nil
		}
	case *demo:
		spec, err = boardspec.LoadEmbedded("grid.yaml")
		if err != nil {
			logger.Fatal("load board", "err", err)
		}
	default:
		spec, err = boardspec.LoadDefault()
		if err != nil {
			logger.Fatal("load board", "err", err)
		}
	}
	if err := spec.ApplyLayout(); err != nil {
		logger.Error("layout script failed, using file positions", "err", err)
	}

	clipboardOK := true
	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable", "err", err)
		clipboardOK = false
	}

	logger.Info("board loaded", "board", spec.Name, "cards", len(spec.Cards))

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(spec.Viewport.Width, spec.Viewport.Height+hudHeight)
	ebiten.SetWindowTitle("nodeboard - " + spec.Name)

	game := NewGame(spec, *boardPath, watcher, clipboardOK, logger)
	if watcher != nil {
		defer watcher.Close()
	}

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("run", "err", err)
	}
}
