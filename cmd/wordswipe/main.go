// Copyright 2025 The WordSwipe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the gesture recognition server and CLI [DBG] application.

Note: This is a BETA release. APIs and functionality may rapidly change.

WordSwipe turns a finger path drawn across a virtual keyboard into the words it most
likely spells. Every dictionary word has an ideal path through the centers of its keys;
the drawn path is compared to each of them with windowed Dynamic Time Warping, and the
k closest words are returned. Lower bounds and early abandoning skip most of the work
without ever changing the result.

# Usage

Start the server with default settings:

	wordswipe

Use a custom word list and enable debug mode:

	wordswipe -dict /path/to/words.txt -d

Run in CLI mode for interactive testing:

	wordswipe -c -k 5

The dictionary is either a text file with one word per line, a directory holding
words.txt, or a directory of chunked binary files named dict_0001.bin, dict_0002.bin, etc.

# Configuration

Runtime configuration is managed through a TOML file:

	[recognizer]
	k = 7
	window_ratio = 0.1
	strategy = "combined"
	workers = 1
	y_scale = 0.4

	[dict]
	path = "data"
	max_words = 50000
	cache = "eager"
	cache_spacing = 0.0

	[layout]
	path = ""

	[cli]
	default_k = 7
	canvas_width = 1000.0
	canvas_height = 300.0

The config file is automatically created with defaults if it doesn't exist.
Flags given on the command line override the file.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout, see package server.

	{"id": "g1", "pts": [[600, 150], [250, 50], [900, 150], [850, 50]], "w": 1000, "h": 300}
	{"id": "g1", "s": [{"w": "hello", "d": 0.41, "r": 1}], "c": 1, "t": 310}

# Command Line Flags

	-config string
	    Path to a config file (default: platform config dir)
	-dict string
	    Word list file or dictionary directory
	-layout string
	    TOML or YAML key table (default: built-in QWERTY)
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-k int
	    Number of words to return
	-workers int
	    Dictionary shards scanned in parallel (0 for one per CPU)
	-strategy string
	    Pruning strategy: combined, kim, ucr or none
	-words int
	    Maximum words to load (0 for all)
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordswipe/internal/cli"
	"github.com/bastiangx/wordswipe/internal/logger"
	"github.com/bastiangx/wordswipe/internal/utils"
	"github.com/bastiangx/wordswipe/pkg/config"
	"github.com/bastiangx/wordswipe/pkg/dictionary"
	"github.com/bastiangx/wordswipe/pkg/dtw"
	"github.com/bastiangx/wordswipe/pkg/layout"
	"github.com/bastiangx/wordswipe/pkg/recognize"
	"github.com/bastiangx/wordswipe/pkg/server"
	"github.com/bastiangx/wordswipe/pkg/wordpath"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

const (
	Version = "0.3.0-beta"
	AppName = "wordswipe"
	gh      = "https://github.com/bastiangx/wordswipe"
)

// sigHandler cancels the run on interrupt so the server and CLI loops can return.
// A second signal exits immediately.
func sigHandler(cancel context.CancelFunc) {
	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		cancel()
		<-c
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigHandler(cancel)

	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	configPath := flag.String("config", "", "Path to a config file")
	dictPath := flag.String("dict", defaultConfig.Dict.Path, "Word list file or dictionary directory")
	layoutPath := flag.String("layout", "", "TOML or YAML key table (default: built-in QWERTY)")
	k := flag.Int("k", defaultConfig.Recognizer.K, "Number of words to return")
	workers := flag.Int("workers", defaultConfig.Recognizer.Workers, "Dictionary shards scanned in parallel (0 for one per CPU)")
	strategy := flag.String("strategy", defaultConfig.Recognizer.Strategy, "Pruning strategy: combined, kim, ucr or none")
	wordLimit := flag.Int("words", defaultConfig.Dict.MaxWords, "Maximum number of words to load (use 0 for all words)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, usedConfig, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(usedConfig))

	// flags only override the file when given explicitly
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dict":
			cfg.Dict.Path = *dictPath
		case "layout":
			cfg.Layout.Path = *layoutPath
		case "k":
			cfg.Recognizer.K = *k
			cfg.CLI.DefaultK = *k
		case "workers":
			cfg.Recognizer.Workers = *workers
		case "strategy":
			cfg.Recognizer.Strategy = *strategy
		case "words":
			cfg.Dict.MaxWords = *wordLimit
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Print("Either env is not set or system is not supported")
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	resolvedDict, err := pathResolver.GetDataPath(cfg.Dict.Path)
	if err != nil {
		if *debugMode {
			for key, val := range pathResolver.DiagnosePathIssues(cfg.Dict.Path) {
				log.Debug("path diagnostics", key, val)
			}
		}
		log.Fatalf("No dictionary found for %q (use -dict, or -d for diagnostics)", cfg.Dict.Path)
	}

	dict, err := dictionary.Load(resolvedDict, cfg.Dict.MaxWords)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}

	keys := layout.Default()
	if cfg.Layout.Path != "" {
		if keys, err = layout.LoadFile(cfg.Layout.Path); err != nil {
			log.Fatalf("Failed to load layout: %v", err)
		}
	}
	// drawn paths get the same vertical weight during normalization
	keys = keys.Scale(1, cfg.Recognizer.YScale)

	rec, err := newRecognizer(cfg, dict, keys)
	if err != nil {
		log.Fatalf("Failed to init recognizer: %v", err)
	}

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		inputHandler := cli.NewInputHandler(rec, cli.Options{
			K:            cfg.CLI.DefaultK,
			CanvasWidth:  cfg.CLI.CanvasWidth,
			CanvasHeight: cfg.CLI.CanvasHeight,
			YScale:       cfg.Recognizer.YScale,
		})
		if err := inputHandler.Start(ctx); err != nil && ctx.Err() == nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(rec, server.Options{
		DefaultK: cfg.Recognizer.K,
		YScale:   cfg.Recognizer.YScale,
	})

	showStartupInfo(resolvedDict, rec.Stats())

	if err := srv.Start(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// newRecognizer wires the configured strategy and path source.
func newRecognizer(cfg *config.Config, dict *dictionary.Dictionary, keys *layout.Layout) (*recognize.Recognizer, error) {
	strategy, err := dtw.ParseStrategy(cfg.Recognizer.Strategy)
	if err != nil {
		return nil, err
	}

	var source wordpath.Source = wordpath.NewLazy(keys)
	if cfg.Dict.Cache == config.CacheEager {
		source = wordpath.NewCache(keys, dict.Words(), cfg.Dict.CacheSpacing)
	}

	return recognize.New(dict, keys,
		recognize.WithStrategy(strategy),
		recognize.WithWindowRatio(cfg.Recognizer.WindowRatio),
		recognize.WithWorkers(cfg.Recognizer.Workers),
		recognize.WithSource(source),
		recognize.WithLogger(logger.New("recognize")),
	)
}

func printVersion() {
	banner := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ WordSwipe ] Swipe a path, get the words!")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dictPath string, stats map[string]int) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println(" WordSwipe ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("dictionary: ( %s ), %s words", dictPath, humanize.Comma(int64(stats["totalWords"])))
	log.Infof("workers: %d", stats["workers"])
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
