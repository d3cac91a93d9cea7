// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs the wordtree completion server and its debugging CLI.

wordtree keeps a dictionary of word frequencies in a ternary search tree and
answers prefix completions, near matches and ordered lookups (rank, word at
rank, neighbours). It speaks MessagePack over stdin/stdout for editors and
other programs, or reads commands from a terminal in CLI mode.

# Usage

Start the server with default settings:

	wordtree

Use a custom chunk directory and enable debug logging:

	wordtree -data /path/to/chunks -d

Build chunks from a plain word list on first start, then serve them:

	wordtree -data ~/.config/wordtree/data -text words.txt -chunk 5000

Run the interactive CLI:

	wordtree -c -limit 10 -prmin 2

The data directory holds binary chunks named dict_0001.bin, dict_0002.bin
and so on, ordered from the most to the least frequent words. Chunks are
loaded in order until -words words are resident.

# Configuration

Settings live in config.toml under the user config directory and are
created with defaults on first run. Flags given on the command line win
over the file:

	[server]
	max_limit = 64
	min_prefix = 1
	max_prefix = 60
	enable_filter = true

	[dict]
	max_words = 50000
	chunk_size = 10000
	min_frequency_threshold = 20
	min_frequency_short_prefix = 24

	[tree]
	case_insensitive = true
	locale = ""
	balance_after_load = true
	fuzzy_distance = 1
	fuzzy_tolerance = 1
	cache_size = 1024

# IPC Protocol

See package server for the request ops. A completion round trip:

	{"id": "req1", "p": "hel", "l": 20}
	{"id": "req1", "s": [{"w": "hello", "r": 1}, {"w": "help", "r": 2}], "c": 2, "t": 145}
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordtree/internal/cli"
	"github.com/bastiangx/wordtree/internal/logger"
	"github.com/bastiangx/wordtree/internal/utils"
	"github.com/bastiangx/wordtree/pkg/config"
	"github.com/bastiangx/wordtree/pkg/dictionary"
	"github.com/bastiangx/wordtree/pkg/server"
	"github.com/bastiangx/wordtree/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0-beta"
	AppName = "wordtree"
	gh      = "https://github.com/bastiangx/wordtree"
)

// sigHandler cancels the returned context on SIGINT or SIGTERM. A second
// signal exits at once.
func sigHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		cancel()
		<-c
		os.Exit(1)
	}()
	return ctx
}

func showVersion() {
	banner := logger.Banner("")
	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ wordtree ] ordered word completions from a ternary search tree")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}

// main only wires packages together; the logic lives in them.
func main() {
	ctx := sigHandler()
	defaults := config.DefaultConfig()

	version := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to a config.toml")
	binaryDir := flag.String("data", "data/", "Directory containing the binary chunk files")
	textFile := flag.String("text", "", "Plain word list (word [freq] per line) to load or convert into chunks")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaults.CLI.DefaultLimit, "Number of suggestions to return")
	minPrefix := flag.Int("prmin", defaults.CLI.DefaultMinLen, "Minimum prefix length for suggestions (1 < n <= prmax)")
	maxPrefix := flag.Int("prmax", defaults.CLI.DefaultMaxLen, "Maximum prefix length for suggestions")
	noFilter := flag.Bool("no-filter", defaults.CLI.DefaultNoFilter, "Disable input filtering (DBG only)")
	wordLimit := flag.Int("words", defaults.Dict.MaxWords, "Maximum number of words to load (use 0 for all words)")
	chunkSize := flag.Int("chunk", defaults.Dict.ChunkSize, "Number of words per chunk when converting -text")
	fold := flag.Bool("fold", defaults.Tree.CaseInsensitive, "Match words regardless of case")
	flag.Parse()

	if *version {
		showVersion()
		return
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, activeConfig, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: %s", config.GetActiveConfigPath(activeConfig))

	// Flags set on the command line win over the file.
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["limit"] {
		*limit = cfg.CLI.DefaultLimit
	}
	if !set["prmin"] {
		*minPrefix = cfg.CLI.DefaultMinLen
	}
	if !set["prmax"] {
		*maxPrefix = cfg.CLI.DefaultMaxLen
	}
	if !set["no-filter"] {
		*noFilter = cfg.CLI.DefaultNoFilter
	}
	if set["words"] {
		cfg.Dict.MaxWords = *wordLimit
	}
	if set["chunk"] {
		cfg.Dict.ChunkSize = *chunkSize
	}
	if set["fold"] {
		cfg.Tree.CaseInsensitive = *fold
	}
	if cfg.Dict.MaxWordCountValidation > 0 {
		dictionary.MaxChunkWords = cfg.Dict.MaxWordCountValidation
	}

	configDir, err := config.GetConfigDir()
	if err != nil {
		log.Warnf("No config directory: %v", err)
	}
	pathResolver, err := utils.NewPathResolver(configDir)
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}
	dataDir := pathResolver.DataDir(*binaryDir)
	log.Debugf("Using data dir at: %s", dataDir)

	converted := false
	if *textFile != "" && !utils.IsDataDir(dataDir) {
		if err := convertText(*textFile, dataDir, cfg.Dict.ChunkSize); err != nil {
			log.Fatalf("Failed to convert %s: %v", *textFile, err)
		}
		converted = true
	}

	completer := suggest.NewLazyCompleter(dataDir, cfg.Dict.MaxWords, cfg.CompleterOptions())
	log.Debugf("Init completer: maxWords=[%d]", cfg.Dict.MaxWords)
	if err := completer.Initialize(ctx); err != nil {
		log.Warnf("No chunks loaded from %s (%v), running with an empty dictionary", dataDir, err)
	}
	if *textFile != "" && !converted {
		if err := loadText(*textFile, completer); err != nil {
			log.Fatalf("Failed to load %s: %v", *textFile, err)
		}
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minPrefix", *minPrefix,
			"maxPrefix", *maxPrefix,
			"limit", *limit,
			"noFilter", *noFilter)

		inputHandler := cli.NewInputHandler(completer, *minPrefix, *maxPrefix, *limit, *noFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	showStartupInfo(dataDir, completer.Len())
	srv := server.NewServer(completer, completer.Loader(), cfg)
	if err := srv.Start(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// convertText ranks a word list and writes it as chunks into dir.
func convertText(path, dir string, chunkSize int) error {
	if _, err := dictionary.DetectFormat(path); err != nil {
		return err
	}
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	entries, err := dictionary.ReadText(file)
	if err != nil {
		return err
	}
	n, err := dictionary.WriteChunks(dir, dictionary.RankWords(entries), chunkSize)
	if err != nil {
		return err
	}
	log.Infof("Converted %d words from %s into %d chunks", len(entries), path, n)
	return nil
}

// loadText adds a word list on top of the loaded chunks.
func loadText(path string, completer *suggest.Completer) error {
	if _, err := dictionary.DetectFormat(path); err != nil {
		return err
	}
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	n, err := dictionary.LoadText(file, completer)
	if err != nil {
		return err
	}
	log.Debugf("Loaded %d new words from %s", n, path)
	return nil
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dataDir string, words int) {
	banner := logger.Banner(AppName)
	banner.Infof("Version: %s", Version)
	banner.Infof("Process ID: [ %d ]", os.Getpid())
	banner.Infof("data dir: ( %s )", dataDir)
	banner.Infof("words: %d", words)
	banner.Info("status: ready")
	banner.Print("Press Ctrl+C to exit")
}
