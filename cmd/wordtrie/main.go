// Copyright 2025 The WordTrie Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs the wordtrie completion engine as a MessagePack IPC server
or as an interactive CLI.

Note: This is a BETA release. APIs and functionality may rapidly change.

wordtrie completes partial, substring and misspelled input against a
vocabulary learned from text. Words are found through a pair of directional
tries and ranked by how often they, or the pair of words being typed, were
seen.

# Usage

Start the server on an empty vocabulary:

	wordtrie

Seed it from a directory of .txt corpus files, with debug logging:

	wordtrie -data /path/to/corpus -d

Run in CLI mode with typo tolerance:

	wordtrie -c -fuzzy -limit 10

Each line of a corpus file is tokenized and added on its own, so word pairs
never span lines.

# Configuration

Runtime configuration is read from a TOML file, created with defaults on
first run:

	[trie]
	prefix_mode = "full"
	max_edit_distance = 1

	[rank]
	candidate_multiplier = 3
	default_limit = 10

	[vocab]
	expected_words = 100000
	false_positive_rate = 0.01
	max_words = 0

	[server]
	max_limit = 64
	min_prefix = 1
	max_prefix = 60
	enable_filter = true

Keys that fail to parse fall back to their defaults.

# IPC Protocol

See package server. A completion request and its response:

	{"id": "req1", "p": "the qu", "l": 5}
	{"id": "req1", "s": [{"w": "the quick", "r": 1, "f": 3}], "c": 1, "t": 85}

Text can be added or removed while serving:

	{"id": "idx1", "action": "add", "t": "the quick brown fox"}

# Command Line Flags

	-version
	    Show version
	-config string
	    Path to a config file
	-data string
	    Directory of .txt corpus files to load on start
	-d  Enable debug logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of suggestions to return in CLI mode
	-fuzzy
	    Start the CLI with typo tolerance on
	-mode string
	    Prefix trie indexing mode, "full" or "partial"
	-words int
	    Maximum distinct words to load (0 for all)
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordtrie/internal/cli"
	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/server"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0-beta"
	AppName = "wordtrie"
	gh      = "https://github.com/bastiangx/wordtrie"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main only manages the flow between config, corpus loading and the
// chosen front end.
func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to a custom config file")
	dataDir := flag.String("data", "", "Directory of .txt corpus files to load on start")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaults.CLI.DefaultLimit, "Number of suggestions to return in CLI mode")
	fuzzy := flag.Bool("fuzzy", false, "Start the CLI with typo tolerance on")
	mode := flag.String("mode", "", "Prefix trie mode: full or partial (default from config)")
	wordLimit := flag.Int("words", -1, "Maximum number of distinct words to load (0 for all, default from config)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.Configure(*debugMode)

	appConfig, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))

	if *mode != "" {
		if _, ok := trie.ParseMode(*mode); !ok {
			log.Fatalf("Unknown mode %q, expected full or partial", *mode)
		}
		appConfig.Trie.PrefixMode = *mode
	}
	if *wordLimit >= 0 {
		appConfig.Vocab.MaxWords = *wordLimit
	}

	completer := suggest.NewCompleter(appConfig.CompleterOptions())
	if *dataDir != "" {
		loadCorpus(completer, *dataDir, appConfig.Vocab.MaxWords)
	} else {
		log.Warn("No data dir specified, starting with an empty vocabulary...")
	}

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.Debug("Input info:",
			"minPrefix", appConfig.CLI.DefaultMinLen,
			"maxPrefix", appConfig.CLI.DefaultMaxLen,
			"limit", *limit,
			"fuzzy", *fuzzy)

		inputHandler := cli.NewInputHandler(completer,
			appConfig.CLI.DefaultMinLen, appConfig.CLI.DefaultMaxLen, *limit, appConfig.CLI.DefaultNoFilter)
		inputHandler.SetFuzzy(*fuzzy)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	showStartupInfo(completer, *dataDir)
	if err := server.NewServer(completer, appConfig).Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func loadCorpus(completer suggest.ICompleter, dir string, maxWords int) {
	loader := dictionary.NewLoader(completer, nil, maxWords)
	err := loader.LoadDir(dir)
	stats := loader.Stats()
	switch {
	case errors.Is(err, dictionary.ErrVocabularyFull):
		log.Warnf("Stopped loading at %d distinct words", maxWords)
	case err != nil:
		log.Errorf("Loading corpus from %s: %v", dir, err)
	}
	log.Debug("Corpus loaded",
		"files", stats.Files,
		"lines", stats.Lines,
		"tokens", stats.Tokens,
		"skipped", stats.Skipped)
}

func printVersion() {
	banner := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ wordtrie ] Fuzzy, frequency ranked word completions")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(completer suggest.ICompleter, dataDir string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	stats := completer.Stats()
	log.Infof("%s %s", AppName, Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	if dataDir != "" {
		log.Infof("data dir: ( %s )", dataDir)
	}
	log.Infof("words: %d, occurrences: %d, pairs: %d", stats["tokens"], stats["occurrences"], stats["pairs"])
	log.Info("status: ready")
}
