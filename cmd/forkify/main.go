// Forkify: search recipes, scale servings, build a shopping list and keep
// favorites, from the terminal.
//
// Usage:
//
//	forkify [-offline] [-favorites file|sqlite|memory] [-voice] [-verbose]
package main

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"time"

	"github.com/hammamikhairi/forkify/internal/config"
	"github.com/hammamikhairi/forkify/internal/conversation"
	"github.com/hammamikhairi/forkify/internal/display"
	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/engine"
	"github.com/hammamikhairi/forkify/internal/logger"
	"github.com/hammamikhairi/forkify/internal/recipe"
	"github.com/hammamikhairi/forkify/internal/speech"
	"github.com/hammamikhairi/forkify/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	opts := newFlags(cfg)
	opts.Parse()

	// Configure logger.
	logLevel := logger.LevelNormal
	if *opts.verbose {
		logLevel = logger.LevelVerbose
	}
	if *opts.quiet {
		logLevel = logger.LevelOff
	}

	// Logs go to a file by default so the REPL stays clean.
	var logOut io.Writer = os.Stderr
	if *opts.logFile != "" && *opts.logFile != "stderr" {
		if dir := filepath.Dir(*opts.logFile); dir != "" && dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *opts.logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// The whisper transcriber logs through the standard log package.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Recipe source.
	var recipes domain.RecipeSource
	if *opts.offline {
		recipes = recipe.NewMemorySource(log)
		log.Info("offline: using built-in recipes")
	} else {
		recipes = recipe.NewAPISource(cfg.API.BaseURL, log,
			recipe.WithAPIKey(cfg.API.Key),
			recipe.WithRateLimit(cfg.API.RateLimit, 4),
		)
		log.Info("recipe API: %s", cfg.API.BaseURL)
	}

	// Favorites persistence.
	repo, closeRepo, err := openRepository(ctx, *opts.favorites, *opts.favoritesPath, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeRepo()

	eng := engine.New(recipes, repo, log)
	if err := eng.LoadFavorites(ctx); err != nil {
		log.Warn("loading favorites: %v", err)
	}

	ui := display.NewUI(func() display.Status {
		st := eng.Status()
		return display.Status{
			RecipeTitle: st.RecipeTitle,
			Servings:    st.Servings,
			Liked:       st.Liked,
			ListItems:   st.ListItems,
			Favorites:   st.Favorites,
		}
	})
	textNotifier := conversation.NewCLINotifier(log, ui.Printf)
	parser := conversation.NewKeywordParser(log)

	// Speech output wraps the text notifier when Azure credentials exist.
	var notifier domain.Notifier = textNotifier
	var mouth *speech.Mouth
	if cfg.Speech.Enabled() && !*opts.noSpeech {
		tts := speech.NewAzureClient(cfg.Speech.AzureKey, cfg.Speech.AzureRegion, log, speech.WithVoice(*opts.ttsVoice))
		player, err := speech.NewPlayer(log)
		if err != nil {
			log.Error("audio player init failed, speech disabled: %v", err)
		} else {
			mouth = speech.NewMouth(tts, player, log, speech.WithVoiceName(tts.Voice()))
			mouth.Start(ctx)
			notifier = speech.NewSpeakingNotifier(textNotifier, mouth, log)
			log.Info("TTS enabled (voice=%s, region=%s)", tts.Voice(), cfg.Speech.AzureRegion)
		}
	} else if !*opts.noSpeech {
		log.Info("TTS disabled: set %s and %s to enable", config.EnvAzureSpeechKey, config.EnvAzureSpeechRegion)
	}

	// Voice input.
	var ear *speech.Ear
	if *opts.voice {
		if _, err := os.Stat(*opts.whisperModel); err != nil {
			fmt.Fprintf(os.Stderr, "error: whisper model not found at %s\n", *opts.whisperModel)
			os.Exit(1)
		}
		_ = os.MkdirAll(".forkify-stt", 0o755)
		ear = speech.NewEar(*opts.whisperBin, *opts.whisperModel, mouth, log,
			speech.WithRecordDuration(time.Duration(*opts.recordSecs)*time.Second),
			speech.WithTempDir(".forkify-stt"),
		)
		go ear.Run(ctx)
		log.Info("voice input enabled (bin=%s, model=%s, chunk=%ds)", *opts.whisperBin, *opts.whisperModel, *opts.recordSecs)
	}

	var voice domain.SpeechProvider = speech.NewNoOp(log)
	if mouth != nil {
		voice = speech.NewVoice(mouth, ear, log)
	}

	app := &cliApp{
		engine:   eng,
		parser:   parser,
		notifier: notifier,
		voice:    voice,
		mouth:    mouth,
		ear:      ear,
		log:      log,
		ui:       ui,
	}

	fmt.Println(display.RenderBanner())
	if ear != nil {
		fmt.Println(display.BannerStyle.Render("  Voice mode on: say \"Hey Forkify\" and a command, or type."))
	}
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
}

// openRepository builds the favorites backend. The returned close function
// is always safe to call.
func openRepository(ctx context.Context, backend, path string, log *logger.Logger) (domain.FavoritesRepository, func(), error) {
	b, err := config.ParseBackend(backend)
	if err != nil {
		return nil, nil, err
	}
	if path == "" {
		path = b.DefaultPath()
	}

	switch b {
	case config.BackendSQLite:
		repo, err := storage.OpenSQLite(ctx, path, log)
		if err != nil {
			return nil, nil, fmt.Errorf("opening favorites database: %w", err)
		}
		return repo, func() { _ = repo.Close() }, nil
	case config.BackendFile:
		return storage.NewFileRepository(path, log), func() {}, nil
	default:
		return storage.NewMemoryRepository(log), func() {}, nil
	}
}
