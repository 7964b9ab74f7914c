package main

import (
	"flag"

	"github.com/hammamikhairi/forkify/internal/config"
	"github.com/hammamikhairi/forkify/internal/speech"
)

type flags struct {
	cfg *config.Config

	offline       *bool
	favorites     *string
	favoritesPath *string
	verbose       *bool
	quiet         *bool
	logFile       *string
	noSpeech      *bool
	ttsVoice      *string
	voice         *bool
	whisperBin    *string
	whisperModel  *string
	recordSecs    *int
}

// newFlags registers command-line flags. Defaults come from cfg so flags
// override the environment.
func newFlags(cfg *config.Config) *flags {
	return &flags{
		cfg:           cfg,
		offline:       flag.Bool("offline", false, "use the built-in recipe collection instead of the recipe API"),
		favorites:     flag.String("favorites", string(cfg.Favorites.Backend), "favorites backend: file, sqlite or memory"),
		favoritesPath: flag.String("favorites-path", "", "favorites file or database path (default depends on backend)"),
		verbose:       flag.Bool("verbose", false, "enable verbose/debug logging"),
		quiet:         flag.Bool("quiet", false, "disable all logging"),
		logFile:       flag.String("log-file", ".forkify/forkify.log", "file to write logs to (use \"stderr\" to log to console)"),
		noSpeech:      flag.Bool("no-speech", false, "disable text-to-speech even if Azure keys are set"),
		ttsVoice:      flag.String("tts-voice", speech.DefaultVoice, "Azure neural voice for text-to-speech"),
		voice:         flag.Bool("voice", false, "enable voice input via local Whisper STT"),
		whisperBin:    flag.String("whisper-bin", "whisper-cli", "path to the whisper-cpp CLI binary"),
		whisperModel:  flag.String("whisper-model", "bin/ggml-small.bin", "path to the Whisper GGML model file"),
		recordSecs:    flag.Int("record-secs", 4, "seconds per voice recording chunk"),
	}
}

func (f *flags) Parse() {
	flag.Parse()
	// An explicit path from the environment applies only when the flag
	// was left empty.
	if *f.favoritesPath == "" && *f.favorites == string(f.cfg.Favorites.Backend) {
		*f.favoritesPath = f.cfg.Favorites.Path
	}
}
