package interp

import (
	"os"
	"path/filepath"

	"github.com/xyproto/env/v2"
)

const historyFile = ".mal_history"

// Config is read from the environment by ConfigFromEnv.
type Config struct {
	Prompt      string
	HistoryPath string // empty when history is disabled
	Debug       bool
	Color       bool
}

func ConfigFromEnv() Config {
	defaultHistory := ""
	if home, err := os.UserHomeDir(); err == nil {
		defaultHistory = filepath.Join(home, historyFile)
	}

	cfg := Config{
		Prompt:      env.Str("MAL_PROMPT", "user> "),
		HistoryPath: env.Str("MAL_HISTORY", defaultHistory),
		Debug:       env.Bool("MAL_DEBUG"),
		Color:       !env.Bool("NO_COLOR"),
	}
	if cfg.HistoryPath == "-" {
		cfg.HistoryPath = ""
	}
	return cfg
}
