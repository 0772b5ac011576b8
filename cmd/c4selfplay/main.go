package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/connect4/automatic"
	"github.com/domino14/connect4/config"
	"github.com/domino14/connect4/gamestore"
)

var (
	GitVersion string
)

func main() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.AdjustRelativePaths(exPath)

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}

	var logger zerolog.Logger
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
	log.Info().Str("version", GitVersion).Msgf("Loaded config: %v", cfg.SanitizedSettings())

	if err := run(cfg); err != nil {
		log.Err(err).Msg("self-play failed")
		os.Exit(1)
	}
}

// closeInto closes c, keeping its error in *errp unless an earlier error is
// already there.
func closeInto(errp *error, c io.Closer, what string) {
	if cerr := c.Close(); cerr != nil && *errp == nil {
		*errp = fmt.Errorf("closing %s: %w", what, cerr)
	}
}

func run(cfg *config.Config) (err error) {
	if p := cfg.GetString(config.ConfigCPUProfile); p != "" {
		f, err := os.Create(p)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var out io.Writer
	if p := cfg.GetString(config.ConfigSelfplayOutput); p != "" {
		f, ferr := os.Create(p)
		if ferr != nil {
			return fmt.Errorf("creating output file: %w", ferr)
		}
		defer closeInto(&err, f, "output file")
		out = f
	}

	var store *gamestore.Store
	if p := cfg.GetString(config.ConfigGamestorePath); p != "" {
		store, err = gamestore.Open(ctx, p)
		if err != nil {
			return err
		}
		defer closeInto(&err, store, "gamestore")
	}

	start := time.Now()
	summary, err := automatic.StartSelfPlayGames(ctx, cfg, out, store)
	if err != nil {
		return err
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("self-play done")

	bts, err := summary.YAML()
	if err != nil {
		return err
	}
	os.Stdout.Write(bts)
	hist, err := summary.LengthHistogram()
	if err != nil {
		return err
	}
	if hist != "" {
		fmt.Println("\ngame length (plies):")
		fmt.Print(hist)
	}
	return nil
}
