// chessrules inspects chess positions and replays games against the rules
// engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chessrules version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)

	setupLogFile(cfg)
	setupOutputFile(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	if *replayFile != "" {
		err = runReplay(ctx, cfg, *replayFile, outputFormat())
	} else {
		err = inspect(ctx, cfg, *fenString, flag.Args())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}

	if *appendLog != "" {
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *appendLog, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.OutputFile = file
}

// inspect plays moves from fen, if any, and prints the resulting position
// with its status and legal moves.
func inspect(ctx context.Context, cfg *config.Config, fen string, moves []string) error {
	if fen == "" {
		fen = engine.InitialFEN
	}
	if len(moves) > 0 {
		result := replayJob(ctx, cfg, worker.Job{FEN: fen, Moves: moves})
		if result.Err != nil {
			return result.Err
		}
		fen = result.FEN
		if result.Outcome.Over() {
			cfg.Logf(1, "Game over: %s (%s)\n", result.Outcome.Result, result.Outcome.Score())
		}
	}
	return describePosition(cfg.OutputFile, fen)
}

// describePosition writes the position report for fen.
func describePosition(w io.Writer, fen string) error {
	b, setup, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		return err
	}
	legal := engine.LegalMoves(b, setup.ToMove)
	names := make([]string, len(legal))
	for i, m := range legal {
		names[i] = m.String()
	}

	fmt.Fprintf(w, "FEN:    %s\n", engine.BoardToFEN(b, setup.ToMove, setup.HalfmoveClock))
	fmt.Fprintf(w, "Turn:   %s\n", strings.ToLower(setup.ToMove.String()))
	fmt.Fprintf(w, "Status: %s\n", engine.PositionStatus(b, setup.ToMove))
	fmt.Fprintf(w, "Moves:  %d\n", len(legal))
	if len(names) > 0 {
		fmt.Fprintln(w, strings.Join(names, " "))
	}
	return nil
}
