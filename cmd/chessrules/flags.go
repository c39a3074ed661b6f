package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/output"
)

// Command-line flags
var (
	// Position inspection
	fenString = flag.String("fen", "", "Position to inspect (default: start position)")

	// Replay
	replayFile = flag.String("replay", "", "Replay one game per line from this file (- for stdin)")
	workers    = flag.Int("j", 0, "Number of replay workers (0 = one per CPU)")
	jsonOutput = flag.Bool("J", false, "Write replay results as one JSON document")
	jsonLines  = flag.Bool("jsonl", false, "Write replay results as JSON lines")

	// Game rules
	repetitionLimit = flag.Int("repetitions", 3, "Occurrences of a position that draw the game")
	fiftyMoveLimit  = flag.Int("fifty", 50, "Half-moves without pawn move or capture that draw the game")
	moveTimeout     = flag.Duration("move-timeout", 0, "Maximum wait for each move (0 = no limit)")

	// Output and logging
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	logFile    = flag.String("l", "", "Write diagnostics to this log file")
	appendLog  = flag.String("L", "", "Append diagnostics to this log file")
	quiet      = flag.Bool("s", false, "Silent mode (no summary)")
	verbose    = flag.Bool("v", false, "Log every move and rejection")

	// Help
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags copies the parsed flags into cfg.
func applyFlags(cfg *config.Config) {
	cfg.Workers = *workers
	cfg.Game.RepetitionLimit = *repetitionLimit
	cfg.Game.FiftyMoveLimit = *fiftyMoveLimit
	cfg.Game.MoveTimeout = *moveTimeout

	switch {
	case *quiet:
		cfg.Verbosity = 0
	case *verbose:
		cfg.Verbosity = 2
	}
}

// outputFormat picks the result format from the flags.
func outputFormat() output.Format {
	switch {
	case *jsonLines:
		return output.FormatJSONLines
	case *jsonOutput:
		return output.FormatJSON
	}
	return output.FormatText
}

func usage() {
	fmt.Fprintf(os.Stderr, `chessrules - chess position inspector and game replayer

Usage: chessrules [options] [move ...]

With no -replay file, the position given by -fen is printed with its
status and legal moves. Moves on the command line are played first.

Replay files hold one game per line: an optional FEN followed by '|',
then moves in coordinate (e2e4, e7e8q) or algebraic (Nf3, exd5, O-O)
form. Move numbers and results are ignored.

Options:
`)
	flag.PrintDefaults()
}
