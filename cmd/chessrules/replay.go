package main

import (
	"bufio"
	"context"
	"io"
	"os"
	"regexp"
	"runtime"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/game"
	"github.com/lgbarn/chess-rules-go/internal/notation"
	"github.com/lgbarn/chess-rules-go/internal/output"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

// coordinateMove matches moves such as "e2e4" or "e7e8q".
var coordinateMove = regexp.MustCompile(`^[a-h][1-8][a-h][1-8][qrbnQRBN]?$`)

// moveNumber matches "12." and "12...".
var moveNumber = regexp.MustCompile(`^\d+\.+$`)

// isResult returns true for a game termination marker.
func isResult(token string) bool {
	switch token {
	case "1-0", "0-1", "1/2-1/2", "*":
		return true
	}
	return false
}

// parseLine splits one input line into a job. A line may start with a FEN
// followed by "|"; move numbers and result markers are skipped.
func parseLine(index int, line string) worker.Job {
	job := worker.Job{Index: index}
	if i := strings.IndexByte(line, '|'); i >= 0 {
		job.FEN = strings.TrimSpace(line[:i])
		line = line[i+1:]
	}
	for _, token := range strings.Fields(line) {
		if moveNumber.MatchString(token) || isResult(token) {
			continue
		}
		// "1.e4" style
		if i := strings.LastIndexByte(token, '.'); i >= 0 && moveNumber.MatchString(token[:i+1]) {
			token = token[i+1:]
		}
		job.Moves = append(job.Moves, token)
	}
	return job
}

// readJobs reads one game per line. Blank lines and lines starting with
// '#' are ignored.
func readJobs(r io.Reader) ([]worker.Job, error) {
	var jobs []worker.Job
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		jobs = append(jobs, parseLine(len(jobs), line))
	}
	return jobs, scanner.Err()
}

// script is the move list shared by both sides of a replayed game.
type script struct {
	tokens []string
	next   int
	last   chess.Move
	err    error
}

// scriptPlayer reads its moves from a shared script, resolving algebraic
// tokens against the position it is given.
type scriptPlayer struct {
	colour chess.Colour
	script *script
}

func (p *scriptPlayer) Colour() chess.Colour { return p.colour }

// GetMove returns the next token as a move for the position fen.
func (p *scriptPlayer) GetMove(ctx context.Context, fen string) (chess.Move, error) {
	if err := ctx.Err(); err != nil {
		return chess.Move{}, err
	}
	s := p.script
	if s.next >= len(s.tokens) {
		return chess.Move{}, errors.Wrap(errors.ErrAborted, "script exhausted")
	}
	token := s.tokens[s.next]
	s.next++

	m, err := tokenMove(token, p.colour, fen)
	if err != nil {
		s.err = &errors.MoveError{Err: err, Ply: s.next, Move: token}
		return chess.Move{}, s.err
	}
	s.last = m
	return m, nil
}

// tokenMove converts a coordinate or SAN token into a move.
func tokenMove(token string, colour chess.Colour, fen string) (chess.Move, error) {
	if coordinateMove.MatchString(token) {
		m := chess.NewMove(chess.MustParseSquare(token[:2]), chess.MustParseSquare(token[2:4]))
		if len(token) == 5 {
			m.Promotion = chess.PieceTypeFromLetter(token[4])
		}
		return m, nil
	}
	instr, err := notation.Parse(token, colour)
	if err != nil {
		return chess.Move{}, err
	}
	b, _, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		return chess.Move{}, err
	}
	return notation.Resolve(b, instr)
}

// replayJob plays a job through a game. A script that runs out before the
// game ends gives an unfinished result, not an error.
func replayJob(ctx context.Context, cfg *config.Config, job worker.Job) worker.Result {
	result := worker.Result{Index: job.Index, InitialFEN: job.FEN}
	s := &script{tokens: job.Moves}

	g, err := game.New(cfg, &scriptPlayer{colour: chess.White, script: s}, &scriptPlayer{colour: chess.Black, script: s})
	if err != nil {
		result.Err = err
		return result
	}
	defer g.Close()
	if job.FEN != "" {
		if err := g.LoadFEN(job.FEN); err != nil {
			result.Err = err
			result.FEN = job.FEN
			return result
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g.Subscribe(func(e game.Event) {
		switch ev := e.(type) {
		case game.SoundCue:
			if ev.Name == game.SoundIllegal && s.err == nil {
				s.err = &errors.MoveError{Err: errors.ErrIllegalMove, Ply: s.next, Move: s.tokens[s.next-1]}
				cancel()
			}
		case game.Promotion:
			if s.last.Promotion != chess.NoPieceType {
				return
			}
			if err := g.Promote(chess.Queen); err != nil {
				cfg.Logf(2, "Game %d: auto-promotion: %v\n", job.Index+1, err)
			}
		}
	})

	outcome, err := g.Play(ctx)
	result.Outcome = outcome
	result.FEN = g.FEN()
	for _, m := range g.Moves() {
		result.Moves = append(result.Moves, m.String())
	}
	result.Plies = len(result.Moves)
	_, result.Repetitions = g.MostRepeated()
	switch {
	case s.err != nil:
		result.Err = s.err
	case err != nil && s.next >= len(s.tokens) && ctx.Err() == nil:
		// Ran out of moves.
	case err != nil:
		result.Err = err
	}
	return result
}

// runReplay replays every game in the named file ("-" for stdin) on a
// worker pool.
func runReplay(ctx context.Context, cfg *config.Config, path string, format output.Format) error {
	var r io.Reader = os.Stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		r = file
	}

	jobs, err := readJobs(r)
	if err != nil {
		return err
	}
	results := replayAll(ctx, cfg, jobs)
	reportStatistics(cfg, results)
	return output.WriteAll(output.NewWriter(cfg.OutputFile, format), results)
}

// replayAll runs jobs on cfg.Workers workers, one per CPU when unset.
func replayAll(ctx context.Context, cfg *config.Config, jobs []worker.Job) []worker.Result {
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	pool := worker.NewPool(workers, workers*2, func(ctx context.Context, job worker.Job) worker.Result {
		return replayJob(ctx, cfg, job)
	})
	pool.Start(ctx)
	return pool.Run(jobs)
}

// reportStatistics logs a summary of the replayed games.
func reportStatistics(cfg *config.Config, results []worker.Result) {
	counts := make(map[game.Result]int)
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			cfg.Logf(1, "Game %d: %v\n", r.Index+1, r.Err)
			continue
		}
		counts[r.Outcome.Result]++
	}
	cfg.Logf(1, "%d games replayed: %d checkmate, %d stalemate, %d repetition, %d fifty-move, %d unfinished, %d failed\n",
		len(results), counts[game.Checkmated], counts[game.Stalemated], counts[game.DrawnByRepetition],
		counts[game.DrawnByFiftyMoves], counts[game.Ongoing], failed)
}
