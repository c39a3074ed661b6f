// Package errors provides sentinel errors and error types for the chess rules engine.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrWrongTurn indicates a move of a piece that does not belong to the active player.
	ErrWrongTurn = errors.New("not this player's turn")

	// ErrNoPiece indicates a move from an empty square.
	ErrNoPiece = errors.New("no piece on origin square")

	// ErrUnresolvedNotation indicates an instruction that matches no piece.
	ErrUnresolvedNotation = errors.New("notation does not match any piece")

	// ErrAmbiguousNotation indicates an instruction that matches more than one piece.
	ErrAmbiguousNotation = errors.New("ambiguous notation")

	// ErrAborted indicates a rendezvous was cancelled before a value arrived.
	ErrAborted = errors.New("aborted")

	// ErrMovePending indicates a move was submitted while another is still waiting.
	ErrMovePending = errors.New("a move is already pending")

	// ErrNoPromotionPending indicates a promotion choice sent while no promotion waits for one.
	ErrNoPromotionPending = errors.New("no promotion pending")

	// ErrPromotionAbandoned indicates the promotion wait ended without a piece.
	ErrPromotionAbandoned = errors.New("promotion abandoned")

	// ErrGameOver indicates an operation on a game that has already ended.
	ErrGameOver = errors.New("game is over")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEngineUnavailable indicates the remote move service failed.
	ErrEngineUnavailable = errors.New("move engine unavailable")

	// ErrSessionNotFound indicates an unknown game session id.
	ErrSessionNotFound = errors.New("session not found")
)

// MoveError wraps errors with move context. It implements the error
// interface and supports unwrapping via errors.Is() and errors.As().
type MoveError struct {
	Err  error  // The underlying error
	Ply  int    // 1-based ply number (0 if not applicable)
	Move string // The move in coordinate form (if applicable)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}
	if e.Move != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.Move))
	}

	if len(parts) == 0 {
		if e.Err != nil {
			return e.Err.Error()
		}
		return "move error"
	}

	context := strings.Join(parts, ", ")
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// FENError represents a FEN decoding error with the offending field.
type FENError struct {
	Err   error  // The underlying error
	Field string // FEN field name ("placement", "side", "castling", ...)
	Got   string // What was found instead
}

// Error returns a formatted error message with field context.
func (e *FENError) Error() string {
	var parts []string

	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %q", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "FEN error"
}

// Unwrap returns the underlying error.
func (e *FENError) Unwrap() error {
	return e.Err
}

// NotationError reports an algebraic instruction that could not be resolved.
type NotationError struct {
	Err         error  // ErrUnresolvedNotation or ErrAmbiguousNotation
	Instruction string // Human readable form of the instruction
}

// Error returns a formatted error message.
func (e *NotationError) Error() string {
	if e.Instruction == "" {
		if e.Err != nil {
			return e.Err.Error()
		}
		return "notation error"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Instruction, e.Err)
	}
	return e.Instruction
}

// Unwrap returns the underlying error.
func (e *NotationError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's chain matches target.
// It forwards to the standard library so callers need only one import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
