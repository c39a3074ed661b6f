// Package output writes replay results as text or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/worker"
)

// ResultWriter is the interface for writing replay results.
// Different implementations handle different output formats.
type ResultWriter interface {
	// WriteResult writes a single result to the output.
	WriteResult(r worker.Result) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// Format selects a ResultWriter.
type Format int

const (
	FormatText Format = iota
	FormatJSON
	FormatJSONLines
)

// NewWriter returns the writer for format.
func NewWriter(w io.Writer, format Format) ResultWriter {
	switch format {
	case FormatJSON:
		return NewJSONWriter(w)
	case FormatJSONLines:
		return NewJSONWriterSingle(w)
	}
	return NewTextWriter(w)
}

// TextWriter writes one tab separated line per game:
// number, score, reason, plies, final FEN and any error.
type TextWriter struct {
	w io.Writer
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// WriteResult writes r immediately.
func (tw *TextWriter) WriteResult(r worker.Result) error {
	jr := ResultToJSON(r)
	fields := []string{
		fmt.Sprint(jr.Game),
		jr.Result,
		jr.Reason,
		fmt.Sprint(jr.Plies),
		jr.FinalFEN,
	}
	if jr.Error != "" {
		fields = append(fields, "error: "+jr.Error)
	}
	_, err := fmt.Fprintln(tw.w, strings.Join(fields, "\t"))
	return err
}

// Flush is a no-op; text is written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter writes results in JSON format.
// It buffers results and writes them as one document on Close or Flush.
type JSONWriter struct {
	w       io.Writer
	results []*JSONResult
	single  bool // If true, write each result as its own line
}

// NewJSONWriter creates a JSON writer that batches results into
// {"games": [...]} on Close.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// NewJSONWriterSingle creates a JSON writer that writes one compact
// object per line as results arrive.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w, single: true}
}

// WriteResult buffers r (or writes it immediately in single mode).
func (jw *JSONWriter) WriteResult(r worker.Result) error {
	if jw.single {
		return json.NewEncoder(jw.w).Encode(ResultToJSON(r))
	}
	jw.results = append(jw.results, ResultToJSON(r))
	return nil
}

// Flush writes all buffered results.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.results) == 0 {
		return nil
	}

	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	err := enc.Encode(&JSONOutput{Games: jw.results})

	// Clear buffer after writing
	jw.results = jw.results[:0]

	return err
}

// Close flushes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}

// WriteAll writes results through rw and closes it.
func WriteAll(rw ResultWriter, results []worker.Result) error {
	for _, r := range results {
		if err := rw.WriteResult(r); err != nil {
			return err
		}
	}
	return rw.Close()
}
