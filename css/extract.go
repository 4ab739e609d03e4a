// Package css recovers per-component CSS blocks from previously serialized
// style-container text. Component boundaries are comment markers of the form
// written by Marker; everything between one marker and the next belongs to the
// preceding component, byte for byte.
package css

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// MarkerPrefix opens every component boundary comment.
const MarkerPrefix = "/* sc-component-id:"

var markerRe = regexp.MustCompile(`^/\*\s*sc-component-id:\s+(\S+)\s+\*/$`)

// Marker returns the boundary comment line for a component. Rehydration
// recovers component boundaries by scanning for this exact line, so its form
// must not change.
func Marker(componentID string) string {
	return MarkerPrefix + " " + componentID + " */\n"
}

// Component is one recovered component block. CSS starts with the component's
// own marker line and runs to the next marker (or end of input).
type Component struct {
	ComponentID string
	CSS         string
}

// ExtractFunc is the extraction contract style containers depend on. It is
// injected into container constructors so they stay testable without a hosted
// document.
type ExtractFunc func(text string) ([]Component, error)

// Extractor scans serialized container text for component boundary markers.
type Extractor struct {
	log *zap.Logger
}

// NewExtractor creates a new extractor.
func NewExtractor(log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{log: log.Named("css-extract")}
}

// Extract tokenizes text and returns its component blocks in source order.
// Text preceding the first marker (typically a leading blank line) carries no
// component id and is dropped, matching how the blocks were written. Malformed
// input is reported as an InputError.
func (e *Extractor) Extract(text string) ([]Component, error) {
	input := parse.NewInputString(text)
	lexer := css.NewLexer(input)

	var comps []Component
	var buf strings.Builder
	open := false // a marker has been seen, buf belongs to comps[len(comps)-1]

	flush := func() {
		if open {
			comps[len(comps)-1].CSS = buf.String()
			buf.Reset()
		}
	}

	for {
		tt, data := lexer.Next()
		switch tt {
		case css.ErrorToken:
			if err := lexer.Err(); !errors.Is(err, io.EOF) {
				return nil, &InputError{Offset: input.Offset(), Err: err}
			}
			flush()
			e.log.Debug("Extracted components", zap.Int("count", len(comps)), zap.Int("bytes", len(text)))
			return comps, nil

		case css.CommentToken:
			if m := markerRe.FindSubmatch(data); m != nil {
				flush()
				comps = append(comps, Component{ComponentID: string(m[1])})
				open = true
			}
			if open {
				buf.Write(data)
			}

		default:
			if open {
				buf.Write(data)
			}
		}
	}
}

// InputError reports serialized container text the extractor could not
// tokenize. It wraps the underlying lexer error.
type InputError struct {
	Offset int
	Err    error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("malformed style container text at offset %d: %v", e.Offset, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }
