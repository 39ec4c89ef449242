package h1

import (
	"errors"
	"fmt"
)

// ParseError reports structurally invalid message bytes: a malformed
// start line, bad header syntax, or a head exceeding the configured
// limits. A connection that produced one must not be reused for further
// framing.
type ParseError struct {
	Message string // human-readable error message
	Line    int    // 1-indexed line number where error occurred (0 if unknown)
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("h1: parse error at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("h1: %s", e.Message)
}

// Sentinel errors for framing and body state-machine failures. Callers
// match them with errors.Is; the returned errors usually wrap them with
// detail.
var (
	// ErrAmbiguousFraming reports conflicting body-length signals, such
	// as Transfer-Encoding: chunked alongside Content-Length, or multiple
	// differing Content-Length values. Mis-framing desynchronizes a
	// reused connection, so this is never recovered silently.
	ErrAmbiguousFraming = errors.New("h1: ambiguous body framing")

	// ErrChunkSyntax reports a malformed chunk-size line or trailer
	// section in a chunked body.
	ErrChunkSyntax = errors.New("h1: invalid chunk syntax")

	// ErrUnexpectedEOF reports input ending before a fixed-length or
	// chunked body was fully delimited.
	ErrUnexpectedEOF = errors.New("h1: unexpected end of body")

	// ErrWriteAfterEnd reports a body write through an encoder whose
	// body is already complete, or through one that declared no body.
	ErrWriteAfterEnd = errors.New("h1: write after end of body")

	// ErrWriteOverflow reports a write exceeding the declared
	// Content-Length. The write is rejected, not truncated.
	ErrWriteOverflow = errors.New("h1: write exceeds declared Content-Length")

	// ErrShortBody reports an encoder finished with fewer body bytes
	// written than the declared Content-Length.
	ErrShortBody = errors.New("h1: body shorter than declared Content-Length")
)

func errAmbiguous(detail string) error {
	return fmt.Errorf("%w: %s", ErrAmbiguousFraming, detail)
}

func errChunk(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrChunkSyntax, fmt.Sprintf(format, args...))
}
