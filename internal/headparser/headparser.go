// Package headparser scans HTTP/1.x message heads (start line plus
// header block) from the front of a byte buffer.
//
// The scanner is incremental: when the buffer does not yet hold a
// complete head, scanning reports zero bytes consumed and no error, and
// the caller retries with the same bytes plus whatever has since
// arrived. Nothing is consumed until a head completes, so a retry sees
// exactly the input the previous attempt saw. Bodies are never touched;
// body delimiting belongs to the caller.
package headparser

import (
	"bytes"
	"fmt"
)

// Limits bounds the size of an acceptable head.
type Limits struct {
	MaxHeaderCount int // maximum number of header fields
	MaxHeadBytes   int // maximum total head size, start line included
}

// Default limits, applied when a field is zero.
const (
	DefaultMaxHeaderCount = 100
	DefaultMaxHeadBytes   = 64 << 10
)

func (l Limits) withDefaults() Limits {
	if l.MaxHeaderCount <= 0 {
		l.MaxHeaderCount = DefaultMaxHeaderCount
	}
	if l.MaxHeadBytes <= 0 {
		l.MaxHeadBytes = DefaultMaxHeadBytes
	}
	return l
}

// Field is a single header name-value pair, case preserved.
type Field struct {
	Key   string
	Value string
}

// RequestHead is a scanned request start line plus headers.
type RequestHead struct {
	Method  string
	Target  string
	Proto   string // "HTTP/1.0" or "HTTP/1.1"
	Headers []Field
}

// ResponseHead is a scanned status line plus headers.
type ResponseHead struct {
	Proto   string // "HTTP/1.0" or "HTTP/1.1"
	Status  int
	Reason  string
	Headers []Field
}

// scanner walks the buffer line by line, tracking position and the
// 1-indexed number of the line most recently read, for error reporting.
type scanner struct {
	data []byte
	pos  int
	line int
	max  int // MaxHeadBytes
}

// ScanRequest scans one complete request head from the front of buf.
// It returns the head and the number of bytes consumed. consumed == 0
// with a nil error means the head is incomplete and more input is
// needed; the same buffer may be retried.
func ScanRequest(buf []byte, limits Limits) (*RequestHead, int, error) {
	limits = limits.withDefaults()
	s := &scanner{data: buf, max: limits.MaxHeadBytes}

	line, ok, err := s.readLine()
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return nil, 0, nil
	}

	sp1 := bytes.IndexByte(line, ' ')
	if sp1 <= 0 {
		return nil, 0, s.errorf("malformed request line: no method separator")
	}
	method := internMethod(line[:sp1])
	rest := line[sp1+1:]

	sp2 := bytes.IndexByte(rest, ' ')
	if sp2 <= 0 {
		return nil, 0, s.errorf("malformed request line: no version separator")
	}
	target := string(rest[:sp2])
	proto, perr := validProto(rest[sp2+1:])
	if perr != nil {
		return nil, 0, s.errorf("%s", perr)
	}
	if !validToken(method) {
		return nil, 0, s.errorf("invalid request method %q", method)
	}

	headers, n, err := s.scanHeaders(limits)
	if err != nil {
		return nil, 0, err
	}
	if n == 0 {
		return nil, 0, nil
	}

	return &RequestHead{
		Method:  method,
		Target:  target,
		Proto:   proto,
		Headers: headers,
	}, n, nil
}

// ScanResponse scans one complete status line plus headers from the
// front of buf, with the same incomplete-head convention as ScanRequest.
func ScanResponse(buf []byte, limits Limits) (*ResponseHead, int, error) {
	limits = limits.withDefaults()
	s := &scanner{data: buf, max: limits.MaxHeadBytes}

	line, ok, err := s.readLine()
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return nil, 0, nil
	}

	sp1 := bytes.IndexByte(line, ' ')
	if sp1 <= 0 {
		return nil, 0, s.errorf("malformed status line: no version separator")
	}
	proto, perr := validProto(line[:sp1])
	if perr != nil {
		return nil, 0, s.errorf("%s", perr)
	}
	rest := line[sp1+1:]

	// Reason phrase is optional: "HTTP/1.1 200" is accepted.
	codeBytes := rest
	reason := ""
	if sp2 := bytes.IndexByte(rest, ' '); sp2 >= 0 {
		codeBytes = rest[:sp2]
		reason = internReason(rest[sp2+1:])
	}
	status, ok := parseStatus(codeBytes)
	if !ok {
		return nil, 0, s.errorf("invalid status code %q", string(codeBytes))
	}

	headers, n, err := s.scanHeaders(limits)
	if err != nil {
		return nil, 0, err
	}
	if n == 0 {
		return nil, 0, nil
	}

	return &ResponseHead{
		Proto:   proto,
		Status:  status,
		Reason:  reason,
		Headers: headers,
	}, n, nil
}

// scanHeaders scans header lines until the blank line ending the head.
// It returns the fields and the total bytes consumed from the start of
// the buffer; consumed == 0 means the head has not terminated yet.
func (s *scanner) scanHeaders(limits Limits) ([]Field, int, error) {
	headers := make([]Field, 0, 8)

	for {
		line, ok, err := s.readLine()
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			return nil, 0, nil
		}

		// Blank line ends the head.
		if len(line) == 0 {
			return headers, s.pos, nil
		}

		// obs-fold: a continuation line starting with SP/HTAB folds into
		// the previous field with a single space.
		for s.pos < len(s.data) && (s.data[s.pos] == ' ' || s.data[s.pos] == '\t') {
			cont, contOK, contErr := s.readLine()
			if contErr != nil {
				return nil, 0, contErr
			}
			if !contOK {
				return nil, 0, nil
			}
			folded := make([]byte, 0, len(line)+1+len(cont))
			folded = append(folded, line...)
			folded = append(folded, ' ')
			folded = append(folded, bytes.TrimLeft(cont, " \t")...)
			line = folded
		}

		colon := bytes.IndexByte(line, ':')
		if colon < 0 {
			return nil, 0, s.errorf("malformed header line (no colon): %s", string(line))
		}
		if colon == 0 {
			return nil, 0, s.errorf("empty header name")
		}
		// RFC 9112: no whitespace between field-name and colon.
		if line[colon-1] == ' ' || line[colon-1] == '\t' {
			return nil, 0, s.errorf("whitespace before colon in header name: %s", string(line[:colon]))
		}

		key := internHeaderName(line[:colon])
		if !validToken(key) {
			return nil, 0, s.errorf("invalid header name %q", key)
		}
		value := string(trimOWS(line[colon+1:]))
		headers = append(headers, Field{Key: key, Value: value})

		if len(headers) > limits.MaxHeaderCount {
			return nil, 0, s.errorf("too many headers (limit %d)", limits.MaxHeaderCount)
		}
	}
}

// readLine reads bytes until CRLF (or a bare LF, accepted leniently),
// advancing pos past the terminator. ok is false when no terminator is
// in the buffer yet; the head-size limit is enforced here since every
// head byte passes through a line.
func (s *scanner) readLine() ([]byte, bool, error) {
	start := s.pos
	for i := s.pos; i < len(s.data); i++ {
		if s.data[i] == '\n' {
			s.line++
			if i+1 > s.max {
				return nil, false, s.errorf("head exceeds %d bytes", s.max)
			}
			end := i
			if end > start && s.data[end-1] == '\r' {
				end--
			}
			line := s.data[start:end]
			s.pos = i + 1
			return line, true, nil
		}
	}
	if len(s.data) > s.max {
		s.line++
		return nil, false, s.errorf("head exceeds %d bytes", s.max)
	}
	return nil, false, nil
}

// ValidHeaderLine checks one header line using the same syntax rules the
// head scanner applies. Chunked-body trailers reuse it.
func ValidHeaderLine(line []byte) error {
	colon := bytes.IndexByte(line, ':')
	if colon <= 0 {
		return fmt.Errorf("malformed header line (no colon): %s", string(line))
	}
	if line[colon-1] == ' ' || line[colon-1] == '\t' {
		return fmt.Errorf("whitespace before colon in header name: %s", string(line[:colon]))
	}
	if !validToken(string(line[:colon])) {
		return fmt.Errorf("invalid header name %q", string(line[:colon]))
	}
	return nil
}

// trimOWS trims optional whitespace (SP and HTAB) from both ends of b.
func trimOWS(b []byte) []byte {
	for len(b) > 0 && (b[0] == ' ' || b[0] == '\t') {
		b = b[1:]
	}
	for len(b) > 0 && (b[len(b)-1] == ' ' || b[len(b)-1] == '\t') {
		b = b[:len(b)-1]
	}
	return b
}

// validProto accepts exactly the two HTTP/1 versions this engine frames.
func validProto(b []byte) (string, error) {
	switch string(b) {
	case "HTTP/1.0":
		return "HTTP/1.0", nil
	case "HTTP/1.1":
		return "HTTP/1.1", nil
	}
	return "", fmt.Errorf("unsupported protocol version %q", string(b))
}

// parseStatus parses a 3-digit status code.
func parseStatus(b []byte) (int, bool) {
	if len(b) != 3 {
		return 0, false
	}
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// validToken reports whether s is a valid RFC 9110 token.
func validToken(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isTokenChar(s[i]) {
			return false
		}
	}
	return true
}

func isTokenChar(c byte) bool {
	if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
		return true
	}
	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}

// ScanError reports structurally invalid head bytes, with the 1-indexed
// line where scanning stopped.
type ScanError struct {
	Message string
	Line    int
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	return fmt.Sprintf("h1: parse error at line %d: %s", e.Line, e.Message)
}

func (s *scanner) errorf(format string, args ...interface{}) error {
	return &ScanError{Message: fmt.Sprintf(format, args...), Line: s.line}
}
