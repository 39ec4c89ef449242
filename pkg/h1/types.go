// Package h1 implements HTTP/1.x message framing per RFC 9112.
//
// The package turns a raw byte stream into structured request/response
// heads and decides, per message, how the body is delimited on the wire:
// fixed Content-Length, chunked transfer coding, or connection close. It
// performs no I/O of its own; bytes are supplied and consumed through
// caller-owned buffers, and a parse that cannot complete simply asks for
// more input.
//
// # Roles
//
// ServerTransaction parses requests and encodes responses.
// ClientTransaction parses responses and encodes requests. Both satisfy
// the Transaction interface; the caller selects its role statically.
//
// # Thread Safety
//
// Transactions are stateless and safe for concurrent use. A Decoder,
// Encoder, or MethodContext belongs to a single connection and must not
// be shared.
package h1

import (
	"strconv"
	"strings"
)

// Version identifies the HTTP protocol version of a message.
type Version int

// Supported protocol versions.
const (
	HTTP10 Version = iota // HTTP/1.0
	HTTP11                // HTTP/1.1
)

// String returns the wire form of the version, e.g. "HTTP/1.1".
func (v Version) String() string {
	if v == HTTP10 {
		return "HTTP/1.0"
	}
	return "HTTP/1.1"
}

// RequestLine is the subject of a request head: method plus target.
type RequestLine struct {
	Method string // "GET", "POST", etc.
	URI    string // request-target as it appears on the wire
}

// StatusCode is the subject of a response head.
type StatusCode int

// Reason returns the canonical reason phrase for the status code, or ""
// if none is registered.
func (c StatusCode) Reason() string {
	return reasonPhrases[int(c)]
}

// Informational reports whether the code is 1xx.
func (c StatusCode) Informational() bool {
	return c >= 100 && c < 200
}

// Success reports whether the code is 2xx.
func (c StatusCode) Success() bool {
	return c >= 200 && c < 300
}

// MessageHead is the head of an HTTP message: version, subject (request
// line or status code), and headers. Its Headers field is always usable;
// the zero value holds an empty header list.
type MessageHead[S any] struct {
	Version Version
	Subject S
	Headers Headers
}

// RequestHead is the head of a request message.
type RequestHead = MessageHead[RequestLine]

// ResponseHead is the head of a response message.
type ResponseHead = MessageHead[StatusCode]

// NewMessageHead returns a head with the given version and subject and
// empty headers.
func NewMessageHead[S any](version Version, subject S) *MessageHead[S] {
	return &MessageHead[S]{
		Version: version,
		Subject: subject,
		Headers: Headers{},
	}
}

// Header represents a single HTTP header key-value pair.
type Header struct {
	Key   string
	Value string
}

// Headers is an ordered, repeatable list of HTTP headers.
// Header names match case-insensitively, but original case and insertion
// order are preserved for encoding.
type Headers []Header

// Get returns the first header value for the given key (case-insensitive).
// Returns empty string if not found.
func (h Headers) Get(key string) string {
	for _, hdr := range h {
		if strings.EqualFold(hdr.Key, key) {
			return hdr.Value
		}
	}
	return ""
}

// Has reports whether a header with the given key is present, even with
// an empty value.
func (h Headers) Has(key string) bool {
	for _, hdr := range h {
		if strings.EqualFold(hdr.Key, key) {
			return true
		}
	}
	return false
}

// Values returns all header values for the given key (case-insensitive).
func (h Headers) Values(key string) []string {
	var vals []string
	for _, hdr := range h {
		if strings.EqualFold(hdr.Key, key) {
			vals = append(vals, hdr.Value)
		}
	}
	return vals
}

// Set replaces the first header with the given key (case-insensitive) or
// appends if not found. Subsequent headers with the same key are removed.
func (h *Headers) Set(key, value string) {
	for i, hdr := range *h {
		if strings.EqualFold(hdr.Key, key) {
			(*h)[i].Value = value
			j := i + 1
			for j < len(*h) {
				if strings.EqualFold((*h)[j].Key, key) {
					*h = append((*h)[:j], (*h)[j+1:]...)
				} else {
					j++
				}
			}
			return
		}
	}
	*h = append(*h, Header{Key: key, Value: value})
}

// Add appends a header without replacing existing ones.
func (h *Headers) Add(key, value string) {
	*h = append(*h, Header{Key: key, Value: value})
}

// Del removes all headers with the given key (case-insensitive).
func (h *Headers) Del(key string) {
	j := 0
	for _, hdr := range *h {
		if !strings.EqualFold(hdr.Key, key) {
			(*h)[j] = hdr
			j++
		}
	}
	*h = (*h)[:j]
}

// Clone returns a deep copy of the headers.
func (h Headers) Clone() Headers {
	if h == nil {
		return nil
	}
	clone := make(Headers, len(h))
	copy(clone, h)
	return clone
}

// hasToken reports whether any header value for key contains the given
// token in its comma-separated list (case-insensitive, OWS-trimmed).
func (h Headers) hasToken(key, token string) bool {
	for _, v := range h.Values(key) {
		for _, part := range strings.Split(v, ",") {
			if strings.EqualFold(strings.TrimSpace(part), token) {
				return true
			}
		}
	}
	return false
}

// finalTransferCoding returns the last coding listed across all
// Transfer-Encoding headers, lowercased, or "" if the header is absent.
func (h Headers) finalTransferCoding() string {
	final := ""
	for _, v := range h.Values("Transfer-Encoding") {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				final = strings.ToLower(part)
			}
		}
	}
	return final
}

// contentLength returns the declared Content-Length across all header
// occurrences. ok is false when the header is absent. Differing values
// are ambiguous framing; a non-integer value is a parse error.
func (h Headers) contentLength() (n uint64, ok bool, err error) {
	seen := false
	var value uint64
	for _, v := range h.Values("Content-Length") {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			parsed, perr := strconv.ParseUint(part, 10, 63)
			if perr != nil {
				return 0, true, &ParseError{Message: "invalid Content-Length: " + part}
			}
			if seen && parsed != value {
				return 0, true, errAmbiguous("conflicting Content-Length values")
			}
			value = parsed
			seen = true
		}
	}
	if !seen {
		return 0, false, nil
	}
	return value, true, nil
}
