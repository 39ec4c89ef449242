package h1

import (
	"errors"
	"log/slog"

	"github.com/shapestone/shape-h1/internal/headparser"
)

// Limits bounds the size of a head Parse will accept. The zero value
// uses the package defaults (100 headers, 64 KiB).
type Limits struct {
	MaxHeaderCount int
	MaxHeadBytes   int
}

func (l Limits) scanLimits() headparser.Limits {
	return headparser.Limits{
		MaxHeaderCount: l.MaxHeaderCount,
		MaxHeadBytes:   l.MaxHeadBytes,
	}
}

// MethodContext carries the request method of one logical exchange
// across framing calls, because response body-length rules depend on
// whether the request was HEAD or CONNECT. The connection driver owns
// exactly one per connection and passes it by pointer; the transaction
// that frames the final response of the exchange clears it. Interim
// 1xx responses leave it set.
type MethodContext struct {
	method string
	set    bool
}

// Set records the method of the exchange in flight.
func (c *MethodContext) Set(method string) {
	c.method = method
	c.set = true
}

// Method returns the recorded method, if any.
func (c *MethodContext) Method() (string, bool) {
	return c.method, c.set
}

// Clear empties the slot for the next exchange.
func (c *MethodContext) Clear() {
	c.method = ""
	c.set = false
}

// Transaction binds one direction of parsing to the opposite direction
// of encoding. ServerTransaction and ClientTransaction are its two
// instantiations; both are stateless values.
//
// Parse attempts one complete head from the front of buf. It returns
// (nil, 0, nil) when the buffer holds an incomplete head — the caller
// reads more bytes and retries with the same unconsumed input — and
// (head, n, nil) on success, after which the caller must drop exactly n
// bytes from the front of the buffer. Structurally invalid bytes fail
// with a *ParseError.
//
// Decoder computes the read-side body framing for a parsed head.
// Encode appends the serialized head to dst, reconciling the declared
// hasBody intent with the head's body-length headers, and returns the
// matching write-side Encoder.
type Transaction[In, Out any] interface {
	Parse(buf []byte) (*MessageHead[In], int, error)
	Decoder(head *MessageHead[In], mctx *MethodContext) (*Decoder, error)
	Encode(head *MessageHead[Out], hasBody bool, mctx *MethodContext, dst []byte) ([]byte, *Encoder)
}

// ServerTransaction frames the server side of a connection: incoming
// requests, outgoing responses.
type ServerTransaction struct {
	Limits Limits
}

// ClientTransaction frames the client side of a connection: outgoing
// requests, incoming responses.
type ClientTransaction struct {
	Limits Limits
}

var (
	_ Transaction[RequestLine, StatusCode] = ServerTransaction{}
	_ Transaction[StatusCode, RequestLine] = ClientTransaction{}
)

// Parse scans one request head from the front of buf.
func (t ServerTransaction) Parse(buf []byte) (*RequestHead, int, error) {
	sh, n, err := headparser.ScanRequest(buf, t.Limits.scanLimits())
	if err != nil {
		return nil, 0, parseErrorFrom(err)
	}
	if sh == nil {
		return nil, 0, nil
	}
	head := NewMessageHead(versionFromProto(sh.Proto), RequestLine{Method: sh.Method, URI: sh.Target})
	head.Headers = headersFromFields(sh.Headers)
	slog.Debug("h1: parsed request head",
		"method", sh.Method, "target", sh.Target, "version", sh.Proto, "consumed", n)
	return head, n, nil
}

// Decoder selects the body framing for an incoming request and records
// its method in the exchange context for the response side.
func (t ServerTransaction) Decoder(head *RequestHead, mctx *MethodContext) (*Decoder, error) {
	mctx.Set(head.Subject.Method)
	return bodyDecoder(head.Headers, false)
}

// Encode serializes a response head into dst and returns the write-side
// encoder. Framing a final response completes the exchange, so the
// method context is consumed and cleared here; an interim 1xx response
// leaves it in place for the final response that follows. 101 switches
// protocols and is final for this engine's purposes.
func (t ServerTransaction) Encode(head *ResponseHead, hasBody bool, mctx *MethodContext, dst []byte) ([]byte, *Encoder) {
	method, _ := mctx.Method()
	if !interimStatus(head.Subject) {
		mctx.Clear()
	}
	enc := reconcileBody(&head.Headers, hasBody, head.Version, method == "HEAD")
	dst = appendStatusLine(dst, head.Version, head.Subject)
	dst = appendHeaderFields(dst, head.Headers)
	dst = appendCRLF(dst)
	return dst, enc
}

// Parse scans one response head from the front of buf.
func (t ClientTransaction) Parse(buf []byte) (*ResponseHead, int, error) {
	sh, n, err := headparser.ScanResponse(buf, t.Limits.scanLimits())
	if err != nil {
		return nil, 0, parseErrorFrom(err)
	}
	if sh == nil {
		return nil, 0, nil
	}
	head := NewMessageHead(versionFromProto(sh.Proto), StatusCode(sh.Status))
	head.Headers = headersFromFields(sh.Headers)
	slog.Debug("h1: parsed response head",
		"status", sh.Status, "version", sh.Proto, "consumed", n)
	return head, n, nil
}

// Decoder selects the body framing for an incoming response. The method
// recorded when the request was encoded decides the HEAD and CONNECT
// exceptions; framing the final response completes the exchange, so the
// context is cleared once consulted. An interim 1xx response keeps the
// context alive: the final response to the same request is still coming
// and needs the method to frame correctly.
func (t ClientTransaction) Decoder(head *ResponseHead, mctx *MethodContext) (*Decoder, error) {
	method, _ := mctx.Method()
	status := head.Subject
	if !interimStatus(status) {
		mctx.Clear()
	}

	// Some responses never carry a body no matter what their length
	// headers claim: any response to HEAD, a 2xx to CONNECT (the
	// connection becomes a tunnel), and 1xx/204/304.
	switch {
	case method == "HEAD":
		return newZeroDecoder(), nil
	case method == "CONNECT" && status.Success():
		return newZeroDecoder(), nil
	case status.Informational() || status == 204 || status == 304:
		return newZeroDecoder(), nil
	}
	return bodyDecoder(head.Headers, true)
}

// Encode serializes a request head into dst, records the request method
// for the response side of the exchange, and returns the write-side
// encoder.
func (t ClientTransaction) Encode(head *RequestHead, hasBody bool, mctx *MethodContext, dst []byte) ([]byte, *Encoder) {
	mctx.Set(head.Subject.Method)
	enc := reconcileBody(&head.Headers, hasBody, head.Version, false)
	dst = appendRequestLine(dst, head.Version, head.Subject)
	dst = appendHeaderFields(dst, head.Headers)
	dst = appendCRLF(dst)
	return dst, enc
}

// interimStatus reports whether code is an interim response that leaves
// its exchange open: any 1xx except 101, which switches protocols and
// ends HTTP/1 framing on the connection.
func interimStatus(code StatusCode) bool {
	return code.Informational() && code != 101
}

// bodyDecoder applies the shared length-header rules: chunked when the
// final transfer coding is chunked, fixed when Content-Length is
// declared, and otherwise no body for a request but read-until-close
// for a response.
func bodyDecoder(h Headers, isResponse bool) (*Decoder, error) {
	chunked := h.finalTransferCoding() == "chunked"
	length, hasLength, err := h.contentLength()
	if chunked {
		if hasLength {
			return nil, errAmbiguous("Transfer-Encoding: chunked with Content-Length")
		}
		return newChunkedDecoder(), nil
	}
	if err != nil {
		return nil, err
	}
	if hasLength {
		if length == 0 {
			return newZeroDecoder(), nil
		}
		return newLengthDecoder(length), nil
	}
	if isResponse {
		return newCloseDecoder(), nil
	}
	return newZeroDecoder(), nil
}

func versionFromProto(proto string) Version {
	if proto == "HTTP/1.0" {
		return HTTP10
	}
	return HTTP11
}

func headersFromFields(fields []headparser.Field) Headers {
	h := make(Headers, len(fields))
	for i, f := range fields {
		h[i] = Header{Key: f.Key, Value: f.Value}
	}
	return h
}

func parseErrorFrom(err error) error {
	var se *headparser.ScanError
	if errors.As(err, &se) {
		return &ParseError{Message: se.Message, Line: se.Line}
	}
	return err
}
