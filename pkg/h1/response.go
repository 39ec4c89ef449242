package h1

import "log/slog"

// Response is the user-facing response message. The zero value is a
// usable 200 response, so error paths can always produce something
// encodable.
type Response struct {
	version Version
	status  StatusCode
	headers Headers
	body    []byte
}

// NewResponse constructs a response with the given status.
func NewResponse(status StatusCode) *Response {
	return &Response{
		version: HTTP11,
		status:  status,
		headers: Headers{},
	}
}

// Status returns the response status code; a zero value reads as 200.
func (r *Response) Status() StatusCode {
	if r.status == 0 {
		return 200
	}
	return r.status
}

// SetStatus sets the response status code.
func (r *Response) SetStatus(status StatusCode) { r.status = status }

// Version returns the response's HTTP version.
func (r *Response) Version() Version { return r.version }

// SetVersion sets the response's HTTP version.
func (r *Response) SetVersion(v Version) { r.version = v }

// Headers returns the response headers for reading and mutation.
func (r *Response) Headers() *Headers { return &r.headers }

// Body returns the response body, nil if none.
func (r *Response) Body() []byte { return r.body }

// SetBody sets the response body.
func (r *Response) SetBody(body []byte) { r.body = body }

// PackResponse constructs a Response from a parsed head and an optional
// body.
func PackResponse(head *ResponseHead, body []byte) *Response {
	slog.Debug("h1: packed response",
		"status", int(head.Subject),
		"version", head.Version.String())
	return &Response{
		version: head.Version,
		status:  head.Subject,
		headers: head.Headers,
		body:    body,
	}
}

// Unpack deconstructs the response into a head and optional body.
func (r *Response) Unpack() (*ResponseHead, []byte) {
	head := NewMessageHead(r.version, r.Status())
	head.Headers = r.headers
	return head, r.body
}
