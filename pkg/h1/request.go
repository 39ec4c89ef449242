package h1

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
)

// Request is the user-facing request message: the head destructured
// into its pieces plus an optional body. On the server side it is
// produced from a parsed head by PackRequest; on the client side it is
// built by the application and surrendered back to the engine with
// Unpack.
type Request struct {
	method     string
	uri        *url.URL
	version    Version
	headers    Headers
	body       []byte
	isProxy    bool
	remoteAddr net.Addr
}

// NewRequest constructs a request with the given method and target.
func NewRequest(method string, uri *url.URL) *Request {
	return &Request{
		method:  method,
		uri:     uri,
		version: HTTP11,
		headers: Headers{},
	}
}

// Method returns the request method.
func (r *Request) Method() string { return r.method }

// SetMethod sets the request method.
func (r *Request) SetMethod(method string) { r.method = method }

// URI returns the target URI.
func (r *Request) URI() *url.URL { return r.uri }

// SetURI sets the target URI.
func (r *Request) SetURI(uri *url.URL) { r.uri = uri }

// Path returns the target path of the request.
func (r *Request) Path() string { return r.uri.Path }

// Query returns the raw query string, without the leading "?".
func (r *Request) Query() string { return r.uri.RawQuery }

// Version returns the request's HTTP version.
func (r *Request) Version() Version { return r.version }

// SetVersion sets the request's HTTP version.
func (r *Request) SetVersion(v Version) { r.version = v }

// Headers returns the request headers for reading and mutation.
func (r *Request) Headers() *Headers { return &r.headers }

// Body returns the request body, nil if none.
func (r *Request) Body() []byte { return r.body }

// SetBody sets the request body.
func (r *Request) SetBody(body []byte) { r.body = body }

// RemoteAddr returns the remote address of the connection that carried
// the request, when the transport had one. Unset on outgoing requests.
func (r *Request) RemoteAddr() net.Addr { return r.remoteAddr }

// SetProxy marks the request for transmission through an HTTP/1 proxy,
// preserving the absolute-form target instead of rewriting it to
// origin-form on Unpack.
func (r *Request) SetProxy(isProxy bool) { r.isProxy = isProxy }

// PackRequest constructs a Request from a parsed head, the optional
// remote address of the carrying connection, and an optional body.
func PackRequest(remoteAddr net.Addr, head *RequestHead, body []byte) (*Request, error) {
	uri, err := url.ParseRequestURI(head.Subject.URI)
	if err != nil {
		return nil, fmt.Errorf("h1: request target %q: %w", head.Subject.URI, err)
	}
	slog.Debug("h1: packed request",
		"remoteAddr", remoteAddr,
		"method", head.Subject.Method,
		"target", head.Subject.URI,
		"version", head.Version.String())
	return &Request{
		method:     head.Subject.Method,
		uri:        uri,
		version:    head.Version,
		headers:    head.Headers,
		body:       body,
		remoteAddr: remoteAddr,
	}, nil
}

// Unpack deconstructs the request into a head and optional body, giving
// both back to the engine. The target is rewritten to origin-form
// (path plus query) unless the request is marked for proxy use, in
// which case the absolute form is preserved verbatim.
func (r *Request) Unpack() (*RequestHead, []byte) {
	target := r.uri.RequestURI()
	if r.isProxy {
		target = r.uri.String()
	}
	head := NewMessageHead(r.version, RequestLine{Method: r.method, URI: target})
	head.Headers = r.headers
	return head, r.body
}
