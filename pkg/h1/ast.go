package h1

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"

	"github.com/shapestone/shape-h1/internal/astbridge"
	"github.com/shapestone/shape-h1/internal/headparser"
)

// RequestHeadNode returns a shape-core AST view of a request head, with
// the object layout shared by the shape tooling:
//
//	{ "type": "request", "method": ..., "path": ..., "version": ...,
//	  "headers": [{"key": ..., "value": ...}, ...] }
func RequestHeadNode(head *RequestHead) ast.SchemaNode {
	return astbridge.RequestToNode(&headparser.RequestHead{
		Method:  head.Subject.Method,
		Target:  head.Subject.URI,
		Proto:   head.Version.String(),
		Headers: fieldsFromHeaders(head.Headers),
	})
}

// ResponseHeadNode returns a shape-core AST view of a response head.
func ResponseHeadNode(head *ResponseHead) ast.SchemaNode {
	return astbridge.ResponseToNode(&headparser.ResponseHead{
		Proto:   head.Version.String(),
		Status:  int(head.Subject),
		Reason:  head.Subject.Reason(),
		Headers: fieldsFromHeaders(head.Headers),
	})
}

// NodeToRequestHead rebuilds a request head from its AST view.
func NodeToRequestHead(node ast.SchemaNode) (*RequestHead, error) {
	sh, err := astbridge.NodeToRequest(node)
	if err != nil {
		return nil, err
	}
	version, err := versionFromString(sh.Proto)
	if err != nil {
		return nil, err
	}
	head := NewMessageHead(version, RequestLine{Method: sh.Method, URI: sh.Target})
	head.Headers = headersFromFields(sh.Headers)
	return head, nil
}

// NodeToResponseHead rebuilds a response head from its AST view.
func NodeToResponseHead(node ast.SchemaNode) (*ResponseHead, error) {
	sh, err := astbridge.NodeToResponse(node)
	if err != nil {
		return nil, err
	}
	version, err := versionFromString(sh.Proto)
	if err != nil {
		return nil, err
	}
	head := NewMessageHead(version, StatusCode(sh.Status))
	head.Headers = headersFromFields(sh.Headers)
	return head, nil
}

func fieldsFromHeaders(h Headers) []headparser.Field {
	fields := make([]headparser.Field, len(h))
	for i, hdr := range h {
		fields[i] = headparser.Field{Key: hdr.Key, Value: hdr.Value}
	}
	return fields
}

func versionFromString(proto string) (Version, error) {
	switch proto {
	case "HTTP/1.0":
		return HTTP10, nil
	case "HTTP/1.1":
		return HTTP11, nil
	}
	return HTTP11, fmt.Errorf("h1: unsupported protocol version %q", proto)
}
