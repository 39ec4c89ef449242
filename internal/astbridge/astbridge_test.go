package astbridge

import (
	"testing"

	"github.com/shapestone/shape-core/pkg/ast"

	"github.com/shapestone/shape-h1/internal/headparser"
)

func TestRequestRoundTrip(t *testing.T) {
	in := &headparser.RequestHead{
		Method: "POST",
		Target: "/api/users?page=2",
		Proto:  "HTTP/1.1",
		Headers: []headparser.Field{
			{Key: "Host", Value: "api.example.com"},
			{Key: "Content-Type", Value: "application/json"},
			{Key: "X-Empty", Value: ""},
		},
	}

	node := RequestToNode(in)
	out, err := NodeToRequest(node)
	if err != nil {
		t.Fatalf("NodeToRequest() error = %v", err)
	}

	if out.Method != in.Method {
		t.Errorf("Method = %q, want %q", out.Method, in.Method)
	}
	if out.Target != in.Target {
		t.Errorf("Target = %q, want %q", out.Target, in.Target)
	}
	if out.Proto != in.Proto {
		t.Errorf("Proto = %q, want %q", out.Proto, in.Proto)
	}
	if len(out.Headers) != len(in.Headers) {
		t.Fatalf("len(Headers) = %d, want %d", len(out.Headers), len(in.Headers))
	}
	for i, f := range in.Headers {
		if out.Headers[i] != f {
			t.Errorf("Headers[%d] = %+v, want %+v", i, out.Headers[i], f)
		}
	}
}

func TestResponseRoundTrip(t *testing.T) {
	in := &headparser.ResponseHead{
		Proto:  "HTTP/1.0",
		Status: 404,
		Reason: "Not Found",
		Headers: []headparser.Field{
			{Key: "Content-Length", Value: "9"},
		},
	}

	node := ResponseToNode(in)
	out, err := NodeToResponse(node)
	if err != nil {
		t.Fatalf("NodeToResponse() error = %v", err)
	}

	if out.Proto != in.Proto {
		t.Errorf("Proto = %q, want %q", out.Proto, in.Proto)
	}
	if out.Status != in.Status {
		t.Errorf("Status = %d, want %d", out.Status, in.Status)
	}
	if out.Reason != in.Reason {
		t.Errorf("Reason = %q, want %q", out.Reason, in.Reason)
	}
	if len(out.Headers) != 1 || out.Headers[0] != in.Headers[0] {
		t.Errorf("Headers = %+v, want %+v", out.Headers, in.Headers)
	}
}

func TestRequestNodeShape(t *testing.T) {
	node := RequestToNode(&headparser.RequestHead{
		Method: "GET",
		Target: "/",
		Proto:  "HTTP/1.1",
	})

	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		t.Fatalf("RequestToNode() = %T, want *ast.ObjectNode", node)
	}
	props := obj.Properties()

	lit, ok := props["type"].(*ast.LiteralNode)
	if !ok {
		t.Fatal("type property is not a LiteralNode")
	}
	if v, _ := lit.Value().(string); v != "request" {
		t.Errorf("type = %q, want request", v)
	}
	if _, ok := props["headers"].(*ast.ArrayDataNode); !ok {
		t.Errorf("headers property = %T, want *ast.ArrayDataNode", props["headers"])
	}
}

func TestNodeToRequestWrongType(t *testing.T) {
	lit := ast.NewLiteralNode("not an object", ast.Position{})
	if _, err := NodeToRequest(lit); err == nil {
		t.Error("NodeToRequest(LiteralNode) succeeded, want error")
	}
	if _, err := NodeToResponse(lit); err == nil {
		t.Error("NodeToResponse(LiteralNode) succeeded, want error")
	}
}

func TestNodeToResponseStatusAsString(t *testing.T) {
	pos := ast.Position{}
	node := ast.NewObjectNode(map[string]ast.SchemaNode{
		"type":       ast.NewLiteralNode("response", pos),
		"version":    ast.NewLiteralNode("HTTP/1.1", pos),
		"statusCode": ast.NewLiteralNode("503", pos),
		"reason":     ast.NewLiteralNode("Service Unavailable", pos),
	}, pos)

	head, err := NodeToResponse(node)
	if err != nil {
		t.Fatalf("NodeToResponse() error = %v", err)
	}
	if head.Status != 503 {
		t.Errorf("Status = %d, want 503", head.Status)
	}
}
