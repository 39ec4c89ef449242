// Package astbridge converts scanned HTTP message heads to and from
// shape-core AST nodes.
//
// A request head maps to an ObjectNode:
//
//	{ "type": "request", "method": "GET", "path": "/api",
//	  "version": "HTTP/1.1",
//	  "headers": [{"key": "Host", "value": "example.com"}, ...] }
//
// A response head maps to:
//
//	{ "type": "response", "version": "HTTP/1.1", "statusCode": 200,
//	  "reason": "OK",
//	  "headers": [{"key": "Content-Type", "value": "text/plain"}, ...] }
package astbridge

import (
	"fmt"
	"strconv"

	"github.com/shapestone/shape-core/pkg/ast"

	"github.com/shapestone/shape-h1/internal/headparser"
)

var zeroPos = ast.Position{}

// RequestToNode converts a request head to an AST ObjectNode.
func RequestToNode(head *headparser.RequestHead) ast.SchemaNode {
	props := map[string]ast.SchemaNode{
		"type":    ast.NewLiteralNode("request", zeroPos),
		"method":  ast.NewLiteralNode(head.Method, zeroPos),
		"path":    ast.NewLiteralNode(head.Target, zeroPos),
		"version": ast.NewLiteralNode(head.Proto, zeroPos),
		"headers": fieldsToNode(head.Headers),
	}
	return ast.NewObjectNode(props, zeroPos)
}

// ResponseToNode converts a response head to an AST ObjectNode.
func ResponseToNode(head *headparser.ResponseHead) ast.SchemaNode {
	props := map[string]ast.SchemaNode{
		"type":       ast.NewLiteralNode("response", zeroPos),
		"version":    ast.NewLiteralNode(head.Proto, zeroPos),
		"statusCode": ast.NewLiteralNode(int64(head.Status), zeroPos),
		"reason":     ast.NewLiteralNode(head.Reason, zeroPos),
		"headers":    fieldsToNode(head.Headers),
	}
	return ast.NewObjectNode(props, zeroPos)
}

func fieldsToNode(fields []headparser.Field) ast.SchemaNode {
	elements := make([]ast.SchemaNode, len(fields))
	for i, f := range fields {
		elements[i] = ast.NewObjectNode(map[string]ast.SchemaNode{
			"key":   ast.NewLiteralNode(f.Key, zeroPos),
			"value": ast.NewLiteralNode(f.Value, zeroPos),
		}, zeroPos)
	}
	return ast.NewArrayDataNode(elements, zeroPos)
}

// NodeToRequest converts an AST ObjectNode back to a request head.
func NodeToRequest(node ast.SchemaNode) (*headparser.RequestHead, error) {
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		return nil, fmt.Errorf("expected ObjectNode, got %T", node)
	}

	props := obj.Properties()
	head := &headparser.RequestHead{}
	head.Method = stringProp(props, "method")
	head.Target = stringProp(props, "path")
	head.Proto = stringProp(props, "version")
	if v, ok := props["headers"]; ok {
		fields, err := nodeToFields(v)
		if err != nil {
			return nil, err
		}
		head.Headers = fields
	}
	return head, nil
}

// NodeToResponse converts an AST ObjectNode back to a response head.
func NodeToResponse(node ast.SchemaNode) (*headparser.ResponseHead, error) {
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		return nil, fmt.Errorf("expected ObjectNode, got %T", node)
	}

	props := obj.Properties()
	head := &headparser.ResponseHead{}
	head.Proto = stringProp(props, "version")
	head.Reason = stringProp(props, "reason")
	if v, ok := props["statusCode"]; ok {
		if lit, ok := v.(*ast.LiteralNode); ok {
			switch code := lit.Value().(type) {
			case int64:
				head.Status = int(code)
			case float64:
				head.Status = int(code)
			case string:
				head.Status, _ = strconv.Atoi(code)
			}
		}
	}
	if v, ok := props["headers"]; ok {
		fields, err := nodeToFields(v)
		if err != nil {
			return nil, err
		}
		head.Headers = fields
	}
	return head, nil
}

func stringProp(props map[string]ast.SchemaNode, key string) string {
	if v, ok := props[key]; ok {
		if lit, ok := v.(*ast.LiteralNode); ok {
			s, _ := lit.Value().(string)
			return s
		}
	}
	return ""
}

func nodeToFields(node ast.SchemaNode) ([]headparser.Field, error) {
	arr, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("expected ArrayDataNode for headers, got %T", node)
	}

	elements := arr.Elements()
	fields := make([]headparser.Field, 0, len(elements))
	for _, elem := range elements {
		obj, ok := elem.(*ast.ObjectNode)
		if !ok {
			continue
		}
		props := obj.Properties()
		fields = append(fields, headparser.Field{
			Key:   stringProp(props, "key"),
			Value: stringProp(props, "value"),
		})
	}
	return fields, nil
}
