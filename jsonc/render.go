package jsonc

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml/ast"
)

const indentUnit = "  "

// renderer walks the canonical AST and emits the regenerated document.
type renderer struct {
	b            strings.Builder
	comments     CommentMap
	placeholders bool
}

// render produces the full replacement text for the annotated document: a
// single top-level object literal with braces on their own lines.
func (r *renderer) render(root ast.Node) error {
	values, ok := mappingValues(unwrapNode(root))
	if !ok {
		return fmt.Errorf("%w: top-level value must be an object", ErrInvalidCanonical)
	}

	r.b.WriteString("{\n")

	err := r.renderMembers(values, "", 1)
	if err != nil {
		return err
	}

	r.b.WriteString("}\n")

	return nil
}

// renderMembers emits every member of an object in canonical order.
func (r *renderer) renderMembers(values []*ast.MappingValueNode, parent string, depth int) error {
	indent := strings.Repeat(indentUnit, depth)

	for _, mvn := range values {
		key, err := keyString(mvn.Key)
		if err != nil {
			return err
		}

		path := joinPath(parent, key)
		trailing := r.writeComments(path, indent)

		quoted, err := jsonString(key)
		if err != nil {
			return err
		}

		value := unwrapNode(mvn.Value)

		switch v := value.(type) {
		case *ast.MappingNode, *ast.MappingValueNode:
			children, _ := mappingValues(v)
			r.writeLine(indent+quoted+": {", trailing)

			err := r.renderMembers(children, path, depth+1)
			if err != nil {
				return err
			}

			r.b.WriteString(indent + "},\n")

		case *ast.SequenceNode:
			r.writeLine(indent+quoted+": [", trailing)

			err := r.renderElements(v, path, depth+1)
			if err != nil {
				return err
			}

			r.b.WriteString(indent + "],\n")

		default:
			literal, err := scalarLiteral(value, path)
			if err != nil {
				return err
			}

			r.writeLine(indent+quoted+": "+literal+",", trailing)
		}
	}

	return nil
}

// renderElements emits every array element on its own line. Comment lookup
// is positional: element j reads path "parent.j" regardless of content.
func (r *renderer) renderElements(seq *ast.SequenceNode, parent string, depth int) error {
	indent := strings.Repeat(indentUnit, depth)

	for j, el := range seq.Values {
		path := joinPath(parent, strconv.Itoa(j))
		trailing := r.writeComments(path, indent)

		literal, err := elementLiteral(unwrapNode(el), path)
		if err != nil {
			return err
		}

		r.writeLine(indent+literal+",", trailing)
	}

	return nil
}

// writeComments emits the preceding comments captured for path, or a bare
// marker line when placeholders are enabled and no record exists at all.
// Returns the trailing comment to append to the value's opening line.
func (r *renderer) writeComments(path, indent string) string {
	rec, ok := r.comments[path]
	if !ok {
		if r.placeholders {
			r.b.WriteString(indent + Marker + "\n")
		}

		return ""
	}

	for _, c := range rec.Preceding {
		r.b.WriteString(indent + c + "\n")
	}

	return rec.Trailing
}

// writeLine emits a value line with its trailing comment, if any.
func (r *renderer) writeLine(line, trailing string) {
	r.b.WriteString(line)

	if trailing != "" {
		r.b.WriteString(" " + trailing)
	}

	r.b.WriteString("\n")
}

// elementLiteral renders an array element. Scalars keep their canonical
// literal form; container elements collapse to compact one-line JSON so the
// line-oriented extractor's positional contract still holds.
func elementLiteral(node ast.Node, path string) (string, error) {
	switch n := node.(type) {
	case *ast.MappingNode, *ast.MappingValueNode:
		return compactJSON(n, path)
	case *ast.SequenceNode:
		return compactJSON(n, path)
	default:
		return scalarLiteral(node, path)
	}
}

// compactJSON renders a nested container as single-line JSON, preserving
// canonical member order.
func compactJSON(node ast.Node, path string) (string, error) {
	switch n := unwrapNode(node).(type) {
	case *ast.MappingNode, *ast.MappingValueNode:
		values, _ := mappingValues(n)

		parts := make([]string, 0, len(values))

		for _, mvn := range values {
			key, err := keyString(mvn.Key)
			if err != nil {
				return "", err
			}

			quoted, err := jsonString(key)
			if err != nil {
				return "", err
			}

			inner, err := compactJSON(mvn.Value, joinPath(path, key))
			if err != nil {
				return "", err
			}

			parts = append(parts, quoted+": "+inner)
		}

		return "{" + strings.Join(parts, ", ") + "}", nil

	case *ast.SequenceNode:
		parts := make([]string, 0, len(n.Values))

		for j, el := range n.Values {
			inner, err := compactJSON(el, joinPath(path, strconv.Itoa(j)))
			if err != nil {
				return "", err
			}

			parts = append(parts, inner)
		}

		return "[" + strings.Join(parts, ", ") + "]", nil

	default:
		return scalarLiteral(n, path)
	}
}

// scalarLiteral renders a scalar node as a JSON literal. Strings are
// re-quoted with JSON escaping; numbers keep the canonical token text so
// regeneration never reformats values the author wrote (1e3 stays 1e3).
// Any other node kind indicates an unsupported canonical shape and fails
// loudly rather than stringifying.
func scalarLiteral(node ast.Node, path string) (string, error) {
	switch n := node.(type) {
	case *ast.StringNode:
		return jsonString(n.Value)
	case *ast.IntegerNode, *ast.FloatNode, *ast.BoolNode:
		return n.GetToken().Value, nil
	case *ast.NullNode:
		return "null", nil
	case nil:
		return "null", nil
	default:
		return "", fmt.Errorf("%w: %s at %q", ErrUnsupportedValue, node.Type(), path)
	}
}

// jsonString marshals s as a JSON string literal.
func jsonString(s string) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnsupportedValue, err)
	}

	return string(b), nil
}

// keyString extracts an object member key, which canonical JSON constrains
// to strings.
func keyString(node ast.Node) (string, error) {
	sn, ok := unwrapNode(node).(*ast.StringNode)
	if !ok {
		return "", fmt.Errorf("%w: non-string object key %q", ErrInvalidCanonical, nodeText(node))
	}

	return sn.Value, nil
}

// mappingValues normalizes the two AST shapes goccy produces for objects:
// a MappingNode for multi-member objects and a bare MappingValueNode for
// single-member ones.
func mappingValues(node ast.Node) ([]*ast.MappingValueNode, bool) {
	switch n := node.(type) {
	case *ast.MappingNode:
		return n.Values, true
	case *ast.MappingValueNode:
		return []*ast.MappingValueNode{n}, true
	}

	return nil, false
}

// unwrapNode resolves TagNode and AnchorNode wrappers to the underlying
// value node.
func unwrapNode(node ast.Node) ast.Node {
	for {
		switch n := node.(type) {
		case *ast.TagNode:
			node = n.Value
		case *ast.AnchorNode:
			node = n.Value
		default:
			return node
		}
	}
}

func joinPath(parent, segment string) string {
	if parent == "" {
		return segment
	}

	return parent + "." + segment
}

func nodeText(node ast.Node) string {
	if node == nil {
		return "<nil>"
	}

	return node.String()
}
