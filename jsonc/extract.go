package jsonc

import (
	"regexp"
	"strconv"
	"strings"
)

// Marker is the token sequence that starts a line comment.
const Marker = "//"

// CommentRecord holds the comments captured for a single path. Preceding
// lines are stored verbatim (trimmed, marker included); Trailing is the
// comment sharing a line with the value's opening token, or empty.
type CommentRecord struct {
	Preceding []string
	Trailing  string
}

// CommentMap maps dot-joined paths to their captured comments. A path is
// present only when it carries at least one preceding line or a trailing
// comment; absence is itself meaningful and drives the placeholder policy in
// [Syncer.Render].
type CommentMap map[string]*CommentRecord

// memberPattern matches an object member line: a double-quoted or bare key,
// a colon, and the remainder of the line as the value text.
var memberPattern = regexp.MustCompile(`^(?:"((?:[^"\\]|\\.)*)"|([^\s:"/][^\s:"]*))\s*:\s*(.*)$`)

// frame is one level of the extractor's nesting stack: the member key that
// opened the container, whether it is an array, and the next expected
// element index when it is.
type frame struct {
	key     string
	inArray bool
	nextIdx int
}

// extractor tracks line-oriented parse state: the open-container stack, the
// pending preceding-comment buffer, and the records captured so far.
type extractor struct {
	stack   []frame
	pending []string
	out     CommentMap
}

// ExtractComments parses the text of an existing annotated document into a
// [CommentMap]. Empty input yields an empty map. The parse never fails:
// lines that match no known pattern are treated as non-structural content
// and at worst cost a nearby comment its placement.
func ExtractComments(text string) CommentMap {
	e := &extractor{out: CommentMap{}}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	for line := range strings.SplitSeq(text, "\n") {
		e.consume(line)
	}

	return e.out
}

// consume classifies a single line and updates extractor state.
func (e *extractor) consume(line string) {
	trimmed := strings.TrimSpace(line)

	switch {
	case trimmed == "":
		// Blank lines do not sever a pending comment from its target;
		// the buffer deliberately survives so comments can reach past
		// them.
		return

	case strings.HasPrefix(trimmed, Marker):
		e.pending = append(e.pending, trimmed)

		return
	}

	content, trailing := splitTrailing(trimmed)
	content = strings.TrimSpace(content)

	// The top-level opening brace may share a line with the first member
	// (`{"version": "0.1.0", // tracked by CI`); classify what follows it.
	if len(e.stack) == 0 && strings.HasPrefix(content, "{") {
		content = strings.TrimSpace(strings.TrimPrefix(content, "{"))
		if content == "" {
			return
		}
	}

	switch {
	case e.consumeArrayOpen(content, trailing):
	case e.consumeArrayElement(content, trailing):
	case e.consumeMember(content, trailing):
	case isCloser(content):
		e.pop()
	default:
		// Orphaned comment block with no recognizable target.
		e.pending = nil
	}
}

// consumeArrayOpen handles a `"key": [` line with nothing after the bracket.
func (e *extractor) consumeArrayOpen(content, trailing string) bool {
	key, value, ok := matchMember(content)
	if !ok || value != "[" {
		return false
	}

	e.record(e.pathFor(key), trailing)
	e.stack = append(e.stack, frame{key: key, inArray: true})

	return true
}

// consumeArrayElement handles a quoted element line inside an open array.
// Elements are matched by shape only: a leading quote with no key/value
// separator. Quoted strings whose content embeds `":` are misclassified,
// which is an accepted consequence of line-oriented parsing.
func (e *extractor) consumeArrayElement(content, trailing string) bool {
	if len(e.stack) == 0 || !e.stack[len(e.stack)-1].inArray {
		return false
	}

	if !strings.HasPrefix(content, `"`) || strings.Contains(content, `":`) {
		return false
	}

	top := &e.stack[len(e.stack)-1]
	e.record(e.pathFor(strconv.Itoa(top.nextIdx)), trailing)
	top.nextIdx++

	return true
}

// consumeMember handles an object member line, pushing a frame when the
// value opens a nested object on the same line.
func (e *extractor) consumeMember(content, trailing string) bool {
	key, value, ok := matchMember(content)
	if !ok {
		return false
	}

	e.record(e.pathFor(key), trailing)

	if strings.HasPrefix(value, "{") && strings.TrimRight(value, ",") == "{" {
		e.stack = append(e.stack, frame{key: key})
	}

	return true
}

// record stores a CommentRecord at path when the pending buffer or the
// trailing comment carries anything, and clears the buffer either way.
func (e *extractor) record(path, trailing string) {
	if len(e.pending) == 0 && trailing == "" {
		return
	}

	rec := &CommentRecord{Trailing: trailing}
	rec.Preceding = append(rec.Preceding, e.pending...)
	e.out[path] = rec
	e.pending = nil
}

// pathFor resolves a path from the open-container stack plus a final segment.
func (e *extractor) pathFor(segment string) string {
	parts := make([]string, 0, len(e.stack)+1)
	for _, f := range e.stack {
		parts = append(parts, f.key)
	}

	return strings.Join(append(parts, segment), ".")
}

func (e *extractor) pop() {
	if len(e.stack) == 0 {
		return
	}

	e.stack = e.stack[:len(e.stack)-1]
}

// matchMember matches `"key": value` or `key: value` and returns the key and
// the raw value text.
func matchMember(content string) (key, value string, ok bool) {
	m := memberPattern.FindStringSubmatch(content)
	if m == nil {
		return "", "", false
	}

	key = m[1]
	if key == "" && m[2] != "" {
		key = m[2]
	}

	if key == "" && !strings.HasPrefix(content, `""`) {
		return "", "", false
	}

	return key, strings.TrimSpace(m[3]), true
}

// isCloser reports whether the line closes a container, with or without the
// trailing comma every emitted member carries.
func isCloser(content string) bool {
	switch content {
	case "}", "},", "]", "],":
		return true
	}

	return false
}

// splitTrailing scans for the first comment marker that lies outside a
// quoted string and splits the line there. A marker is outside a string when
// the count of double quotes before it is even. This parity heuristic keeps
// URL values like "https://example.com" intact; it can misjudge strings with
// escaped quotes, which the constrained format does not produce.
func splitTrailing(line string) (content, trailing string) {
	from := 0
	for {
		i := strings.Index(line[from:], Marker)
		if i < 0 {
			return line, ""
		}

		i += from
		if strings.Count(line[:i], `"`)%2 == 0 {
			return line[:i], strings.TrimSpace(line[i:])
		}

		from = i + len(Marker)
	}
}
