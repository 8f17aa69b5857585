package jsonc

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// Sentinel errors returned by the syncer.
var (
	ErrInvalidCanonical = errors.New("invalid canonical document")
	ErrUnsupportedValue = errors.New("unsupported value")
)

// Syncer regenerates annotated documents from canonical data. A Syncer is
// immutable after construction and safe for concurrent use.
//
// Create instances with [NewSyncer].
type Syncer struct {
	placeholders bool
}

// Option configures a [Syncer].
type Option func(*Syncer)

// NewSyncer creates a [Syncer] with the given options. Placeholder comments
// are enabled by default.
func NewSyncer(opts ...Option) *Syncer {
	s := &Syncer{placeholders: true}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPlaceholders controls whether entries without any captured comments
// receive a bare marker line for visual spacing.
func WithPlaceholders(enabled bool) Option {
	return func(s *Syncer) {
		s.placeholders = enabled
	}
}

// Sync regenerates the annotated document: canonical is the comment-free
// JSON source of truth, annotated is the current companion text (empty or
// nil when the companion does not exist yet). The returned bytes fully
// replace the companion.
func (s *Syncer) Sync(canonical, annotated []byte) ([]byte, error) {
	file, err := parser.ParseBytes(canonical, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCanonical, err)
	}

	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidCanonical)
	}

	return s.Render(file.Docs[0].Body, ExtractComments(string(annotated)))
}

// Render walks the canonical tree and emits the regenerated document text,
// consulting comments for every path it visits. The root must be an object.
func (s *Syncer) Render(root ast.Node, comments CommentMap) ([]byte, error) {
	r := &renderer{
		comments:     comments,
		placeholders: s.placeholders,
	}

	err := r.render(root)
	if err != nil {
		return nil, err
	}

	return []byte(r.b.String()), nil
}
