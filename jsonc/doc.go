// Package jsonc synchronizes a human-annotated JSONC document with the
// comment-free JSON document it mirrors.
//
// The JSON document (typically package.json) is the source of truth for
// downstream tooling; the JSONC companion (package.jsonc) carries line
// comments written by humans. Each synchronization fully regenerates the
// companion from canonical data, re-attaching every captured comment to the
// same structural position.
//
// [ExtractComments] parses an existing annotated document into a
// [CommentMap], keyed by dot-joined paths ("scripts.build", "deps.0").
// [Syncer.Sync] parses the canonical JSON with the ordered AST from
// [github.com/goccy/go-yaml], then renders the replacement text: preceding
// comments above each entry, trailing comments on the entry's line, and
// (optionally) a bare "//" placeholder above entries that have no captured
// comments.
//
// Typical usage:
//
//	syncer := jsonc.NewSyncer()
//
//	out, err := syncer.Sync(canonical, annotated)
//	if err != nil {
//	    return err
//	}
//
// Both operations are pure functions of their inputs; the package performs no
// I/O and holds no state across calls, so independent documents may be
// synchronized concurrently.
//
// The extractor intentionally supports a constrained subset of JSONC:
// single-line "//" comments, string/number/boolean/null scalars, objects,
// and arrays of scalars. Lines it cannot classify are treated as
// non-structural content, never as errors; the worst case is the loss of a
// single comment placement. Comment-to-array-element correlation is strictly
// positional, so inserting or reordering canonical array elements moves
// captured comments to whichever element now occupies the old index.
package jsonc
