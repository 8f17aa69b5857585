package jsonc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/jsoncsync/jsonc"
	"go.jacobcolvin.com/jsoncsync/stringtest"
)

func TestExtractComments(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  jsonc.CommentMap
	}{
		"empty input": {
			input: "",
			want:  jsonc.CommentMap{},
		},
		"no comments yields no records": {
			input: stringtest.Input(`
				{
				  "name": "x",
				  "version": "1.0.0",
				}`),
			want: jsonc.CommentMap{},
		},
		"preceding comment above member": {
			input: stringtest.Input(`
				{
				  // the project name
				  "name": "x",
				}`),
			want: jsonc.CommentMap{
				"name": {Preceding: []string{"// the project name"}},
			},
		},
		"multiple preceding lines keep order": {
			input: stringtest.Input(`
				{
				  // first
				  // second
				  "name": "x",
				}`),
			want: jsonc.CommentMap{
				"name": {Preceding: []string{"// first", "// second"}},
			},
		},
		"trailing comment on member": {
			input: stringtest.Input(`
				{
				  "version": "0.1.0", // tracked by CI
				}`),
			want: jsonc.CommentMap{
				"version": {Trailing: "// tracked by CI"},
			},
		},
		"comment jumps over blank lines": {
			input: stringtest.Input(`
				{
				  // reaches past the gap

				  "name": "x",
				}`),
			want: jsonc.CommentMap{
				"name": {Preceding: []string{"// reaches past the gap"}},
			},
		},
		"orphan comment before unclassifiable line is dropped": {
			input: stringtest.Input(`
				{
				  // orphaned
				  !!! not a member !!!
				  "name": "x",
				}`),
			want: jsonc.CommentMap{},
		},
		"nested object path": {
			input: stringtest.Input(`
				{
				  "scripts": {
				    // compile everything
				    "build": "tsc",
				  },
				}`),
			want: jsonc.CommentMap{
				"scripts.build": {Preceding: []string{"// compile everything"}},
			},
		},
		"array elements are indexed positionally": {
			input: stringtest.Input(`
				{
				  // dependency list
				  "deps": [
				    "glob",
				    // native bindings
				    "fsevents", // macOS only
				  ],
				}`),
			want: jsonc.CommentMap{
				"deps": {Preceding: []string{"// dependency list"}},
				"deps.1": {
					Preceding: []string{"// native bindings"},
					Trailing:  "// macOS only",
				},
			},
		},
		"index resets per array": {
			input: stringtest.Input(`
				{
				  "a": [
				    "x",
				    // second of a
				    "y",
				  ],
				  "b": [
				    // first of b
				    "z",
				  ],
				}`),
			want: jsonc.CommentMap{
				"a.1": {Preceding: []string{"// second of a"}},
				"b.0": {Preceding: []string{"// first of b"}},
			},
		},
		"comment survives a closing brace": {
			input: stringtest.Input(`
				{
				  "scripts": {
				    "build": "tsc",
				    // attaches to the member after the close
				  },
				  "private": true,
				}`),
			want: jsonc.CommentMap{
				"private": {Preceding: []string{"// attaches to the member after the close"}},
			},
		},
		"url value is not a trailing comment": {
			input: stringtest.Input(`
				{
				  "homepage": "https://example.com",
				}`),
			want: jsonc.CommentMap{},
		},
		"real comment after url value": {
			input: stringtest.Input(`
				{
				  "homepage": "https://example.com", // see docs
				}`),
			want: jsonc.CommentMap{
				"homepage": {Trailing: "// see docs"},
			},
		},
		"placeholder line is captured verbatim": {
			input: stringtest.Input(`
				{
				  //
				  "name": "x",
				}`),
			want: jsonc.CommentMap{
				"name": {Preceding: []string{"//"}},
			},
		},
		"opening brace shares a line with the first member": {
			input: stringtest.JoinLF(
				`{"version": "0.1.0", // tracked by CI`,
				`// dependency list`,
				`"deps": ["glob"]}`,
			),
			want: jsonc.CommentMap{
				"version": {Trailing: "// tracked by CI"},
				"deps":    {Preceding: []string{"// dependency list"}},
			},
		},
		"bare keys are recognized": {
			input: stringtest.Input(`
				{
				  // unquoted style
				  name: "x",
				}`),
			want: jsonc.CommentMap{
				"name": {Preceding: []string{"// unquoted style"}},
			},
		},
		"crlf line endings": {
			input: stringtest.JoinCRLF(
				"{",
				"  // windows authored",
				`  "name": "x",`,
				"}",
			),
			want: jsonc.CommentMap{
				"name": {Preceding: []string{"// windows authored"}},
			},
		},
		"array open with trailing comment": {
			input: stringtest.Input(`
				{
				  "deps": [ // keep sorted
				    "glob",
				  ],
				}`),
			want: jsonc.CommentMap{
				"deps": {Trailing: "// keep sorted"},
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := jsonc.ExtractComments(tc.input)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractCommentsLenience(t *testing.T) {
	t.Parallel()

	// Arbitrary garbage never errors; it is simply non-structural content.
	got := jsonc.ExtractComments("\x00\xff ??? ]]]} garbage\n// dangling\n")
	assert.Empty(t, got)
}
