package jsonc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The extractor's nesting stack is an explicit data structure so that
// intermediate path resolution can be asserted directly.
func TestExtractorStack(t *testing.T) {
	t.Parallel()

	e := &extractor{out: CommentMap{}}

	e.consume(`{`)
	assert.Empty(t, e.stack)

	e.consume(`  "scripts": {`)
	assert.Equal(t, []frame{{key: "scripts"}}, e.stack)
	assert.Equal(t, "scripts.build", e.pathFor("build"))

	e.consume(`    "hooks": {`)
	assert.Equal(t, "scripts.hooks.pre", e.pathFor("pre"))

	e.consume(`    },`)
	e.consume(`  },`)
	assert.Empty(t, e.stack)

	e.consume(`  "deps": [`)
	assert.Equal(t, []frame{{key: "deps", inArray: true}}, e.stack)

	e.consume(`    "glob",`)
	e.consume(`    "ignore",`)
	assert.Equal(t, 2, e.stack[0].nextIdx)
	assert.Equal(t, "deps.2", e.pathFor("2"))

	e.consume(`  ],`)
	e.consume(`}`)
	assert.Empty(t, e.stack)
}

func TestSplitTrailing(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		line         string
		wantContent  string
		wantTrailing string
	}{
		"no marker": {
			line:        `"name": "x",`,
			wantContent: `"name": "x",`,
		},
		"marker outside quotes": {
			line:         `"name": "x", // note`,
			wantContent:  `"name": "x", `,
			wantTrailing: "// note",
		},
		"marker inside quotes": {
			line:        `"homepage": "https://example.com",`,
			wantContent: `"homepage": "https://example.com",`,
		},
		"marker inside and outside quotes": {
			line:         `"homepage": "https://example.com", // docs`,
			wantContent:  `"homepage": "https://example.com", `,
			wantTrailing: "// docs",
		},
		"two quoted urls then comment": {
			line:         `"a": "https://x.dev", "b": "https://y.dev", // both`,
			wantContent:  `"a": "https://x.dev", "b": "https://y.dev", `,
			wantTrailing: "// both",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			content, trailing := splitTrailing(tc.line)
			assert.Equal(t, tc.wantContent, content)
			assert.Equal(t, tc.wantTrailing, trailing)
		})
	}
}
