// Package discover locates canonical documents on disk and derives the
// companion paths their annotated counterparts live at.
//
// Discovery walks one or more roots through [github.com/viant/afs], skipping
// dependency and VCS directories outright and honoring a .gitignore found at
// each walk root. The annotated companion path is the canonical path plus the
// [AnnotatedSuffix]; the two files are always siblings.
package discover

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"

	gitignore "github.com/sabhiram/go-gitignore"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

const (
	// CanonicalName is the file name of the canonical document.
	CanonicalName = "package.json"
	// AnnotatedSuffix is appended to a canonical path to form its
	// annotated companion path (package.json -> package.jsonc).
	AnnotatedSuffix = "c"
)

// Sentinel errors returned by the finder.
var (
	ErrWalk  = errors.New("walk root")
	ErrRead  = errors.New("read file")
	ErrWrite = errors.New("write file")
)

// skipDirs are never descended into, independent of ignore rules.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	".hg":          true,
	".svn":         true,
}

// Pair is one canonical document and its annotated companion location. The
// companion may not exist yet.
type Pair struct {
	CanonicalURL string
	AnnotatedURL string
}

// Finder discovers canonical/annotated document pairs and performs the file
// access the synchronization runner needs.
//
// Create instances with [New].
type Finder struct {
	fs afs.Service
}

// New creates a [Finder] backed by the default afs service.
func New() *Finder {
	return &Finder{fs: afs.New()}
}

// Find walks root and returns every canonical document found, paired with
// its annotated companion path, in deterministic path order. Directories in
// [skipDirs] and paths matched by a .gitignore at root are excluded.
func (f *Finder) Find(ctx context.Context, root string) ([]Pair, error) {
	matcher := loadIgnore(root)

	var pairs []Pair

	visitor := func(_ context.Context, baseURL, parent string, info os.FileInfo, _ io.Reader) (bool, error) {
		rel := path.Join(parent, info.Name())

		if info.IsDir() {
			if skipDirs[info.Name()] {
				return false, nil
			}

			if matcher != nil && matcher.MatchesPath(rel+"/") {
				return false, nil
			}

			return true, nil
		}

		if info.Name() != CanonicalName {
			return true, nil
		}

		if matcher != nil && matcher.MatchesPath(rel) {
			return true, nil
		}

		canonical := url.Join(baseURL, rel)
		pairs = append(pairs, Pair{
			CanonicalURL: canonical,
			AnnotatedURL: canonical + AnnotatedSuffix,
		})

		return true, nil
	}

	err := f.fs.Walk(ctx, root, visitor)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWalk, root, err)
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].CanonicalURL < pairs[j].CanonicalURL
	})

	return pairs, nil
}

// Read downloads the file at URL.
func (f *Finder) Read(ctx context.Context, URL string) ([]byte, error) {
	data, err := f.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, URL, err)
	}

	return data, nil
}

// ReadIfExists downloads the file at URL, returning nil bytes when the file
// does not exist. A missing annotated companion is not an error: it means no
// comments have been captured yet.
func (f *Finder) ReadIfExists(ctx context.Context, URL string) ([]byte, error) {
	ok, err := f.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, URL, err)
	}

	if !ok {
		return nil, nil
	}

	return f.Read(ctx, URL)
}

// Write uploads data to URL.
func (f *Finder) Write(ctx context.Context, URL string, data []byte) error {
	err := f.fs.Upload(ctx, URL, 0o644, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, URL, err)
	}

	return nil
}

// loadIgnore compiles the .gitignore at root. Ignore rules are best-effort:
// a missing or unreadable file simply disables them.
func loadIgnore(root string) *gitignore.GitIgnore {
	matcher, err := gitignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}

	return matcher
}
