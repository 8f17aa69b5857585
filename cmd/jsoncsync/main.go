// Package main provides the CLI entry point for jsoncsync, a tool that keeps
// annotated package.jsonc companions synchronized with their canonical
// package.json files.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/jsoncsync/discover"
	"go.jacobcolvin.com/jsoncsync/jsonc"
	"go.jacobcolvin.com/jsoncsync/log"
	"go.jacobcolvin.com/jsoncsync/version"
	"go.jacobcolvin.com/jsoncsync/watch"
)

// errOutOfSync is returned in check mode when companions need regeneration.
var errOutOfSync = errors.New("annotated documents out of sync")

type options struct {
	check    bool
	watch    bool
	debounce time.Duration
}

func main() {
	cfg := jsonc.NewConfig()
	logCfg := log.NewConfig()
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "jsoncsync [flags] [path ...]",
		Short: "Synchronize annotated package.jsonc files with package.json",
		Long: `jsoncsync regenerates package.jsonc companion files from their canonical
package.json sources, preserving human-written line comments by structural
position. Paths may be files or directories; directories are searched
recursively, skipping dependency directories and gitignored paths.`,
		Version:       version.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := logCfg.NewHandler(os.Stderr)
			if err != nil {
				return err
			}

			slog.SetDefault(slog.New(handler))

			return run(cmd.Context(), cfg, opts, args)
		},
	}

	cfg.RegisterFlags(rootCmd.Flags())
	logCfg.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.Flags().BoolVar(&opts.check, "check", false,
		"list out-of-sync companions and exit nonzero instead of writing")
	rootCmd.Flags().BoolVar(&opts.watch, "watch", false,
		"keep running and resynchronize when canonical files change")
	rootCmd.Flags().DurationVar(&opts.debounce, "debounce", 500*time.Millisecond,
		"delay before resynchronizing after a change in watch mode")

	completionErr := cfg.RegisterCompletions(rootCmd)
	if completionErr == nil {
		completionErr = logCfg.RegisterCompletions(rootCmd)
	}

	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *jsonc.Config, opts *options, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	syncer := cfg.NewSyncer()
	finder := discover.New()

	pairs, err := collectPairs(ctx, finder, args)
	if err != nil {
		return err
	}

	outOfSync := 0

	for _, pair := range pairs {
		changed, err := syncPair(ctx, finder, syncer, pair, opts.check)
		if err != nil {
			return err
		}

		if changed {
			outOfSync++

			if opts.check {
				fmt.Println(pair.AnnotatedURL)
			}
		}
	}

	if opts.check && outOfSync > 0 {
		return fmt.Errorf("%w: %d file(s)", errOutOfSync, outOfSync)
	}

	if opts.watch {
		return watchPairs(ctx, finder, syncer, pairs, opts.debounce)
	}

	return nil
}

// collectPairs resolves CLI arguments into canonical/annotated pairs. File
// arguments are taken as canonical documents directly; directories are
// searched recursively.
func collectPairs(ctx context.Context, finder *discover.Finder, args []string) ([]discover.Pair, error) {
	var pairs []discover.Pair

	seen := make(map[string]bool)

	add := func(found ...discover.Pair) {
		for _, p := range found {
			if !seen[p.CanonicalURL] {
				seen[p.CanonicalURL] = true
				pairs = append(pairs, p)
			}
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", discover.ErrWalk, arg, err)
		}

		if !info.IsDir() {
			add(discover.Pair{
				CanonicalURL: arg,
				AnnotatedURL: arg + discover.AnnotatedSuffix,
			})

			continue
		}

		found, err := finder.Find(ctx, arg)
		if err != nil {
			return nil, err
		}

		add(found...)
	}

	return pairs, nil
}

// syncPair regenerates one annotated companion. It reports whether the
// companion differed from the regenerated text; in check mode nothing is
// written.
func syncPair(
	ctx context.Context,
	finder *discover.Finder,
	syncer *jsonc.Syncer,
	pair discover.Pair,
	check bool,
) (bool, error) {
	canonical, err := finder.Read(ctx, pair.CanonicalURL)
	if err != nil {
		return false, err
	}

	annotated, err := finder.ReadIfExists(ctx, pair.AnnotatedURL)
	if err != nil {
		return false, err
	}

	out, err := syncer.Sync(canonical, annotated)
	if err != nil {
		return false, fmt.Errorf("%s: %w", pair.CanonicalURL, err)
	}

	if bytes.Equal(out, annotated) {
		slog.Debug("already in sync", slog.String("path", pair.AnnotatedURL))

		return false, nil
	}

	if check {
		return true, nil
	}

	err = finder.Write(ctx, pair.AnnotatedURL, out)
	if err != nil {
		return false, err
	}

	slog.Info("synchronized", slog.String("path", pair.AnnotatedURL))

	return true, nil
}

// watchPairs blocks until ctx is cancelled, resynchronizing a pair whenever
// its canonical file changes. Per-pair failures are logged, not fatal, so a
// transient parse error does not stop the watch loop.
func watchPairs(
	ctx context.Context,
	finder *discover.Finder,
	syncer *jsonc.Syncer,
	pairs []discover.Pair,
	debounce time.Duration,
) error {
	byCanonical := make(map[string]discover.Pair, len(pairs))
	dirSet := make(map[string]bool)

	var dirs []string

	for _, pair := range pairs {
		byCanonical[pair.CanonicalURL] = pair

		dir := filepath.Dir(pair.CanonicalURL)
		if !dirSet[dir] {
			dirSet[dir] = true
			dirs = append(dirs, dir)
		}
	}

	if len(dirs) == 0 {
		slog.Warn("nothing to watch")

		return nil
	}

	slog.Info("watching for changes", slog.Int("dirs", len(dirs)))

	w := watch.New(discover.CanonicalName, debounce)

	return w.Run(ctx, dirs, func(path string) {
		pair, ok := byCanonical[path]
		if !ok {
			pair = discover.Pair{
				CanonicalURL: path,
				AnnotatedURL: path + discover.AnnotatedSuffix,
			}
		}

		_, err := syncPair(ctx, finder, syncer, pair, false)
		if err != nil {
			slog.Error("synchronize", slog.String("path", path), slog.Any("error", err))
		}
	})
}
