package jsonc

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// EnvEmptyComments is the environment toggle for placeholder comments.
// Explicit CLI flags take priority over it.
const EnvEmptyComments = "JSONCSYNC_EMPTY_COMMENTS"

// Flags holds CLI flag names for synchronization configuration, allowing
// callers to customize flag names while keeping sensible defaults.
type Flags struct {
	NoEmptyComments string
	EmptyComments   string
}

// Config holds CLI flag values for synchronization configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewSyncer] to create a [Syncer] with
// the resolved settings.
type Config struct {
	Flags           Flags
	NoEmptyComments bool
	EmptyComments   string
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		NoEmptyComments: "no-empty-comments",
		EmptyComments:   "empty-comments",
	}

	return &Config{Flags: f}
}

// RegisterFlags adds synchronization flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&c.NoEmptyComments, c.Flags.NoEmptyComments, false,
		"do not insert placeholder comments above unannotated entries")
	flags.StringVar(&c.EmptyComments, c.Flags.EmptyComments, "",
		"explicitly enable or disable placeholder comments (true/false)")
}

// RegisterCompletions registers shell completions for synchronization flags
// on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.EmptyComments,
		cobra.FixedCompletions([]string{"true", "false"}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.EmptyComments, err)
	}

	return nil
}

// NewSyncer creates a [Syncer] using this [Config].
func (c *Config) NewSyncer() *Syncer {
	return NewSyncer(WithPlaceholders(c.Placeholders()))
}

// Placeholders resolves the placeholder policy. Priority order: the
// --no-empty-comments flag, then --empty-comments, then the
// [EnvEmptyComments] environment variable, then the default (enabled).
func (c *Config) Placeholders() bool {
	if c.NoEmptyComments {
		return false
	}

	if c.EmptyComments != "" {
		return parseToggle(c.EmptyComments)
	}

	if v, ok := os.LookupEnv(EnvEmptyComments); ok && v != "" {
		return parseToggle(v)
	}

	return true
}

// parseToggle interprets a toggle value; "false", "0", and "no" disable,
// anything else enables.
func parseToggle(v string) bool {
	switch strings.ToLower(v) {
	case "false", "0", "no":
		return false
	}

	return true
}
