package jsonc_test

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/jsoncsync/jsonc"
)

func TestConfigPlaceholders(t *testing.T) {
	tcs := map[string]struct {
		args []string
		env  string
		want bool
	}{
		"default enabled": {
			want: true,
		},
		"no-empty-comments flag disables": {
			args: []string{"--no-empty-comments"},
			want: false,
		},
		"empty-comments false disables": {
			args: []string{"--empty-comments=false"},
			want: false,
		},
		"empty-comments zero disables": {
			args: []string{"--empty-comments=0"},
			want: false,
		},
		"empty-comments no disables": {
			args: []string{"--empty-comments=no"},
			want: false,
		},
		"empty-comments is case insensitive": {
			args: []string{"--empty-comments=FALSE"},
			want: false,
		},
		"empty-comments true enables": {
			args: []string{"--empty-comments=true"},
			want: true,
		},
		"environment disables": {
			env:  "false",
			want: false,
		},
		"environment enables": {
			env:  "yes",
			want: true,
		},
		"flag overrides environment": {
			args: []string{"--empty-comments=true"},
			env:  "false",
			want: true,
		},
		"no-empty-comments wins over everything": {
			args: []string{"--no-empty-comments", "--empty-comments=true"},
			env:  "true",
			want: false,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			if tc.env != "" {
				t.Setenv(jsonc.EnvEmptyComments, tc.env)
			} else {
				t.Setenv(jsonc.EnvEmptyComments, "")
			}

			cfg := jsonc.NewConfig()

			flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
			cfg.RegisterFlags(flags)
			require.NoError(t, flags.Parse(tc.args))

			assert.Equal(t, tc.want, cfg.Placeholders())
		})
	}
}

func TestConfigNewSyncer(t *testing.T) {
	t.Setenv(jsonc.EnvEmptyComments, "")

	cfg := jsonc.NewConfig()
	cfg.NoEmptyComments = true

	out, err := cfg.NewSyncer().Sync([]byte(`{"name": "x"}`), nil)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "//")
}
