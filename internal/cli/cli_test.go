package cli

import (
	"bytes"
	"testing"

	"github.com/specialistvlad/computedgen/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestParse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []string
		env  map[string]string
		want app.Config
	}{
		{
			name: "defaults to the current directory",
			want: app.Config{Paths: []string{"."}, Suffix: app.DefaultSuffix, LogFormat: "text", LogLevel: "warn"},
		},
		{
			name: "go generate file",
			env:  map[string]string{"GOFILE": "cart.go"},
			want: app.Config{Paths: []string{"cart.go"}, Suffix: app.DefaultSuffix, LogFormat: "text", LogLevel: "warn"},
		},
		{
			name: "explicit paths win over GOFILE",
			args: []string{"a.go", "schema/*.hcl"},
			env:  map[string]string{"GOFILE": "cart.go"},
			want: app.Config{Paths: []string{"a.go", "schema/*.hcl"}, Suffix: app.DefaultSuffix, LogFormat: "text", LogLevel: "warn"},
		},
		{
			name: "all options",
			args: []string{"-type", "Cart, Order", "-suffix", "_gen.go", "-constructor", "-check", "-log-level", "DEBUG", "-log-format", "json", "x.go"},
			want: app.Config{
				Paths:       []string{"x.go"},
				Types:       []string{"Cart", "Order"},
				Suffix:      "_gen.go",
				Constructor: true,
				Check:       true,
				LogFormat:   "json",
				LogLevel:    "debug",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg, exit, err := Parse(tc.args, &bytes.Buffer{}, env(tc.env))
			require.NoError(t, err)
			require.False(t, exit)
			assert.Equal(t, tc.want, *cfg)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	cases := map[string][]string{
		"unknown flag":      {"-nope"},
		"bad log format":    {"-log-format", "xml"},
		"bad log level":     {"-log-level", "loud"},
		"check and watch":   {"-check", "-watch"},
		"suffix not go":     {"-suffix", ".txt"},
		"suffix is a test":  {"-suffix", "_test.go"},
		"invalid type name": {"-type", "my-type"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, _, err := Parse(args, &bytes.Buffer{}, env(nil))
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}

func TestParse_Help(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, exit, err := Parse([]string{"-help"}, out, env(nil))
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "computedgen [options] [PATH...]")
}
