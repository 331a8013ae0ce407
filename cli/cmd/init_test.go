package cmd

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
)

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		force bool
		setup func(t *testing.T, path string) // setup function to prepare test
		err   error
	}{
		{
			name:  "create_new_config",
			force: false,
		},
		{
			name:  "overwrite_existing_with_force",
			force: true,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing content"), 0o600); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name:  "fail_without_force",
			force: false,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing content"), 0o600); err != nil {
					t.Fatal(err)
				}
			},
			err: ErrFileExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.setup != nil {
				tt.setup(t, confPath)
			}

			var cli struct {
				LogLevel   string        `default:"info"`
				LogPretty  bool          `default:"true"`
				IncludeDir []string      `name:"include-dir"`
				Debounce   time.Duration `default:"250ms"`
				PprofDir   string        `default:"/tmp/pprof"`
				Secret     string        `default:"x"           hidden:""`
			}

			parser, err := kong.New(&cli,
				kong.Writers(io.Discard, io.Discard),
				kong.Vars{ConfigIdentifier: confPath},
			)
			if err != nil {
				t.Fatal(err)
			}

			ktx, err := parser.Parse(nil)
			if err != nil {
				t.Fatal(err)
			}

			cmd := &Init{Force: tt.force}

			err = cmd.Run(WithContext(t.Context(), ktx))
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("expected %v, got %v", tt.err, err)
				}

				data, _ := os.ReadFile(confPath)
				if string(data) != "existing content" {
					t.Errorf("expected existing file untouched, got %q", data)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			data, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var got map[string]any
			if err := yaml.Unmarshal(data, &got); err != nil {
				t.Fatal(err)
			}

			want := map[string]any{
				"log-level":  "info",
				"log-pretty": true,
				"debounce":   "250ms",
			}

			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("settings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

type mode string

func TestSettingValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"bool", false, false},
		{"int", 3, 3},
		{"empty_string", "", nil},
		{"string", "text", "text"},
		{"duration", 2 * time.Second, "2s"},
		{"named_string", mode("json"), "json"},
		{"empty_slice", []string{}, nil},
		{"slice", []string{"a", "b"}, []any{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, settingValue(tt.in)); diff != "" {
				t.Errorf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
