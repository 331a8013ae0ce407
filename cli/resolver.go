package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] that reads a YAML configuration
// file, the format written by the init command.
//
// Keys are flag names; hyphens may be written as underscores. Numbers are
// passed to kong as strings, lists as lists:
//
//	log-level: debug
//	log_pretty: false
//	include-dir:
//	  - ~/menus/lib
//	debounce: 250ms
//
// Command-line flags override config file values. An unreadable or
// malformed file yields an empty configuration.
func resolve(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return config{}, nil
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return config{}, nil
	}

	c := make(config, len(raw))
	for key, value := range raw {
		c[key] = native(value)
	}

	return c, nil
}

// native converts a decoded YAML value to a form kong can map onto a flag.
func native(value any) any {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = native(item)
		}

		return items
	default:
		return v
	}
}

// config implements [kong.Resolver] for YAML configuration files.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	for _, name := range []string{
		flag.Name,
		strings.ReplaceAll(flag.Name, "-", "_"),
	} {
		if value, ok := r[name]; ok {
			return value, nil
		}
	}

	// Not found; kong uses the default.
	return nil, nil
}
