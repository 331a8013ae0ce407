//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of the jmml module embedded at build time.
var Version = strings.TrimSpace(version)

const (
	// Name is the command name and the base name of every per-user directory
	// created by the CLI.
	Name = "jmml"
	// Description is the one-line summary shown in help output.
	Description = "Menu description compiler and Menp interpreter"

	// ConfigExt is the conventional file extension of menu descriptions.
	ConfigExt = ".jmml"
	// ScriptExt is the conventional file extension of Menp scripts.
	ScriptExt = ".menp"

	// EnvIncludePath names the environment variable holding additional
	// include directories, separated by the OS path list separator.
	EnvIncludePath = "JMML_PATH"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string
	// Email is the author's contact email address.
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
