// Package cmd implements the jmml subcommands.
//
// Each command builds the menu description named on the command line into
// an off-screen [menu.Window], optionally with a Menp script bound to its
// "invoke=" settings, and then reports on or drives the resulting tree.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path
	// to the YAML configuration file.
	ConfigIdentifier = "config"
)
