// Package cli contains the command line interface for jmml.
//
// # Usage
//
//	jmml [flags] <command> [args]
//
// build is the default command, so a bare description file builds it:
//
//	jmml menus/main.jmml
//	jmml build -s menus/main.menp -f yaml menus/main.jmml
//	jmml ls -w 'kind == "check" && selected' menus/main.jmml
//	jmml click -s menus/main.menp menus/main.jmml open ~wrap
//	jmml invoke menus/main.jmml menus/main.menp open recent
//	jmml repl -s menus/main.menp menus/main.jmml
//	jmml watch -I menus/lib menus/main.jmml
//
// # Configuration
//
// Flag defaults are read from config.yaml (or config.json) in the per-user
// configuration directory. "jmml init" writes the current values there.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o jmml .
//
// The profiling flags are then:
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
package cli
