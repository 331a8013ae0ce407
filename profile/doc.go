// Package profile provides optional runtime profiling for jmml.
//
// Profiling is compiled in only with the "pprof" build tag, which links
// [github.com/pkg/profile] and registers the [net/http/pprof] handlers.
// Without the tag, [Profiler.Start] always returns a no-op [Session] and
// [Modes] is empty.
//
// A typical session wraps a long-running command:
//
//	s := profile.Profiler{Mode: "cpu", Dir: dir}.Start(ctx)
//	defer s.Stop()
//
// Profiles are written under Dir using the file names chosen by
// [github.com/pkg/profile] (cpu.pprof, mem.pprof, ...). Inspect them with
//
//	go tool pprof -http=: cpu.pprof
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
