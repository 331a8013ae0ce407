package menu

import (
	"io/fs"

	"github.com/ardnew/jmml/log"
	"github.com/ardnew/jmml/pkg"
)

// Option configures [Build].
type Option func(*options)

type options struct {
	listener    Listener
	invoker     Invoker
	logger      log.Logger
	verbose     bool
	fsys        fs.FS
	includeDirs []string
	tags        *TagRegistry
}

func makeOptions(opts ...Option) options {
	o := options{
		logger:  log.Default(),
		verbose: true,
		fsys:    pkg.HostFS{},
		tags:    DefaultTagRegistry,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithListener sets the receiver of click and value events.
func WithListener(l Listener) Option {
	return func(o *options) { o.listener = l }
}

// WithInvoker sets the script engine for "invoke=" bindings and "main".
func WithInvoker(inv Invoker) Option {
	return func(o *options) { o.invoker = inv }
}

// WithLogger sets the diagnostic logger. Each configuration line is echoed
// at info level unless quiet mode is active.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithVerbose sets whether configuration lines are echoed at the start of
// the build. The directives "&quite!" and "&verbose!" change it for the
// rest of the build.
func WithVerbose(verbose bool) Option {
	return func(o *options) { o.verbose = verbose }
}

// WithFS sets the file system configuration files are read from. By
// default files are opened from the host file system.
func WithFS(fsys fs.FS) Option {
	return func(o *options) { o.fsys = fsys }
}

// WithIncludeDirs adds directories searched for included files, before
// those listed in the JMML_PATH environment variable.
func WithIncludeDirs(dirs ...string) Option {
	return func(o *options) { o.includeDirs = append(o.includeDirs, dirs...) }
}

// WithTags sets the registry tags are looked up in.
func WithTags(r *TagRegistry) Option {
	return func(o *options) {
		if r != nil {
			o.tags = r
		}
	}
}
