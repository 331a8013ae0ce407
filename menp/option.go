package menp

import (
	"io/fs"

	"github.com/ardnew/jmml/log"
	"github.com/ardnew/jmml/pkg"
)

// DefaultMaxDepth is the default limit on nested method calls.
const DefaultMaxDepth = 100

// Option configures [Load], [Compile] and [New].
type Option func(*options)

type options struct {
	logger   log.Logger
	fsys     fs.FS
	maxDepth int
}

func makeOptions(opts ...Option) options {
	o := options{
		logger:   log.Default(),
		fsys:     pkg.HostFS{},
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithFS sets the file system scripts and "@" includes are read from.
func WithFS(fsys fs.FS) Option {
	return func(o *options) {
		if fsys != nil {
			o.fsys = fsys
		}
	}
}

// WithMaxDepth limits how deeply methods may call each other. Values below
// one restore [DefaultMaxDepth].
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}

		o.maxDepth = depth
	}
}
