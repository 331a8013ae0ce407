package pkg

import (
	"io/fs"
	"os"
)

// HostFS is the [fs.FS] of the host file system. Unlike [os.DirFS] it opens
// names with [os.Open], so absolute and dot-relative paths work.
type HostFS struct{}

// Open implements [fs.FS].
func (HostFS) Open(name string) (fs.File, error) { return os.Open(name) }

// Stat implements [fs.StatFS].
func (HostFS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

// ReadFile implements [fs.ReadFileFS].
func (HostFS) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }
