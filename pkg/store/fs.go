package store

import (
	"io"
	"os"
)

// FileSystem opens the record files. Tests swap it for a fake that fails.
type FileSystem interface {
	OpenRead(name string) (io.ReadCloser, error)
	OpenWrite(name string, flag int, perm os.FileMode) (io.WriteCloser, error)
}

// OSFileSystem uses the real file system on the device.
type OSFileSystem struct{}

func (fsys OSFileSystem) OpenRead(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

func (fsys OSFileSystem) OpenWrite(name string, flag int, perm os.FileMode) (io.WriteCloser, error) {
	return os.OpenFile(name, flag, perm)
}
