package vfs

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// must contain only metadata (filename) as long as possible
// (before List/Open/GetElement/Remove/Add calls)
type Element interface {
	Init(parent Directory)
	Name() string
	IsDirectory() bool
}

type File interface {
	Element
	Size() int64
	Open(readonly bool) error
	Close() error
	Reader() (*io.SectionReader, error)
	Copy(src io.Reader) error
}

type Directory interface {
	Element
	List() ([]string, error)
	GetElement(name string) (Element, error)
	Add(e Element) error
	Remove(name string) error
}

// IsNotExist reports whether err (possibly wrapped) means the element is missing.
func IsNotExist(err error) bool {
	return err != nil && os.IsNotExist(errors.Cause(err))
}
