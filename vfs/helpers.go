package vfs

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
)

func OpenFileAndGetReader(f File, readonly bool) (*io.SectionReader, error) {
	if err := f.Open(readonly); err != nil {
		return nil, errors.Wrapf(err, "Cannot open file '%s'", f.Name())
	} else {
		if r, err := f.Reader(); err != nil {
			defer f.Close()
			return nil, errors.Wrapf(err, "Cannot get file '%s' reader", f.Name())
		} else {
			return r, err
		}
	}
}

func OpenFileAndCopy(f File, src io.Reader) error {
	if err := f.Open(false); err != nil {
		return errors.Wrapf(err, "Cannot open file '%s'", f.Name())
	} else {
		defer f.Close()
		if err := f.Copy(src); err != nil {
			return errors.Wrapf(err, "Cannot copy data to file '%s'", f.Name())
		} else {
			return nil
		}
	}
}

// ReadFile reads whole file content and closes it
func ReadFile(f File) ([]byte, error) {
	r, err := OpenFileAndGetReader(f, true)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ioutil.ReadAll(r)
}

// WriteFile creates (or truncates) file in directory and fills it with data
func WriteFile(d Directory, name string, data []byte) error {
	if err := d.Add(NewDirectoryDriverFile(name)); err != nil {
		return errors.Wrapf(err, "Cannot create file '%s'", name)
	}
	f, err := DirectoryGetFile(d, name)
	if err != nil {
		return err
	}
	return OpenFileAndCopy(f, bytes.NewReader(data))
}

func DirectoryGetFile(d Directory, name string) (File, error) {
	if f, err := d.GetElement(name); err != nil {
		return nil, errors.Wrapf(err, "Cannot open file '%s'", name)
	} else if f.IsDirectory() {
		return nil, errors.Errorf("File '%s' is directory, not a file!", name)
	} else {
		return f.(File), nil
	}
}
