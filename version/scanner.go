package version

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/golemsfate/asset_pipeline/vfs"
)

type Entry struct {
	Name    string
	Version int
}

// Scan lists versioned files of key in dir, in directory enumeration order.
// ext restricts the extension (case-insensitive), empty means any.
// Missing directory scans as empty.
func Scan(dir vfs.Directory, key, ext string) ([]Entry, error) {
	names, err := dir.List()
	if err != nil {
		if vfs.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "Cannot scan '%s'", dir.Name())
	}

	ext = strings.TrimPrefix(ext, ".")
	result := make([]Entry, 0, len(names))
	for _, name := range names {
		v, ok := Parse(name, key)
		if !ok {
			continue
		}
		if ext != "" && !strings.EqualFold(strings.TrimPrefix(filepath.Ext(name), "."), ext) {
			continue
		}
		if e, err := dir.GetElement(name); err != nil {
			return nil, errors.Wrapf(err, "Cannot stat '%s'", name)
		} else if e.IsDirectory() {
			continue
		}
		result = append(result, Entry{Name: name, Version: v})
	}
	return result, nil
}

// NextVersion returns version to use for new file of key: max + 1, or 1
func NextVersion(dir vfs.Directory, key string) (int, error) {
	entries, err := Scan(dir, key, "")
	if err != nil {
		return 0, err
	}
	max := 0
	for _, e := range entries {
		if e.Version > max {
			max = e.Version
		}
	}
	return max + 1, nil
}

// LatestVersionFile returns name of file with highest version.
// When several files share highest version the first listed one is returned.
func LatestVersionFile(dir vfs.Directory, key, ext string) (string, bool, error) {
	entries, err := Scan(dir, key, ext)
	if err != nil {
		return "", false, err
	}
	if len(entries) == 0 {
		return "", false, nil
	}
	latest := entries[0]
	for _, e := range entries[1:] {
		if e.Version > latest.Version {
			latest = e
		}
	}
	return latest.Name, true, nil
}
