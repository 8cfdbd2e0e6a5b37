// Package export writes new versions of character scene animations.
package export

import (
	"log"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/golemsfate/asset_pipeline/version"
	"github.com/golemsfate/asset_pipeline/vfs"
)

const Extension = "fbx"

var (
	ErrMissingSelection        = errors.New("character and scene must be selected")
	ErrDirectoryCreationFailed = errors.New("export directory creation failed")
	ErrBackendExportFailed     = errors.New("backend export failed")
)

// Backend is interchange file writer
type Backend interface {
	ExportFile(path string, s Settings) error
}

type BackendExportError struct {
	Path   string
	Reason error
}

func (e *BackendExportError) Error() string {
	return "Export of '" + e.Path + "' failed: " + e.Reason.Error()
}

func (e *BackendExportError) Unwrap() error { return e.Reason }

func (e *BackendExportError) Is(target error) bool { return target == ErrBackendExportFailed }

type Coordinator struct {
	Backend Backend
}

func NewCoordinator(b Backend) *Coordinator {
	return &Coordinator{Backend: b}
}

// Export writes baseDir/character/scene/{character}_{scene}_v{N}.fbx with first
// free version and returns its path. Failed write is left as is.
func (c *Coordinator) Export(character, scene, baseDir string) (string, error) {
	if character == "" || scene == "" {
		return "", ErrMissingSelection
	}

	dir := vfs.NewDirectoryDriver(baseDir).Sub(character, scene)
	if err := dir.MkdirAll(); err != nil {
		return "", errors.Wrapf(ErrDirectoryCreationFailed, "%v", err)
	}

	key := version.Key(character, scene)
	v, err := version.NextVersion(dir, key)
	if err != nil {
		return "", errors.Wrapf(err, "Cannot scan '%s'", dir.Path())
	}

	name := version.Format(key, v, Extension)
	for dir.Exists(name) {
		v++
		name = version.Format(key, v, Extension)
	}

	path := filepath.Join(dir.Path(), name)
	log.Printf("[export] Exporting %s version %d to '%s'", key, v, path)
	if err := c.Backend.ExportFile(path, FrozenSettings()); err != nil {
		return "", &BackendExportError{Path: path, Reason: err}
	}
	return path, nil
}
