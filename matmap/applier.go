package matmap

import (
	"log"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/golemsfate/asset_pipeline/assetdb"
	"github.com/golemsfate/asset_pipeline/status"
)

const NormalChannel = "NORMAL"

var (
	ErrAssetNameNotProvided   = errors.New("asset name not provided")
	ErrMaterialCreationFailed = errors.New("material creation failed")
	ErrTextureImportFailed    = errors.New("texture import failed")
)

// NameSource gives material asset name for object, empty name aborts apply
type NameSource interface {
	AssetName(object string) (string, error)
}

type NameSourceFunc func(object string) (string, error)

func (f NameSourceFunc) AssetName(object string) (string, error) { return f(object) }

// NameMap answers from fixed object to name table
type NameMap map[string]string

func (m NameMap) AssetName(object string) (string, error) { return m[object], nil }

type Applier struct {
	DB          assetdb.Database
	Names       NameSource
	PackagePath string
	// base of relative texture paths
	TextureRoot string
}

type Material struct {
	Object   string
	Path     string
	Textures map[string]string
}

func (a *Applier) texturePath(p string) string {
	if a.TextureRoot != "" && !filepath.IsAbs(p) {
		return filepath.Join(a.TextureRoot, filepath.FromSlash(p))
	}
	return p
}

func samplerOf(channel string) assetdb.SamplerType {
	if channel == NormalChannel {
		return assetdb.SamplerNormal
	}
	return assetdb.SamplerColor
}

// Apply creates material per object of map and wires its textures.
// All names are asked before anything is created.
func (a *Applier) Apply(m *MaterialMap) ([]*Material, error) {
	names := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		name, err := a.Names.AssetName(e.Object)
		if err != nil {
			return nil, errors.Wrapf(err, "Asking name of %q", e.Object)
		}
		if name == "" {
			return nil, errors.Wrapf(ErrAssetNameNotProvided, "object %q", e.Object)
		}
		names[i] = name
	}

	result := make([]*Material, 0, len(m.Entries))
	for i, e := range m.Entries {
		status.Progress(float32(i)/float32(len(m.Entries)), "Creating material %s", names[i])

		materialPath, err := a.DB.CreateMaterial(names[i], a.PackagePath)
		if err != nil {
			return result, errors.Wrapf(ErrMaterialCreationFailed, "%q: %v", names[i], err)
		}
		mat := &Material{Object: e.Object, Path: materialPath, Textures: make(map[string]string)}
		result = append(result, mat)

		for _, c := range e.Channels {
			if c.Path == nil || *c.Path == "" {
				continue
			}
			texture, err := assetdb.ImportTexture(a.DB, a.texturePath(*c.Path), a.PackagePath)
			if err != nil {
				return result, errors.Wrapf(ErrTextureImportFailed, "%q: %v", *c.Path, err)
			}
			if err := a.DB.ConnectTexture(materialPath, texture, c.Name, samplerOf(c.Name)); err != nil {
				return result, errors.Wrapf(err, "Connecting %q to %s of %q", texture, c.Name, materialPath)
			}
			mat.Textures[c.Name] = texture
		}
		log.Printf("[matmap] Material %q of %q wired with %d textures", materialPath, e.Object, len(mat.Textures))
	}
	status.Info("Created %d materials", len(result))
	return result, nil
}
