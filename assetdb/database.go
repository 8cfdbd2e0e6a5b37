// Package assetdb is the engine side of the pipeline: an asset database that
// imports interchange files and textures and keeps material graphs.
package assetdb

import (
	"github.com/pkg/errors"
)

type Class string

const (
	ClassAnimSequence Class = "AnimSequence"
	ClassSkeletalMesh Class = "SkeletalMesh"
	ClassStaticMesh   Class = "StaticMesh"
	ClassTexture      Class = "Texture2D"
	ClassMaterial     Class = "Material"
)

type SamplerType string

const (
	SamplerColor  SamplerType = "Color"
	SamplerNormal SamplerType = "Normal"
)

type ImportOptions struct {
	AnimationOnly    bool
	ImportMesh       bool
	ImportAsSkeletal bool
	ImportMaterials  bool
	ImportTextures   bool
}

// AnimationImportOptions imports interchange file as animation only
func AnimationImportOptions() *ImportOptions {
	return &ImportOptions{AnimationOnly: true}
}

type ImportTask struct {
	Filename        string
	DestinationPath string
	// asset name, source base name when empty
	DestinationName string
	ReplaceExisting bool
	// no interactive questions during import
	Automated bool
	// interchange options, nil for textures
	Options *ImportOptions

	// filled by database after import
	ImportedObjectPaths []string
}

type Database interface {
	AssetExists(path string) bool
	DirectoryExists(path string) bool
	MakeDirectory(path string) error
	// runs tasks synchronously in order
	ImportAssets(tasks []*ImportTask) error
	// returns path of created material
	CreateMaterial(name, packagePath string) (string, error)
	ConnectTexture(material, texture, property string, sampler SamplerType) error
}

// ImportTexture imports image file into destination folder replacing existing asset.
// Returns object path of imported texture.
func ImportTexture(db Database, file, destination string) (string, error) {
	task := &ImportTask{
		Filename:        file,
		DestinationPath: destination,
		ReplaceExisting: true,
		Automated:       true,
	}
	if err := db.ImportAssets([]*ImportTask{task}); err != nil {
		return "", err
	}
	if len(task.ImportedObjectPaths) == 0 {
		return "", errors.Errorf("Texture '%s' was not imported", file)
	}
	return task.ImportedObjectPaths[0], nil
}
