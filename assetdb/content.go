package assetdb

import (
	"bytes"
	"io/ioutil"
	"log"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/golemsfate/asset_pipeline/vfs"
)

const (
	ContentPrefix = "/Game"
	RecordSuffix  = ".uasset.yaml"
)

var fbxBinaryMagic = []byte("Kaydara FBX Binary  \x00")
var fbxAsciiMagic = []byte("; FBX ")

// Content is asset database kept in directory on disk.
// Path "/Game/A/B/name" is record A/B/name.uasset.yaml under root.
type Content struct {
	root *vfs.DirectoryDriver
}

func NewContent(dir string) *Content {
	return &Content{root: vfs.NewDirectoryDriver(dir)}
}

func (c *Content) Root() string {
	return c.root.Path()
}

// split returns directory segments and asset name of content path.
// Object paths "pkg/name.name" are accepted.
func split(contentPath string) ([]string, error) {
	p := path.Clean(contentPath)
	if p != ContentPrefix && !strings.HasPrefix(p, ContentPrefix+"/") {
		return nil, errors.Errorf("Path %q is not under %s", contentPath, ContentPrefix)
	}
	rest := strings.TrimPrefix(strings.TrimPrefix(p, ContentPrefix), "/")
	if rest == "" {
		return nil, nil
	}
	parts := strings.Split(rest, "/")
	last := parts[len(parts)-1]
	if i := strings.IndexByte(last, '.'); i > 0 {
		parts[len(parts)-1] = last[:i]
	}
	return parts, nil
}

func (c *Content) dir(contentPath string) (*vfs.DirectoryDriver, error) {
	parts, err := split(contentPath)
	if err != nil {
		return nil, err
	}
	return c.root.Sub(parts...), nil
}

func (c *Content) recordLocation(assetPath string) (*vfs.DirectoryDriver, string, error) {
	parts, err := split(assetPath)
	if err != nil {
		return nil, "", err
	}
	if len(parts) == 0 {
		return nil, "", errors.Errorf("Path %q has no asset name", assetPath)
	}
	return c.root.Sub(parts[:len(parts)-1]...), parts[len(parts)-1], nil
}

func (c *Content) AssetExists(assetPath string) bool {
	dir, name, err := c.recordLocation(assetPath)
	if err != nil {
		return false
	}
	return dir.Exists(name + RecordSuffix)
}

func (c *Content) DirectoryExists(contentPath string) bool {
	parts, err := split(contentPath)
	if err != nil {
		return false
	}
	if len(parts) == 0 {
		_, err := c.root.List()
		return err == nil
	}
	e, err := c.root.Sub(parts[:len(parts)-1]...).GetElement(parts[len(parts)-1])
	return err == nil && e.IsDirectory()
}

func (c *Content) MakeDirectory(contentPath string) error {
	dir, err := c.dir(contentPath)
	if err != nil {
		return err
	}
	return dir.MkdirAll()
}

// Get loads record of asset
func (c *Content) Get(assetPath string) (*Record, error) {
	dir, name, err := c.recordLocation(assetPath)
	if err != nil {
		return nil, err
	}
	f, err := vfs.DirectoryGetFile(dir, name+RecordSuffix)
	if err != nil {
		return nil, errors.Wrapf(err, "Asset %q", assetPath)
	}
	data, err := vfs.ReadFile(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Asset %q", assetPath)
	}
	r := &Record{}
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, errors.Wrapf(err, "Asset %q record corrupted", assetPath)
	}
	return r, nil
}

func (c *Content) put(assetPath string, r *Record) error {
	dir, name, err := c.recordLocation(assetPath)
	if err != nil {
		return err
	}
	if err := dir.MkdirAll(); err != nil {
		return err
	}
	data, err := yaml.Marshal(r)
	if err != nil {
		return errors.Wrapf(err, "Cannot marshal record %q", assetPath)
	}
	return vfs.WriteFile(dir, name+RecordSuffix, data)
}

// AssetName makes asset name from file name the way engine does on import
func AssetName(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '.', '-', ',', '&', '\'':
			return '_'
		}
		return r
	}, base)
}

func (c *Content) ImportAssets(tasks []*ImportTask) error {
	for _, task := range tasks {
		if err := c.importAsset(task); err != nil {
			return errors.Wrapf(err, "Import of '%s' failed", task.Filename)
		}
	}
	return nil
}

func (c *Content) importAsset(task *ImportTask) error {
	data, err := ioutil.ReadFile(task.Filename)
	if err != nil {
		return errors.Wrapf(err, "Cannot read source")
	}

	name := task.DestinationName
	if name == "" {
		name = AssetName(task.Filename)
	}
	assetPath := strings.TrimSuffix(task.DestinationPath, "/") + "/" + name

	record := &Record{
		Source:     filepath.ToSlash(task.Filename),
		Properties: make(map[string]string),
	}
	ext := strings.ToLower(filepath.Ext(task.Filename))

	switch {
	case ext == ".fbx":
		if !bytes.HasPrefix(data, fbxBinaryMagic) && !bytes.HasPrefix(data, fbxAsciiMagic) {
			return errors.Errorf("Not a fbx file")
		}
		record.Class = ClassStaticMesh
		if opts := task.Options; opts != nil {
			if opts.AnimationOnly {
				record.Class = ClassAnimSequence
			} else if opts.ImportAsSkeletal {
				record.Class = ClassSkeletalMesh
			}
		}
	case filetype.IsImage(data):
		kind, _ := filetype.Match(data)
		record.Class = ClassTexture
		record.Properties["format"] = kind.Extension
		record.Properties["mime"] = kind.MIME.Value
		ext = "." + kind.Extension
	default:
		return errors.Errorf("Unsupported file type")
	}

	// payload of replaced asset, removed when new one has other name
	stale := ""
	if old, err := c.Get(assetPath); err == nil {
		if !task.ReplaceExisting {
			log.Printf("[assetdb] %q already exists, skipping", assetPath)
			return nil
		}
		if old.Class != record.Class {
			return errors.Errorf("%q is %s, cannot replace with %s", assetPath, old.Class, record.Class)
		}
		// replaced asset keeps identity
		record.UUID = old.UUID
		stale = old.Data
	} else if c.AssetExists(assetPath) {
		return err
	} else {
		record.UUID = uuid.New().String()
	}

	dir, _, err := c.recordLocation(assetPath)
	if err != nil {
		return err
	}
	if err := dir.MkdirAll(); err != nil {
		return err
	}
	record.Data = name + ext
	if err := vfs.WriteFile(dir, record.Data, data); err != nil {
		return err
	}
	if err := c.put(assetPath, record); err != nil {
		return err
	}
	if stale != "" && stale != record.Data && dir.Exists(stale) {
		if err := dir.Remove(stale); err != nil {
			return errors.Wrapf(err, "Cannot remove old payload of %q", assetPath)
		}
	}

	task.ImportedObjectPaths = append(task.ImportedObjectPaths, assetPath+"."+name)
	log.Printf("[assetdb] Imported '%s' as %s %q", task.Filename, record.Class, assetPath)
	return nil
}

func (c *Content) CreateMaterial(name, packagePath string) (string, error) {
	if name == "" {
		return "", errors.Errorf("Empty material name")
	}
	assetPath := strings.TrimSuffix(packagePath, "/") + "/" + name
	if c.AssetExists(assetPath) {
		return "", errors.Errorf("Asset %q already exists", assetPath)
	}
	if err := c.put(assetPath, &Record{
		UUID:     uuid.New().String(),
		Class:    ClassMaterial,
		TwoSided: true,
	}); err != nil {
		return "", err
	}
	log.Printf("[assetdb] Created material %q", assetPath)
	return assetPath, nil
}

func (c *Content) ConnectTexture(material, texture, property string, sampler SamplerType) error {
	mat, err := c.Get(material)
	if err != nil {
		return err
	}
	if mat.Class != ClassMaterial {
		return errors.Errorf("%q is not a material", material)
	}
	tex, err := c.Get(texture)
	if err != nil {
		return err
	}
	if tex.Class != ClassTexture {
		return errors.Errorf("%q is not a texture", texture)
	}
	mat.Expressions = append(mat.Expressions, &Expression{
		Texture:  texture,
		Sampler:  sampler,
		Output:   "RGB",
		Property: property,
	})
	return c.put(material, mat)
}
