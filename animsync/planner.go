// Package animsync imports latest exported animation versions into the asset database.
package animsync

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/golemsfate/asset_pipeline/assetdb"
	"github.com/golemsfate/asset_pipeline/status"
	"github.com/golemsfate/asset_pipeline/version"
	"github.com/golemsfate/asset_pipeline/vfs"
)

const (
	DefaultExt    = ".fbx"
	DefaultPrefix = "anim_"
)

// Task is import of one scene latest version
type Task struct {
	SourceFile        string
	DestinationFolder string
	// content path of asset after import
	AssetIdentity   string
	DestinationName string
	Version         int
}

type Planner struct {
	DB     assetdb.Database
	Ext    string
	Prefix string
	// do not create destination folders, only record them
	DryRun bool

	folders []string
}

func NewPlanner(db assetdb.Database) *Planner {
	return &Planner{DB: db, Ext: DefaultExt, Prefix: DefaultPrefix}
}

// Folders returns destination folders created (or to be created in dry run) by last walk
func (p *Planner) Folders() []string {
	return p.folders
}

func (p *Planner) ensureFolder(folder string) error {
	if p.DB.DirectoryExists(folder) {
		log.Printf("[animsync] Folder already exists: %s", folder)
		return nil
	}
	p.folders = append(p.folders, folder)
	if p.DryRun {
		log.Printf("[animsync] Folder will be created: %s", folder)
		return nil
	}
	if err := p.DB.MakeDirectory(folder); err != nil {
		return errors.Wrapf(err, "Cannot create folder %q", folder)
	}
	log.Printf("[animsync] Folder created: %s", folder)
	return nil
}

func subDirectories(dir *vfs.DirectoryDriver) ([]string, error) {
	names, err := dir.List()
	if err != nil {
		return nil, err
	}
	result := make([]string, 0, len(names))
	for _, name := range names {
		e, err := dir.GetElement(name)
		if err != nil {
			return nil, err
		}
		if e.IsDirectory() {
			result = append(result, name)
		}
	}
	return result, nil
}

func joinContent(folder, name string) string {
	return strings.TrimSuffix(folder, "/") + "/" + name
}

// Walk visits character/scene directories of source root and calls fn
// for every scene whose latest version is not imported yet.
// Each call walks the tree from scratch.
func (p *Planner) Walk(sourceRoot, destRoot string, fn func(*Task) error) error {
	p.folders = nil
	ext := p.Ext
	if ext == "" {
		ext = DefaultExt
	}

	root := vfs.NewDirectoryDriver(sourceRoot)
	characters, err := subDirectories(root)
	if err != nil {
		return errors.Wrapf(err, "Cannot list source root")
	}

	for _, character := range characters {
		characterFolder := joinContent(destRoot, character)
		if err := p.ensureFolder(characterFolder); err != nil {
			return err
		}

		characterDir := root.Sub(character)
		scenes, err := subDirectories(characterDir)
		if err != nil {
			return errors.Wrapf(err, "Cannot list character %q", character)
		}

		for _, scene := range scenes {
			sceneFolder := joinContent(characterFolder, scene)
			if err := p.ensureFolder(sceneFolder); err != nil {
				return err
			}

			sceneDir := characterDir.Sub(scene)
			key := version.Key(character, scene)
			latest, ok, err := version.LatestVersionFile(sceneDir, key, ext)
			if err != nil {
				return errors.Wrapf(err, "Cannot scan scene %q", key)
			}
			if !ok {
				log.Printf("[animsync] No versions of %s", key)
				continue
			}

			base := strings.TrimSuffix(latest, filepath.Ext(latest))
			v, _ := version.Parse(latest, key)
			task := &Task{
				SourceFile:        filepath.Join(sceneDir.Path(), latest),
				DestinationFolder: sceneFolder,
				DestinationName:   p.Prefix + version.StripSuffix(base),
				Version:           v,
			}
			task.AssetIdentity = joinContent(sceneFolder, task.DestinationName)

			if p.DB.AssetExists(task.AssetIdentity) {
				log.Printf("[animsync] Latest version already imported: %s", task.AssetIdentity)
				continue
			}
			if err := fn(task); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Planner) Plan(sourceRoot, destRoot string) ([]*Task, error) {
	tasks := make([]*Task, 0)
	err := p.Walk(sourceRoot, destRoot, func(t *Task) error {
		tasks = append(tasks, t)
		return nil
	})
	return tasks, err
}

type Report struct {
	Folders  []string
	Tasks    []*Task
	Imported []string
}

// ImportTask returns asset database task importing t as animation only
func (t *Task) ImportTask() *assetdb.ImportTask {
	return &assetdb.ImportTask{
		Filename:        t.SourceFile,
		DestinationPath: t.DestinationFolder,
		DestinationName: t.DestinationName,
		ReplaceExisting: true,
		Automated:       true,
		Options:         assetdb.AnimationImportOptions(),
	}
}

// Sync imports every planned task. In dry run nothing is imported.
func (p *Planner) Sync(sourceRoot, destRoot string) (*Report, error) {
	r := &Report{}
	err := p.Walk(sourceRoot, destRoot, func(t *Task) error {
		r.Tasks = append(r.Tasks, t)
		status.Info("Importing %s", t.AssetIdentity)
		if p.DryRun {
			return nil
		}

		it := t.ImportTask()
		if err := p.DB.ImportAssets([]*assetdb.ImportTask{it}); err != nil {
			return errors.Wrapf(err, "Import of %q", t.AssetIdentity)
		}
		r.Imported = append(r.Imported, it.ImportedObjectPaths...)
		return nil
	})
	r.Folders = p.folders
	if err != nil {
		status.Error("Animation import failed: %v", err)
		return r, err
	}
	status.Info("Imported %d animations", len(r.Imported))
	return r, nil
}
