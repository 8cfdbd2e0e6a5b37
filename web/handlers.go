package web

import (
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/golemsfate/asset_pipeline/animsync"
	"github.com/golemsfate/asset_pipeline/config"
	"github.com/golemsfate/asset_pipeline/export"
	"github.com/golemsfate/asset_pipeline/fbx"
	"github.com/golemsfate/asset_pipeline/matmap"
	"github.com/golemsfate/asset_pipeline/scene"
	"github.com/golemsfate/asset_pipeline/status"
	"github.com/golemsfate/asset_pipeline/version"
	"github.com/golemsfate/asset_pipeline/vfs"
	"github.com/golemsfate/asset_pipeline/webutils"
)

type KeyInfo struct {
	Character string `json:"character"`
	Scene     string `json:"scene"`
	Latest    string `json:"latest,omitempty"`
	Next      int    `json:"next"`
}

type Keys struct {
	Characters []string   `json:"characters"`
	Scenes     []string   `json:"scenes"`
	Keys       []*KeyInfo `json:"keys"`
}

func subDirectories(dir vfs.Directory) []string {
	names, err := dir.List()
	if err != nil {
		return nil
	}
	result := make([]string, 0, len(names))
	for _, name := range names {
		if e, err := dir.GetElement(name); err == nil && e.IsDirectory() {
			result = append(result, name)
		}
	}
	return result
}

func (s *Server) HandlerAjaxKeys(w http.ResponseWriter, r *http.Request) {
	result := &Keys{
		Characters: append([]string{config.Placeholder}, s.Config.Characters...),
		Scenes:     append([]string{config.Placeholder}, s.Config.Scenes...),
		Keys:       make([]*KeyInfo, 0),
	}

	root := vfs.NewDirectoryDriver(s.Config.AnimationsRoot)
	for _, character := range subDirectories(root) {
		for _, sceneName := range subDirectories(root.Sub(character)) {
			dir := root.Sub(character, sceneName)
			key := version.Key(character, sceneName)

			info := &KeyInfo{Character: character, Scene: sceneName}
			next, err := version.NextVersion(dir, key)
			if err != nil {
				webutils.WriteError(w, err)
				return
			}
			info.Next = next
			if latest, ok, err := version.LatestVersionFile(dir, key, "."+export.Extension); err != nil {
				webutils.WriteError(w, err)
				return
			} else if ok {
				info.Latest = latest
			}
			result.Keys = append(result.Keys, info)
		}
	}
	webutils.WriteJson(w, result)
}

func (s *Server) HandlerActionExport(w http.ResponseWriter, r *http.Request) {
	character := mux.Vars(r)["character"]
	sceneName := mux.Vars(r)["scene"]

	if err := s.Config.ValidateSelection(character, sceneName); err != nil {
		webutils.WriteErrorCode(w, http.StatusBadRequest, err)
		return
	}

	snapshotPath := r.FormValue("snapshot")
	if snapshotPath == "" {
		webutils.WriteErrorCode(w, http.StatusBadRequest, errors.Errorf("Snapshot path is not provided"))
		return
	}
	snapshot, err := scene.LoadSnapshot(snapshotPath)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	path, err := export.NewCoordinator(fbx.NewExporter(snapshot)).Export(character, sceneName, s.Config.AnimationsRoot)
	if err != nil {
		status.Error("Export of %s failed: %v", version.Key(character, sceneName), err)
		webutils.WriteError(w, err)
		return
	}
	status.Info("Exported %s", path)
	webutils.WriteJson(w, map[string]string{"path": path})
}

type Plan struct {
	Folders []string         `json:"folders"`
	Tasks   []*animsync.Task `json:"tasks"`
}

func (s *Server) planner(dryRun bool) *animsync.Planner {
	p := animsync.NewPlanner(s.Content)
	p.DryRun = dryRun
	return p
}

func (s *Server) HandlerAjaxPlan(w http.ResponseWriter, r *http.Request) {
	p := s.planner(true)
	tasks, err := p.Plan(s.Config.AnimationsRoot, s.Config.ContentRoot)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteJson(w, &Plan{Folders: p.Folders(), Tasks: tasks})
}

func (s *Server) HandlerActionSync(w http.ResponseWriter, r *http.Request) {
	report, err := s.planner(false).Sync(s.Config.AnimationsRoot, s.Config.ContentRoot)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteJson(w, report)
}

// HandlerDumpMaterialMap builds material map of scene file given by "scene" query
func (s *Server) HandlerDumpMaterialMap(w http.ResponseWriter, r *http.Request) {
	insp, err := scene.Open(r.URL.Query().Get("scene"))
	if err != nil {
		webutils.WriteErrorCode(w, http.StatusBadRequest, err)
		return
	}
	channels := s.Config.Channels
	if q := r.URL.Query().Get("channels"); q != "" {
		channels = strings.Split(q, ",")
	}
	m, err := matmap.Build(insp, insp.Selection(), channels)
	if err != nil {
		webutils.WriteErrorCode(w, http.StatusBadRequest, err)
		return
	}
	webutils.WriteJsonFile(w, m, "material_info")
}

// HandlerActionMaterials applies uploaded "map" file. Material names are
// "name.<object>" form values, target folder is "package". Relative texture
// paths are resolved against "textures", folder of material_map_path by default.
func (s *Server) HandlerActionMaterials(w http.ResponseWriter, r *http.Request) {
	m := matmap.New()
	if err := webutils.ReadJsonFile(r, "map", m); err != nil {
		webutils.WriteErrorCode(w, http.StatusBadRequest, err)
		return
	}

	packagePath := config.NormalizeContentPath(r.FormValue("package"))
	if packagePath == "" {
		packagePath = s.Config.MaterialPackage
	}

	textureRoot := r.FormValue("textures")
	if textureRoot == "" {
		textureRoot = s.Config.MaterialMapDir()
	}

	remapped, dropped := matmap.Remap(m, s.Config.RemapTable())
	if len(dropped) != 0 {
		log.Printf("[web] Channels without remap: %v", dropped)
	}

	a := &matmap.Applier{
		DB:          s.Content,
		PackagePath: packagePath,
		TextureRoot: textureRoot,
		Names: matmap.NameSourceFunc(func(object string) (string, error) {
			return r.FormValue("name." + object), nil
		}),
	}
	materials, err := a.Apply(remapped)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, matmap.ErrAssetNameNotProvided) {
			code = http.StatusBadRequest
		}
		webutils.WriteErrorCode(w, code, err)
		return
	}
	webutils.WriteJson(w, materials)
}

func HandlerAjaxStatus(w http.ResponseWriter, r *http.Request) {
	webutils.WriteJson(w, status.History())
}
