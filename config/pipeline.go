package config

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const DefaultConfigName = "pipeline.yaml"

// first entry of selectors in export forms
const Placeholder = "Please select"

var ErrInvalidSelection = errors.New("invalid selection")

type Pipeline struct {
	// disk tree with character/scene/{character}_{scene}_v{N}.fbx files
	AnimationsRoot string `yaml:"animations_root"`
	// engine path the animations tree is mirrored into
	ContentRoot string `yaml:"content_root"`
	// disk directory backing /Game
	ContentDir string `yaml:"content_dir"`

	Characters []string `yaml:"characters"`
	Scenes     []string `yaml:"scenes"`

	Channels        []string      `yaml:"channels"`
	ChannelRemap    []ChannelPair `yaml:"channel_remap"`
	MaterialMapPath string        `yaml:"material_map_path"`
	MaterialPackage string        `yaml:"material_package"`

	Encoding string `yaml:"encoding"`
}

type ChannelPair struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

func Default() *Pipeline {
	p := &Pipeline{
		AnimationsRoot: "N:/GOLEMS_FATE/animations",
		ContentRoot:    "/Game/ASSETS/Animations",
		ContentDir:     "Content",
		Characters:     []string{"Maurice", "Mother_Golem", "Bird", "Test"},
		Channels:       []string{"baseColor", "opacity", "normalCamera", "metalness", "specularRoughness"},
		ChannelRemap: []ChannelPair{
			{"baseColor", "BASE_COLOR"},
			{"opacity", "OPACITY"},
			{"normalCamera", "NORMAL"},
			{"metalness", "METALLIC"},
			{"specularRoughness", "ROUGHNESS"},
		},
		MaterialMapPath: `N:\GOLEMS_FATE\material_info.json`,
		MaterialPackage: "/Game/ASSETS/Materials",
		Encoding:        DefaultEncoding,
	}
	for i := 1; i <= 20; i++ {
		p.Scenes = append(p.Scenes, sceneName(i))
	}
	p.Scenes = append(p.Scenes, "Test")
	return p
}

func sceneName(i int) string {
	return fmt.Sprintf("scene%03d", i)
}

// Load reads yaml config over defaults. Missing file gives defaults.
func Load(path string) (*Pipeline, error) {
	p := Default()
	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[config] %q not found, using defaults", path)
			return p, p.apply()
		}
		return nil, errors.Wrapf(err, "Cannot read config %q", path)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, errors.Wrapf(err, "Cannot parse config %q", path)
	}
	return p, p.apply()
}

func (p *Pipeline) apply() error {
	return SetEncoding(p.Encoding)
}

// RemapTable returns channel remap as lookup map
func (p *Pipeline) RemapTable() map[string]string {
	m := make(map[string]string, len(p.ChannelRemap))
	for _, pair := range p.ChannelRemap {
		m[pair.From] = pair.To
	}
	return m
}

// ValidateSelection checks character and scene against allow-lists
func (p *Pipeline) ValidateSelection(character, scene string) error {
	if character == "" || character == Placeholder || !contains(p.Characters, character) {
		return errors.Wrapf(ErrInvalidSelection, "Please select a valid character (got %q)", character)
	}
	if scene == "" || scene == Placeholder || !contains(p.Scenes, scene) {
		return errors.Wrapf(ErrInvalidSelection, "Please select a valid scene (got %q)", scene)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// MaterialMapDir returns directory of default material map path. Both
// separators are accepted, the default is a Windows path.
func (p *Pipeline) MaterialMapDir() string {
	i := strings.LastIndexAny(p.MaterialMapPath, `/\`)
	switch {
	case i < 0:
		return ""
	case i == 0:
		return p.MaterialMapPath[:1]
	}
	return p.MaterialMapPath[:i]
}

// NormalizeContentPath strips "/All" prefix content browser adds to selected folders
func NormalizeContentPath(path string) string {
	if strings.HasPrefix(path, "/All/") {
		return path[len("/All"):]
	}
	return path
}
