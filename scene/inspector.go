// Package scene describes authoring scenes the pipeline reads: the inspection
// contract used by the material map builder and the rig data used by the
// animation writer.
package scene

import (
	"path/filepath"
	"strings"
)

// Opaque host handles. Only equality is meaningful.
type NodeID string
type NetworkID string

type Kind string

const (
	KindGroup    Kind = "group"
	KindMesh     Kind = "mesh"
	KindArmature Kind = "armature"
)

type NodeInfo struct {
	Name         string
	Kind         Kind
	Visible      bool
	Intermediate bool
}

type Inspector interface {
	// nodes selected by operator, in selection order
	Selection() []NodeID
	Children(id NodeID) []NodeID
	Node(id NodeID) (NodeInfo, bool)
	// shading networks bound to renderable, first is the primary one
	ShadingNetworks(id NodeID) []NetworkID
	// texture file connected to channel, false when channel has no texture
	TextureFile(net NetworkID, channel string) (string, bool)
}

// Open loads inspector of scene file: gltf/glb documents or yaml snapshots
func Open(path string) (Inspector, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		if g, err := OpenGLTF(path); err != nil {
			return nil, err
		} else {
			return g, nil
		}
	default:
		if s, err := LoadSnapshot(path); err != nil {
			return nil, err
		} else {
			return s, nil
		}
	}
}
