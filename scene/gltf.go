package scene

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
)

// GLTFScene inspects glTF document. Nodes with mesh are renderables,
// material of each primitive is a shading network.
type GLTFScene struct {
	doc *gltf.Document
	dir string
}

func OpenGLTF(path string) (*GLTFScene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read gltf %q", path)
	}
	return NewGLTFScene(doc, filepath.Dir(path)), nil
}

// NewGLTFScene wraps decoded document. dir used to resolve relative image uris.
func NewGLTFScene(doc *gltf.Document, dir string) *GLTFScene {
	return &GLTFScene{doc: doc, dir: dir}
}

func nodeId(i uint32) NodeID {
	return NodeID(strconv.Itoa(int(i)))
}

func networkId(i uint32) NetworkID {
	return NetworkID(strconv.Itoa(int(i)))
}

func (g *GLTFScene) node(id NodeID) (*gltf.Node, bool) {
	i, err := strconv.Atoi(string(id))
	if err != nil || i < 0 || i >= len(g.doc.Nodes) {
		return nil, false
	}
	return g.doc.Nodes[i], true
}

// Selection returns root nodes of default scene
func (g *GLTFScene) Selection() []NodeID {
	if len(g.doc.Scenes) == 0 {
		return nil
	}
	iScene := uint32(0)
	if g.doc.Scene != nil && int(*g.doc.Scene) < len(g.doc.Scenes) {
		iScene = *g.doc.Scene
	}
	result := make([]NodeID, 0, len(g.doc.Scenes[iScene].Nodes))
	for _, iNode := range g.doc.Scenes[iScene].Nodes {
		result = append(result, nodeId(iNode))
	}
	return result
}

func (g *GLTFScene) Children(id NodeID) []NodeID {
	node, ok := g.node(id)
	if !ok {
		return nil
	}
	result := make([]NodeID, 0, len(node.Children))
	for _, c := range node.Children {
		result = append(result, nodeId(c))
	}
	return result
}

func (g *GLTFScene) Node(id NodeID) (NodeInfo, bool) {
	node, ok := g.node(id)
	if !ok {
		return NodeInfo{}, false
	}
	info := NodeInfo{Name: node.Name, Kind: KindGroup, Visible: true}
	if info.Name == "" {
		info.Name = fmt.Sprintf("node%s", id)
	}
	if node.Mesh != nil {
		info.Kind = KindMesh
	} else if node.Skin != nil {
		info.Kind = KindArmature
	}
	return info, true
}

func (g *GLTFScene) ShadingNetworks(id NodeID) []NetworkID {
	node, ok := g.node(id)
	if !ok || node.Mesh == nil || int(*node.Mesh) >= len(g.doc.Meshes) {
		return nil
	}
	result := make([]NetworkID, 0)
	seen := make(map[uint32]struct{})
	for _, primitive := range g.doc.Meshes[*node.Mesh].Primitives {
		if primitive.Material == nil {
			continue
		}
		if _, ok := seen[*primitive.Material]; ok {
			continue
		}
		seen[*primitive.Material] = struct{}{}
		result = append(result, networkId(*primitive.Material))
	}
	return result
}

// TextureFile maps authoring channel names onto pbr textures of material
func (g *GLTFScene) TextureFile(net NetworkID, channel string) (string, bool) {
	i, err := strconv.Atoi(string(net))
	if err != nil || i < 0 || i >= len(g.doc.Materials) {
		return "", false
	}
	mat := g.doc.Materials[i]

	var texture *uint32
	switch channel {
	case "baseColor":
		if mat.PBRMetallicRoughness != nil && mat.PBRMetallicRoughness.BaseColorTexture != nil {
			texture = &mat.PBRMetallicRoughness.BaseColorTexture.Index
		}
	case "opacity":
		if mat.AlphaMode != gltf.AlphaOpaque && mat.PBRMetallicRoughness != nil && mat.PBRMetallicRoughness.BaseColorTexture != nil {
			texture = &mat.PBRMetallicRoughness.BaseColorTexture.Index
		}
	case "metalness", "specularRoughness":
		if mat.PBRMetallicRoughness != nil && mat.PBRMetallicRoughness.MetallicRoughnessTexture != nil {
			texture = &mat.PBRMetallicRoughness.MetallicRoughnessTexture.Index
		}
	case "normalCamera":
		if mat.NormalTexture != nil {
			texture = mat.NormalTexture.Index
		}
	case "emissionColor":
		if mat.EmissiveTexture != nil {
			texture = &mat.EmissiveTexture.Index
		}
	}
	if texture == nil {
		return "", false
	}
	return g.textureFile(*texture)
}

func (g *GLTFScene) textureFile(iTexture uint32) (string, bool) {
	if int(iTexture) >= len(g.doc.Textures) {
		return "", false
	}
	source := g.doc.Textures[iTexture].Source
	if source == nil || int(*source) >= len(g.doc.Images) {
		return "", false
	}
	uri := g.doc.Images[*source].URI
	// embedded images have no file to import
	if uri == "" || strings.HasPrefix(uri, "data:") {
		return "", false
	}
	if filepath.IsAbs(uri) || g.dir == "" {
		return filepath.FromSlash(uri), true
	}
	return filepath.Join(g.dir, filepath.FromSlash(uri)), true
}
