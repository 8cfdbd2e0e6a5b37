package matmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golemsfate/asset_pipeline/scene"
)

const golemScene = `
application: maya
selection: [Golem_grp]
nodes:
  - id: Golem_grp
    children:
      - id: Door
        type: mesh
        shading: [doorSG]
      - id: Door_copy
        type: mesh
        shading: [doorSG]
      - id: Door_orig
        type: mesh
        intermediate: true
        shading: [stoneSG]
      - id: Helper
        type: mesh
        visible: false
        shading: [stoneSG]
      - id: Naked
        type: mesh
      - id: Body
        children:
          - id: Torso
            type: mesh
            shading: [stoneSG, doorSG]
  - id: Rock
    type: mesh
    shading: [stoneSG]
shading_networks:
  - id: doorSG
    channels:
      baseColor: tex/door_c.png
  - id: stoneSG
    channels:
      baseColor: tex/stone_c.png
      normalCamera: tex/stone_n.png
      metalness: ""
`

func loadScene(t *testing.T) *scene.Snapshot {
	s, err := scene.ParseSnapshot([]byte(golemScene))
	require.NoError(t, err)
	return s
}

func TestBuild(t *testing.T) {
	s := loadScene(t)
	m, err := Build(s, s.Selection(), []string{"baseColor", "normalCamera", "metalness"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Door", "Torso"}, m.Objects())

	door := m.Get("Door")
	assert.Equal(t, []Channel{
		{Name: "baseColor", Path: str("tex/door_c.png")},
		{Name: "normalCamera"},
		{Name: "metalness"},
	}, door.Channels)

	torso := m.Get("Torso")
	assert.Equal(t, []Channel{
		{Name: "baseColor", Path: str("tex/stone_c.png")},
		{Name: "normalCamera", Path: str("tex/stone_n.png")},
		{Name: "metalness"},
	}, torso.Channels)
}

func TestBuildDedupAcrossRoots(t *testing.T) {
	s := loadScene(t)
	m, err := Build(s, []scene.NodeID{"Rock", "Golem_grp"}, []string{"baseColor"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Rock", "Door"}, m.Objects())
}

func TestBuildErrors(t *testing.T) {
	s := loadScene(t)
	_, err := Build(s, nil, []string{"baseColor"})
	assert.ErrorIs(t, err, ErrNoSelection)

	_, err = Build(s, s.Selection(), nil)
	assert.ErrorIs(t, err, ErrNoChannelsSelected)
}

func TestBuildNothingRenderable(t *testing.T) {
	s, err := scene.ParseSnapshot([]byte(`
selection: [Grp]
nodes:
  - id: Grp
    children:
      - id: Hidden
        type: mesh
        visible: false
        shading: [doorSG]
      - id: Hidden_orig
        type: mesh
        intermediate: true
        shading: [doorSG]
shading_networks:
  - id: doorSG
    channels:
      baseColor: tex/door_c.png
`))
	require.NoError(t, err)

	m, err := Build(s, s.Selection(), []string{"baseColor"})
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.Nil(t, m)

	// hidden and intermediate meshes of golem scene only
	g := loadScene(t)
	_, err = Build(g, []scene.NodeID{"Helper", "Door_orig"}, []string{"baseColor"})
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestRemap(t *testing.T) {
	m := New()
	door := m.Add("Door")
	door.Set("baseColor", str("tex/door_c.png"))
	door.Set("normalCamera", nil)
	door.Set("specularRoughness", str("tex/door_r.png"))
	m.Add("Arch").Set("specularRoughness", str("tex/arch_r.png"))

	remapped, dropped := Remap(m, map[string]string{"baseColor": "BASE_COLOR", "normalCamera": "NORMAL"})
	assert.Equal(t, []string{"specularRoughness"}, dropped)
	assert.Equal(t, []string{"Door", "Arch"}, remapped.Objects())
	assert.Equal(t, []Channel{
		{Name: "BASE_COLOR", Path: str("tex/door_c.png")},
		{Name: "NORMAL"},
	}, remapped.Get("Door").Channels)
	assert.Empty(t, remapped.Get("Arch").Channels)

	// source map untouched
	assert.Len(t, door.Channels, 3)
}
