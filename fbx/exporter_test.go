package fbx

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mogaika/fbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golemsfate/asset_pipeline/export"
	"github.com/golemsfate/asset_pipeline/scene"
)

const rigSnapshot = `
application: blender
axes: {forward: -Y, up: Z}
fps: 24
selection: [rig]
nodes:
  - id: rig
    type: armature
  - id: prop_rig
    type: armature
armatures:
  - name: Golem
    node: rig
    bones:
      - name: Hips
        length: 0.4
        rest: {t: [0, 0, 1]}
      - name: Spine
        parent: Hips
        length: 0.5
        rest: {t: [0, 0.4, 0]}
      - name: Hips_ctrl
        parent: Hips
        deform: false
    actions:
      - name: idle
        frame_start: 1
        frame_end: 10
        keys:
          Hips:
            - {frame: 1, t: [0, 0, 1]}
            - {frame: 10, t: [0, 0, 2]}
      - name: walk
        active: true
        frame_start: 1
        frame_end: 4
        keys:
          Spine:
            - {frame: 1, r: [0, 0, 0, 1]}
            - {frame: 4, r: [0, 0, 0.7071068, 0.7071068]}
  - name: Prop
    node: prop_rig
    bones:
      - name: Root
`

func loadRig(t *testing.T) *scene.Snapshot {
	s, err := scene.ParseSnapshot([]byte(rigSnapshot))
	require.NoError(t, err)
	return s
}

func objectsByName(f *Builder, name string) []*fbx.Node {
	return f.objects.GetNodes(name)
}

func objectName(n *fbx.Node) string {
	name := n.Properties[1].(string)
	return name[:strings.Index(name, "\x00\x01")]
}

func TestExporterBuild(t *testing.T) {
	for _, test := range []struct {
		name       string
		settings   func(s *export.Settings)
		models     []string
		stacks     []string
		curveNodes int
	}{
		{
			name:       "frozen",
			settings:   func(s *export.Settings) {},
			models:     []string{"Golem", "Hips", "Spine", "Hips_ctrl"},
			stacks:     []string{"walk"},
			curveNodes: 3 * 3,
		}, {
			name:       "deform only",
			settings:   func(s *export.Settings) { s.DeformBonesOnly = true },
			models:     []string{"Golem", "Hips", "Spine"},
			stacks:     []string{"walk"},
			curveNodes: 2 * 3,
		}, {
			name:       "leaf bones",
			settings:   func(s *export.Settings) { s.AddLeafBones = true },
			models:     []string{"Golem", "Hips", "Spine", "Spine_end", "Hips_ctrl", "Hips_ctrl_end"},
			stacks:     []string{"walk"},
			curveNodes: 3 * 3,
		}, {
			name:       "all actions",
			settings:   func(s *export.Settings) { s.BakeAnimAllActions = true },
			models:     []string{"Golem", "Hips", "Spine", "Hips_ctrl"},
			stacks:     []string{"idle", "walk"},
			curveNodes: 2 * 3 * 3,
		}, {
			name:       "whole scene",
			settings:   func(s *export.Settings) { s.UseSelection = false },
			models:     []string{"Golem", "Hips", "Spine", "Hips_ctrl", "Prop", "Root"},
			stacks:     []string{"walk"},
			curveNodes: 3 * 3,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			s := export.FrozenSettings()
			test.settings(&s)

			f, err := NewExporter(loadRig(t)).Build("golem_scene001_v1.fbx", s)
			require.NoError(t, err)

			models := make([]string, 0)
			for _, m := range objectsByName(f, "Model") {
				models = append(models, objectName(m))
			}
			assert.Equal(t, test.models, models)

			stacks := make([]string, 0)
			for _, st := range objectsByName(f, "AnimationStack") {
				stacks = append(stacks, objectName(st))
			}
			assert.Equal(t, test.stacks, stacks)
			assert.Len(t, objectsByName(f, "AnimationLayer"), len(test.stacks))
			assert.Len(t, objectsByName(f, "AnimationCurveNode"), test.curveNodes)
			assert.Len(t, objectsByName(f, "AnimationCurve"), test.curveNodes*3)
			assert.Len(t, f.takes.GetNodes("Take"), len(test.stacks))
		})
	}
}

func TestExporterBakesEveryFrame(t *testing.T) {
	f, err := NewExporter(loadRig(t)).Build("golem_scene001_v1.fbx", export.FrozenSettings())
	require.NoError(t, err)

	for _, curve := range objectsByName(f, "AnimationCurve") {
		times := curve.GetNode("KeyTime").Properties[0].([]int64)
		values := curve.GetNode("KeyValueFloat").Properties[0].([]float32)
		require.Len(t, times, 4)
		assert.Len(t, values, 4)
		assert.Equal(t, frameToTime(1, 24), times[0])
		assert.Equal(t, frameToTime(4, 24), times[3])
	}
}

func TestGlobalSettings(t *testing.T) {
	for _, test := range []struct {
		axes                scene.Axes
		up, front, coord    int32
		upS, frontS, coordS int32
	}{
		{scene.Axes{Forward: "-Z", Up: "Y"}, 1, 2, 0, 1, 1, 1},
		{scene.Axes{Forward: "X", Up: "Z"}, 2, 0, 1, 1, -1, -1},
		{scene.Axes{Forward: "-Y", Up: "Z"}, 2, 1, 0, 1, 1, -1},
	} {
		gs, err := globalSettings(test.axes)
		require.NoError(t, err)
		assert.Equal(t, [6]int32{test.up, test.upS, test.front, test.frontS, test.coord, test.coordS},
			[6]int32{gs.UpAxis, gs.UpAxisSign, gs.FrontAxis, gs.FrontAxisSign, gs.CoordAxis, gs.CoordAxisSign},
			"%+v", test.axes)
	}

	_, err := globalSettings(scene.Axes{Forward: "Z", Up: "-Z"})
	assert.Error(t, err)
}

func TestExporterErrors(t *testing.T) {
	s := export.FrozenSettings()
	s.ObjectTypes = []string{"MESH"}
	_, err := NewExporter(loadRig(t)).Build("a.fbx", s)
	assert.Error(t, err)

	snapshot := loadRig(t)
	snapshot.Selected = nil
	_, err = NewExporter(snapshot).Build("a.fbx", export.FrozenSettings())
	assert.ErrorIs(t, err, ErrNothingToExport)
}

func TestExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golem_scene001_v1.fbx")
	require.NoError(t, NewExporter(loadRig(t)).ExportFile(path, export.FrozenSettings()))

	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("Kaydara FBX Binary  \x00")))
}
