package fbx

import (
	"bytes"
	"log"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/golemsfate/asset_pipeline/export"
	"github.com/golemsfate/asset_pipeline/scene"
)

var ErrNothingToExport = errors.New("no selected armature to export")

// Exporter writes selected armatures of snapshot. Implements export.Backend.
type Exporter struct {
	Scene *scene.Snapshot
}

func NewExporter(s *scene.Snapshot) *Exporter {
	return &Exporter{Scene: s}
}

// axisIndex returns fbx axis index and sign of unit axis vector
func axisIndex(v mgl32.Vec3) (int32, int32) {
	for i := range v {
		if v[i] > 0.5 {
			return int32(i), 1
		} else if v[i] < -0.5 {
			return int32(i), -1
		}
	}
	return 0, 1
}

func globalSettings(target scene.Axes) (GlobalSettings, error) {
	var gs GlobalSettings
	forward, err := scene.ParseAxis(target.Forward)
	if err != nil {
		return gs, err
	}
	up, err := scene.ParseAxis(target.Up)
	if err != nil {
		return gs, err
	}
	if forward.Dot(up) != 0 {
		return gs, errors.Errorf("Forward %q and up %q axes are not perpendicular", target.Forward, target.Up)
	}
	// fbx front axis looks to the viewer
	front := forward.Mul(-1)
	coord := up.Cross(front)

	gs.UpAxis, gs.UpAxisSign = axisIndex(up)
	gs.FrontAxis, gs.FrontAxisSign = axisIndex(front)
	gs.CoordAxis, gs.CoordAxisSign = axisIndex(coord)
	return gs, nil
}

type stackActions struct {
	name    string
	start   float32
	end     float32
	actions map[*exportedArmature]*scene.Action
}

func (sa *stackActions) add(ea *exportedArmature, action *scene.Action) {
	if len(sa.actions) == 0 || action.FrameStart < sa.start {
		sa.start = action.FrameStart
	}
	if len(sa.actions) == 0 || action.FrameEnd > sa.end {
		sa.end = action.FrameEnd
	}
	sa.actions[ea] = action
}

// collectStacks groups actions of armatures into stacks.
// Without all actions only active action of every armature goes into one stack.
func collectStacks(armatures []*exportedArmature, s export.Settings) []*stackActions {
	result := make([]*stackActions, 0)
	byName := make(map[string]*stackActions)

	get := func(name string) *stackActions {
		if sa, ok := byName[name]; ok {
			return sa
		}
		sa := &stackActions{name: name, actions: make(map[*exportedArmature]*scene.Action)}
		byName[name] = sa
		result = append(result, sa)
		return sa
	}

	for _, ea := range armatures {
		if s.BakeAnimAllActions {
			for i := range ea.Armature.Actions {
				action := &ea.Armature.Actions[i]
				get(action.Name).add(ea, action)
			}
			continue
		}

		action := ea.Armature.ActiveAction()
		if action == nil {
			log.Printf("[fbx] Armature %q has no action", ea.Armature.Name)
			continue
		}
		if len(result) == 0 {
			get(action.Name)
		}
		result[0].add(ea, action)
	}
	return result
}

// Build creates fbx document of selected armatures with their animation
func (e *Exporter) Build(filename string, s export.Settings) (*Builder, error) {
	if !s.ExportsObjectType("ARMATURE") {
		return nil, errors.Errorf("Object types %v do not include armatures", s.ObjectTypes)
	}

	var armatures []*scene.Armature
	if s.UseSelection {
		armatures = e.Scene.SelectedArmatures()
	} else {
		armatures = e.Scene.Armatures
	}
	if len(armatures) == 0 {
		return nil, ErrNothingToExport
	}

	target := scene.Axes{Forward: s.AxisForward, Up: s.AxisUp}
	conversion, err := e.Scene.Axes.ConversionTo(target)
	if err != nil {
		return nil, errors.Wrapf(err, "Axis conversion")
	}
	gs, err := globalSettings(target)
	if err != nil {
		return nil, err
	}
	gs.UnitScaleFactor = float64(e.Scene.UnitScale)
	gs.FrameRate = e.Scene.FPS

	// model ids are filled after builder creation
	exported := make([]*exportedArmature, 0, len(armatures))
	for _, a := range armatures {
		exported = append(exported, &exportedArmature{Armature: a})
	}
	stacks := collectStacks(exported, s)
	for i, sa := range stacks {
		start, stop := frameToTime(sa.start, gs.FrameRate), frameToTime(sa.end, gs.FrameRate)
		if i == 0 || start < gs.TimeSpanStart {
			gs.TimeSpanStart = start
		}
		if i == 0 || stop > gs.TimeSpanStop {
			gs.TimeSpanStop = stop
		}
	}

	f := NewBuilder(filename, gs)
	for _, ea := range exported {
		written := f.AddArmature(ea.Armature, conversion, s)
		ea.ModelId, ea.Bones = written.ModelId, written.Bones
	}

	for _, sa := range stacks {
		start, stop := frameToTime(sa.start, gs.FrameRate), frameToTime(sa.end, gs.FrameRate)
		stack := f.AddAnimationStack(sa.name, start, stop)
		for _, ea := range exported {
			if action, ok := sa.actions[ea]; ok {
				f.AddAction(stack, ea, action, gs.FrameRate, s)
			}
		}
		f.AddTake(sa.name, filename, start, stop)
	}
	if len(stacks) != 0 {
		f.SetActiveStack(stacks[0].name)
	}

	return f, nil
}

func (e *Exporter) ExportFile(path string, s export.Settings) error {
	f, err := e.Build(path, s)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "Cannot create '%s'", path)
	}
	defer file.Close()
	if _, err := file.Write(buf.Bytes()); err != nil {
		return errors.Wrapf(err, "Cannot write '%s'", path)
	}
	log.Printf("[fbx] Exported %d stacks to '%s'", len(f.takes.GetNodes("Take")), path)
	return file.Close()
}
