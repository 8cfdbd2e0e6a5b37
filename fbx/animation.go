package fbx

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mogaika/fbx"
	"github.com/mogaika/fbx/builders/bfbx73"

	"github.com/golemsfate/asset_pipeline/export"
	"github.com/golemsfate/asset_pipeline/scene"
	"github.com/golemsfate/asset_pipeline/utils"
)

const KEY_VERSION = 4008

// linear interpolation, generic clamp progressive tangents
const keyAttrFlags = int32(1<<2 | 1<<8 | 1<<13 | 1<<14)

var keyAttrDataFloat = []float32{0, 0, 9.419963346924634e-30, 0}

var curveChannels = [3]string{"X", "Y", "Z"}

func connectProperty(child, parent int64, property string) *fbx.Node {
	return node("C", "OP", child, parent, property)
}

// AnimationStack holds one take with single base layer
type AnimationStack struct {
	Name    string
	Start   int64
	Stop    int64
	LayerId int64
}

func (f *Builder) AddAnimationStack(name string, start, stop int64) *AnimationStack {
	stack := &AnimationStack{Name: name, Start: start, Stop: stop}

	stackId := f.GenerateId()
	stack.LayerId = f.GenerateId()
	f.AddObjects(
		node("AnimationStack", stackId, name+"\x00\x01AnimStack", "").AddNodes(
			bfbx73.Properties70().AddNodes(
				bfbx73.P("LocalStart", "KTime", "Time", "", start),
				bfbx73.P("LocalStop", "KTime", "Time", "", stop),
				bfbx73.P("ReferenceStart", "KTime", "Time", "", start),
				bfbx73.P("ReferenceStop", "KTime", "Time", "", stop),
			),
		),
		node("AnimationLayer", stack.LayerId, "BaseLayer\x00\x01AnimLayer", ""),
	)
	f.AddConnections(bfbx73.C("OO", stack.LayerId, stackId))
	return stack
}

func (f *Builder) addCurve(times []int64, values []float32) int64 {
	id := f.GenerateId()
	f.AddObjects(
		node("AnimationCurve", id, "\x00\x01AnimCurve", "").AddNodes(
			node("Default", float64(values[0])),
			node("KeyVer", int32(KEY_VERSION)),
			node("KeyTime", times),
			node("KeyValueFloat", values),
			node("KeyAttrFlags", []int32{keyAttrFlags}),
			node("KeyAttrDataFloat", keyAttrDataFloat),
			node("KeyAttrRefCount", []int32{int32(len(times))}),
		),
	)
	return id
}

// addCurveNode writes 3 component curves animating property of model
func (f *Builder) addCurveNode(stack *AnimationStack, modelId int64, short, property string, times []int64, values [3][]float32) {
	id := f.GenerateId()
	f.AddObjects(
		node("AnimationCurveNode", id, short+"\x00\x01AnimCurveNode", "").AddNodes(
			bfbx73.Properties70().AddNodes(
				bfbx73.P("d|X", "Number", "", "A", float64(values[0][0])),
				bfbx73.P("d|Y", "Number", "", "A", float64(values[1][0])),
				bfbx73.P("d|Z", "Number", "", "A", float64(values[2][0])),
			),
		),
	)
	f.AddConnections(
		bfbx73.C("OO", id, stack.LayerId),
		connectProperty(id, modelId, property),
	)
	for i, channel := range curveChannels {
		curveId := f.addCurve(times, values[i])
		f.AddConnections(connectProperty(curveId, id, "d|"+channel))
	}
}

// AddAction bakes action of armature into stack layer
func (f *Builder) AddAction(stack *AnimationStack, ea *exportedArmature, action *scene.Action, fps float32, s export.Settings) {
	for boneName := range action.Keys {
		if ea.Armature.Bone(boneName) == nil {
			log.Printf("[fbx] Action %q has keys of unknown bone %q", action.Name, boneName)
		}
	}

	frames := sampleFrames(action, s)
	times := make([]int64, len(frames))
	for i, frame := range frames {
		times[i] = frameToTime(frame, fps)
	}

	for _, eb := range ea.Bones {
		if eb.Leaf {
			continue
		}
		tr := newTrack(action.Keys[eb.Bone.Name])

		var translation, rotation, scale [3][]float32
		for i := range curveChannels {
			translation[i] = make([]float32, len(frames))
			rotation[i] = make([]float32, len(frames))
			scale[i] = make([]float32, len(frames))
		}

		var prevEuler mgl32.Vec3
		for iFrame, frame := range frames {
			p := tr.sample(frame, eb.Bone.Rest)
			euler := utils.RadiansToDegreeV3(utils.QuatToEuler(p.R))
			if iFrame != 0 {
				euler = continuousEuler(prevEuler, euler)
			}
			prevEuler = euler

			for i := range curveChannels {
				translation[i][iFrame] = p.T[i]
				rotation[i][iFrame] = euler[i]
				scale[i][iFrame] = p.S[i]
			}
		}

		f.addCurveNode(stack, eb.ModelId, "T", "Lcl Translation", times, translation)
		f.addCurveNode(stack, eb.ModelId, "R", "Lcl Rotation", times, rotation)
		f.addCurveNode(stack, eb.ModelId, "S", "Lcl Scaling", times, scale)
	}
}
