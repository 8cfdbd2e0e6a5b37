package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Transform struct {
	T []float32 `yaml:"t,flow,omitempty"`
	// quaternion x, y, z, w
	R []float32 `yaml:"r,flow,omitempty"`
	S []float32 `yaml:"s,flow,omitempty"`
}

func (t Transform) Translation() mgl32.Vec3 {
	if len(t.T) != 3 {
		return mgl32.Vec3{}
	}
	return mgl32.Vec3{t.T[0], t.T[1], t.T[2]}
}

func (t Transform) Rotation() mgl32.Quat {
	if len(t.R) != 4 {
		return mgl32.QuatIdent()
	}
	q := mgl32.Quat{W: t.R[3], V: mgl32.Vec3{t.R[0], t.R[1], t.R[2]}}
	if q.Len() == 0 {
		return mgl32.QuatIdent()
	}
	return q.Normalize()
}

func (t Transform) Scale() mgl32.Vec3 {
	if len(t.S) != 3 {
		return mgl32.Vec3{1, 1, 1}
	}
	return mgl32.Vec3{t.S[0], t.S[1], t.S[2]}
}

type Bone struct {
	Name   string `yaml:"name"`
	Parent string `yaml:"parent,omitempty"`
	// nil means deforming bone
	Deform *bool     `yaml:"deform,omitempty"`
	Length float32   `yaml:"length,omitempty"`
	Rest   Transform `yaml:"rest"`
}

func (b *Bone) IsDeform() bool {
	return b.Deform == nil || *b.Deform
}

type Key struct {
	Frame     float32 `yaml:"frame"`
	Transform `yaml:",inline"`
}

type Action struct {
	Name       string           `yaml:"name"`
	Active     bool             `yaml:"active,omitempty"`
	FrameStart float32          `yaml:"frame_start"`
	FrameEnd   float32          `yaml:"frame_end"`
	Keys       map[string][]Key `yaml:"keys"`
}

type Armature struct {
	// node of the armature in snapshot tree
	Node    NodeID   `yaml:"node"`
	Name    string   `yaml:"name"`
	Bones   []Bone   `yaml:"bones"`
	Actions []Action `yaml:"actions"`
}

// ActiveAction returns action marked active or the first one
func (a *Armature) ActiveAction() *Action {
	for i := range a.Actions {
		if a.Actions[i].Active {
			return &a.Actions[i]
		}
	}
	if len(a.Actions) != 0 {
		return &a.Actions[0]
	}
	return nil
}

func (a *Armature) Bone(name string) *Bone {
	for i := range a.Bones {
		if a.Bones[i].Name == name {
			return &a.Bones[i]
		}
	}
	return nil
}

// Children returns bones parented to name, empty name gives root bones
func (a *Armature) Children(name string) []*Bone {
	result := make([]*Bone, 0)
	for i := range a.Bones {
		if a.Bones[i].Parent == name {
			result = append(result, &a.Bones[i])
		}
	}
	return result
}
