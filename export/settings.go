package export

// Settings is configuration handed to interchange writer.
// Values are fixed by FrozenSettings, the pipeline never changes them.
type Settings struct {
	UseSelection bool
	ObjectTypes  []string

	BakeAnimation        bool
	BakeAnimStep         float32
	BakeAnimNLAStrips    bool
	BakeAnimAllActions   bool
	BakeComplexAnimation bool
	ForceStartEndKeying  bool
	AnimationOnly        bool

	DeformBonesOnly bool
	AddLeafBones    bool
	MeshSmoothType  string

	AxisForward       string
	AxisUp            string
	GlobalScale       float32
	ApplyScaleOptions string
}

func FrozenSettings() Settings {
	return Settings{
		UseSelection: true,
		ObjectTypes:  []string{"ARMATURE"},

		BakeAnimation:        true,
		BakeAnimStep:         1,
		BakeAnimNLAStrips:    false,
		BakeAnimAllActions:   false,
		BakeComplexAnimation: true,
		ForceStartEndKeying:  true,
		AnimationOnly:        true,

		DeformBonesOnly: false,
		AddLeafBones:    false,
		MeshSmoothType:  "OFF",

		AxisForward:       "X",
		AxisUp:            "Z",
		GlobalScale:       1.0,
		ApplyScaleOptions: "FBX_SCALE_NONE",
	}
}

func (s Settings) ExportsObjectType(t string) bool {
	for _, ot := range s.ObjectTypes {
		if ot == t {
			return true
		}
	}
	return false
}
