package fbx

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mogaika/fbx"
	"github.com/mogaika/fbx/builders/bfbx73"

	"github.com/golemsfate/asset_pipeline/export"
	"github.com/golemsfate/asset_pipeline/scene"
	"github.com/golemsfate/asset_pipeline/utils"
)

type exportedBone struct {
	Bone    *scene.Bone
	Name    string
	ModelId int64
	Model   *fbx.Node
	// generated end bone without animation
	Leaf bool
}

type exportedArmature struct {
	Armature *scene.Armature
	ModelId  int64
	Bones    []*exportedBone
}

func lclProperties(t mgl32.Vec3, r mgl32.Quat, s mgl32.Vec3) []*fbx.Node {
	rotation := utils.RadiansToDegreeV3(utils.QuatToEuler(r))
	return []*fbx.Node{
		bfbx73.P("Lcl Translation", "Lcl Translation", "", "A+",
			float64(t[0]), float64(t[1]), float64(t[2])),
		bfbx73.P("Lcl Rotation", "Lcl Rotation", "", "A+",
			float64(rotation[0]), float64(rotation[1]), float64(rotation[2])),
		bfbx73.P("Lcl Scaling", "Lcl Scaling", "", "A+",
			float64(s[0]), float64(s[1]), float64(s[2])),
	}
}

func (f *Builder) addModel(name, class, attrType string, props []*fbx.Node) (int64, *fbx.Node) {
	id := f.GenerateId()
	model := bfbx73.Model(id, name+"\x00\x01Model", class).AddNodes(
		bfbx73.Version(232),
		bfbx73.Properties70().AddNodes(
			append([]*fbx.Node{
				bfbx73.P("InheritType", "enum", "", "", int32(1)),
				bfbx73.P("DefaultAttributeIndex", "int", "Integer", "", int32(0)),
			}, props...)...,
		),
		bfbx73.Shading(true),
		bfbx73.Culling("CullingOff"),
	)

	attrId := f.GenerateId()
	nodeAttribute := bfbx73.NodeAttribute(attrId, name+"\x00\x01NodeAttribute", class).AddNodes(
		bfbx73.TypeFlags(attrType),
	)

	f.AddObjects(model, nodeAttribute)
	f.AddConnections(bfbx73.C("OO", attrId, id))
	return id, model
}

// AddArmature writes armature as Null model with LimbNode bones.
// Conversion is rotation into target axes, applied on the armature model.
func (f *Builder) AddArmature(a *scene.Armature, conversion mgl32.Mat3, s export.Settings) *exportedArmature {
	ea := &exportedArmature{Armature: a}

	rootRotation := mgl32.Mat4ToQuat(conversion.Mat4())
	scale := mgl32.Vec3{s.GlobalScale, s.GlobalScale, s.GlobalScale}
	ea.ModelId, _ = f.addModel(a.Name, "Null", "Null",
		lclProperties(mgl32.Vec3{}, rootRotation, scale))
	f.AddConnections(bfbx73.C("OO", ea.ModelId, int64(0)))

	var walk func(parent string, parentId int64)
	walk = func(parent string, parentId int64) {
		for _, bone := range a.Children(parent) {
			if s.DeformBonesOnly && !bone.IsDeform() {
				// children of skipped bone go to nearest exported ancestor
				walk(bone.Name, parentId)
				continue
			}

			rest := bone.Rest
			eb := &exportedBone{Bone: bone, Name: bone.Name}
			eb.ModelId, eb.Model = f.addModel(bone.Name, "LimbNode", "Skeleton",
				lclProperties(rest.Translation(), rest.Rotation(), rest.Scale()))
			f.AddConnections(bfbx73.C("OO", eb.ModelId, parentId))
			ea.Bones = append(ea.Bones, eb)

			before := len(ea.Bones)
			walk(bone.Name, eb.ModelId)

			if s.AddLeafBones && len(ea.Bones) == before {
				leaf := &exportedBone{Bone: bone, Name: bone.Name + "_end", Leaf: true}
				leaf.ModelId, leaf.Model = f.addModel(leaf.Name, "LimbNode", "Skeleton",
					lclProperties(mgl32.Vec3{0, bone.Length, 0}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1}))
				f.AddConnections(bfbx73.C("OO", leaf.ModelId, eb.ModelId))
				ea.Bones = append(ea.Bones, leaf)
			}
		}
	}
	walk("", ea.ModelId)

	return ea
}
