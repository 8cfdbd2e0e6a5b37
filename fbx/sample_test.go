package fbx

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/golemsfate/asset_pipeline/export"
	"github.com/golemsfate/asset_pipeline/scene"
)

func TestSampleVec(t *testing.T) {
	keys := []vecKey{
		{frame: 0, v: mgl32.Vec3{0, 0, 0}},
		{frame: 10, v: mgl32.Vec3{10, 20, -10}},
	}
	def := mgl32.Vec3{7, 7, 7}

	for _, test := range []struct {
		frame  float32
		result mgl32.Vec3
	}{
		{-5, mgl32.Vec3{0, 0, 0}},
		{0, mgl32.Vec3{0, 0, 0}},
		{5, mgl32.Vec3{5, 10, -5}},
		{10, mgl32.Vec3{10, 20, -10}},
		{15, mgl32.Vec3{10, 20, -10}},
	} {
		assert.True(t, test.result.ApproxEqual(sampleVec(keys, test.frame, def)), "frame %v", test.frame)
	}
	assert.Equal(t, def, sampleVec(nil, 3, def))
}

func TestSampleQuatShortestPath(t *testing.T) {
	a := mgl32.QuatIdent()
	b := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1})
	half := mgl32.QuatRotate(mgl32.DegToRad(45), mgl32.Vec3{0, 0, 1})

	keys := []quatKey{{0, a}, {2, b}}
	assert.True(t, half.ApproxEqualThreshold(sampleQuat(keys, 1, a), 1e-4))

	// same rotation with negated quaternion must not take long way
	keys = []quatKey{{0, a}, {2, b.Scale(-1)}}
	r := sampleQuat(keys, 1, a)
	assert.True(t, half.ApproxEqualThreshold(r, 1e-4) || half.ApproxEqualThreshold(r.Scale(-1), 1e-4))
}

func TestSampleFrames(t *testing.T) {
	action := &scene.Action{
		FrameStart: 1,
		FrameEnd:   4,
		Keys: map[string][]scene.Key{
			"Hips":  {{Frame: 2}, {Frame: 3.5}},
			"Spine": {{Frame: 2, Transform: scene.Transform{T: []float32{0, 1, 0}}}, {Frame: 9, Transform: scene.Transform{T: []float32{0, 1, 0}}}},
		},
	}

	s := export.FrozenSettings()
	assert.Equal(t, []float32{1, 2, 3, 4}, sampleFrames(action, s))

	s.BakeAnimStep = 1.5
	assert.Equal(t, []float32{1, 2.5, 4}, sampleFrames(action, s))

	s.BakeAnimation = false
	assert.Equal(t, []float32{1, 2, 4}, sampleFrames(action, s))

	s.ForceStartEndKeying = false
	assert.Equal(t, []float32{2}, sampleFrames(action, s))
}

func TestFrameToTime(t *testing.T) {
	assert.Equal(t, int64(KTIME_SECOND), frameToTime(24, 24))
	assert.Equal(t, int64(KTIME_SECOND/2), frameToTime(15, 30))
	assert.Equal(t, int64(0), frameToTime(0, 30))
}

func TestContinuousEuler(t *testing.T) {
	for _, test := range []struct {
		prev, cur, result mgl32.Vec3
	}{
		{mgl32.Vec3{170, 0, 0}, mgl32.Vec3{-170, 0, 0}, mgl32.Vec3{190, 0, 0}},
		{mgl32.Vec3{-170, 0, 0}, mgl32.Vec3{170, 0, 0}, mgl32.Vec3{-190, 0, 0}},
		{mgl32.Vec3{720, 10, 0}, mgl32.Vec3{5, 10, 0}, mgl32.Vec3{725, 10, 0}},
		{mgl32.Vec3{0, 0, 90}, mgl32.Vec3{0, 0, 91}, mgl32.Vec3{0, 0, 91}},
	} {
		assert.Equal(t, test.result, continuousEuler(test.prev, test.cur))
	}
}
