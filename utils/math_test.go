package utils

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestQuatToEuler(t *testing.T) {
	for _, angles := range []mgl32.Vec3{
		{0, 0, 0},
		{0.3, 0, 0},
		{0, -0.7, 0},
		{0, 0, 1.2},
		{0.4, 0.2, -0.9},
	} {
		q := mgl32.AnglesToQuat(angles[2], angles[1], angles[0], mgl32.ZYX)
		e := QuatToEuler(q)
		assert.InDeltaSlice(t, []float32{angles[0], angles[1], angles[2]}, []float32{e[0], e[1], e[2]}, 1e-4, "%v", angles)
	}
}

func TestRadiansToDegree(t *testing.T) {
	d := RadiansToDegreeV3(mgl32.Vec3{3.14159265, 1.5707963, 0})
	assert.InDelta(t, 180, d[0], 1e-3)
	assert.InDelta(t, 90, d[1], 1e-3)
}
