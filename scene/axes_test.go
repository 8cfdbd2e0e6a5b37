package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAxis(t *testing.T) {
	for _, tc := range []struct {
		in  string
		out mgl32.Vec3
	}{
		{"X", mgl32.Vec3{1, 0, 0}},
		{"-y", mgl32.Vec3{0, -1, 0}},
		{" Z ", mgl32.Vec3{0, 0, 1}},
	} {
		v, err := ParseAxis(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.out, v, tc.in)
	}
	_, err := ParseAxis("W")
	assert.Error(t, err)
}

func TestAxesConversion(t *testing.T) {
	m, err := Axes{Forward: "-Z", Up: "Y"}.ConversionTo(Axes{Forward: "X", Up: "Z"})
	require.NoError(t, err)

	assert.True(t, m.Mul3x1(mgl32.Vec3{0, 0, -1}).ApproxEqual(mgl32.Vec3{1, 0, 0}))
	assert.True(t, m.Mul3x1(mgl32.Vec3{0, 1, 0}).ApproxEqual(mgl32.Vec3{0, 0, 1}))
	assert.InDelta(t, 1, m.Det(), 1e-6)

	same, err := DefaultAxes.ConversionTo(DefaultAxes)
	require.NoError(t, err)
	assert.True(t, same.ApproxEqual(mgl32.Ident3()))

	_, err = Axes{Forward: "Y", Up: "-Y"}.Basis()
	assert.Error(t, err)
}
