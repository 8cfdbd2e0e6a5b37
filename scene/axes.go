package scene

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Axes is axis convention of scene, e.g. forward "-Y" up "Z" for Blender
type Axes struct {
	Forward string `yaml:"forward"`
	Up      string `yaml:"up"`
}

var DefaultAxes = Axes{Forward: "-Z", Up: "Y"}

func ParseAxis(s string) (mgl32.Vec3, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	sign := float32(1)
	if strings.HasPrefix(s, "-") {
		sign = -1
		s = s[1:]
	}
	switch s {
	case "X":
		return mgl32.Vec3{sign, 0, 0}, nil
	case "Y":
		return mgl32.Vec3{0, sign, 0}, nil
	case "Z":
		return mgl32.Vec3{0, 0, sign}, nil
	}
	return mgl32.Vec3{}, errors.Errorf("Invalid axis %q", s)
}

// Basis returns matrix with columns forward, up, right of convention
func (a Axes) Basis() (mgl32.Mat3, error) {
	forward, err := ParseAxis(a.Forward)
	if err != nil {
		return mgl32.Mat3{}, err
	}
	up, err := ParseAxis(a.Up)
	if err != nil {
		return mgl32.Mat3{}, err
	}
	if forward.Dot(up) != 0 {
		return mgl32.Mat3{}, errors.Errorf("Forward %q and up %q axes are not perpendicular", a.Forward, a.Up)
	}
	return mgl32.Mat3FromCols(forward, up, forward.Cross(up)), nil
}

// ConversionTo returns rotation bringing vectors of a into convention to
func (a Axes) ConversionTo(to Axes) (mgl32.Mat3, error) {
	src, err := a.Basis()
	if err != nil {
		return mgl32.Mat3{}, errors.Wrapf(err, "source axes")
	}
	dst, err := to.Basis()
	if err != nil {
		return mgl32.Mat3{}, errors.Wrapf(err, "target axes")
	}
	return dst.Mul3(src.Transpose()), nil
}
