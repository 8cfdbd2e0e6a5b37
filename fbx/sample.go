package fbx

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/golemsfate/asset_pipeline/export"
	"github.com/golemsfate/asset_pipeline/scene"
)

type vecKey struct {
	frame float32
	v     mgl32.Vec3
}

type quatKey struct {
	frame float32
	q     mgl32.Quat
}

// track is keys of one bone split by transform component
type track struct {
	t, s []vecKey
	r    []quatKey
}

func newTrack(keys []scene.Key) *track {
	sorted := make([]scene.Key, len(keys))
	copy(sorted, keys)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Frame < sorted[j].Frame })

	t := &track{}
	for _, k := range sorted {
		if len(k.T) == 3 {
			t.t = append(t.t, vecKey{k.Frame, k.Translation()})
		}
		if len(k.R) == 4 {
			t.r = append(t.r, quatKey{k.Frame, k.Rotation()})
		}
		if len(k.S) == 3 {
			t.s = append(t.s, vecKey{k.Frame, k.Scale()})
		}
	}
	return t
}

func (t *track) frames() []float32 {
	result := make([]float32, 0, len(t.t)+len(t.r)+len(t.s))
	for _, k := range t.t {
		result = append(result, k.frame)
	}
	for _, k := range t.r {
		result = append(result, k.frame)
	}
	for _, k := range t.s {
		result = append(result, k.frame)
	}
	return result
}

func sampleVec(keys []vecKey, frame float32, def mgl32.Vec3) mgl32.Vec3 {
	if len(keys) == 0 {
		return def
	}
	if frame <= keys[0].frame {
		return keys[0].v
	}
	for i := 1; i < len(keys); i++ {
		if frame <= keys[i].frame {
			a, b := keys[i-1], keys[i]
			k := (frame - a.frame) / (b.frame - a.frame)
			return a.v.Add(b.v.Sub(a.v).Mul(k))
		}
	}
	return keys[len(keys)-1].v
}

func sampleQuat(keys []quatKey, frame float32, def mgl32.Quat) mgl32.Quat {
	if len(keys) == 0 {
		return def
	}
	if frame <= keys[0].frame {
		return keys[0].q
	}
	for i := 1; i < len(keys); i++ {
		if frame <= keys[i].frame {
			a, b := keys[i-1].q, keys[i].q
			k := (frame - keys[i-1].frame) / (keys[i].frame - keys[i-1].frame)
			// shortest path
			if a.Dot(b) < 0 {
				b = b.Scale(-1)
			}
			return mgl32.QuatSlerp(a, b, k).Normalize()
		}
	}
	return keys[len(keys)-1].q
}

type pose struct {
	T mgl32.Vec3
	R mgl32.Quat
	S mgl32.Vec3
}

func (t *track) sample(frame float32, rest scene.Transform) pose {
	return pose{
		T: sampleVec(t.t, frame, rest.Translation()),
		R: sampleQuat(t.r, frame, rest.Rotation()),
		S: sampleVec(t.s, frame, rest.Scale()),
	}
}

// sampleFrames returns frames written for action.
// Baked animation gets every step from start to end, otherwise only key frames.
func sampleFrames(action *scene.Action, s export.Settings) []float32 {
	start, end := action.FrameStart, action.FrameEnd
	if end < start {
		end = start
	}

	result := make([]float32, 0)
	if s.BakeAnimation {
		step := s.BakeAnimStep
		if step <= 0 {
			step = 1
		}
		for i := 0; ; i++ {
			frame := start + float32(i)*step
			if frame >= end {
				break
			}
			result = append(result, frame)
		}
		return append(result, end)
	}

	for _, keys := range action.Keys {
		for _, f := range newTrack(keys).frames() {
			if f >= start && f <= end {
				result = append(result, f)
			}
		}
	}
	if s.ForceStartEndKeying {
		result = append(result, start, end)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })

	unique := make([]float32, 0, len(result))
	for _, f := range result {
		if len(unique) == 0 || f != unique[len(unique)-1] {
			unique = append(unique, f)
		}
	}
	if len(unique) == 0 {
		unique = append(unique, start)
	}
	return unique
}

func frameToTime(frame, fps float32) int64 {
	return int64(math.Round(float64(frame) / float64(fps) * KTIME_SECOND))
}

// continuousEuler moves angles of cur by full turns to be closest to prev (degrees)
func continuousEuler(prev, cur mgl32.Vec3) mgl32.Vec3 {
	for i := range cur {
		for cur[i]-prev[i] > 180 {
			cur[i] -= 360
		}
		for cur[i]-prev[i] < -180 {
			cur[i] += 360
		}
	}
	return cur
}
