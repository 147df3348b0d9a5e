package vinput

import "math"

// normalizeEpsilon is the length below which a vector is treated as zero.
const normalizeEpsilon = 1e-5

type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vector) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalized returns v scaled to unit length. Vectors shorter than
// normalizeEpsilon become the zero vector.
func (v Vector) Normalized() Vector {
	l := v.Len()
	if l < normalizeEpsilon {
		return Vector{}
	}
	return Vector{X: v.X / l, Y: v.Y / l}
}

// ClampMagnitude shortens v to max if it is longer, keeping its direction.
// A NaN component counts as 0 and an infinite one as ±1.
func (v Vector) ClampMagnitude(max float64) Vector {
	v = Vector{X: finite(v.X), Y: finite(v.Y)}
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return Vector{X: v.X / l * max, Y: v.Y / l * max}
}

func finite(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return 0
	case math.IsInf(x, 0):
		return math.Copysign(1, x)
	}
	return x
}
