package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-4

func TestVec3Ops(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	assert.True(t, a.Add(b).Compare(NewVec3(5, 7, 9), tolerance))
	assert.True(t, b.Sub(a).Compare(NewVec3(3, 3, 3), tolerance))
	assert.True(t, a.MulScalar(2).Compare(NewVec3(2, 4, 6), tolerance))
	assert.InDelta(t, 32.0, a.Dot(b), tolerance)
	assert.True(t, NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)).Compare(NewVec3(0, 0, 1), tolerance))
	assert.InDelta(t, 5.0, NewVec3(3, 4, 0).Length(), tolerance)
}

func TestVec3NormalizedZeroSafe(t *testing.T) {
	z := NewVec3Zero()
	assert.True(t, z.Normalized().Compare(z, tolerance))
}

func TestVec2Distance(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec2
		want float32
	}{
		{"same point", NewVec2(3, 4), NewVec2(3, 4), 0},
		{"axis aligned", NewVec2(0, 0), NewVec2(10, 0), 10},
		{"diagonal", NewVec2(0, 0), NewVec2(3, 4), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.a.Distance(tt.b), tolerance)
		})
	}
}

func TestQuatRotateVec3(t *testing.T) {
	// 90 degrees about Y rotates -Z onto -X.
	q := NewQuatFromAxisAngle(NewVec3Up(), K_HALF_PI, true)
	got := q.RotateVec3(NewVec3Forward())
	assert.True(t, got.Compare(NewVec3(-1, 0, 0), tolerance), "got %+v", got)

	// Identity leaves vectors alone.
	id := NewQuatIdentity()
	v := NewVec3(1, 2, 3)
	assert.True(t, id.RotateVec3(v).Compare(v, tolerance))
}

func TestQuatMulComposition(t *testing.T) {
	// Two 45 degree yaws compose into a 90 degree yaw.
	half := NewQuatFromAxisAngle(NewVec3Up(), K_HALF_PI/2, true)
	full := NewQuatFromAxisAngle(NewVec3Up(), K_HALF_PI, true)
	composed := half.Mul(half)
	got := composed.RotateVec3(NewVec3Forward())
	want := full.RotateVec3(NewVec3Forward())
	assert.True(t, got.Compare(want, tolerance))
}

func TestQuatInverseUndoesRotation(t *testing.T) {
	q := NewQuatFromAxisAngle(NewVec3(1, 1, 0).Normalized(), 1.1, true)
	v := NewVec3(0.3, -2, 5)
	back := q.Inverse().RotateVec3(q.RotateVec3(v))
	assert.True(t, back.Compare(v, tolerance))
}

func TestQuatAngleTo(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Quaternion
		want  float32
	}{
		{"identical", NewQuatIdentity(), NewQuatIdentity(), 0},
		{"quarter turn", NewQuatIdentity(), NewQuatFromAxisAngle(NewVec3Up(), K_HALF_PI, true), K_HALF_PI},
		{"half turn", NewQuatIdentity(), NewQuatFromAxisAngle(NewVec3Up(), K_PI, true), K_PI},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.a.AngleTo(tt.b), tolerance)
		})
	}
}

func TestQuatAngleToDoubleCover(t *testing.T) {
	// q and -q are the same rotation; the angle between them is zero.
	q := NewQuatFromAxisAngle(NewVec3Up(), 0.7, true)
	neg := Quaternion{-q.X, -q.Y, -q.Z, -q.W}
	assert.InDelta(t, 0.0, q.AngleTo(neg), tolerance)
}

func TestQuatSlerp(t *testing.T) {
	from := NewQuatIdentity()
	to := NewQuatFromAxisAngle(NewVec3Up(), K_HALF_PI, true)

	// Endpoints.
	assert.InDelta(t, 0.0, from.Slerp(to, 0).AngleTo(from), tolerance)
	assert.InDelta(t, 0.0, from.Slerp(to, 1).AngleTo(to), tolerance)

	// Midpoint is a 45 degree yaw.
	mid := from.Slerp(to, 0.5)
	want := NewQuatFromAxisAngle(NewVec3Up(), K_HALF_PI/2, true)
	assert.InDelta(t, 0.0, mid.AngleTo(want), tolerance)
}

func TestYawOrientationStripsPitch(t *testing.T) {
	yaw := NewQuatFromAxisAngle(NewVec3Up(), 0.8, true)
	pitch := NewQuatFromAxisAngle(NewVec3(1, 0, 0), 0.5, true)
	combined := yaw.Mul(pitch)

	got := combined.YawOrientation()
	assert.InDelta(t, 0.0, got.AngleTo(yaw), tolerance)

	// The result must have a level forward vector.
	fwd := got.RotateVec3(NewVec3Forward())
	assert.InDelta(t, 0.0, fwd.Y, tolerance)
}

func TestYawOrientationDegenerate(t *testing.T) {
	// Looking straight up or down has no horizontal facing; identity is
	// returned. The rotated forward vector is not exactly vertical (its
	// horizontal part is float noise), so in particular the result must
	// never come out as a half turn from atan2 on that noise.
	tests := []struct {
		name  string
		angle float32
	}{
		{"straight up", K_HALF_PI},
		{"straight down", -K_HALF_PI},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQuatFromAxisAngle(NewVec3(1, 0, 0), tt.angle, true)
			got := q.YawOrientation()
			assert.True(t, got.Compare(NewQuatIdentity(), tolerance))
			assert.InDelta(t, 0.0, got.AngleTo(NewQuatIdentity()), tolerance)
		})
	}
}

func TestPitchAngle(t *testing.T) {
	tests := []struct {
		name string
		q    Quaternion
		want float32
	}{
		{"level", NewQuatIdentity(), 0},
		{"raised 30 degrees", NewQuatFromAxisAngle(NewVec3(1, 0, 0), DegToRad(30), true), DegToRad(30)},
		{"lowered 45 degrees", NewQuatFromAxisAngle(NewVec3(1, 0, 0), DegToRad(-45), true), DegToRad(-45)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.q.PitchAngle(), tolerance)
		})
	}
}

func TestMat4TranslationTransform(t *testing.T) {
	mt := NewMat4Translation(NewVec3(1, 2, 3))
	got := NewVec3(10, 0, -5).Transform(mt)
	assert.True(t, got.Compare(NewVec3(11, 2, -2), tolerance))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(0), Clamp(float32(-1), float32(0), float32(1)))
	assert.Equal(t, float32(1), Clamp(float32(5), float32(0), float32(1)))
	assert.Equal(t, float32(0.25), Clamp(float32(0.25), float32(0), float32(1)))
	assert.Equal(t, 7, Clamp(7, 0, 10))
}
