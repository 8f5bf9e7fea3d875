package systems

import (
	"sort"

	"github.com/spatialkit/reticle/input/core"
	"github.com/spatialkit/reticle/input/math"
)

// Ray is an origin plus a normalized direction in world space.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// PointAt returns the point along the ray at the given distance.
func (r Ray) PointAt(distance float32) math.Vec3 {
	return r.Origin.Add(r.Direction.MulScalar(distance))
}

// Hit is a single ray intersection result.
type Hit struct {
	Object   core.Object
	Distance float32
}

// Camera supplies the viewpoint used for gaze rays and screen-point
// picking. Implemented by the host application.
type Camera interface {
	Position() math.Vec3
	Orientation() math.Quaternion
	// ScreenPointRay converts a normalized device coordinate into a
	// world-space picking ray through that point on the near plane.
	ScreenPointRay(ndc math.Vec2) Ray
}

// Raycaster resolves a ray against candidate objects. The recursive flag
// asks the implementation to descend into object children where the
// backing scene representation has any.
type Raycaster interface {
	IntersectRay(ray Ray, candidates []core.Object, recursive bool) []Hit
	IntersectScreenPoint(camera Camera, ndc math.Vec2, candidates []core.Object, recursive bool) []Hit
}

// Bounded is a candidate object carrying a bounding sphere, the shape the
// default raycaster tests against.
type Bounded interface {
	core.Object
	BoundsCenter() math.Vec3
	BoundsRadius() float32
}

// BoundsRaycaster is the default Raycaster. It tests rays against the
// bounding spheres of Bounded candidates and silently skips candidates
// that do not implement Bounded. Spheres have no children, so the
// recursive flag is a no-op here.
type BoundsRaycaster struct{}

func NewBoundsRaycaster() *BoundsRaycaster {
	return &BoundsRaycaster{}
}

func (br *BoundsRaycaster) IntersectRay(ray Ray, candidates []core.Object, recursive bool) []Hit {
	var hits []Hit
	for _, candidate := range candidates {
		bounded, ok := candidate.(Bounded)
		if !ok {
			continue
		}
		distance, ok := raySphere(ray, bounded.BoundsCenter(), bounded.BoundsRadius())
		if !ok {
			continue
		}
		hits = append(hits, Hit{Object: candidate, Distance: distance})
	}
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

func (br *BoundsRaycaster) IntersectScreenPoint(camera Camera, ndc math.Vec2, candidates []core.Object, recursive bool) []Hit {
	return br.IntersectRay(camera.ScreenPointRay(ndc), candidates, recursive)
}

// raySphere computes the distance to the nearest intersection point at or
// in front of the ray origin, or false when the ray misses the sphere
// entirely or the sphere lies fully behind it.
func raySphere(ray Ray, center math.Vec3, radius float32) (float32, bool) {
	oc := ray.Origin.Sub(center)
	b := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - radius*radius
	discriminant := b*b - c
	if discriminant < 0 {
		return 0, false
	}
	root := math.Sqrt(discriminant)
	t := -b - root
	if t < 0 {
		t = -b + root
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// PerspectiveCamera is a minimal Camera for hosts without their own
// camera abstraction. FOVRadians is the vertical field of view.
type PerspectiveCamera struct {
	Pos         math.Vec3
	Orient      math.Quaternion
	FOVRadians  float32
	AspectRatio float32
}

func NewPerspectiveCamera(fovRadians, aspectRatio float32) *PerspectiveCamera {
	return &PerspectiveCamera{
		Orient:      math.NewQuatIdentity(),
		FOVRadians:  fovRadians,
		AspectRatio: aspectRatio,
	}
}

func (c *PerspectiveCamera) Position() math.Vec3 {
	return c.Pos
}

func (c *PerspectiveCamera) Orientation() math.Quaternion {
	return c.Orient
}

func (c *PerspectiveCamera) ScreenPointRay(ndc math.Vec2) Ray {
	tanHalfFov := math.Tan(c.FOVRadians * 0.5)
	local := math.NewVec3(
		ndc.X*tanHalfFov*c.AspectRatio,
		ndc.Y*tanHalfFov,
		-1.0,
	)
	return Ray{
		Origin:    c.Pos,
		Direction: c.Orient.RotateVec3(local).Normalized(),
	}
}
