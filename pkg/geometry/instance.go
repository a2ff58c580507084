package geometry

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Translate places an object at an offset without rebuilding its geometry
type Translate struct {
	Object Hittable
	Offset core.Vec3
	bbox   core.AABB
}

// NewTranslate wraps object, moving it by offset
func NewTranslate(object Hittable, offset core.Vec3) *Translate {
	box := object.BoundingBox()
	return &Translate{
		Object: object,
		Offset: offset,
		bbox: core.NewAABB(
			core.NewInterval(box.X.Min+offset.X, box.X.Max+offset.X),
			core.NewInterval(box.Y.Min+offset.Y, box.Y.Max+offset.Y),
			core.NewInterval(box.Z.Min+offset.Z, box.Z.Max+offset.Z),
		),
	}
}

// Hit moves the ray into object space, tests it, and moves the hit point back
func (tr *Translate) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	local := core.NewRayAtTime(ray.Origin.Subtract(tr.Offset), ray.Direction, ray.Time)

	hit, ok := tr.Object.Hit(local, rayT)
	if !ok {
		return nil, false
	}

	hit.Point = hit.Point.Add(tr.Offset)
	return hit, true
}

// BoundingBox returns the object's box shifted by the offset
func (tr *Translate) BoundingBox() core.AABB {
	return tr.bbox
}

// RotateY rotates an object about the world Y axis
type RotateY struct {
	Object   Hittable
	sinTheta float64
	cosTheta float64
	bbox     core.AABB
}

// NewRotateY wraps object, rotating it by angle degrees counter-clockwise
// when viewed from +Y
func NewRotateY(object Hittable, angle float64) *RotateY {
	radians := core.DegreesToRadians(angle)
	r := &RotateY{
		Object:   object,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	// Bound the eight rotated corners of the object's box
	box := object.BoundingBox()
	lo := core.NewVec3(core.Infinity, core.Infinity, core.Infinity)
	hi := lo.Negate()
	for _, x := range []float64{box.X.Min, box.X.Max} {
		for _, y := range []float64{box.Y.Min, box.Y.Max} {
			for _, z := range []float64{box.Z.Min, box.Z.Max} {
				p := r.toWorld(core.NewVec3(x, y, z))
				lo = core.NewVec3(min(lo.X, p.X), min(lo.Y, p.Y), min(lo.Z, p.Z))
				hi = core.NewVec3(max(hi.X, p.X), max(hi.Y, p.Y), max(hi.Z, p.Z))
			}
		}
	}
	r.bbox = core.NewAABBFromPoints(lo, hi)

	return r
}

func (r *RotateY) toObject(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X-r.sinTheta*v.Z,
		v.Y,
		r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X+r.sinTheta*v.Z,
		v.Y,
		-r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// Hit rotates the ray into object space, tests it, and rotates the hit back
func (r *RotateY) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	local := core.NewRayAtTime(r.toObject(ray.Origin), r.toObject(ray.Direction), ray.Time)

	hit, ok := r.Object.Hit(local, rayT)
	if !ok {
		return nil, false
	}

	// Rotation preserves the normal's orientation relative to the ray
	hit.Point = r.toWorld(hit.Point)
	hit.Normal = r.toWorld(hit.Normal)
	return hit, true
}

// BoundingBox returns the box around the rotated object
func (r *RotateY) BoundingBox() core.AABB {
	return r.bbox
}
