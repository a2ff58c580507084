package geometry

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// World is a flat list of hittables tested one after another.
// It is the brute-force reference the BVH must agree with.
type World struct {
	objects []Hittable
	bbox    core.AABB
}

// NewWorld creates a world holding the given objects
func NewWorld(objects ...Hittable) *World {
	w := &World{bbox: core.EmptyAABB}
	for _, obj := range objects {
		w.Add(obj)
	}
	return w
}

// Add appends an object and grows the bounding box to cover it
func (w *World) Add(obj Hittable) {
	w.objects = append(w.objects, obj)
	w.bbox = w.bbox.Union(obj.BoundingBox())
}

// Clear removes every object
func (w *World) Clear() {
	w.objects = nil
	w.bbox = core.EmptyAABB
}

// Len returns the number of objects
func (w *World) Len() int {
	return len(w.objects)
}

// Objects returns the objects in insertion order. The slice is shared; don't modify it.
func (w *World) Objects() []Hittable {
	return w.objects
}

// Hit returns the nearest hit among all objects
func (w *World) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	closestSoFar := rayT.Max

	for _, obj := range w.objects {
		if hit, ok := obj.Hit(ray, core.NewInterval(rayT.Min, closestSoFar)); ok {
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, closest != nil
}

// BoundingBox returns the union of every object's box, or EmptyAABB when empty
func (w *World) BoundingBox() core.AABB {
	return w.bbox
}
