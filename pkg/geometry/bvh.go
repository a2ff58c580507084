package geometry

import (
	"fmt"
	"sort"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// BVHNode is an interior node of the bounding volume hierarchy. Children
// are either primitives or further nodes; a node built over a single
// object holds that object as both children.
type BVHNode struct {
	Left  Hittable
	Right Hittable
	bbox  core.AABB
}

// NewBVHNode builds a hierarchy over objects. The caller's slice is not
// reordered. Building over zero objects is a programming error; use NewBVH
// when the object set may be empty.
func NewBVHNode(objects []Hittable) *BVHNode {
	if len(objects) == 0 {
		panic("geometry: BVH node needs at least one object")
	}

	// Build sorts in place, so work on a private copy
	arena := make([]Hittable, len(objects))
	copy(arena, objects)

	return buildBVHNode(arena)
}

// buildBVHNode builds a node over objects, which is a sub-range of the
// build arena and may be reordered
func buildBVHNode(objects []Hittable) *BVHNode {
	bbox := core.EmptyAABB
	for _, obj := range objects {
		bbox = bbox.Union(obj.BoundingBox())
	}
	axis := bbox.LongestAxis()

	node := &BVHNode{bbox: bbox}

	switch len(objects) {
	case 1:
		node.Left = objects[0]
		node.Right = objects[0]
	case 2:
		node.Left = objects[0]
		node.Right = objects[1]
	default:
		sortByAxisMin(objects, axis)
		mid := len(objects) / 2
		node.Left = buildBVHNode(objects[:mid])
		node.Right = buildBVHNode(objects[mid:])
	}

	return node
}

// sortByAxisMin orders objects by the low edge of their boxes on axis.
// The sort is stable so builds are reproducible for equal keys.
func sortByAxisMin(objects []Hittable, axis int) {
	keys := make([]float64, len(objects))
	for i, obj := range objects {
		keys[i] = obj.BoundingBox().AxisInterval(axis).Min
	}
	sort.Stable(byKey{objects: objects, keys: keys})
}

type byKey struct {
	objects []Hittable
	keys    []float64
}

func (b byKey) Len() int           { return len(b.objects) }
func (b byKey) Less(i, j int) bool { return b.keys[i] < b.keys[j] }
func (b byKey) Swap(i, j int) {
	b.objects[i], b.objects[j] = b.objects[j], b.objects[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}

// Hit tests both children against the same interval and keeps the nearer
// hit. Sibling boxes can overlap, so narrowing the interval after the left
// child would require visiting children front to back.
func (n *BVHNode) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	if !n.bbox.Hit(ray, rayT) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, rayT)
	rightHit, hitRight := n.Right.Hit(ray, rayT)

	switch {
	case hitLeft && hitRight:
		if rightHit.T < leftHit.T {
			return rightHit, true
		}
		return leftHit, true
	case hitLeft:
		return leftHit, true
	case hitRight:
		return rightHit, true
	}
	return nil, false
}

// BoundingBox returns the box enclosing both children
func (n *BVHNode) BoundingBox() core.AABB {
	return n.bbox
}

// BVH is the scene-level acceleration structure. Unlike BVHNode it
// accepts an empty object set, which never reports a hit.
type BVH struct {
	Root *BVHNode // nil when built over no objects
}

// NewBVH constructs a BVH from a slice of objects
func NewBVH(objects []Hittable) *BVH {
	if len(objects) == 0 {
		return &BVH{}
	}
	return &BVH{Root: NewBVHNode(objects)}
}

// NewBVHFromWorld builds a BVH over the objects of w
func NewBVHFromWorld(w *World) *BVH {
	return NewBVH(w.Objects())
}

// Hit tests if a ray intersects any object in the BVH
func (bvh *BVH) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	return bvh.Root.Hit(ray, rayT)
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.EmptyAABB
	}
	return bvh.Root.BoundingBox()
}

// BVHStats describes the shape of a built hierarchy
type BVHStats struct {
	Nodes    int     // interior nodes
	Leaves   int     // primitives reachable from the root; an aliased pair counts once
	MaxDepth int     // deepest interior node, root at depth 1
	AvgDepth float64 // mean depth of leaves
}

// String formats the stats for log output
func (s BVHStats) String() string {
	return fmt.Sprintf("%d nodes, %d leaves, max depth %d, avg leaf depth %.1f",
		s.Nodes, s.Leaves, s.MaxDepth, s.AvgDepth)
}

// Stats walks the hierarchy and returns its statistics
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{}
	if bvh.Root == nil {
		return stats
	}

	var depthSum int
	var collect func(node *BVHNode, depth int)
	visitChild := func(child Hittable, depth int) {
		if inner, ok := child.(*BVHNode); ok {
			collect(inner, depth)
			return
		}
		stats.Leaves++
		depthSum += depth
	}
	collect = func(node *BVHNode, depth int) {
		stats.Nodes++
		stats.MaxDepth = max(stats.MaxDepth, depth)
		visitChild(node.Left, depth+1)
		if node.Right != node.Left {
			visitChild(node.Right, depth+1)
		}
	}
	collect(bvh.Root, 1)

	if stats.Leaves > 0 {
		stats.AvgDepth = float64(depthSum) / float64(stats.Leaves)
	}
	return stats
}
