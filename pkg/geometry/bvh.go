package geometry

import (
	"sort"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
)

// Empty is a placeholder hittable that is never hit and has no bounding box.
// The BVH builder returns it for an empty object list.
type Empty struct{}

// Hit never reports an intersection
func (Empty) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return nil, false
}

// BoundingBox reports that there is no box
func (Empty) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.AABB{}, false
}

// BVHNode represents an internal node in the Bounding Volume Hierarchy.
// Its box is computed once over the shutter window it was built for.
type BVHNode struct {
	Left   core.Hittable
	Right  core.Hittable
	box    core.AABB
	hasBox bool
}

// NewBVHNode wraps two children and caches the union of their boxes
func NewBVHNode(left, right core.Hittable, time0, time1 float64) *BVHNode {
	box, hasBox := surroundingBoxOf([]core.Hittable{left, right}, time0, time1)
	return &BVHNode{Left: left, Right: right, box: box, hasBox: hasBox}
}

// NewBVH builds a BVH over objects for the shutter window [time0, time1].
//
// Each level splits at the median after sorting by bounding-box minimum
// along a randomly chosen axis. An empty list yields Empty and a single
// object is returned as-is. The input slice is not modified.
func NewBVH(objects []core.Hittable, time0, time1 float64, sampler core.Sampler) core.Hittable {
	// Copy so concurrent builders over the same scene never share a backing array
	objectsCopy := make([]core.Hittable, len(objects))
	copy(objectsCopy, objects)
	return buildBVH(objectsCopy, time0, time1, sampler)
}

// buildBVH recursively splits objects, reordering the slice in place
func buildBVH(objects []core.Hittable, time0, time1 float64, sampler core.Sampler) core.Hittable {
	switch len(objects) {
	case 0:
		return Empty{}
	case 1:
		return objects[0]
	}

	axis := core.SampleAxis(sampler)
	sortByAxis(objects, axis, time0, time1)

	mid := len(objects) / 2
	left := buildBVH(objects[:mid], time0, time1, sampler)
	right := buildBVH(objects[mid:], time0, time1, sampler)
	return NewBVHNode(left, right, time0, time1)
}

// sortByAxis orders objects by their bounding box minimum on axis.
// Objects without a box sort with key 0.0.
func sortByAxis(objects []core.Hittable, axis int, time0, time1 float64) {
	type keyed struct {
		object core.Hittable
		key    float64
	}

	entries := make([]keyed, len(objects))
	for i, object := range objects {
		entries[i] = keyed{object: object}
		if box, ok := object.BoundingBox(time0, time1); ok {
			entries[i].key = box.Min.Axis(axis)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].key < entries[j].key
	})
	for i, entry := range entries {
		objects[i] = entry.object
	}
}

// Hit tests the cached box first, then the left child and the right child
// with the interval narrowed to the left hit
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	if !n.hasBox || !n.box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, tMin, tMax)
	if hitLeft {
		tMax = leftHit.T
	}

	if rightHit, hitRight := n.Right.Hit(ray, tMin, tMax); hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the box cached at construction
func (n *BVHNode) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return n.box, n.hasBox
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes int // Internal nodes
	Leaves     int // Primitives and aggregates below the internal nodes
	MaxDepth   int
}

// CollectBVHStats walks a tree built by NewBVH
func CollectBVHStats(root core.Hittable) BVHStats {
	stats := BVHStats{}
	collectStats(root, 0, &stats)
	return stats
}

func collectStats(node core.Hittable, depth int, stats *BVHStats) {
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	bvhNode, ok := node.(*BVHNode)
	if !ok {
		if _, empty := node.(Empty); !empty {
			stats.Leaves++
		}
		return
	}

	stats.TotalNodes++
	collectStats(bvhNode.Left, depth+1, stats)
	collectStats(bvhNode.Right, depth+1, stats)
}
