package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
)

// MockShape for testing
type MockShape struct {
	boundingBox core.AABB
	hasBox      bool
	hitFn       func(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool)
}

func (m *MockShape) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return m.hitFn(ray, tMin, tMax)
}

func (m *MockShape) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return m.boundingBox, m.hasBox
}

func neverHit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return nil, false
}

func randomSpheres(sampler core.Sampler, n int) []core.Hittable {
	objects := make([]core.Hittable, n)
	for i := range objects {
		center := sampler.Get3D().Multiply(20).Subtract(core.NewVec3(10, 10, 10))
		radius := 0.1 + sampler.Get1D()
		if i%4 == 0 {
			end := center.Add(sampler.Get3D())
			objects[i] = NewMovingSphere(center, end, 0, 1, radius, testMaterial)
		} else {
			objects[i] = NewSphere(center, radius, testMaterial)
		}
	}
	return objects
}

func TestBVH_EmptyAndSingle(t *testing.T) {
	sampler := core.NewSeededSampler(1)

	empty := NewBVH(nil, 0, 1, sampler)
	if _, ok := empty.(Empty); !ok {
		t.Fatalf("Expected Empty for no objects, got %T", empty)
	}
	if _, ok := empty.BoundingBox(0, 1); ok {
		t.Error("Expected no bounding box for empty BVH")
	}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))
	if _, ok := empty.Hit(ray, 0.001, math.Inf(1)); ok {
		t.Error("Expected no hit for empty BVH")
	}

	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial)
	single := NewBVH([]core.Hittable{sphere}, 0, 1, sampler)
	if single != core.Hittable(sphere) {
		t.Errorf("Expected single object to be returned unwrapped, got %T", single)
	}
}

func TestBVH_DoesNotModifyInput(t *testing.T) {
	objects := randomSpheres(core.NewSeededSampler(2), 20)
	original := make([]core.Hittable, len(objects))
	copy(original, objects)

	NewBVH(objects, 0, 1, core.NewSeededSampler(3))

	for i := range objects {
		if objects[i] != original[i] {
			t.Fatalf("Input slice reordered at index %d", i)
		}
	}
}

func TestBVH_BoundsIndependentOfSplitAxis(t *testing.T) {
	objects := randomSpheres(core.NewSeededSampler(4), 57)
	expected, _ := NewHittableList(objects...).BoundingBox(0, 1)

	for seed := int64(0); seed < 10; seed++ {
		root := NewBVH(objects, 0, 1, core.NewSeededSampler(seed))
		box, ok := root.BoundingBox(0, 1)
		if !ok {
			t.Fatalf("seed %d: root has no bounding box", seed)
		}
		if box != expected {
			t.Errorf("seed %d: expected root box %v, got %v", seed, expected, box)
		}
	}
}

func TestBVH_MatchesLinearScan(t *testing.T) {
	sampler := core.NewSeededSampler(5)
	objects := randomSpheres(sampler, 200)
	list := NewHittableList(objects...)
	root := NewBVH(objects, 0, 1, sampler)

	hits := 0
	for i := 0; i < 3000; i++ {
		origin := sampler.Get3D().Multiply(30).Subtract(core.NewVec3(15, 15, 15))
		direction := sampler.Get3D().Subtract(core.NewVec3(0.5, 0.5, 0.5))
		ray := core.NewRayAtTime(origin, direction, sampler.Get1D())

		listHit, listOK := list.Hit(ray, 0.001, math.Inf(1))
		bvhHit, bvhOK := root.Hit(ray, 0.001, math.Inf(1))
		if listOK != bvhOK {
			t.Fatalf("ray %d: linear hit %t, BVH hit %t", i, listOK, bvhOK)
		}
		if !listOK {
			continue
		}
		hits++
		if math.Abs(listHit.T-bvhHit.T) > 1e-9 {
			t.Fatalf("ray %d: linear t=%f, BVH t=%f", i, listHit.T, bvhHit.T)
		}
		if listHit.Point.Subtract(bvhHit.Point).Length() > 1e-9 {
			t.Fatalf("ray %d: hit points differ: %v vs %v", i, listHit.Point, bvhHit.Point)
		}
	}

	if hits == 0 {
		t.Error("No rays hit anything; test is not exercising the BVH")
	}
}

func TestBVH_ClosestHitAcrossChildren(t *testing.T) {
	makeHitFn := func(tValue float64) func(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
		return func(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
			if tValue > tMin && tValue < tMax {
				return &core.HitRecord{T: tValue}, true
			}
			return nil, false
		}
	}

	// Each mock reports a hit inside the slab interval of its own box
	shapes := []core.Hittable{
		&MockShape{boundingBox: core.NewAABB(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1)), hasBox: true, hitFn: makeHitFn(1.5)},
		&MockShape{boundingBox: core.NewAABB(core.NewVec3(2, 0, 0), core.NewVec3(3, 1, 1)), hasBox: true, hitFn: makeHitFn(3.5)},
		&MockShape{boundingBox: core.NewAABB(core.NewVec3(4, 0, 0), core.NewVec3(5, 1, 1)), hasBox: true, hitFn: makeHitFn(5.5)},
	}
	reversed := []core.Hittable{shapes[2], shapes[1], shapes[0]}

	ray := core.NewRay(core.NewVec3(-1, 0.5, 0.5), core.NewVec3(1, 0, 0))
	for order, objects := range [][]core.Hittable{shapes, reversed} {
		for seed := int64(0); seed < 10; seed++ {
			root := NewBVH(objects, 0, 1, core.NewSeededSampler(seed))
			hit, isHit := root.Hit(ray, 0.001, 1000.0)
			if !isHit {
				t.Fatalf("order %d seed %d: expected hit", order, seed)
			}
			if math.Abs(hit.T-1.5) > 1e-9 {
				t.Errorf("order %d seed %d: expected closest hit at t=1.5, got t=%f", order, seed, hit.T)
			}
		}
	}

	// A far child is pruned by its box once a nearer hit narrows tMax
	root := NewBVH(shapes, 0, 1, core.NewSeededSampler(3))
	if _, isHit := root.Hit(ray, 0.001, 2.5); !isHit {
		t.Error("Expected the near child to be hit below tMax")
	}
	if _, isHit := root.Hit(ray, 4.5, 5.0); isHit {
		t.Error("Expected no hit where no mock reports one")
	}
}

func TestBVH_BoxlessChildren(t *testing.T) {
	boxless := &MockShape{hitFn: neverHit}
	sphere := NewSphere(core.NewVec3(0, 0, -3), 1, testMaterial)

	root := NewBVH([]core.Hittable{boxless, sphere}, 0, 1, core.NewSeededSampler(1))
	box, ok := root.BoundingBox(0, 1)
	if !ok {
		t.Fatal("Expected node box from the bounded child")
	}
	sphereBox, _ := sphere.BoundingBox(0, 1)
	if box != sphereBox {
		t.Errorf("Expected boxless child to be ignored, got %v", box)
	}

	// A node whose children are all boxless is never hit
	node := NewBVHNode(&MockShape{hitFn: neverHit}, Empty{}, 0, 1)
	if _, ok := node.BoundingBox(0, 1); ok {
		t.Error("Expected no box for node with boxless children")
	}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if _, ok := node.Hit(ray, 0.001, math.Inf(1)); ok {
		t.Error("Expected degenerate node to never hit")
	}
}

func TestBVH_Stats(t *testing.T) {
	objects := randomSpheres(core.NewSeededSampler(8), 20)
	stats := CollectBVHStats(NewBVH(objects, 0, 1, core.NewSeededSampler(9)))

	if stats.Leaves != 20 {
		t.Errorf("Expected 20 leaves, got %d", stats.Leaves)
	}
	if stats.TotalNodes != 19 {
		t.Errorf("Expected 19 internal nodes for a binary tree over 20 leaves, got %d", stats.TotalNodes)
	}
	// Median split keeps the tree balanced: ceil(log2(20)) = 5
	if stats.MaxDepth != 5 {
		t.Errorf("Expected max depth 5, got %d", stats.MaxDepth)
	}
}
