// Package images - Geometry primitives shared by the detection pipeline.
package images

// Rect is a lightweight bounding box in model space.
//
// Coordinates are float32 corners as emitted by a detection network after
// decoding: (X1, Y1) is the top-left corner and (X2, Y2) the bottom-right,
// with X1 <= X2 and Y1 <= Y2. For networks that emit normalized output the
// values lie in [0, 1] relative to the network input resolution; mapping
// onto an actual frame happens separately (see MapToFrame).
type Rect struct {
	X1, Y1, X2, Y2 float32
}

// Area returns the area of r in model-space units.
func (r Rect) Area() float32 {
	return (r.X2 - r.X1) * (r.Y2 - r.Y1)
}

// CalculateIoU computes the Intersection over Union of two boxes.
//
// IoU is the standard duplicate-detection overlap metric:
//
//	IoU = Area of Intersection / Area of Union
//
// A value of 1.0 means the boxes are identical, 0.0 means they do not
// overlap at all. Non-Maximum Suppression compares this value against its
// overlap threshold to decide whether two detections are duplicates of the
// same object.
//
// The intersection corners come from the max of the top-left corners and the
// min of the bottom-right corners; a non-positive intersection width or
// height means the boxes are disjoint. The union uses inclusion-exclusion
// (Area(A) + Area(B) - intersection) so the overlap is not double-counted.
//
// Degenerate inputs are defined to have zero overlap: if the intersection is
// empty, or both boxes have zero area (union == 0), the result is 0 rather
// than NaN, so zero-area boxes never suppress each other.
func CalculateIoU(r, o Rect) float32 {
	ix1 := max(r.X1, o.X1)
	iy1 := max(r.Y1, o.Y1)
	ix2 := min(r.X2, o.X2)
	iy2 := min(r.Y2, o.Y2)

	interW := ix2 - ix1
	interH := iy2 - iy1
	if interW <= 0 || interH <= 0 {
		return 0.0
	}
	interArea := interW * interH

	unionArea := r.Area() + o.Area() - interArea
	if unionArea == 0 {
		return 0.0
	}

	return interArea / unionArea
}
