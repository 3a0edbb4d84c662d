package images

import "github.com/chewxy/math32"

// PixelBox is a bounding box in integer pixel coordinates of a frame.
//
// The box is always fully inside the frame it was mapped onto:
// Left+Width <= frameWidth, Top+Height <= frameHeight, Width >= 0,
// Height >= 0.
type PixelBox struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// MapToFrame converts a model-space box into pixel coordinates of a
// frameWidth x frameHeight frame, clipping to the frame bounds.
//
// The corner is clamped to [0, frame-1] before the extent is clamped to the
// remaining span, so the result never extends past the frame edge. A box
// that lies entirely outside [0, 1] collapses to a zero-size box pinned at
// the nearest edge; it is never dropped here, the caller decides what to do
// with empty boxes.
func MapToFrame(r Rect, frameWidth, frameHeight int) PixelBox {
	fw := float32(frameWidth)
	fh := float32(frameHeight)

	left := int(math32.Min(math32.Max(r.X1*fw, 0), fw-1))
	top := int(math32.Min(math32.Max(r.Y1*fh, 0), fh-1))

	// Width and height clamp against the span left over after the corner
	// was truncated, keeping Left+Width inside the frame.
	width := int(math32.Min(math32.Max((r.X2-r.X1)*fw, 0), float32(frameWidth-left)))
	height := int(math32.Min(math32.Max((r.Y2-r.Y1)*fh, 0), float32(frameHeight-top)))

	return PixelBox{Left: left, Top: top, Width: width, Height: height}
}
