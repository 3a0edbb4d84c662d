// Package postprocess - Candidate filtering and Non-Maximum Suppression.
package postprocess

import "github.com/nvr-ai/go-detect/images"

// Candidate is a single decoded detection, before suppression.
type Candidate struct {
	// The bounding box in model space.
	Box images.Rect
	// The confidence score in [0, 1].
	Score float32
	// The predicted class index.
	Class int
}
