// Package yolov8 - decode fused-score detection tensors.
package yolov8

import (
	"github.com/nvr-ai/go-detect/images"
	"github.com/nvr-ai/go-detect/models/postprocess"
)

// locations is the number of box values leading each row.
const locations = 4

// Decoder decodes the fused-score encoding: each row holds the four box
// corners followed by one score per class, with no separate objectness
// scalar. YOLOv8-family heads emit this layout.
type Decoder struct{}

// NewDecoder creates a fused-score decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode turns a flat output buffer into candidates.
//
// A row's score is its maximum class score and the class is the index of
// that maximum; the corners pass through unchanged. Rows below
// confThreshold are dropped. The buffer length must be an exact multiple
// of numClasses+4; a malformed buffer decodes to nil.
func (d *Decoder) Decode(output []float32, numClasses int, confThreshold float32) []postprocess.Candidate {
	rowSize := numClasses + locations
	if rowSize <= locations || len(output)%rowSize != 0 {
		return nil // Malformed output
	}

	numRows := len(output) / rowSize
	candidates := make([]postprocess.Candidate, 0, numRows)

	for i := 0; i < numRows; i++ {
		row := output[i*rowSize : (i+1)*rowSize]

		classID := 0
		maxScore := float32(0)
		for j := locations; j < rowSize; j++ {
			if row[j] > maxScore {
				maxScore = row[j]
				classID = j - locations
			}
		}

		if maxScore < confThreshold {
			continue
		}

		candidates = append(candidates, postprocess.Candidate{
			Box: images.Rect{
				X1: row[0],
				Y1: row[1],
				X2: row[2],
				Y2: row[3],
			},
			Score: maxScore,
			Class: classID,
		})
	}

	return candidates
}
