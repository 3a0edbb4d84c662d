// Package yolov5 - decode objectness detection tensors.
package yolov5

import (
	"github.com/nvr-ai/go-detect/images"
	"github.com/nvr-ai/go-detect/models/postprocess"
)

// locations is the number of box values leading each row.
const locations = 4

// Decoder decodes the objectness encoding: each row holds box center-x,
// center-y, width, height, an objectness scalar, then one score per class.
// YOLOv5-family heads emit this layout.
type Decoder struct{}

// NewDecoder creates an objectness decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode turns a flat output buffer into candidates.
//
// A row is gated on its objectness scalar first, then scored as
// objectness x classScore maximized over classes; the center/size box is
// converted to corners as center +/- size/2. Rows whose final score falls
// below confThreshold are dropped. The buffer length must be an exact
// multiple of numClasses+5; a malformed buffer decodes to nil.
func (d *Decoder) Decode(output []float32, numClasses int, confThreshold float32) []postprocess.Candidate {
	rowSize := numClasses + locations + 1
	if rowSize <= locations+1 || len(output)%rowSize != 0 {
		return nil // Malformed output
	}

	numRows := len(output) / rowSize
	candidates := make([]postprocess.Candidate, 0, numRows)

	for i := 0; i < numRows; i++ {
		row := output[i*rowSize : (i+1)*rowSize]

		objConf := row[locations]
		if objConf < confThreshold {
			continue
		}

		classID := 0
		maxScore := float32(0)
		for j := locations + 1; j < rowSize; j++ {
			score := objConf * row[j]
			if score > maxScore {
				maxScore = score
				classID = j - (locations + 1)
			}
		}

		if maxScore < confThreshold {
			continue
		}

		cx, cy := row[0], row[1]
		w, h := row[2], row[3]

		candidates = append(candidates, postprocess.Candidate{
			Box: images.Rect{
				X1: cx - w/2,
				Y1: cy - h/2,
				X2: cx + w/2,
				Y2: cy + h/2,
			},
			Score: maxScore,
			Class: classID,
		})
	}

	return candidates
}
