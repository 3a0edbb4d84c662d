// Package model - Decode contract shared by all tensor formats.
package model

import (
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-detect/models/postprocess"
)

// Format selects the tensor encoding a decoder understands.
type Format string

const (
	// FormatFused is the fused-score encoding: each row carries the four
	// box corners followed by one score per class (YOLOv8 style).
	FormatFused Format = "fused"
	// FormatObjectness is the objectness encoding: each row carries box
	// center/size, an objectness scalar, then one score per class
	// (YOLOv5 style).
	FormatObjectness Format = "objectness"
)

// Decoder turns a flat network output buffer into candidate detections.
//
// Implementations are stateless and safe for concurrent use from
// independent per-camera pipelines. A decoder never emits a candidate whose
// score is below confThreshold, and every emitted box satisfies
// X1 <= X2, Y1 <= Y2. An output with no qualifying rows decodes to an
// empty slice, not an error.
//
// The buffer length must be an exact multiple of the format's row size
// (numClasses+4 for fused, numClasses+5 for objectness). That is a caller
// precondition; a malformed buffer decodes to nil.
type Decoder interface {
	Decode(output []float32, numClasses int, confThreshold float32) []postprocess.Candidate
}

// Params carries the per-call detection configuration.
//
// Validation happens once at pipeline setup via Validate; the per-frame hot
// path assumes a validated value and performs no defensive checks.
type Params struct {
	// Format selects the decoder strategy.
	Format Format
	// NumClasses is the number of classes the network predicts.
	// Defaults to 80 (COCO) when zero.
	NumClasses int
	// ConfThreshold is the minimum score for a row to become a candidate.
	ConfThreshold float32
	// NMSThreshold is the IoU overlap above which a lower-confidence
	// candidate is suppressed. Defaults to 0.45 when zero.
	NMSThreshold float32
}

// Defaults for fields left zero in Params.
const (
	DefaultNumClasses   = 80
	DefaultNMSThreshold = 0.45
)

// WithDefaults returns a copy of p with zero fields replaced by defaults.
func (p Params) WithDefaults() Params {
	if p.NumClasses == 0 {
		p.NumClasses = DefaultNumClasses
	}
	if p.NMSThreshold == 0 {
		p.NMSThreshold = DefaultNMSThreshold
	}
	return p
}

// Validate reports malformed configuration. Call it when the pipeline is
// configured, not per frame.
func (p Params) Validate() error {
	switch p.Format {
	case FormatFused, FormatObjectness:
	default:
		return errors.Errorf("unsupported tensor format: %q", p.Format)
	}
	if p.NumClasses < 0 {
		return errors.Errorf("numClasses must not be negative, got %d", p.NumClasses)
	}
	if p.ConfThreshold < 0 || p.ConfThreshold > 1 {
		return errors.Errorf("confThreshold must be in [0, 1], got %v", p.ConfThreshold)
	}
	if p.NMSThreshold < 0 || p.NMSThreshold > 1 {
		return errors.Errorf("nmsThreshold must be in [0, 1], got %v", p.NMSThreshold)
	}
	return nil
}
