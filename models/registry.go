// Package models - registry for tensor decoders.
package models

import (
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-detect/models/model"
	"github.com/nvr-ai/go-detect/models/yolov5"
	"github.com/nvr-ai/go-detect/models/yolov8"
)

// NewDecoder creates the decoder for the given tensor format.
//
// This factory is the single place where a format selector is turned into a
// concrete decode strategy, so the per-frame path never inspects the format
// again; adding a new encoding means adding a case here and a package next
// to yolov5/yolov8.
//
// Arguments:
//   - format: The tensor encoding to decode.
//
// Returns:
//   - model.Decoder: A stateless decoder for the format.
//   - error: An error if the format is not supported.
func NewDecoder(format model.Format) (model.Decoder, error) {
	switch format {
	case model.FormatFused:
		return yolov8.NewDecoder(), nil
	case model.FormatObjectness:
		return yolov5.NewDecoder(), nil
	default:
		return nil, errors.Errorf("unsupported tensor format: %q", format)
	}
}
