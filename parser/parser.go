// Package parser - single entry point for detection post-processing.
//
// The parser turns a network's raw output buffer into a bounded, ordered
// object list: decode into candidates, suppress duplicates with greedy NMS,
// map the survivors into clipped pixel coordinates. It is invoked once per
// decoded frame by an inference runtime's post-processing hook.
//
// The parser is a pure transformation: it performs no I/O, keeps no state
// between calls, retains no reference to the caller's buffer, and is safe
// to call concurrently from independent per-camera pipelines.
package parser

import (
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-detect/images"
	"github.com/nvr-ai/go-detect/models"
	"github.com/nvr-ai/go-detect/models/model"
	"github.com/nvr-ai/go-detect/models/postprocess"
)

// ErrMissingOutputLayer reports that the metadata required to interpret the
// network output was absent or empty. The caller should skip emitting
// detections for the frame and proceed to the next one.
var ErrMissingOutputLayer = errors.New("no output layer info provided")

// LayerInfo describes one network output layer for a single frame.
//
// Buffer is owned by the caller; the parser reads it synchronously during
// Parse and never holds onto it.
type LayerInfo struct {
	// Name of the output layer, for diagnostics.
	Name string
	// Buffer is the layer's flat float32 output.
	Buffer []float32
}

// NetworkInfo carries the frame dimensions detections are mapped onto.
type NetworkInfo struct {
	Width  int
	Height int
}

// Object is a final detection in integer pixel space, clipped to the frame.
type Object struct {
	// Class is the predicted class index.
	Class int
	// Confidence is the detection score in [0, 1].
	Confidence float32
	// Box is the clipped pixel-space bounding box.
	Box images.PixelBox
}

// ClassName returns the COCO class name for the object's class index.
func (o Object) ClassName() string {
	return models.ClassName(o.Class)
}

// Parser orchestrates decode, suppression and coordinate mapping for one
// configured tensor format.
//
// Construct it once at pipeline setup with New, then call Parse per frame.
// A Parser holds only immutable configuration, so one instance may serve
// any number of concurrent pipelines.
type Parser struct {
	params  model.Params
	decoder model.Decoder
	nms     postprocess.NMSConfig
}

// New validates params and builds a parser for the configured format.
//
// Configuration problems (unknown format, negative thresholds) surface
// here, at setup time; Parse assumes a valid configuration and does not
// re-check it on the per-frame path.
func New(params model.Params) (*Parser, error) {
	params = params.WithDefaults()
	if err := params.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid detection params")
	}
	decoder, err := models.NewDecoder(params.Format)
	if err != nil {
		return nil, err
	}
	return &Parser{
		params:  params,
		decoder: decoder,
		nms:     postprocess.NMSConfig{IoUThreshold: params.NMSThreshold},
	}, nil
}

// Parse converts one frame's raw output into the final object list.
//
// The first output layer is interpreted; a missing or empty layer is the
// only reported failure and yields (nil, ErrMissingOutputLayer). The result
// is in post-suppression survival order: descending confidence with stable
// ties. A frame with no qualifying rows parses to an empty list.
func (p *Parser) Parse(layers []LayerInfo, network NetworkInfo) ([]Object, error) {
	if len(layers) == 0 || len(layers[0].Buffer) == 0 {
		return nil, errors.Wrapf(ErrMissingOutputLayer, "layer count %d", len(layers))
	}

	candidates := p.decoder.Decode(layers[0].Buffer, p.params.NumClasses, p.params.ConfThreshold)
	kept := postprocess.ApplyGreedyNMS(candidates, &p.nms)

	objects := make([]Object, 0, len(kept))
	for _, c := range kept {
		objects = append(objects, Object{
			Class:      c.Class,
			Confidence: c.Score,
			Box:        images.MapToFrame(c.Box, network.Width, network.Height),
		})
	}
	return objects, nil
}

// Parse is the one-shot form: validate params, build the decoder and parse a
// single frame. Pipelines that run per frame should construct a Parser once
// with New instead.
func Parse(layers []LayerInfo, network NetworkInfo, params model.Params) ([]Object, error) {
	p, err := New(params)
	if err != nil {
		return nil, err
	}
	return p.Parse(layers, network)
}
