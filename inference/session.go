// Package inference - ONNX Runtime session wrapper feeding the parser.
package inference

import (
	"context"
	"image"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/nvr-ai/go-detect/images"
	"github.com/nvr-ai/go-detect/models/model"
	"github.com/nvr-ai/go-detect/parser"
)

// Config describes a detection model session.
type Config struct {
	// ModelPath is the ONNX model file to load.
	ModelPath string
	// LibraryPath overrides the ONNX Runtime shared library location.
	// Empty means the per-platform default (see SharedLibPath).
	LibraryPath string
	// InputName and OutputName are the model's tensor names.
	InputName  string
	OutputName string
	// InputWidth and InputHeight are the network input resolution.
	InputWidth  int
	InputHeight int
	// OutputRows is the number of candidate rows the model emits.
	OutputRows int
	// Params configures decode, filtering and suppression.
	Params model.Params
	// IntraOpThreads and InterOpThreads bound ONNX Runtime parallelism.
	// Zero uses the runtime defaults.
	IntraOpThreads int
	InterOpThreads int
}

// rowSize returns the per-row element count for the configured format.
func (c Config) rowSize() int {
	if c.Params.Format == model.FormatObjectness {
		return c.Params.NumClasses + 5
	}
	return c.Params.NumClasses + 4
}

// Session owns an ONNX Runtime session plus its input and output tensors
// and runs the full frame cycle: prepare input, infer, parse.
//
// A Session is safe for concurrent use, but calls serialize on the shared
// tensors; run one Session per camera pipeline for parallel throughput.
type Session struct {
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
	parser  *parser.Parser
	config  Config

	mu             sync.Mutex
	inferenceCount int64
	totalTime      time.Duration
}

// NewSession loads the model and prepares the session.
//
// All configuration errors surface here; Detect assumes a valid session.
func NewSession(config Config) (*Session, error) {
	config.Params = config.Params.WithDefaults()

	p, err := parser.New(config.Params)
	if err != nil {
		return nil, err
	}
	if config.InputWidth <= 0 || config.InputHeight <= 0 {
		return nil, errors.Errorf("invalid input shape %dx%d", config.InputWidth, config.InputHeight)
	}
	if config.OutputRows <= 0 {
		return nil, errors.Errorf("outputRows must be positive, got %d", config.OutputRows)
	}

	libPath := config.LibraryPath
	if libPath == "" {
		libPath = SharedLibPath()
	}
	if _, err := os.Stat(libPath); os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "ONNX Runtime library not found at %s", libPath)
	}

	if !ort.IsInitialized() {
		ort.SetSharedLibraryPath(libPath)
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, errors.Wrap(err, "initializing ORT environment")
		}
	}

	inputShape := ort.NewShape(1, 3, int64(config.InputHeight), int64(config.InputWidth))
	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return nil, errors.Wrap(err, "creating input tensor")
	}

	outputShape := ort.NewShape(1, int64(config.OutputRows), int64(config.rowSize()))
	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return nil, errors.Wrap(err, "creating output tensor")
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, errors.Wrap(err, "creating ORT session options")
	}
	defer options.Destroy()

	options.SetIntraOpNumThreads(config.IntraOpThreads)
	options.SetInterOpNumThreads(config.InterOpThreads)
	options.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableExtended)

	session, err := ort.NewAdvancedSession(
		config.ModelPath,
		[]string{config.InputName},
		[]string{config.OutputName},
		[]ort.ArbitraryTensor{inputTensor},
		[]ort.ArbitraryTensor{outputTensor},
		options,
	)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, errors.Wrapf(err, "creating ORT session for %s", config.ModelPath)
	}

	return &Session{
		session: session,
		input:   inputTensor,
		output:  outputTensor,
		parser:  p,
		config:  config,
	}, nil
}

// Detect runs one frame through the network and parses the output.
//
// The returned objects are in pixel coordinates of the original frame.
func (s *Session) Detect(ctx context.Context, img image.Image) ([]parser.Object, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()

	err := images.PrepareTensor(img, s.config.InputWidth, s.config.InputHeight, s.input.GetData())
	if err != nil {
		return nil, errors.Wrap(err, "preparing input")
	}

	if err := s.session.Run(); err != nil {
		return nil, errors.Wrap(err, "running inference")
	}

	objects, err := s.parser.Parse(
		[]parser.LayerInfo{{Name: s.config.OutputName, Buffer: s.output.GetData()}},
		parser.NetworkInfo{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()},
	)
	if err != nil {
		return nil, err
	}

	s.inferenceCount++
	s.totalTime += time.Since(start)

	return objects, nil
}

// Metrics returns cumulative per-session performance counters.
func (s *Session) Metrics() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	metrics := map[string]interface{}{
		"inference_count": s.inferenceCount,
		"total_time_ms":   float64(s.totalTime.Nanoseconds()) / 1e6,
	}
	if s.inferenceCount > 0 {
		avg := float64(s.totalTime.Nanoseconds()) / 1e6 / float64(s.inferenceCount)
		metrics["average_time_ms"] = avg
		metrics["throughput_fps"] = 1000.0 / avg
	}
	return metrics
}

// Close releases the session and its tensors.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.input != nil {
		s.input.Destroy()
		s.input = nil
	}
	if s.output != nil {
		s.output.Destroy()
		s.output = nil
	}
	if s.session != nil {
		s.session.Destroy()
		s.session = nil
	}
}
