// Command webcam runs a detection model against a local camera and draws the
// parsed objects. It is a demo harness for the library: the webcam loop owns
// all I/O, the library only transforms tensors.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/nvr-ai/go-detect/inference"
	"github.com/nvr-ai/go-detect/models/model"
)

func main() {
	deviceID := flag.Int("device", 0, "video capture device id")
	modelPath := flag.String("model", "yolov8n.onnx", "path to the ONNX model")
	format := flag.String("format", "fused", "tensor format: fused or objectness")
	confThreshold := flag.Float64("conf", 0.5, "confidence threshold")
	flag.Parse()

	session, err := inference.NewSession(inference.Config{
		ModelPath:   *modelPath,
		InputName:   "images",
		OutputName:  "output0",
		InputWidth:  640,
		InputHeight: 640,
		OutputRows:  8400,
		Params: model.Params{
			Format:        model.Format(*format),
			ConfThreshold: float32(*confThreshold),
		},
	})
	if err != nil {
		log.Fatalf("session setup failed: %v", err)
	}
	defer session.Close()

	webcam, err := gocv.OpenVideoCapture(*deviceID)
	if err != nil {
		log.Fatalf("cannot open device %v: %v", *deviceID, err)
	}
	defer webcam.Close()

	window := gocv.NewWindow("go-detect")
	defer window.Close()

	mat := gocv.NewMat()
	defer mat.Close()

	// color for the rect when objects detected
	green := color.RGBA{0, 255, 0, 0}

	// FPS tracking variables
	fps := 0.0
	frameCount := 0
	lastTime := time.Now()

	log.Printf("start reading camera device: %v", *deviceID)
	for {
		if ok := webcam.Read(&mat); !ok {
			log.Printf("cannot read device %v", *deviceID)
			return
		}
		if mat.Empty() {
			continue
		}

		frame, err := mat.ToImage()
		if err != nil {
			log.Printf("frame conversion failed: %v", err)
			continue
		}

		objects, err := session.Detect(context.Background(), frame)
		if err != nil {
			log.Printf("detection failed: %v", err)
			continue
		}

		frameCount++
		if elapsed := time.Since(lastTime).Seconds(); elapsed >= 1.0 {
			fps = float64(frameCount) / elapsed
			frameCount = 0
			lastTime = time.Now()
		}
		log.Printf("found %d objects | FPS: %.2f", len(objects), fps)

		for _, obj := range objects {
			r := image.Rect(obj.Box.Left, obj.Box.Top,
				obj.Box.Left+obj.Box.Width, obj.Box.Top+obj.Box.Height)
			gocv.Rectangle(&mat, r, green, 2)
			label := fmt.Sprintf("%s %.2f", obj.ClassName(), obj.Confidence)
			gocv.PutText(&mat, label, image.Pt(obj.Box.Left, obj.Box.Top-4),
				gocv.FontHersheySimplex, 0.5, green, 1)
		}

		window.IMShow(mat)
		window.WaitKey(1)
	}
}
