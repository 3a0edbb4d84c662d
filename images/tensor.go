package images

import (
	"fmt"
	"image"

	"github.com/nfnt/resize"
)

// PrepareTensor fills dst with the CHW float32 representation of img, resized
// to width x height, that detection networks expect as input.
//
// Pixels are scaled to [0, 1] and laid out channel-planar (all red values,
// then green, then blue). dst must hold at least 3*width*height floats;
// anything shorter is a shape mismatch and is reported as an error.
func PrepareTensor(img image.Image, width, height int, dst []float32) error {
	channelSize := width * height
	if len(dst) < channelSize*3 {
		return fmt.Errorf("destination holds %d floats, needs %d (check the tensor shape)",
			len(dst), channelSize*3)
	}
	red := dst[0:channelSize]
	green := dst[channelSize : channelSize*2]
	blue := dst[channelSize*2 : channelSize*3]

	// Lanczos3 keeps edges crisp enough for small-object detection.
	img = resize.Resize(uint(width), uint(height), img, resize.Lanczos3)

	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			red[i] = float32(r>>8) / 255.0
			green[i] = float32(g>>8) / 255.0
			blue[i] = float32(b>>8) / 255.0
			i++
		}
	}
	return nil
}
