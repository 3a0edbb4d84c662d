package yolov5

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDecodeObjectness verifies decoding of the objectness row layout.
//
// Each row is center/size, an objectness scalar, then per-class scores; the
// emitted score is objectness x classScore maximized over classes and the
// center/size box converts to corners as center +/- size/2.
//
// @example
// go test -v -run TestDecodeObjectness
func TestDecodeObjectness(t *testing.T) {
	d := NewDecoder()

	t.Run("score is objectness times the best class score", func(t *testing.T) {
		// objectness 0.9, class-1 score 0.8 -> confidence 0.72.
		row := []float32{0.5, 0.5, 0.2, 0.4, 0.9, 0.1, 0.8, 0.3}

		candidates := d.Decode(row, 3, 0.5)
		require.Len(t, candidates, 1)

		assert.Equal(t, 1, candidates[0].Class)
		assert.InDelta(t, 0.72, candidates[0].Score, 1e-6)
	})

	t.Run("center and size convert to corners", func(t *testing.T) {
		row := []float32{0.5, 0.5, 0.2, 0.4, 0.9, 0.1, 0.8, 0.3}

		candidates := d.Decode(row, 3, 0.5)
		require.Len(t, candidates, 1)

		box := candidates[0].Box
		assert.InDelta(t, 0.4, box.X1, 1e-6)
		assert.InDelta(t, 0.3, box.Y1, 1e-6)
		assert.InDelta(t, 0.6, box.X2, 1e-6)
		assert.InDelta(t, 0.7, box.Y2, 1e-6)
	})

	t.Run("rows are gated on objectness before class scores", func(t *testing.T) {
		// objectness 0.3 is below the 0.5 threshold, so the perfect class
		// score never gets a chance to rescue the row.
		row := []float32{0.5, 0.5, 0.2, 0.2, 0.3, 1.0, 0.0, 0.0}

		assert.Empty(t, d.Decode(row, 3, 0.5))
	})

	t.Run("combined score below threshold is dropped", func(t *testing.T) {
		// objectness 0.6 passes the gate, but 0.6 x 0.7 = 0.42 < 0.5.
		row := []float32{0.5, 0.5, 0.2, 0.2, 0.6, 0.1, 0.7, 0.2}

		assert.Empty(t, d.Decode(row, 3, 0.5))
	})

	t.Run("malformed buffer decodes to nil", func(t *testing.T) {
		// 7 values cannot be split into rows of 8.
		assert.Nil(t, d.Decode(make([]float32, 7), 3, 0.5))
	})
}

// BenchmarkDecode measures objectness decoding over a realistic row count.
func BenchmarkDecode(b *testing.B) {
	const numClasses = 80
	const numRows = 8400
	rowSize := numClasses + 5
	output := make([]float32, numRows*rowSize)
	for i := 0; i < numRows; i++ {
		output[i*rowSize+4] = 0.7
		output[i*rowSize+5+(i%numClasses)] = 0.9
	}
	d := NewDecoder()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Decode(output, numClasses, 0.5)
	}
}
