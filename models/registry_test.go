package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-detect/models/model"
)

// TestNewDecoder verifies the format-to-strategy mapping.
func TestNewDecoder(t *testing.T) {
	t.Run("fused", func(t *testing.T) {
		d, err := NewDecoder(model.FormatFused)
		require.NoError(t, err)
		assert.NotNil(t, d)
	})

	t.Run("objectness", func(t *testing.T) {
		d, err := NewDecoder(model.FormatObjectness)
		require.NoError(t, err)
		assert.NotNil(t, d)
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := NewDecoder("anchorfree")
		assert.Error(t, err)
	})
}

// TestClassName verifies COCO class lookups, including out-of-range ids.
func TestClassName(t *testing.T) {
	assert.Equal(t, "person", ClassName(0))
	assert.Equal(t, "toothbrush", ClassName(79))
	assert.Equal(t, "unknown_80", ClassName(80))
	assert.Equal(t, "unknown_-1", ClassName(-1))

	mapping := ClassMapping()
	assert.Equal(t, 2, mapping["car"])
	assert.Len(t, mapping, 80)
}
