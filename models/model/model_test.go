package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParamsWithDefaults verifies that zero fields pick up the reference
// defaults: 80 classes and a 0.45 NMS threshold.
func TestParamsWithDefaults(t *testing.T) {
	p := Params{Format: FormatFused, ConfThreshold: 0.5}.WithDefaults()
	assert.Equal(t, DefaultNumClasses, p.NumClasses)
	assert.Equal(t, float32(DefaultNMSThreshold), p.NMSThreshold)

	// Explicit values are left alone.
	p = Params{Format: FormatFused, NumClasses: 3, NMSThreshold: 0.7}.WithDefaults()
	assert.Equal(t, 3, p.NumClasses)
	assert.Equal(t, float32(0.7), p.NMSThreshold)
}

// TestParamsValidate verifies the setup-time configuration contract.
func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		ok     bool
	}{
		{"valid", Params{Format: FormatObjectness, NumClasses: 80, ConfThreshold: 0.25, NMSThreshold: 0.45}, true},
		{"missing format", Params{ConfThreshold: 0.5}, false},
		{"negative classes", Params{Format: FormatFused, NumClasses: -1}, false},
		{"confidence above one", Params{Format: FormatFused, ConfThreshold: 1.1}, false},
		{"negative nms threshold", Params{Format: FormatFused, NMSThreshold: -0.2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
