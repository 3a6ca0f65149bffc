package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeValueSet(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMin float64
		wantMax float64
		wantErr bool
	}{
		{"integers", "20:80", 20, 80, false},
		{"floats", "12.5:87.5", 12.5, 87.5, false},
		{"with spaces", " 0 : 360 ", 0, 360, false},
		{"wraparound hue", "300:60", 300, 60, false},
		{"missing separator", "2080", 0, 0, true},
		{"non-numeric lower", "low:80", 0, 0, true},
		{"non-numeric upper", "20:high", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r rangeValue
			err := r.Set(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMin, r.min)
			assert.Equal(t, tt.wantMax, r.max)
		})
	}
}

func TestRangeValueString(t *testing.T) {
	r := rangeValue{min: 0, max: 100}
	assert.Equal(t, "0:100", r.String())
	assert.Equal(t, "range", r.Type())

	r = rangeValue{min: 12.5, max: 360}
	assert.Equal(t, "12.5:360", r.String())
}
