package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRGBA(t *testing.T) {
	tests := []struct {
		in   string
		want RGBA
		ok   bool
	}{
		{"rgba(13, 126, 201, 1)", RGBA{13, 126, 201, 1}, true},
		{"rgba(13,126,201,0.5)", RGBA{13, 126, 201, 0.5}, true},
		{"rgb(1, 2, 3)", RGBA{1, 2, 3, 1}, true},
		{"  rgba( 0 , 0 , 0 , 0 ) ", RGBA{0, 0, 0, 0}, true},
		{"rgba(256, 0, 0, 1)", RGBA{}, false},
		{"rgba(0, 0, 0, 1.5)", RGBA{}, false},
		{"#0d7ec9", RGBA{}, false},
		{"blue", RGBA{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRGBA(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWithAlpha(t *testing.T) {
	assert.Equal(t, "rgba(13, 126, 201, 0.2)", WithAlpha(BrandColor, 0.2))
	assert.Equal(t, "rgba(13, 126, 201, 1)", WithAlpha("rgba(13,126,201,0.3)", 1))
	assert.Equal(t, "rgba(1, 2, 3, 0.2)", WithAlpha("rgb(1,2,3)", 0.2))
	assert.Equal(t, "red", WithAlpha(" red ", 0.2))
}
