package charts

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var rgbaPattern = regexp.MustCompile(`^\s*rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*([0-9.]+)\s*)?\)\s*$`)

// RGBA is a parsed rgba(r,g,b,a) colour
type RGBA struct {
	R, G, B uint8
	A       float64
}

// String renders the colour back in rgba(r, g, b, a) form
func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// ParseRGBA parses rgba(r,g,b,a) or rgb(r,g,b) text
func ParseRGBA(s string) (RGBA, bool) {
	m := rgbaPattern.FindStringSubmatch(s)
	if m == nil {
		return RGBA{}, false
	}

	var channels [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(m[i+1])
		if err != nil || v > 255 {
			return RGBA{}, false
		}
		channels[i] = uint8(v)
	}

	alpha := 1.0
	if m[4] != "" {
		a, err := strconv.ParseFloat(m[4], 64)
		if err != nil || a > 1 {
			return RGBA{}, false
		}
		alpha = a
	}
	return RGBA{R: channels[0], G: channels[1], B: channels[2], A: alpha}, true
}

// WithAlpha replaces the alpha channel of an rgba(...) colour. Colours in any
// other notation are returned untouched.
func WithAlpha(color string, alpha float64) string {
	c, ok := ParseRGBA(color)
	if !ok {
		return strings.TrimSpace(color)
	}
	c.A = alpha
	return c.String()
}
