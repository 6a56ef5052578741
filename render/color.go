package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/TFMV/hypergraph/models"
	opensimplex "github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/spatial/r2"
)

// Hex formats c as #rrggbb, clamping channels to [0, 1].
func Hex(c models.Color) string {
	r, g, b := RGB8(c)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// RGB8 converts c to 8-bit channels, clamping to [0, 1] first.
func RGB8(c models.Color) (uint8, uint8, uint8) {
	return channel(c.R), channel(c.G), channel(c.B)
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// ParseHexColor parses #rgb or #rrggbb. Invalid input yields black.
func ParseHexColor(hex string) models.Color {
	hex = strings.TrimPrefix(hex, "#")

	var r, g, b uint8
	switch len(hex) {
	case 3:
		r = parseHexDigit(hex[0]) * 17
		g = parseHexDigit(hex[1]) * 17
		b = parseHexDigit(hex[2]) * 17
	case 6:
		r = parseHexByte(hex[0:2])
		g = parseHexByte(hex[2:4])
		b = parseHexByte(hex[4:6])
	}
	return models.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func parseHexDigit(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

func parseHexByte(s string) uint8 {
	var result uint8
	for i := 0; i < len(s); i++ {
		result = result*16 + parseHexDigit(s[i])
	}
	return result
}

// Shimmer perturbs node colors with simplex noise sampled at their disk
// position, so nearby nodes drift through similar tints.
type Shimmer struct {
	noise     opensimplex.Noise
	intensity float64
	scale     float64
}

// NewShimmer creates a shimmer of the given intensity in [0, 1].
func NewShimmer(seed int64, intensity float64) *Shimmer {
	return &Shimmer{
		noise:     opensimplex.New(seed),
		intensity: math.Max(0, math.Min(1, intensity)),
		scale:     3,
	}
}

// Apply returns c tinted by the noise field at position at and time t.
func (s *Shimmer) Apply(c models.Color, at r2.Vec, t float64) models.Color {
	if s == nil || s.intensity == 0 {
		return c
	}
	x, y := at.X*s.scale, at.Y*s.scale
	amount := 0.5 * s.intensity
	return models.Color{
		R: c.R + amount*s.noise.Eval3(x, y, t),
		G: c.G + amount*s.noise.Eval3(x+100, y+100, t),
		B: c.B + amount*s.noise.Eval3(x+200, y+200, t),
	}
}
