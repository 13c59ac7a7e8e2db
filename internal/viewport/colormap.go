package viewport

// rgb is an 8-bit color triple.
type rgb struct {
	r, g, b uint8
}

// colormapFunc maps a windowed luminance in [0, 1] to a display color.
type colormapFunc func(v float64) rgb

var colormaps = map[string]colormapFunc{
	"gray":    grayMap,
	"inverse": inverseMap,
	"hot":     hotMap,
	"cool":    coolMap,
}

// Colormaps lists the available colormap names for menu construction.
func Colormaps() []string {
	return []string{"gray", "inverse", "hot", "cool"}
}

func grayMap(v float64) rgb {
	c := uint8(clamp01(v) * 255)
	return rgb{c, c, c}
}

func inverseMap(v float64) rgb {
	c := uint8((1 - clamp01(v)) * 255)
	return rgb{c, c, c}
}

// hotMap ramps black → red → yellow → white.
func hotMap(v float64) rgb {
	v = clamp01(v)
	switch {
	case v < 1.0/3:
		return rgb{uint8(v * 3 * 255), 0, 0}
	case v < 2.0/3:
		return rgb{255, uint8((v - 1.0/3) * 3 * 255), 0}
	default:
		return rgb{255, 255, uint8((v - 2.0/3) * 3 * 255)}
	}
}

// coolMap ramps cyan → magenta.
func coolMap(v float64) rgb {
	v = clamp01(v)
	return rgb{uint8(v * 255), uint8((1 - v) * 255), 255}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
