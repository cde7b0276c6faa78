package color

// Blend modes take the receiver as the base layer and the argument as the
// blend layer.

// BlendNormal returns blend, except that a pure-black blend is treated as
// transparent and the base is kept.
func (c Color) BlendNormal(blend Color) Color {
	if blend.IsBlack() {
		return c
	}
	return blend
}

// BlendMultiply computes a*b/255 per channel.
func (c Color) BlendMultiply(blend Color) Color {
	return Color{mul8(c.R, blend.R), mul8(c.G, blend.G), mul8(c.B, blend.B)}
}

// BlendAdd is the saturating per-channel sum.
func (c Color) BlendAdd(blend Color) Color {
	return c.Add(blend)
}

// BlendSubtract is the saturating per-channel difference. A pure-black blend
// is an explicit no-op. This convention is independent of BlendNormal's.
func (c Color) BlendSubtract(blend Color) Color {
	if blend.IsBlack() {
		return c
	}
	return Color{subSat(c.R, blend.R), subSat(c.G, blend.G), subSat(c.B, blend.B)}
}

// BlendScreen computes 255-(255-a)(255-b)/255 per channel.
func (c Color) BlendScreen(blend Color) Color {
	return Color{screen8(c.R, blend.R), screen8(c.G, blend.G), screen8(c.B, blend.B)}
}

// BlendOverlay multiplies dark base channels (<128) and screens light ones.
func (c Color) BlendOverlay(blend Color) Color {
	return Color{overlay8(c.R, blend.R), overlay8(c.G, blend.G), overlay8(c.B, blend.B)}
}

func mul8(a, b uint8) uint8 {
	return uint8(uint16(a) * uint16(b) / 255)
}

func screen8(a, b uint8) uint8 {
	return 255 - uint8(uint16(255-a)*uint16(255-b)/255)
}

func overlay8(a, b uint8) uint8 {
	if a < 128 {
		return uint8(2 * uint32(a) * uint32(b) / 255)
	}
	return 255 - uint8(2*uint32(255-a)*uint32(255-b)/255)
}
