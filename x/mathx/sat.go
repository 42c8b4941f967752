package mathx

// Saturating uint8 arithmetic for firmware pixel maths. Results clip to
// [0, 255] instead of wrapping.

func SatAdd8(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

func SatSub8(a, b uint8) uint8 {
	if b > a {
		return 0
	}
	return a - b
}

// Scale8 returns a*b/256, the classic 8-bit brightness scale.
func Scale8(a, b uint8) uint8 {
	return uint8((uint16(a) * uint16(b)) >> 8)
}
