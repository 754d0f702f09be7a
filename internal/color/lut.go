package color

// sRGBToLinearLUT provides O(1) sRGB byte to linear conversion.
var sRGBToLinearLUT [256]float64

// linearToSRGBLUT provides O(1) linear to sRGB byte conversion.
// Uses 4096 entries for 12-bit precision (sufficient for 8-bit sRGB).
var linearToSRGBLUT [4096]uint8

func init() {
	for i := 0; i < 256; i++ {
		sRGBToLinearLUT[i] = SRGBToLinear(float64(i) / 255.0)
	}
	for i := 0; i < 4096; i++ {
		linearToSRGBLUT[i] = Quantize(LinearToSRGB(float64(i) / 4095.0))
	}
}

// DecodeSRGB8 converts an sRGB byte to a linear component.
//
// Example:
//
//	r := DecodeSRGB8(128) // ~0.2159 (not 0.5!)
func DecodeSRGB8(s uint8) float64 {
	return sRGBToLinearLUT[s]
}

// EncodeSRGB8 converts a linear component to an sRGB byte using the
// lookup table. Input is clamped to [0,1]; NaN encodes as 0.
//
// Example:
//
//	s := EncodeSRGB8(0.5) // 188 (not 128!)
func EncodeSRGB8(l float64) uint8 {
	if !(l > 0) {
		return 0
	}
	if l >= 1 {
		return linearToSRGBLUT[4095]
	}
	return linearToSRGBLUT[int(l*4095.0+0.5)]
}

// EncodeSRGB8Slow is the math.Pow reference for EncodeSRGB8.
// Used for testing and verification only.
func EncodeSRGB8Slow(l float64) uint8 {
	if !(l > 0) {
		return 0
	}
	if l > 1 {
		l = 1
	}
	return Quantize(LinearToSRGB(l))
}
