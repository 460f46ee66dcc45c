package render

import "image/color"

// FillGrayRGBA converts a single density plane into tinted RGBA pixels.
// Density 0 maps to black, density 1 to the tint at full brightness.
func FillGrayRGBA(buf []byte, plane []float32, tint color.RGBA) {
	for i, v := range plane {
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		base := i * 4
		buf[base+0] = uint8(float32(tint.R) * v)
		buf[base+1] = uint8(float32(tint.G) * v)
		buf[base+2] = uint8(float32(tint.B) * v)
		buf[base+3] = 255
	}
}

// FillChannelsRGBA maps up to three density planes onto the red, green, and
// blue components. Missing planes render as zero.
func FillChannelsRGBA(buf []byte, planes [][]float32) {
	n := len(buf) / 4
	for i := 0; i < n; i++ {
		base := i * 4
		buf[base+0] = channelByte(planes, 0, i)
		buf[base+1] = channelByte(planes, 1, i)
		buf[base+2] = channelByte(planes, 2, i)
		buf[base+3] = 255
	}
}

func channelByte(planes [][]float32, c, i int) uint8 {
	if c >= len(planes) || i >= len(planes[c]) {
		return 0
	}
	v := planes[c][i]
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return uint8(v*255 + 0.5)
}

// FillQuantizedRGBA converts a 0..255 display buffer into grayscale pixels.
// Used by consumers that only see the Sim interface.
func FillQuantizedRGBA(buf []byte, cells []uint8) {
	for i, c := range cells {
		base := i * 4
		buf[base+0] = c
		buf[base+1] = c
		buf[base+2] = c
		buf[base+3] = 255
	}
}
