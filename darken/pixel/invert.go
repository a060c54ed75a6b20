package pixel

// Invert flips every color channel in an RGBA buffer in place, replacing
// each of R, G and B with 255 minus its value. Alpha bytes are untouched, so
// transparency survives the transform. Applying it twice restores the
// original buffer.
func Invert(buf []byte) {
	for i := 0; i+3 < len(buf); i += 4 {
		buf[i] = 255 - buf[i]
		buf[i+1] = 255 - buf[i+1]
		buf[i+2] = 255 - buf[i+2]
	}
}
