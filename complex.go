package cxpr

import "strconv"

// FormatComplex renders a value for display: the real part alone when the
// imaginary part is zero, otherwise a+bI with the sign folded into b.
func FormatComplex(v complex128) string {
	re := strconv.FormatFloat(real(v), 'g', -1, 64)
	if imag(v) == 0 {
		return re
	}
	im := strconv.FormatFloat(imag(v), 'g', -1, 64)
	if imag(v) > 0 {
		im = "+" + im
	}
	return re + im + "I"
}
