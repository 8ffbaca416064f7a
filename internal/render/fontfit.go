package render

// maxFontSize caps the font-fit search; labels never grow past this.
const maxFontSize = 100

// FitFontSize returns the largest integer font size, at most maxFontSize,
// whose measured width for text stays strictly below targetWidth. It never
// returns less than 1.
func FitFontSize(s Surface, text string, f Font, targetWidth int) int {
	size := 1
	for size < maxFontSize {
		if s.MeasureText(text, f, float64(size+1)).Width >= targetWidth {
			break
		}
		size++
	}
	return size
}

// ResolveFontSize fits text into targetWidth and reports whether the fitted
// size differs from the requested one. A non-positive request means "fit
// freely".
func ResolveFontSize(s Surface, text string, f Font, targetWidth int, requested int) (size int, adjusted bool) {
	fitted := FitFontSize(s, text, f, targetWidth)
	if requested <= 0 {
		return fitted, false
	}
	if requested < fitted {
		return requested, false
	}
	return fitted, fitted != requested
}
