package util

// SampleCurve evaluates fn at n evenly spaced points from 0 to 1 inclusive.
func SampleCurve(fn func(float64) float64, n int) []float64 {
	if n < 2 {
		n = 2
	}
	increment := 1.0 / float64(n-1)
	lut := make([]float64, n)
	for i := 0; i < n; i++ {
		lut[i] = fn(float64(i) * increment)
	}
	return lut
}

// GenerateLut builds a rise-and-fall table of the given length: the first
// half samples fn upward, the second half mirrors it.
func GenerateLut(fn func(float64) float64, length int) []float64 {
	lut := make([]float64, length)
	if length < 2 {
		return lut
	}
	increment := 1.0 / float64(length/2)
	for i, j := 0, length-1; i < length/2; i, j = i+1, j-1 {
		value := fn(float64(i) * increment)
		lut[i] = value
		lut[j] = value
	}
	return lut
}
